package prompts

import "fmt"

const formatStatsTemplate = `You are an NBA stats assistant. Given the user's original question and the SQL query results below, write a clear, concise answer in natural language.

- Use the data provided — do not make up statistics.
- Format numbers nicely (e.g. "25.3 PPG", "12,345 points").
- If the results are empty, say you couldn't find matching data.
- Keep the response conversational but factual.
- If there are multiple rows, present them in a readable way (e.g. a ranked list).

User question: %s

SQL query used:
%s

Results:
%s
`

func FormatStats(question, sql, results string) string {
	return fmt.Sprintf(formatStatsTemplate, question, sql, results)
}

const summarizeNewsTemplate = `You are an NBA news assistant. Based on the news excerpts below, answer the user's question.

Rules:
1. Only use information from the provided excerpts.
2. Cite your sources using [Source: title] after each claim.
3. If the excerpts don't contain relevant information, say so clearly.
4. Be concise and factual.
5. If multiple sources agree, synthesize them into a cohesive answer.

User question: %s

News excerpts:
%s
`

func SummarizeNews(question, chunks string) string {
	return fmt.Sprintf(summarizeNewsTemplate, question, chunks)
}
