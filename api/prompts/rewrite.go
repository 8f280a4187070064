package prompts

import "fmt"

const resolveContextTemplate = `Given this conversation history and the user's new question, rewrite the question so it is fully self-contained (no pronouns like "he/she/they/his/their" that refer to earlier messages). If the question is already clear, return it unchanged.

Conversation:
%s

New question: %s

Output ONLY the rewritten question.`

func ResolveContext(history, question string) string {
	return fmt.Sprintf(resolveContextTemplate, history, question)
}

const normalizeTemplate = `You are a question normalizer for an NBA Q&A assistant. Your job is to rewrite vague, casual, or slang-heavy user input into a clear, specific question that downstream components can handle accurately.

Rules:
1. Resolve common NBA nicknames to full player names:
   - "Steph" -> "Stephen Curry", "LeBron" -> "LeBron James", "KD" -> "Kevin Durant"
   - "Giannis" -> "Giannis Antetokounmpo", "Luka" -> "Luka Doncic", "Jokic" -> "Nikola Jokic"
   - "AD" -> "Anthony Davis", "The King" -> "LeBron James", "Dame" -> "Damian Lillard"
   - "Ant" / "Ant-Man" -> "Anthony Edwards", "SGA" -> "Shai Gilgeous-Alexander"

2. Translate NBA slang into precise language:
   - "cooking" / "going off" -> "performing well recently"
   - "boards" -> "rebounds", "dimes" -> "assists", "buckets" -> "points"
   - "dropping" (as in "dropping 30") -> "scoring 30 points"
   - "clutch" -> "performing well in close/late-game situations"
   - "hammer" / "smash" (betting) -> "strongly consider betting"
   - "fade" (betting) -> "bet against"
   - "SGP" -> "same game parlay"
   - "PRA" -> "points + rebounds + assists"
   - "the over" -> "over the projected total"

3. Expand vague queries into answerable questions:
   - "tell me about X" -> "What are X's current season stats and recent performance?"
   - "how is X" / "how's X doing" -> "What are X's current season averages?"

4. Convert subjective questions to the closest answerable form:
   - "who's the GOAT" -> "Who are the all-time career statistical leaders in points, assists, and rebounds?"
   - "who's better, X or Y" -> "Compare X and Y's current season averages"

5. Narrow overly broad queries:
   - "tell me everything about the Lakers" -> "What is the Lakers' current season record and recent game results?"

6. Handle "recently/lately" and time references:
   - "lately" / "recently" -> "in the last 10 games"

7. If the question is clearly NOT about the NBA, output it UNCHANGED so it can be classified as off-topic.

8. If the question is already clear and specific, output it UNCHANGED.

Output ONLY the rewritten question, nothing else.

Original question: %s
`

func Normalize(question string) string {
	return fmt.Sprintf(normalizeTemplate, question)
}
