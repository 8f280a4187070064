package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/api/prompts"
	"github.com/courtsidelabs/courtside/api/sqlsafe"
	"github.com/courtsidelabs/courtside/api/store"
	"github.com/courtsidelabs/courtside/shared/jsonutil"
	"github.com/courtsidelabs/courtside/shared/llm"
)

// maxResultRows caps how many rows reach the formatting prompt.
const maxResultRows = 25

const (
	readOnlyRefusal = "I can only run read-only queries. Your question would require modifying the database."
	timeoutAnswer   = "The query took too long to execute. Try a more specific question."
)

// Stats is the text-to-SQL pipeline.
type Stats struct {
	gen Generator
	db  Querier
}

func NewStats(gen Generator, db Querier) *Stats {
	return &Stats{gen: gen, db: db}
}

// Answer generates SQL for the question, executes it and formats the rows.
// newsContext, when non-empty, is appended to the generation prompt so injury
// news can steer the query. Execution errors get exactly one self-correction
// round trip; timeouts are terminal. Semantic failures come back as answers,
// not errors; the error return is for model-call failures only.
func (s *Stats) Answer(ctx context.Context, question, newsContext string) (domain.StatsAnswer, error) {
	raw, err := s.gen.Chat(ctx, llm.ChatRequest{
		Messages: userMessage(prompts.TextToSQL(question, newsContext)),
		Tier:     llm.TierStrong,
	})
	if err != nil {
		return domain.StatsAnswer{}, fmt.Errorf("generate sql: %w", err)
	}
	sql := stripSQL(raw)

	if !sqlsafe.Validate(sql) {
		return domain.StatsAnswer{Answer: readOnlyRefusal, SQL: sql}, nil
	}

	var rows []map[string]any
	var execErr error
	for attempt := 0; attempt < 2; attempt++ {
		rows, execErr = s.db.QueryReadOnly(ctx, sql)
		if execErr == nil {
			break
		}
		if errors.Is(execErr, store.ErrQueryTimeout) {
			return domain.StatsAnswer{Answer: timeoutAnswer, SQL: sql}, nil
		}
		if attempt == 0 {
			fixed, ferr := s.gen.Chat(ctx, llm.ChatRequest{
				Messages: userMessage(prompts.FixSQL(sql, execErr.Error(), question)),
				Tier:     llm.TierStrong,
			})
			if ferr != nil {
				return domain.StatsAnswer{}, fmt.Errorf("correct sql: %w", ferr)
			}
			sql = stripSQL(fixed)
			if !sqlsafe.Validate(sql) {
				return domain.StatsAnswer{Answer: readOnlyRefusal, SQL: sql}, nil
			}
		}
	}
	if execErr != nil {
		return domain.StatsAnswer{
			Answer: fmt.Sprintf("Error executing query: %v", execErr),
			SQL:    sql,
		}, nil
	}

	if len(rows) > maxResultRows {
		rows = rows[:maxResultRows]
	}
	results := "No results found."
	if len(rows) > 0 {
		results = jsonutil.MustJSON(rows)
	}

	answer, err := s.gen.Chat(ctx, llm.ChatRequest{
		Messages:    userMessage(prompts.FormatStats(question, sql, results)),
		Tier:        llm.TierFast,
		Temperature: 0.2,
	})
	if err != nil {
		return domain.StatsAnswer{}, fmt.Errorf("format results: %w", err)
	}

	return domain.StatsAnswer{Answer: answer, SQL: sql, Results: rows}, nil
}
