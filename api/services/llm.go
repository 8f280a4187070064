// Package services holds the question-answering pipelines: routing, stats,
// news, betting and game previews. Each pipeline depends on small ports so
// tests can script the model and the database.
package services

import (
	"context"
	"strings"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/shared/llm"
)

// Generator is the text-generation port.
type Generator interface {
	Chat(ctx context.Context, req llm.ChatRequest) (string, error)
}

// Embedder is the embedding port.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Querier executes generated or templated SQL behind the read-only gate.
type Querier interface {
	QueryReadOnly(ctx context.Context, sql string, args ...any) ([]map[string]any, error)
}

// NewsSearcher is the vector-search port over the news index.
type NewsSearcher interface {
	SearchNewsChunks(ctx context.Context, embedding []float32, limit int) ([]domain.NewsChunk, error)
}

// ScheduleSource exposes the cached scoreboard and today's matchup map.
type ScheduleSource interface {
	Get(ctx context.Context) domain.Scoreboard
	Schedule(ctx context.Context) map[string]domain.TeamScheduleEntry
}

func userMessage(content string) []llm.Message {
	return []llm.Message{{Role: "user", Content: content}}
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, from model output.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = s[3:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// stripSQL cleans generated SQL: fences, stray backticks and a leading "sql"
// language tag.
func stripSQL(raw string) string {
	s := stripFences(raw)
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)
	if len(s) >= 3 && strings.EqualFold(s[:3], "sql") {
		s = strings.TrimSpace(s[3:])
	}
	return s
}
