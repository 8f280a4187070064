package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/api/prompts"
	"github.com/courtsidelabs/courtside/pkg/metrics"
	"github.com/courtsidelabs/courtside/shared/llm"
)

// maxHistoryTurns bounds how much conversation history feeds the context
// resolution rewrite.
const maxHistoryTurns = 10

const (
	offTopicAnswer = "I'm an NBA assistant — my job is for NBA purposes only! Ask me about player stats, game scores, standings, trades, or league news."
	errorAnswer    = "Something went wrong while answering that question. Please try again."
)

// Router classifies each question and dispatches it to the right pipeline.
type Router struct {
	gen     Generator
	stats   *Stats
	news    *News
	betting *Betting
}

func NewRouter(gen Generator, stats *Stats, news *News, betting *Betting) *Router {
	return &Router{gen: gen, stats: stats, news: news, betting: betting}
}

// Route answers a question end to end. It never returns an error: pipeline
// failures and panics become a generic category=error answer at this
// boundary, so one bad request cannot take a handler down with it.
func (r *Router) Route(ctx context.Context, question string, history []domain.Turn) (answer domain.Answer) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("router panic", "panic", rec)
			answer = errAnswer()
		}
	}()

	resolved := r.resolveContext(ctx, question, history)
	normalized := r.normalize(ctx, resolved)
	category := r.classify(ctx, normalized)
	metrics.QuestionsTotal.WithLabelValues(string(category)).Inc()

	switch category {
	case domain.CategoryOffTopic:
		return domain.Answer{Category: domain.CategoryOffTopic, Answer: offTopicAnswer}

	case domain.CategoryNews:
		news, err := r.news.Answer(ctx, normalized)
		if err != nil {
			slog.Error("news pipeline failed", "error", err)
			return errAnswer()
		}
		return domain.Answer{Category: domain.CategoryNews, Answer: news.Answer, Sources: news.Sources}

	case domain.CategoryBetting:
		return r.routeBetting(ctx, normalized)

	case domain.CategoryMixed:
		return r.routeMixed(ctx, normalized)

	default:
		stats, err := r.stats.Answer(ctx, normalized, "")
		if err != nil {
			slog.Error("stats pipeline failed", "error", err)
			return errAnswer()
		}
		return domain.Answer{Category: domain.CategoryStats, Answer: stats.Answer, SQL: stats.SQL}
	}
}

// routeBetting runs the betting analysis and the news lookup concurrently.
// The news result is appended as a subordinate section; its failure never
// fails the betting answer.
func (r *Router) routeBetting(ctx context.Context, question string) domain.Answer {
	var news domain.NewsAnswer
	var newsErr error
	newsDone := make(chan struct{})
	go func() {
		defer close(newsDone)
		news, newsErr = r.news.Answer(ctx, question)
	}()

	betting, err := r.betting.Answer(ctx, question, "")
	<-newsDone
	if err != nil {
		slog.Error("betting pipeline failed", "error", err)
		return errAnswer()
	}

	answer := domain.Answer{Category: domain.CategoryBetting, Answer: betting.Answer}
	if newsErr != nil {
		slog.Warn("betting news lookup failed", "error", newsErr)
		return answer
	}
	if len(news.Sources) > 0 {
		answer.Answer += "\n\n**Injury & news watch:**\n" + news.Answer
		answer.Sources = news.Sources
	}
	return answer
}

// routeMixed runs news first so its text can steer the SQL generation, then
// concatenates both sections under fixed labels.
func (r *Router) routeMixed(ctx context.Context, question string) domain.Answer {
	var newsContext string
	news, newsErr := r.news.Answer(ctx, question)
	if newsErr != nil {
		slog.Warn("mixed news lookup failed", "error", newsErr)
	} else {
		newsContext = news.Answer
	}

	stats, err := r.stats.Answer(ctx, question, newsContext)
	if err != nil {
		slog.Error("stats pipeline failed", "error", err)
		return errAnswer()
	}

	if newsErr != nil {
		return domain.Answer{Category: domain.CategoryMixed, Answer: stats.Answer, SQL: stats.SQL}
	}
	combined := fmt.Sprintf("**Stats perspective:**\n%s\n\n**News perspective:**\n%s", stats.Answer, news.Answer)
	return domain.Answer{
		Category: domain.CategoryMixed,
		Answer:   combined,
		SQL:      stats.SQL,
		Sources:  news.Sources,
	}
}

// resolveContext rewrites the question to be self-contained given recent
// history. Failures fall back to the raw question.
func (r *Router) resolveContext(ctx context.Context, question string, history []domain.Turn) string {
	if len(history) == 0 {
		return question
	}
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	var b strings.Builder
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}

	resolved, err := r.gen.Chat(ctx, llm.ChatRequest{
		Messages: userMessage(prompts.ResolveContext(b.String(), question)),
		Tier:     llm.TierFast,
	})
	if err != nil {
		slog.Warn("context resolution failed", "error", err)
		return question
	}
	resolved = strings.TrimSpace(resolved)
	if resolved == "" {
		return question
	}
	return resolved
}

// normalize rewrites slangy input into a precise question. Failures fall
// back to the input.
func (r *Router) normalize(ctx context.Context, question string) string {
	normalized, err := r.gen.Chat(ctx, llm.ChatRequest{
		Messages: userMessage(prompts.Normalize(question)),
		Tier:     llm.TierFast,
	})
	if err != nil {
		slog.Warn("normalization failed", "error", err)
		return question
	}
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return question
	}
	return normalized
}

// classify assigns the question category. Unrecognized output and model
// failures fall back to stats, the safest pipeline.
func (r *Router) classify(ctx context.Context, question string) domain.Category {
	raw, err := r.gen.Chat(ctx, llm.ChatRequest{
		Messages:  userMessage(prompts.Classify(question)),
		Tier:      llm.TierFast,
		MaxTokens: 10,
	})
	if err != nil {
		slog.Warn("classification failed", "error", err)
		return domain.CategoryStats
	}

	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "STATS":
		return domain.CategoryStats
	case "NEWS":
		return domain.CategoryNews
	case "MIXED":
		return domain.CategoryMixed
	case "BETTING":
		return domain.CategoryBetting
	case "OFF_TOPIC":
		return domain.CategoryOffTopic
	default:
		return domain.CategoryStats
	}
}

func errAnswer() domain.Answer {
	return domain.Answer{Category: domain.CategoryError, Answer: errorAnswer}
}
