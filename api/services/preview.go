package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/api/prompts"
	"github.com/courtsidelabs/courtside/shared/jsonutil"
	"github.com/courtsidelabs/courtside/shared/llm"
)

// previewMaxTokens gives the synthesis step room for the full multi-section
// writeup.
const previewMaxTokens = 3000

// Preview builds full game previews from a fixed evidence plan plus a news
// lookup.
type Preview struct {
	gen  Generator
	db   Querier
	news *News
}

func NewPreview(gen Generator, db Querier, news *News) *Preview {
	return &Preview{gen: gen, db: db, news: news}
}

// previewPlan is the fixed per-matchup evidence plan: seven query shapes,
// each run for both teams.
func previewPlan(home, away string) domain.QueryPlan {
	return domain.QueryPlan{
		"home_starters":   startersQuery(home),
		"away_starters":   startersQuery(away),
		"home_season_avg": seasonAveragesQuery(home),
		"away_season_avg": seasonAveragesQuery(away),
		"h2h_home":        headToHeadQuery(home, away),
		"h2h_away":        headToHeadQuery(away, home),
		"home_defense":    oppDefenseQuery(home),
		"away_defense":    oppDefenseQuery(away),
		"home_props":      teamPropPicksQuery(home),
		"away_props":      teamPropPicksQuery(away),
		"home_trends":     teamTrendQuery(home),
		"away_trends":     teamTrendQuery(away),
		"home_splits":     teamSplitsQuery(home),
		"away_splits":     teamSplitsQuery(away),
	}
}

// Generate gathers the evidence plan and the matchup news concurrently, then
// synthesizes the preview. A failed news lookup drops the section; failed
// sub-queries leave empty slots.
func (p *Preview) Generate(ctx context.Context, homeAbbr, awayAbbr string) (domain.PreviewAnswer, error) {
	newsQuery := fmt.Sprintf("%s vs %s", awayAbbr, homeAbbr)

	var newsAnswer *domain.NewsAnswer
	newsDone := make(chan struct{})
	go func() {
		defer close(newsDone)
		a, err := p.news.Answer(ctx, newsQuery)
		if err != nil {
			slog.Warn("preview news lookup failed", "query", newsQuery, "error", err)
			return
		}
		newsAnswer = &a
	}()

	bundle := runPlan(ctx, p.db, previewPlan(homeAbbr, awayAbbr))
	<-newsDone

	sources := []domain.NewsSource{}
	if newsAnswer != nil {
		bundle["news"] = map[string]any{
			"answer":  newsAnswer.Answer,
			"sources": newsAnswer.Sources,
		}
		sources = newsAnswer.Sources
	}

	answer, err := p.gen.Chat(ctx, llm.ChatRequest{
		Messages:    userMessage(prompts.FormatGamePreview(homeAbbr, awayAbbr, jsonutil.MustMarshalIndent(bundle))),
		Tier:        llm.TierStrong,
		Temperature: 0.3,
		MaxTokens:   previewMaxTokens,
	})
	if err != nil {
		return domain.PreviewAnswer{}, fmt.Errorf("format game preview: %w", err)
	}

	return domain.PreviewAnswer{
		Answer:   answer,
		Category: domain.CategoryGamePreview,
		Sources:  sources,
	}, nil
}
