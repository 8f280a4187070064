package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/shared/llm"
)

func TestPreviewPlanShape(t *testing.T) {
	plan := previewPlan("BOS", "NYK")
	require.Len(t, plan, 14)
	for _, key := range []string{
		"home_starters", "away_starters",
		"home_season_avg", "away_season_avg",
		"h2h_home", "h2h_away",
		"home_defense", "away_defense",
		"home_props", "away_props",
		"home_trends", "away_trends",
		"home_splits", "away_splits",
	} {
		require.Contains(t, plan, key)
	}
	require.Equal(t, []any{"BOS"}, plan["home_starters"].Args)
	require.Equal(t, []any{"NYK", "BOS"}, plan["h2h_away"].Args)
}

func previewGen(t *testing.T) *fakeGen {
	t.Helper()
	return &fakeGen{fn: func(req llm.ChatRequest) (string, error) {
		prompt := req.Messages[len(req.Messages)-1].Content
		if strings.Contains(prompt, "news excerpts") {
			return "Both teams healthy.", nil
		}
		return "Full preview text.", nil
	}}
}

func TestPreviewSurvivesSubqueryFailure(t *testing.T) {
	published := time.Now().Add(-time.Hour)
	gen := previewGen(t)
	db := &fakeQuerier{fn: func(sql string, args []any) ([]map[string]any, error) {
		// Head-to-head queries fail; everything else returns a row.
		if strings.Contains(sql, "SUM(s.pts) AS team_pts") {
			return nil, errors.New("statement timeout")
		}
		return []map[string]any{{"display_name": "Jayson Tatum"}}, nil
	}}
	news := NewNews(gen, &fakeEmbedder{vec: []float32{0.1}}, &fakeSearcher{chunks: []domain.NewsChunk{
		{Title: "Matchup notes", Source: "ESPN NBA", URL: "https://example.com/n", Content: "notes", PublishedAt: &published, Distance: 0.1},
	}})

	got, err := NewPreview(gen, db, news).Generate(context.Background(), "BOS", "NYK")
	require.NoError(t, err)
	require.Equal(t, "Full preview text.", got.Answer)
	require.Equal(t, domain.CategoryGamePreview, got.Category)
	require.Len(t, got.Sources, 1)

	// The failed slots still appear in the bundle, as empty results.
	var formatPrompt string
	for _, p := range gen.prompts() {
		if strings.Contains(p, "comprehensive game preview") {
			formatPrompt = p
		}
	}
	require.NotEmpty(t, formatPrompt)
	require.Contains(t, formatPrompt, `"h2h_home": []`)
	require.Contains(t, formatPrompt, `"home_starters"`)
	require.Contains(t, formatPrompt, "Both teams healthy.")
}

func TestPreviewNewsFailureOmitsSection(t *testing.T) {
	gen := previewGen(t)
	db := &fakeQuerier{}
	news := NewNews(gen, &fakeEmbedder{err: errors.New("embedding backend down")}, &fakeSearcher{})

	got, err := NewPreview(gen, db, news).Generate(context.Background(), "DEN", "OKC")
	require.NoError(t, err)
	require.NotNil(t, got.Sources)
	require.Empty(t, got.Sources)

	for _, p := range gen.prompts() {
		if strings.Contains(p, "comprehensive game preview") {
			require.NotContains(t, p, `"news"`)
		}
	}
	require.Equal(t, 14, db.callCount())
}
