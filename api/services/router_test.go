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

// routerFixture wires a router whose routing model and pipeline models are
// scripted independently.
type routerFixture struct {
	routerGen  *fakeGen
	statsGen   *fakeGen
	newsGen    *fakeGen
	bettingGen *fakeGen
	db         *fakeQuerier
	searcher   *fakeSearcher
	router     *Router
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		routerGen:  &fakeGen{},
		statsGen:   &fakeGen{},
		newsGen:    &fakeGen{},
		bettingGen: &fakeGen{},
		db:         &fakeQuerier{},
		searcher:   &fakeSearcher{},
	}
	news := NewNews(f.newsGen, &fakeEmbedder{vec: []float32{0.1}}, f.searcher)
	stats := NewStats(f.statsGen, f.db)
	betting := NewBetting(f.bettingGen, f.db, &fakeSchedule{})
	f.router = NewRouter(f.routerGen, stats, news, betting)
	return f
}

func chunkNow(title string) domain.NewsChunk {
	published := time.Now().Add(-time.Hour)
	return domain.NewsChunk{
		Title: title, Source: "ESPN NBA", URL: "https://example.com/" + title,
		Content: "content", PublishedAt: &published, Distance: 0.1,
	}
}

func TestRouteOffTopicShortCircuits(t *testing.T) {
	f := newRouterFixture()
	f.routerGen.queue = []string{"normalized question", "OFF_TOPIC"}

	got := f.router.Route(context.Background(), "best pizza in Boston?", nil)
	require.Equal(t, domain.CategoryOffTopic, got.Category)
	require.Equal(t, offTopicAnswer, got.Answer)
	require.Empty(t, f.statsGen.calls)
	require.Empty(t, f.newsGen.calls)
}

func TestRouteClassifyFallsBackToStats(t *testing.T) {
	f := newRouterFixture()
	f.routerGen.queue = []string{"normalized", "SOMETHING_ELSE"}
	f.statsGen.queue = []string{"SELECT 1", "One."}

	got := f.router.Route(context.Background(), "huh", nil)
	require.Equal(t, domain.CategoryStats, got.Category)
	require.Equal(t, "One.", got.Answer)
	require.Equal(t, "SELECT 1", got.SQL)
}

func TestRouteResolvesContextFromHistory(t *testing.T) {
	f := newRouterFixture()
	f.routerGen.queue = []string{
		"How many points is Jayson Tatum averaging?", // resolve
		"How many points is Jayson Tatum averaging?", // normalize
		"STATS",
	}
	f.statsGen.queue = []string{"SELECT ppg FROM mv_player_season_averages", "27.1 a night."}

	history := []domain.Turn{
		{Role: "user", Content: "Tell me about Jayson Tatum."},
		{Role: "assistant", Content: "Tatum is the Celtics' leading scorer."},
	}
	got := f.router.Route(context.Background(), "how many points is he averaging?", history)
	require.Equal(t, domain.CategoryStats, got.Category)

	resolvePrompt := f.routerGen.prompts()[0]
	require.Contains(t, resolvePrompt, "user: Tell me about Jayson Tatum.")
	require.Contains(t, resolvePrompt, "how many points is he averaging?")
}

func TestRouteMixedComposition(t *testing.T) {
	f := newRouterFixture()
	f.routerGen.queue = []string{"normalized", "MIXED"}
	f.searcher.chunks = []domain.NewsChunk{chunkNow("injury-report")}
	f.newsGen.queue = []string{"He's been ruled out."}
	f.statsGen.queue = []string{"SELECT pts FROM player_game_stats", "He averaged 30 before the injury."}

	got := f.router.Route(context.Background(), "Is Tatum playing and how has he scored?", nil)
	require.Equal(t, domain.CategoryMixed, got.Category)
	require.Equal(t,
		"**Stats perspective:**\nHe averaged 30 before the injury.\n\n**News perspective:**\nHe's been ruled out.",
		got.Answer)
	require.Equal(t, "SELECT pts FROM player_game_stats", got.SQL)
	require.Len(t, got.Sources, 1)

	// The news text steers SQL generation.
	require.Contains(t, f.statsGen.prompts()[0], "He's been ruled out.")
}

func TestRouteBettingAppendsNewsWatch(t *testing.T) {
	f := newRouterFixture()
	f.routerGen.queue = []string{"normalized", "BETTING"}
	f.searcher.chunks = []domain.NewsChunk{chunkNow("rest-day-news")}
	f.newsGen.queue = []string{"Two starters resting tonight."}
	f.bettingGen.queue = []string{
		`{"type": "FIND_PICKS", "players": [], "props": [], "teams": []}`,
		"Hammer the unders.",
	}

	got := f.router.Route(context.Background(), "what should I bet tonight?", nil)
	require.Equal(t, domain.CategoryBetting, got.Category)
	require.True(t, strings.HasPrefix(got.Answer, "Hammer the unders."))
	require.Contains(t, got.Answer, "**Injury & news watch:**\nTwo starters resting tonight.")
	require.Len(t, got.Sources, 1)
}

func TestRouteBettingSurvivesNewsFailure(t *testing.T) {
	f := newRouterFixture()
	f.routerGen.queue = []string{"normalized", "BETTING"}
	f.searcher.err = errors.New("index offline")
	f.bettingGen.queue = []string{
		`{"type": "FIND_PICKS", "players": [], "props": [], "teams": []}`,
		"Picks without the news angle.",
	}

	got := f.router.Route(context.Background(), "picks?", nil)
	require.Equal(t, domain.CategoryBetting, got.Category)
	require.Equal(t, "Picks without the news angle.", got.Answer)
	require.Empty(t, got.Sources)
}

func TestRoutePipelineErrorBecomesErrorAnswer(t *testing.T) {
	f := newRouterFixture()
	f.routerGen.queue = []string{"normalized", "NEWS"}
	f.searcher.err = errors.New("pgvector down")

	got := f.router.Route(context.Background(), "news?", nil)
	require.Equal(t, domain.CategoryError, got.Category)
	require.Equal(t, errorAnswer, got.Answer)
}

func TestRoutePanicBecomesErrorAnswer(t *testing.T) {
	f := newRouterFixture()
	f.routerGen.fn = func(llm.ChatRequest) (string, error) {
		panic("model client bug")
	}

	got := f.router.Route(context.Background(), "anything", nil)
	require.Equal(t, domain.CategoryError, got.Category)
	require.Equal(t, errorAnswer, got.Answer)
}

func TestRouteNormalizeFailureFallsThrough(t *testing.T) {
	f := newRouterFixture()
	calls := 0
	f.routerGen.fn = func(req llm.ChatRequest) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("rewrite backend down")
		}
		return "STATS", nil
	}
	f.statsGen.queue = []string{"SELECT 1", "fine"}

	got := f.router.Route(context.Background(), "raw question", nil)
	require.Equal(t, domain.CategoryStats, got.Category)
	// Classification still sees the raw question.
	require.Contains(t, f.routerGen.prompts()[1], "raw question")
}
