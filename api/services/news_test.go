package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/courtsidelabs/courtside/api/domain"
)

func newsAt(title string, distance float64, published time.Time) domain.NewsChunk {
	return domain.NewsChunk{
		Content:     "chunk for " + title,
		Title:       title,
		Source:      "ESPN NBA",
		URL:         "https://example.com/" + title,
		PublishedAt: &published,
		Distance:    distance,
	}
}

func TestNewsRecencyOutranksRawDistance(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	// Stale chunk is closer in raw distance but ten days old:
	// 0.10 * (1 + 240/24*0.02) = 0.12 vs 0.105 * ~1.0.
	stale := newsAt("stale-trade-rumor", 0.10, now.Add(-240*time.Hour))
	fresh := newsAt("fresh-injury-report", 0.105, now.Add(-1*time.Hour))

	gen := &fakeGen{queue: []string{"Here's the latest."}}
	svc := NewNews(gen, &fakeEmbedder{vec: []float32{0.1}}, &fakeSearcher{chunks: []domain.NewsChunk{stale, fresh}})
	svc.now = func() time.Time { return now }

	got, err := svc.Answer(context.Background(), "Any Tatum news?")
	require.NoError(t, err)
	require.Equal(t, "fresh-injury-report", got.Sources[0].Title)
	require.Equal(t, "stale-trade-rumor", got.Sources[1].Title)
}

func TestNewsEmptyIndexFixedAnswer(t *testing.T) {
	gen := &fakeGen{}
	svc := NewNews(gen, &fakeEmbedder{vec: []float32{0.1}}, &fakeSearcher{})

	got, err := svc.Answer(context.Background(), "Anything new?")
	require.NoError(t, err)
	require.Equal(t, emptyIndexAnswer, got.Answer)
	require.NotNil(t, got.Sources)
	require.Empty(t, got.Sources)
	require.Empty(t, gen.calls, "no synthesis call on an empty index")
}

func TestNewsKeepsTopFive(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	var chunks []domain.NewsChunk
	for i := 0; i < 8; i++ {
		chunks = append(chunks, newsAt(string(rune('a'+i)), 0.1+float64(i)*0.01, now.Add(-time.Hour)))
	}

	gen := &fakeGen{queue: []string{"summary"}}
	svc := NewNews(gen, &fakeEmbedder{vec: []float32{0.1}}, &fakeSearcher{chunks: chunks})
	svc.now = func() time.Time { return now }

	got, err := svc.Answer(context.Background(), "q")
	require.NoError(t, err)
	require.Len(t, got.Sources, newsTopK)

	// Excerpts are numbered and labeled for citation.
	require.Contains(t, gen.prompts()[0], "--- Excerpt 1 (from: a, source: ESPN NBA) ---")
}

func TestNewsMissingTimestampTreatedAsCurrent(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	undated := domain.NewsChunk{Title: "undated", Distance: 0.2}
	dated := newsAt("dated", 0.2, now.Add(-48*time.Hour))

	ranked := rankByRecency([]domain.NewsChunk{dated, undated}, now)
	require.Equal(t, "undated", ranked[0].Title)
}
