package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/api/prompts"
	"github.com/courtsidelabs/courtside/shared/llm"
)

const (
	// newsCandidateLimit is how many chunks the raw vector search returns
	// before recency weighting picks the final set.
	newsCandidateLimit = 25
	newsTopK           = 5
	// recencyPenaltyPerDay inflates the distance of a chunk by 2% per day of
	// article age, so a slightly closer but stale chunk loses to fresh news.
	recencyPenaltyPerDay = 0.02
)

const emptyIndexAnswer = "I don't have any recent news articles to answer that question."

// News answers questions from the embedded article index.
type News struct {
	gen Generator
	emb Embedder
	idx NewsSearcher
	now func() time.Time
}

func NewNews(gen Generator, emb Embedder, idx NewsSearcher) *News {
	return &News{gen: gen, emb: emb, idx: idx, now: time.Now}
}

// Answer embeds the question, retrieves the recency-weighted top chunks and
// synthesizes a cited answer. An empty index yields a fixed answer with no
// sources and no error.
func (n *News) Answer(ctx context.Context, question string) (domain.NewsAnswer, error) {
	embedding, err := n.emb.Embed(ctx, question)
	if err != nil {
		return domain.NewsAnswer{}, fmt.Errorf("embed question: %w", err)
	}

	candidates, err := n.idx.SearchNewsChunks(ctx, embedding, newsCandidateLimit)
	if err != nil {
		return domain.NewsAnswer{}, fmt.Errorf("search news index: %w", err)
	}
	if len(candidates) == 0 {
		return domain.NewsAnswer{Answer: emptyIndexAnswer, Sources: []domain.NewsSource{}}, nil
	}

	chunks := rankByRecency(candidates, n.now())
	if len(chunks) > newsTopK {
		chunks = chunks[:newsTopK]
	}

	var b strings.Builder
	sources := make([]domain.NewsSource, 0, len(chunks))
	for i, c := range chunks {
		fmt.Fprintf(&b, "\n--- Excerpt %d (from: %s, source: %s) ---\n%s\n", i+1, c.Title, c.Source, c.Content)
		sources = append(sources, domain.NewsSource{Title: c.Title, URL: c.URL, Source: c.Source})
	}

	answer, err := n.gen.Chat(ctx, llm.ChatRequest{
		Messages:    userMessage(prompts.SummarizeNews(question, b.String())),
		Tier:        llm.TierFast,
		Temperature: 0.2,
	})
	if err != nil {
		return domain.NewsAnswer{}, fmt.Errorf("summarize news: %w", err)
	}

	return domain.NewsAnswer{Answer: answer, Sources: sources}, nil
}

// rankByRecency orders chunks by vector distance inflated with article age:
// weighted = distance * (1 + max(0, age_hours)/24 * penalty). Chunks without
// a timestamp are treated as current. The sort is stable so equal weights
// keep the raw distance order.
func rankByRecency(chunks []domain.NewsChunk, now time.Time) []domain.NewsChunk {
	ranked := make([]domain.NewsChunk, len(chunks))
	copy(ranked, chunks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return weightedDistance(ranked[i], now) < weightedDistance(ranked[j], now)
	})
	return ranked
}

func weightedDistance(c domain.NewsChunk, now time.Time) float64 {
	hours := 0.0
	if c.PublishedAt != nil {
		hours = now.Sub(*c.PublishedAt).Hours()
		if hours < 0 {
			hours = 0
		}
	}
	return c.Distance * (1 + hours/24*recencyPenaltyPerDay)
}
