package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/courtsidelabs/courtside/api/domain"
)

// SearchNewsChunks returns the closest article chunks to the query embedding
// by raw cosine distance, together with publish timestamps. The caller applies
// the recency weighting; the store only ranks by the vector operator.
func (s *Store) SearchNewsChunks(ctx context.Context, embedding []float32, limit int) ([]domain.NewsChunk, error) {
	query := `
		SELECT nc.content, na.title, na.source, na.url,
		       COALESCE(na.published_at, na.ingested_at) AS published_at,
		       nc.embedding <=> $1 AS distance
		FROM news_chunks nc
		JOIN news_articles na ON nc.article_id = na.article_id
		ORDER BY nc.embedding <=> $1
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("search news chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.NewsChunk
	for rows.Next() {
		var c domain.NewsChunk
		if err := rows.Scan(&c.Content, &c.Title, &c.Source, &c.URL, &c.PublishedAt, &c.Distance); err != nil {
			return nil, fmt.Errorf("scan news chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate news chunks: %w", err)
	}
	return chunks, nil
}

// Headline is one entry of the landing-page headline feed.
type Headline struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Headlines returns the latest five articles from trusted sources or with an
// NBA-flavored title.
func (s *Store) Headlines(ctx context.Context) ([]Headline, error) {
	query := `
		SELECT title, url, source, published_at
		FROM news_articles
		WHERE source IN ('ESPN NBA', 'CBS Sports NBA', 'NBA.com', 'RealGM NBA')
		   OR title ~* '(NBA|trade|free agent|playoff|All.Star|draft lottery)'
		ORDER BY published_at DESC NULLS LAST
		LIMIT 5`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	defer rows.Close()

	headlines := []Headline{}
	for rows.Next() {
		var h Headline
		var publishedAt *time.Time
		if err := rows.Scan(&h.Title, &h.URL, &h.Source, &publishedAt); err != nil {
			return nil, fmt.Errorf("scan headline: %w", err)
		}
		if publishedAt != nil {
			h.PublishedAt = publishedAt.Format(time.RFC3339)
		}
		headlines = append(headlines, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate headlines: %w", err)
	}
	return headlines, nil
}
