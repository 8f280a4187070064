package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtsidelabs/courtside/api/scores"
	"github.com/courtsidelabs/courtside/api/services"
	"github.com/courtsidelabs/courtside/api/store"
	"github.com/courtsidelabs/courtside/shared/db"
	"github.com/courtsidelabs/courtside/shared/llm"
)

// app bundles the wired pipelines shared by the server and the one-shot CLI
// commands.
type app struct {
	pool    *pgxpool.Pool
	store   *store.Store
	router  *services.Router
	preview *services.Preview
	scores  *scores.Cache
}

func buildApp(ctx context.Context) (*app, error) {
	pool, err := db.Connect(ctx, db.Config{
		URL:      cfg.Database.URL,
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	st := store.New(pool, cfg.Database.QueryTimeout)

	llmClient := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey,
		llm.WithModel(cfg.LLM.Model),
		llm.WithFastModel(cfg.LLM.FastModel),
		llm.WithEmbeddingModel(cfg.LLM.EmbeddingModel),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
	)

	cache := scores.NewCache(scores.NewClient(), cfg.Scores.TTL)

	news := services.NewNews(llmClient, llmClient, st)
	stats := services.NewStats(llmClient, st)
	betting := services.NewBetting(llmClient, st, cache)

	return &app{
		pool:    pool,
		store:   st,
		router:  services.NewRouter(llmClient, stats, news, betting),
		preview: services.NewPreview(llmClient, st, news),
		scores:  cache,
	}, nil
}

func (a *app) Close() {
	a.pool.Close()
}
