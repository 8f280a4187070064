package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtsidelabs/courtside/api/server"
	"github.com/courtsidelabs/courtside/pkg/otel"
)

// serveCmd starts the HTTP API server
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the Courtside HTTP API server.

Required configuration:
  - PostgreSQL with pgvector (COURTSIDE_POSTGRES_URL)
  - OpenAI-compatible endpoint (COURTSIDE_LLM_URL, COURTSIDE_LLM_API_KEY)

Optional:
  - OTLP exporter (COURTSIDE_OTEL_ENDPOINT)
  - Models (COURTSIDE_LLM_MODEL, COURTSIDE_LLM_FAST_MODEL, COURTSIDE_EMBEDDING_MODEL)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	if cfg.Otel.Endpoint != "" {
		result, err := otel.Init(otel.Config{
			ServiceName:  "courtside-api",
			Environment:  cfg.Otel.Environment,
			OTLPEndpoint: cfg.Otel.Endpoint,
		})
		if err != nil {
			slog.Warn("otel init failed, continuing with local logging", "error", err)
		} else {
			slog.SetDefault(result.Logger)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := result.Shutdown(shutdownCtx); err != nil {
					slog.Error("otel shutdown failed", "error", err)
				}
			}()
		}
	} else {
		slog.SetDefault(slog.New(otel.NewPrettyHandler()))
	}

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.NewServer(cfg, a.store, a.router, a.preview, a.scores)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	slog.Info("courtside api listening",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"llm", cfg.LLM.BaseURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	}
}
