// Package server wires the HTTP surface: routing, middleware and handlers.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courtsidelabs/courtside/api/config"
	"github.com/courtsidelabs/courtside/api/scores"
	"github.com/courtsidelabs/courtside/api/server/handlers"
	"github.com/courtsidelabs/courtside/api/services"
	"github.com/courtsidelabs/courtside/api/store"
	"github.com/courtsidelabs/courtside/pkg/otel"
)

const ReadTimeout = 30 * time.Second

type Server struct {
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
}

func NewServer(
	cfg *config.Config,
	s *store.Store,
	qaRouter *services.Router,
	preview *services.Preview,
	scoreCache *scores.Cache,
) *Server {
	router := chi.NewRouter()

	router.Use(otel.Middleware("courtside-api"))
	router.Use(Recovery)
	router.Use(RequestID)
	router.Use(Logger)
	router.Use(CORS(cfg.Server.AllowedOrigins))

	healthH := handlers.NewHealthHandler(s.Ping)
	router.Get("/health", healthH.Readiness)
	router.Get("/health/ready", healthH.Readiness)
	router.Get("/health/live", healthH.Liveness)

	router.Handle("/metrics", promhttp.Handler())

	askH := handlers.NewAskHandler(qaRouter)
	router.Post("/ask", askH.Ask)

	previewH := handlers.NewPreviewHandler(preview)
	router.Post("/game-preview", previewH.Preview)

	scoresH := handlers.NewScoresHandler(scoreCache)
	router.Get("/scores", scoresH.Scores)

	headlinesH := handlers.NewHeadlinesHandler(s)
	router.Get("/headlines", headlinesH.Headlines)

	return &Server{cfg: cfg, router: router}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: ReadTimeout,
		// Long-running previews stream nothing; give writes room instead of
		// a hard cap.
		WriteTimeout: 0,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
