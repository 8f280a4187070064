// Package metrics defines the Prometheus instruments for the courtside service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtside_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "courtside_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	QuestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtside_questions_total",
		Help: "Questions routed, by resolved category",
	}, []string{"category"})

	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtside_llm_requests_total",
		Help: "Total LLM requests",
	}, []string{"model", "status"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "courtside_llm_request_duration_seconds",
		Help:    "LLM request duration",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"model"})

	PlanQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtside_plan_queries_total",
		Help: "Query-plan sub-queries executed, by outcome",
	}, []string{"status"})

	ScoreboardFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtside_scoreboard_fetches_total",
		Help: "Scores cache refreshes, by outcome",
	}, []string{"status"})

	ScoreboardCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtside_scoreboard_cache_hits_total",
		Help: "Scores served from the in-process cache",
	})
)
