package services

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/pkg/metrics"
)

// planConcurrency bounds the simultaneous sub-queries of one plan so a large
// fan-out cannot drain the connection pool for other requests.
const planConcurrency = 8

// runPlan executes every sub-query of the plan concurrently and returns the
// evidence bundle. A failed sub-query fills its slot with an empty result
// instead of failing the plan; keys always appear in the bundle.
func runPlan(ctx context.Context, db Querier, plan domain.QueryPlan) domain.EvidenceBundle {
	bundle := make(domain.EvidenceBundle, len(plan))
	if len(plan) == 0 {
		return bundle
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(planConcurrency)

	for key, query := range plan {
		g.Go(func() error {
			rows, err := db.QueryReadOnly(ctx, query.SQL, query.Args...)
			if err != nil {
				slog.Warn("plan sub-query failed", "key", key, "error", err)
				metrics.PlanQueriesTotal.WithLabelValues("error").Inc()
				rows = []map[string]any{}
			} else {
				metrics.PlanQueriesTotal.WithLabelValues("ok").Inc()
			}
			mu.Lock()
			bundle[key] = rows
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return bundle
}
