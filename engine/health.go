package engine

import (
	"context"

	"github.com/samas-it-services/smart-search/health"
)

// HealthAggregator builds a health.Aggregator wired to this engine's own
// cache and database health checks, so a host process can expose the same
// /healthz and /readyz surface the rest of the ambient stack uses without
// re-deriving provider health itself.
func (e *Engine) HealthAggregator(cfg ...health.AggregatorConfig) *health.Aggregator {
	agg := health.NewAggregator(cfg...)
	agg.Register("database", health.NewCheckerFunc("database", e.checkDatabaseHealth))
	if e.cache != nil {
		agg.Register("cache", health.NewCheckerFunc("cache", e.checkCacheHealth))
	}
	return agg
}

func (e *Engine) checkDatabaseHealth(ctx context.Context) health.Result {
	status, err := e.database.CheckHealth(ctx)
	return health.FromProviderStatus(status, err)
}

// checkCacheHealth reuses the engine's own TTL-memoized health lookup
// (C2), so polling it from an external readiness probe doesn't add load
// beyond what the routing decision already pays for.
func (e *Engine) checkCacheHealth(ctx context.Context) health.Result {
	status, err := e.GetCacheHealth(ctx)
	if err != nil {
		return health.Unhealthy("cache health check failed", err)
	}
	if status == nil {
		return health.Degraded("no cache provider configured")
	}
	return health.FromProviderStatus(*status, nil)
}
