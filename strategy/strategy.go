// Package strategy implements the search engine's primary/fallback
// routing decision: a pure function from configuration, cache health,
// and circuit breaker state to a SearchStrategy, with no side effects
// and no internal state of its own.
package strategy

import (
	"time"

	"github.com/samas-it-services/smart-search/provider"
	"github.com/samas-it-services/smart-search/resilience"
)

// Path identifies which provider a strategy routes to.
type Path string

const (
	PathCache    Path = "cache"
	PathDatabase Path = "database"
	PathHybrid   Path = "hybrid"
)

// SearchStrategy is an immutable routing decision.
type SearchStrategy struct {
	Primary  Path
	Fallback Path
	Reason   string
}

// Config configures Select's thresholds.
type Config struct {
	// FastThreshold is the cache latency ceiling below which the cache
	// is considered fast enough to serve as primary. Default: 1s.
	FastThreshold time.Duration
}

// Select chooses a SearchStrategy from the conditions in order; the
// first match wins. cacheConfigured is false when the engine has no
// cache provider at all. health/healthKnown come from healthcache.Get;
// breaker is the cache breaker's resilience.Snapshot.
func Select(cfg Config, cacheConfigured bool, health provider.HealthStatus, healthKnown bool, breaker resilience.Snapshot) SearchStrategy {
	if cfg.FastThreshold <= 0 {
		cfg.FastThreshold = time.Second
	}

	if !cacheConfigured {
		return SearchStrategy{Primary: PathDatabase, Fallback: PathDatabase, Reason: "no cache provider"}
	}

	if breaker.State == resilience.StateOpen {
		return SearchStrategy{Primary: PathDatabase, Fallback: PathDatabase, Reason: "breaker open"}
	}

	if !healthKnown {
		return SearchStrategy{Primary: PathDatabase, Fallback: PathDatabase, Reason: "cache unavailable"}
	}

	switch {
	case health.IsConnected && health.IsSearchAvailable && health.Latency < cfg.FastThreshold:
		return SearchStrategy{Primary: PathCache, Fallback: PathDatabase, Reason: "cache healthy"}
	case health.IsConnected && !health.IsSearchAvailable:
		return SearchStrategy{Primary: PathDatabase, Fallback: PathCache, Reason: "cache connected, search unavailable"}
	case health.IsConnected && health.Latency >= cfg.FastThreshold:
		return SearchStrategy{Primary: PathDatabase, Fallback: PathCache, Reason: "cache slow"}
	default:
		return SearchStrategy{Primary: PathDatabase, Fallback: PathDatabase, Reason: "cache unavailable"}
	}
}
