package engine

import (
	"time"

	"github.com/samas-it-services/smart-search/cachekey"
	"github.com/samas-it-services/smart-search/governance"
	"github.com/samas-it-services/smart-search/healthcache"
	"github.com/samas-it-services/smart-search/merge"
	"github.com/samas-it-services/smart-search/provider"
	"github.com/samas-it-services/smart-search/resilience"
	"github.com/samas-it-services/smart-search/strategy"
)

// HybridConfig enables the parallel cache+database fanout. It is kept
// as its own struct (composition) rather than folded into Config, so a
// host can omit it entirely when hybrid search isn't needed.
type HybridConfig struct {
	Enabled bool

	// Algorithm selects which merge.Apply algorithm folds cache and
	// database result lists together. Defaults to merge.AlgorithmUnion.
	Algorithm merge.Algorithm

	// CacheWeight and DatabaseWeight are only used by AlgorithmWeighted.
	// Default: merge.DefaultCacheWeight / merge.DefaultDatabaseWeight.
	CacheWeight    float64
	DatabaseWeight float64
}

// Config is the base engine configuration. Optional feature areas
// (hybrid search, governance) are supplied as separate structs rather
// than extending Config, following a composition-over-inheritance
// approach.
type Config struct {
	// DatabaseProvider is required; it is the authoritative primary
	// store the engine always has a path to.
	DatabaseProvider provider.DatabaseProvider

	// CacheProvider is optional. A nil CacheProvider forces every
	// strategy decision to "no cache provider".
	CacheProvider provider.CacheProvider

	// DefaultCacheTTL is used when a request doesn't set CacheTTL.
	// Default: cachekey.DefaultPolicy().DefaultTTL.
	DefaultCacheTTL time.Duration

	// EmptyResultMaxTTL caps the TTL applied to empty result sets.
	// Default: cachekey.DefaultPolicy().EmptyResultMaxTTL.
	EmptyResultMaxTTL time.Duration

	// Strategy configures the routing decision thresholds (C4).
	Strategy strategy.Config

	// Breaker configures the named circuit breaker protecting the
	// cache path. The database path is never breaker-protected: it is
	// the fallback of last resort in the routing decision table.
	Breaker resilience.CircuitBreakerConfig

	// HealthCache configures the cache health TTL memoization (C2).
	HealthCache healthcache.Config

	// OperationTimeout bounds every provider call made through the
	// engine's resilience executors. Default: 5s.
	OperationTimeout time.Duration

	// Retry configures the retry policy applied on both paths. The
	// engine does not set RetryIf, so unless the caller sets it every
	// failed attempt is retried, whatever its searcherr kind; jitter is
	// applied only when Jitter is true.
	Retry resilience.RetryConfig

	// RateLimiter and Bulkhead bound request admission and provider
	// concurrency. Zero-value configs fall back to their package
	// defaults (see resilience.RateLimiterConfig/BulkheadConfig).
	RateLimiter resilience.RateLimiterConfig
	Bulkhead    resilience.BulkheadConfig

	// Hybrid enables and configures the parallel fanout (C6). Nil
	// disables hybrid search: HybridSearch then behaves exactly like
	// Search.
	Hybrid *HybridConfig

	// Governance enables the optional SecureSearch layer (C8). Nil
	// means SecureSearch is unavailable.
	Governance *governance.Config

	// ServiceName labels the Observer New builds when WithObserver isn't
	// passed. Default: "smart-search".
	ServiceName string
}

func (c Config) cachePolicy() cachekey.Policy {
	policy := cachekey.DefaultPolicy()
	if c.DefaultCacheTTL > 0 {
		policy.DefaultTTL = c.DefaultCacheTTL
	}
	if c.EmptyResultMaxTTL > 0 {
		policy.EmptyResultMaxTTL = c.EmptyResultMaxTTL
	}
	return policy
}

func (h *HybridConfig) algorithm() merge.Algorithm {
	if h.Algorithm == "" {
		return merge.AlgorithmUnion
	}
	return h.Algorithm
}

func (h *HybridConfig) cacheWeightOrDefault() float64 {
	if h.CacheWeight > 0 {
		return h.CacheWeight
	}
	return merge.DefaultCacheWeight
}

func (h *HybridConfig) databaseWeightOrDefault() float64 {
	if h.DatabaseWeight > 0 {
		return h.DatabaseWeight
	}
	return merge.DefaultDatabaseWeight
}
