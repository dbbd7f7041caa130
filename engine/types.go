package engine

import (
	"time"

	"github.com/samas-it-services/smart-search/provider"
	"github.com/samas-it-services/smart-search/resilience"
	"github.com/samas-it-services/smart-search/strategy"
)

// SearchPerformance is the per-response telemetry record returned
// alongside every search result set.
type SearchPerformance struct {
	// SearchTime is how long the call took, rounded up to at least one
	// millisecond so a sub-millisecond cache hit still reports non-zero.
	SearchTime time.Duration

	ResultCount int
	Strategy    strategy.Path
	CacheHit    bool

	// Errors lists degradation reasons, e.g. the primary-path failure
	// that triggered a fallback.
	Errors []string
}

// SearchResponse is the return shape of Search and HybridSearch.
type SearchResponse struct {
	Results     []provider.SearchResult
	Performance SearchPerformance
	Strategy    strategy.SearchStrategy
}

// SecureSearchResponse adds the audit trail identifier SecureSearch
// attaches to every call.
type SecureSearchResponse struct {
	SearchResponse
	AuditID string
}

// SearchStats summarizes the engine's current operating condition.
type SearchStats struct {
	CacheHealth         *provider.HealthStatus
	DatabaseHealth      *provider.HealthStatus
	CircuitBreaker      resilience.Snapshot
	RecommendedStrategy strategy.SearchStrategy
}
