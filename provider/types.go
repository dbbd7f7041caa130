// Package provider defines the abstract read/health contracts the search
// engine depends on, and the data shapes exchanged across that boundary.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use; a single
//     provider instance is shared across many concurrent search calls.
//   - Context: methods must honor cancellation/deadlines.
//   - Errors: any method may fail with a classified error (see searcherr).
package provider

import "time"

// SortField selects which field results are ordered by.
type SortField string

const (
	SortByRelevance SortField = "relevance"
	SortByDate      SortField = "date"
	SortByName      SortField = "name"
	SortByCustom    SortField = "custom"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DateRange bounds a date filter.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filters is the typed filter bag attached to a search request.
type Filters struct {
	Kind       []string
	Category   []string
	Language   []string
	Visibility []string
	DateRange  *DateRange
	// Custom holds free-form filter values, including the governance
	// layer's injected row-level-security expression under the
	// "rowLevelSecurity" key.
	Custom map[string]any
}

// SearchOptions is the request shape for a search call.
type SearchOptions struct {
	Limit     int
	Offset    int
	SortBy    SortField
	SortOrder SortOrder
	Filters   Filters

	// CacheEnabled overrides the engine's default cache policy for this
	// request. Nil means "use the engine default".
	CacheEnabled *bool

	// CacheTTL overrides the engine's default cache TTL for this request.
	// Zero means "use the engine default".
	CacheTTL time.Duration
}

// DefaultSearchOptions returns the zero-value-safe defaults: limit 20,
// offset 0, sorted by relevance descending.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit:     20,
		Offset:    0,
		SortBy:    SortByRelevance,
		SortOrder: SortDesc,
	}
}

// Normalize fills in zero-valued fields with their defaults. It does not
// mutate the filter bag.
func (o SearchOptions) Normalize() SearchOptions {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.SortBy == "" {
		o.SortBy = SortByRelevance
	}
	if o.SortOrder == "" {
		o.SortOrder = SortDesc
	}
	return o
}

// CacheEnabledOrDefault resolves the effective cache-enabled flag.
func (o SearchOptions) CacheEnabledOrDefault(def bool) bool {
	if o.CacheEnabled == nil {
		return def
	}
	return *o.CacheEnabled
}

// SearchResult is one hit. Identity for deduplication is ID.
type SearchResult struct {
	ID             string
	Kind           string
	Title          string
	Subtitle       string
	Description    string
	Category       string
	Language       string
	MatchType      string
	RelevanceScore float64
	Metadata       map[string]any
}

// HealthStatus is a provider's self-reported health.
type HealthStatus struct {
	IsConnected       bool
	IsSearchAvailable bool
	Latency           time.Duration
	Errors            []string

	// Counters is an optional bag of provider-specific gauges (e.g.
	// open connections, queue depth).
	Counters map[string]int64
}

// Unhealthy builds a synthesized unhealthy status carrying a single
// error message, used when a health check cannot be performed at all.
func Unhealthy(msg string) HealthStatus {
	return HealthStatus{Errors: []string{msg}}
}
