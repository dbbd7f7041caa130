package provider

import (
	"context"
	"errors"
	"time"
)

// ErrNotImplemented is returned by optional-capability helpers (such as
// PingIfSupported) when a concrete provider does not support the operation.
var ErrNotImplemented = errors.New("provider: not implemented")

// ErrRLSUnsupported is the sentinel a provider should return from Search
// when it receives a row-level-security expression under
// filters.Custom["rowLevelSecurity"] that it cannot honor. The core treats
// the expression as opaque and never interprets it itself.
var ErrRLSUnsupported = errors.New("provider: row-level security expression not supported")

// DatabaseProvider is the slow-but-authoritative primary store.
type DatabaseProvider interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	IsConnected() bool

	// Search returns results sorted by RelevanceScore descending.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)

	CheckHealth(ctx context.Context) (HealthStatus, error)
}

// CacheProvider is the fast-but-volatile secondary store. It is a superset
// of DatabaseProvider (it has its own Search) plus keyed operations.
type CacheProvider interface {
	DatabaseProvider

	// Get returns a previously stored value. The bool is false on miss;
	// Get itself never returns an error for a miss, only for genuine
	// provider failures.
	Get(ctx context.Context, key string) ([]SearchResult, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []SearchResult, ttl time.Duration) error

	// Delete removes a cached value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// Clear removes cached values matching pattern. An empty pattern
	// clears everything.
	Clear(ctx context.Context, pattern string) error
}

// Pinger is the optional liveness-probe capability that PingIfSupported
// checks for, mirroring health.PingChecker's
// optional-capability pattern: most providers just implement Search and
// CheckHealth, but some may additionally support a cheap liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingIfSupported calls Ping on p if it implements Pinger, otherwise
// returns ErrNotImplemented.
func PingIfSupported(ctx context.Context, p any) error {
	pinger, ok := p.(Pinger)
	if !ok {
		return ErrNotImplemented
	}
	return pinger.Ping(ctx)
}
