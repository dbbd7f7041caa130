// Package healthcache memoizes a provider's CheckHealth result behind a
// short TTL so the routing strategy can consult health on every search
// call without paying a live health-check round trip each time.
//
// Contract:
//   - Concurrency: a HealthCache is safe for concurrent use.
//   - Refresh failures: on a refresh error the last good status is
//     returned (with the error appended) rather than propagating the
//     failure, since a stale-but-known status is more useful to the
//     routing strategy than no status at all.
package healthcache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/samas-it-services/smart-search/provider"
)

// Config configures a HealthCache.
type Config struct {
	// TTL is how long a cached status is considered fresh.
	// Default: 10 seconds.
	TTL time.Duration

	// CheckTimeout bounds a single CheckHealth call.
	// Default: 5 seconds.
	CheckTimeout time.Duration
}

// entry is the cached state for one provider.
type entry struct {
	status    provider.HealthStatus
	known     bool
	checkedAt time.Time
}

// HealthCache wraps a provider's CheckHealth with TTL memoization.
// Concurrent refreshes for the same name are coalesced via singleflight,
// mirroring the thundering-herd protection auth.JWKSKeyProvider applies
// to JWKS key refreshes.
type HealthCache struct {
	config Config

	mu      sync.RWMutex
	entries map[string]entry

	sfGroup singleflight.Group
}

// New creates a HealthCache with the given config.
func New(config Config) *HealthCache {
	if config.TTL <= 0 {
		config.TTL = 10 * time.Second
	}
	if config.CheckTimeout <= 0 {
		config.CheckTimeout = 5 * time.Second
	}
	return &HealthCache{
		config:  config,
		entries: make(map[string]entry),
	}
}

// Get returns the cached health status for name, refreshing it via
// checker if the cached entry is missing or stale. known is false only
// when no status has ever been obtained (first call, and that call's
// checker also failed).
func (h *HealthCache) Get(ctx context.Context, name string, checker func(context.Context) (provider.HealthStatus, error)) (status provider.HealthStatus, known bool) {
	h.mu.RLock()
	e, ok := h.entries[name]
	fresh := ok && time.Since(e.checkedAt) < h.config.TTL
	h.mu.RUnlock()

	if fresh {
		return e.status, e.known
	}

	result, _, _ := h.sfGroup.Do(name, func() (any, error) {
		return h.refresh(ctx, name, checker), nil
	})
	e = result.(entry)
	return e.status, e.known
}

// ForceRefresh discards the cached entry's freshness and re-checks
// immediately, regardless of TTL.
func (h *HealthCache) ForceRefresh(ctx context.Context, name string, checker func(context.Context) (provider.HealthStatus, error)) (provider.HealthStatus, bool) {
	result, _, _ := h.sfGroup.Do(name, func() (any, error) {
		return h.refresh(ctx, name, checker), nil
	})
	e := result.(entry)
	return e.status, e.known
}

// Peek returns the last cached status without triggering a refresh.
func (h *HealthCache) Peek(name string) (status provider.HealthStatus, known bool, checkedAt time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entries[name]
	if !ok {
		return provider.HealthStatus{}, false, time.Time{}
	}
	return e.status, e.known, e.checkedAt
}

func (h *HealthCache) refresh(ctx context.Context, name string, checker func(context.Context) (provider.HealthStatus, error)) entry {
	checkCtx, cancel := context.WithTimeout(ctx, h.config.CheckTimeout)
	defer cancel()

	status, err := checker(checkCtx)
	now := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	if err != nil {
		prev, hadPrev := h.entries[name]
		if hadPrev && prev.known {
			// Keep serving the last good status but mark it re-checked
			// so we don't hammer a failing dependency every call.
			prev.checkedAt = now
			prev.status.Errors = append(append([]string(nil), prev.status.Errors...), err.Error())
			h.entries[name] = prev
			return prev
		}
		unhealthy := provider.Unhealthy(err.Error())
		e := entry{status: unhealthy, known: false, checkedAt: now}
		h.entries[name] = e
		return e
	}

	e := entry{status: status, known: true, checkedAt: now}
	h.entries[name] = e
	return e
}
