package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/samas-it-services/smart-search/provider"
)

type entry struct {
	results   []provider.SearchResult
	expiresAt time.Time
}

// MemoryCacheProvider is an in-memory provider.CacheProvider: a map of
// key -> TTL'd result set, plus a naive substring Search over everything
// currently cached. It connects and reports healthy unconditionally; it
// exists for tests, examples, and deployments too small to warrant a
// real distributed cache.
type MemoryCacheProvider struct {
	mu      sync.RWMutex
	entries map[string]*entry
	policy  Policy
}

// NewMemoryCacheProvider creates an empty MemoryCacheProvider governed by
// policy's TTL ceiling.
func NewMemoryCacheProvider(policy Policy) *MemoryCacheProvider {
	return &MemoryCacheProvider{
		entries: make(map[string]*entry),
		policy:  policy,
	}
}

func (c *MemoryCacheProvider) Connect(context.Context) error    { return nil }
func (c *MemoryCacheProvider) Disconnect(context.Context) error { return nil }
func (c *MemoryCacheProvider) IsConnected() bool                { return true }

func (c *MemoryCacheProvider) CheckHealth(context.Context) (provider.HealthStatus, error) {
	return provider.HealthStatus{IsConnected: true, IsSearchAvailable: true}, nil
}

// Get retrieves a previously Set result set. Returns (nil, false, nil)
// on miss or lazy expiry.
func (c *MemoryCacheProvider) Get(_ context.Context, key string) ([]provider.SearchResult, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	return e.results, true, nil
}

// Set stores a result set under key, clamped to the configured MaxTTL.
// ttl<=0 means the entry is not stored at all.
func (c *MemoryCacheProvider) Set(_ context.Context, key string, value []provider.SearchResult, ttl time.Duration) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	ttl = c.policy.EffectiveTTL(ttl)
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	c.entries[key] = &entry{results: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes a cached entry. Idempotent - no error on miss.
func (c *MemoryCacheProvider) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Clear removes entries whose key contains pattern. An empty pattern
// clears everything.
func (c *MemoryCacheProvider) Clear(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pattern == "" {
		c.entries = make(map[string]*entry)
		return nil
	}
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Search performs a naive, case-insensitive substring match over every
// title/description/ID across all currently cached entries. It exists
// so MemoryCacheProvider can stand in for the cache branch of a hybrid
// search, not as a real search index: a production cache provider would
// typically delegate Search to an actual cache-side index (e.g. Redis
// full-text search) instead.
func (c *MemoryCacheProvider) Search(_ context.Context, query string, opts provider.SearchOptions) ([]provider.SearchResult, error) {
	needle := normalize(query)
	opts = opts.Normalize()

	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var matches []provider.SearchResult
	now := time.Now()
	for _, e := range c.entries {
		if now.After(e.expiresAt) {
			continue
		}
		for _, r := range e.results {
			if seen[r.ID] {
				continue
			}
			if needle == "" || strings.Contains(normalize(r.Title), needle) ||
				strings.Contains(normalize(r.Description), needle) ||
				strings.Contains(normalize(r.ID), needle) {
				seen[r.ID] = true
				matches = append(matches, r)
			}
		}
	}

	if opts.Offset >= len(matches) {
		return nil, nil
	}
	end := opts.Offset + opts.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[opts.Offset:end], nil
}

var _ provider.CacheProvider = (*MemoryCacheProvider)(nil)
