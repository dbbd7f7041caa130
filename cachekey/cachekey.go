// Package cachekey derives deterministic cache keys for search requests
// and the TTL policy applied to what gets stored under them.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samas-it-services/smart-search/provider"
)

// Derive generates a deterministic cache key for a search request.
// Format: search:<16-hex-char SHA-256 prefix>. Determinism holds
// regardless of map iteration order: the filter bag and its nested
// Custom map are canonicalized with sorted keys before hashing.
func Derive(query string, opts provider.SearchOptions) (string, error) {
	normalized := struct {
		Query     string
		Kind      []string
		Category  []string
		Language  []string
		Vis       []string
		DateRange *provider.DateRange
		Custom    json.RawMessage
		SortBy    provider.SortField
		SortOrder provider.SortOrder
		Limit     int
		Offset    int
	}{
		Query:     strings.ToLower(strings.TrimSpace(query)),
		Kind:      opts.Filters.Kind,
		Category:  opts.Filters.Category,
		Language:  opts.Filters.Language,
		Vis:       opts.Filters.Visibility,
		DateRange: opts.Filters.DateRange,
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	}

	custom, err := canonicalizeValue(opts.Filters.Custom)
	if err != nil {
		return "", fmt.Errorf("cachekey: canonicalize filters: %w", err)
	}
	normalized.Custom = custom

	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("cachekey: marshal request: %w", err)
	}

	hash := sha256.Sum256(payload)
	return fmt.Sprintf("search:%s", hex.EncodeToString(hash[:8])), nil
}

// canonicalizeValue produces a deterministic JSON encoding of v, sorting
// map keys at every level so that two maps with the same content but
// different insertion order hash identically.
func canonicalizeValue(v any) (json.RawMessage, error) {
	if v == nil {
		return json.RawMessage("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(b), nil
	}
}

func canonicalizeMap(m map[string]any) (json.RawMessage, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b []byte
	b = append(b, '{')
	for i, k := range keys {
		if i > 0 {
			b = append(b, ',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b = append(b, keyBytes...)
		b = append(b, ':')

		valBytes, err := canonicalizeValue(m[k])
		if err != nil {
			return nil, err
		}
		b = append(b, valBytes...)
	}
	b = append(b, '}')
	return b, nil
}

func canonicalizeSlice(s []any) (json.RawMessage, error) {
	var b []byte
	b = append(b, '[')
	for i, v := range s {
		if i > 0 {
			b = append(b, ',')
		}
		valBytes, err := canonicalizeValue(v)
		if err != nil {
			return nil, err
		}
		b = append(b, valBytes...)
	}
	b = append(b, ']')
	return b, nil
}

// Policy controls the TTL applied to a cached search response.
type Policy struct {
	// DefaultTTL is used when a request doesn't override CacheTTL.
	DefaultTTL time.Duration

	// EmptyResultMaxTTL caps how long an empty result set may be cached,
	// to limit negative-result staleness. Default: 60s.
	EmptyResultMaxTTL time.Duration
}

// DefaultPolicy returns the reference TTL policy: 5 minute default,
// 60 second ceiling on empty results.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL:        5 * time.Minute,
		EmptyResultMaxTTL: 60 * time.Second,
	}
}

// EffectiveTTL resolves the TTL to store results under: override if
// positive, else DefaultTTL; then, if resultCount is zero, clamped to
// EmptyResultMaxTTL.
func (p Policy) EffectiveTTL(override time.Duration, resultCount int) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}

	if resultCount == 0 && p.EmptyResultMaxTTL > 0 && ttl > p.EmptyResultMaxTTL {
		ttl = p.EmptyResultMaxTTL
	}

	return ttl
}
