// Package cache provides a reference in-memory implementation of
// provider.CacheProvider, useful for tests, examples, and small
// deployments that don't need a real distributed cache (Redis, etc).
package cache

import (
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}

// Policy bounds the TTLs MemoryCacheProvider.Set will honor, independent
// of cachekey.Policy's empty-result clamping (C5): this is a blanket
// ceiling a deployment applies to the provider itself, regardless of
// what TTL the engine asked for.
type Policy struct {
	// MaxTTL is the maximum TTL Set will store. Zero means unbounded.
	MaxTTL time.Duration
}

// EffectiveTTL clamps requested to MaxTTL when one is configured.
func (p Policy) EffectiveTTL(requested time.Duration) time.Duration {
	if p.MaxTTL > 0 && requested > p.MaxTTL {
		return p.MaxTTL
	}
	return requested
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
