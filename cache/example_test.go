package cache_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samas-it-services/smart-search/cache"
	"github.com/samas-it-services/smart-search/provider"
)

func ExampleNewMemoryCacheProvider() {
	c := cache.NewMemoryCacheProvider(cache.Policy{})
	ctx := context.Background()

	_ = c.Set(ctx, "my-key", []provider.SearchResult{{ID: "a1", Title: "hello"}}, 5*time.Minute)

	value, ok, _ := c.Get(ctx, "my-key")
	if ok {
		fmt.Println("Title:", value[0].Title)
	}
	// Output:
	// Title: hello
}

func ExampleMemoryCacheProvider_Get() {
	c := cache.NewMemoryCacheProvider(cache.Policy{})
	ctx := context.Background()

	_, ok, _ := c.Get(ctx, "missing")
	fmt.Println("Missing key found:", ok)

	_ = c.Set(ctx, "exists", []provider.SearchResult{{ID: "a1"}}, time.Hour)
	_, ok, _ = c.Get(ctx, "exists")
	fmt.Println("Existing key found:", ok)
	// Output:
	// Missing key found: false
	// Existing key found: true
}

func ExampleMemoryCacheProvider_Set_zeroTTL() {
	c := cache.NewMemoryCacheProvider(cache.Policy{})
	ctx := context.Background()

	_ = c.Set(ctx, "key2", []provider.SearchResult{{ID: "a1"}}, 0)
	_, ok, _ := c.Get(ctx, "key2")
	fmt.Println("Zero TTL key cached:", ok)
	// Output:
	// Zero TTL key cached: false
}

func ExampleMemoryCacheProvider_Delete() {
	c := cache.NewMemoryCacheProvider(cache.Policy{})
	ctx := context.Background()

	_ = c.Set(ctx, "to-delete", []provider.SearchResult{{ID: "a1"}}, time.Hour)
	_, ok, _ := c.Get(ctx, "to-delete")
	fmt.Println("Before delete:", ok)

	_ = c.Delete(ctx, "to-delete")
	_, ok, _ = c.Get(ctx, "to-delete")
	fmt.Println("After delete:", ok)
	// Output:
	// Before delete: true
	// After delete: false
}

func ExamplePolicy_EffectiveTTL() {
	policy := cache.Policy{MaxTTL: time.Hour}

	fmt.Println("Reasonable override:", policy.EffectiveTTL(10*time.Minute))
	fmt.Println("Excessive override (clamped):", policy.EffectiveTTL(2*time.Hour))
	// Output:
	// Reasonable override: 10m0s
	// Excessive override (clamped): 1h0m0s
}

func ExampleValidateKey() {
	fmt.Println("normal key:", cache.ValidateKey("my-key") == nil)
	fmt.Println("with colons:", cache.ValidateKey("search:hash") == nil)
	fmt.Println("empty:", errors.Is(cache.ValidateKey(""), cache.ErrInvalidKey))
	fmt.Println("with newline:", errors.Is(cache.ValidateKey("key\nvalue"), cache.ErrInvalidKey))
	// Output:
	// normal key: true
	// with colons: true
	// empty: true
	// with newline: true
}
