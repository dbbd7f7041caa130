package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/samas-it-services/smart-search/provider"
)

func BenchmarkMemoryCacheProvider_Get_Hit(b *testing.B) {
	c := NewMemoryCacheProvider(Policy{})
	ctx := context.Background()
	_ = c.Set(ctx, "key", []provider.SearchResult{{ID: "a1"}}, time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = c.Get(ctx, "key")
	}
}

func BenchmarkMemoryCacheProvider_Get_Miss(b *testing.B) {
	c := NewMemoryCacheProvider(Policy{})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = c.Get(ctx, "missing")
	}
}

func BenchmarkMemoryCacheProvider_Set(b *testing.B) {
	c := NewMemoryCacheProvider(Policy{})
	ctx := context.Background()
	value := []provider.SearchResult{{ID: "a1"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(ctx, fmt.Sprintf("key-%d", i), value, time.Hour)
	}
}

func BenchmarkMemoryCacheProvider_Concurrent_ReadWrite(b *testing.B) {
	c := NewMemoryCacheProvider(Policy{})
	ctx := context.Background()
	value := []provider.SearchResult{{ID: "a1"}}

	for i := 0; i < 100; i++ {
		_ = c.Set(ctx, fmt.Sprintf("key-%d", i), value, time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("key-%d", i%100)
			if i%4 == 0 {
				_ = c.Set(ctx, key, value, time.Hour)
			} else {
				_, _, _ = c.Get(ctx, key)
			}
			i++
		}
	})
}

func BenchmarkMemoryCacheProvider_Search(b *testing.B) {
	c := NewMemoryCacheProvider(Policy{})
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		_ = c.Set(ctx, fmt.Sprintf("key-%d", i), []provider.SearchResult{
			{ID: fmt.Sprintf("a%d", i), Title: "widget"},
		}, time.Hour)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Search(ctx, "widget", provider.SearchOptions{Limit: 20})
	}
}

func BenchmarkValidateKey(b *testing.B) {
	key := "search:abc123def456"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ValidateKey(key)
	}
}
