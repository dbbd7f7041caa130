package cachekey

import (
	"testing"
	"time"

	"github.com/samas-it-services/smart-search/provider"
)

func TestDerive_Deterministic(t *testing.T) {
	opts := provider.SearchOptions{
		Limit:  10,
		Offset: 0,
		Filters: provider.Filters{
			Kind: []string{"doc", "article"},
			Custom: map[string]any{
				"b": 1,
				"a": 2,
			},
		},
	}

	k1, err := Derive("  Hello World  ", opts)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	k2, err := Derive("hello world", opts)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if k1 != k2 {
		t.Errorf("Derive() not case/whitespace invariant: %q != %q", k1, k2)
	}
}

func TestDerive_MapOrderInvariant(t *testing.T) {
	base := provider.SearchOptions{Limit: 10}

	opts1 := base
	opts1.Filters = provider.Filters{Custom: map[string]any{"a": 1, "b": 2}}
	opts2 := base
	opts2.Filters = provider.Filters{Custom: map[string]any{"b": 2, "a": 1}}

	k1, _ := Derive("query", opts1)
	k2, _ := Derive("query", opts2)

	if k1 != k2 {
		t.Errorf("Derive() should be invariant to map iteration order: %q != %q", k1, k2)
	}
}

func TestDerive_DifferentOptionsDifferentKey(t *testing.T) {
	k1, _ := Derive("query", provider.SearchOptions{Limit: 10})
	k2, _ := Derive("query", provider.SearchOptions{Limit: 20})

	if k1 == k2 {
		t.Error("Derive() should vary with limit")
	}
}

func TestDerive_HasPrefix(t *testing.T) {
	k, err := Derive("query", provider.SearchOptions{})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if len(k) < len("search:") || k[:7] != "search:" {
		t.Errorf("Derive() = %q, want search: prefix", k)
	}
}

func TestPolicy_EffectiveTTL(t *testing.T) {
	p := Policy{DefaultTTL: 5 * time.Minute, EmptyResultMaxTTL: 60 * time.Second}

	if got := p.EffectiveTTL(0, 3); got != 5*time.Minute {
		t.Errorf("EffectiveTTL(no override, non-empty) = %v, want 5m", got)
	}
	if got := p.EffectiveTTL(10*time.Minute, 3); got != 10*time.Minute {
		t.Errorf("EffectiveTTL(override, non-empty) = %v, want 10m", got)
	}
	if got := p.EffectiveTTL(10*time.Minute, 0); got != 60*time.Second {
		t.Errorf("EffectiveTTL(override, empty) = %v, want clamped to 60s", got)
	}
	if got := p.EffectiveTTL(0, 0); got != 60*time.Second {
		t.Errorf("EffectiveTTL(default, empty) = %v, want clamped to 60s", got)
	}
}
