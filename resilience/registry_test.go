package resilience

import (
	"context"
	"errors"
	"testing"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	cb1 := r.GetOrCreate("cache", CircuitBreakerConfig{MaxFailures: 2})
	cb2 := r.GetOrCreate("cache", CircuitBreakerConfig{MaxFailures: 99})

	if cb1 != cb2 {
		t.Error("GetOrCreate should return the same breaker for the same name")
	}
	if cb1.config.MaxFailures != 2 {
		t.Errorf("MaxFailures = %d, want 2 (first registration wins)", cb1.config.MaxFailures)
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("database"); ok {
		t.Error("Get on empty registry should report not found")
	}

	r.GetOrCreate("database", CircuitBreakerConfig{})
	cb, ok := r.Get("database")
	if !ok || cb == nil {
		t.Fatal("Get should find a registered breaker")
	}
	if cb.Name() != "database" {
		t.Errorf("Name() = %q, want %q", cb.Name(), "database")
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("cache", CircuitBreakerConfig{})
	r.GetOrCreate("database", CircuitBreakerConfig{})

	names := r.Names()
	if len(names) != 2 || names[0] != "cache" || names[1] != "database" {
		t.Errorf("Names() = %v, want [cache database] in registration order", names)
	}
}

func TestRegistry_SnapshotAll(t *testing.T) {
	r := NewRegistry()
	cb := r.GetOrCreate("cache", CircuitBreakerConfig{MaxFailures: 1})

	testErr := errors.New("boom")
	_ = cb.Execute(context.Background(), func(ctx context.Context) error { return testErr })

	snaps := r.SnapshotAll()
	snap, ok := snaps["cache"]
	if !ok {
		t.Fatal("SnapshotAll should include the cache breaker")
	}
	if snap.State != StateOpen {
		t.Errorf("snapshot State = %v, want open", snap.State)
	}
	if snap.IsHealthy {
		t.Error("snapshot IsHealthy should be false after opening")
	}
}
