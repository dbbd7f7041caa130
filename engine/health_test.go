package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/samas-it-services/smart-search/health"
)

func TestHealthAggregator_ReportsUnhealthyCache(t *testing.T) {
	db := &fakeDatabase{health: healthyStatus()}
	cache := newFakeCache()
	cache.healthErr = errors.New("cache unreachable")

	eng, err := New(Config{DatabaseProvider: db, CacheProvider: cache})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	agg := eng.HealthAggregator()
	results := agg.CheckAll(context.Background())

	if results["database"].Status != health.StatusHealthy {
		t.Errorf("expected healthy database, got %v", results["database"].Status)
	}
	if results["cache"].Status != health.StatusUnhealthy {
		t.Errorf("expected unhealthy cache, got %v", results["cache"].Status)
	}
	if agg.OverallStatus(results) != health.StatusUnhealthy {
		t.Errorf("expected overall unhealthy, got %v", agg.OverallStatus(results))
	}
}

func TestHealthAggregator_NoCacheProviderConfigured(t *testing.T) {
	db := &fakeDatabase{health: healthyStatus()}
	eng, err := New(Config{DatabaseProvider: db})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	agg := eng.HealthAggregator()
	results := agg.CheckAll(context.Background())

	if _, ok := results["cache"]; ok {
		t.Error("expected no cache checker to be registered when CacheProvider is nil")
	}
	if results["database"].Status != health.StatusHealthy {
		t.Errorf("expected healthy database, got %v", results["database"].Status)
	}
}
