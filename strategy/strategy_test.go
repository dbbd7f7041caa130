package strategy

import (
	"testing"
	"time"

	"github.com/samas-it-services/smart-search/provider"
	"github.com/samas-it-services/smart-search/resilience"
)

func TestSelect(t *testing.T) {
	healthyClosed := resilience.Snapshot{State: resilience.StateClosed, IsHealthy: true}

	tests := []struct {
		name            string
		cacheConfigured bool
		health          provider.HealthStatus
		healthKnown     bool
		breaker         resilience.Snapshot
		wantPrimary     Path
		wantFallback    Path
		wantReason      string
	}{
		{
			name:            "no cache provider",
			cacheConfigured: false,
			breaker:         healthyClosed,
			wantPrimary:     PathDatabase,
			wantFallback:    PathDatabase,
			wantReason:      "no cache provider",
		},
		{
			name:            "breaker open",
			cacheConfigured: true,
			healthKnown:     true,
			health:          provider.HealthStatus{IsConnected: true, IsSearchAvailable: true, Latency: 10 * time.Millisecond},
			breaker:         resilience.Snapshot{State: resilience.StateOpen},
			wantPrimary:     PathDatabase,
			wantFallback:    PathDatabase,
			wantReason:      "breaker open",
		},
		{
			name:            "cache healthy",
			cacheConfigured: true,
			healthKnown:     true,
			health:          provider.HealthStatus{IsConnected: true, IsSearchAvailable: true, Latency: 10 * time.Millisecond},
			breaker:         healthyClosed,
			wantPrimary:     PathCache,
			wantFallback:    PathDatabase,
			wantReason:      "cache healthy",
		},
		{
			name:            "connected but search unavailable",
			cacheConfigured: true,
			healthKnown:     true,
			health:          provider.HealthStatus{IsConnected: true, IsSearchAvailable: false},
			breaker:         healthyClosed,
			wantPrimary:     PathDatabase,
			wantFallback:    PathCache,
			wantReason:      "cache connected, search unavailable",
		},
		{
			name:            "connected but slow",
			cacheConfigured: true,
			healthKnown:     true,
			health:          provider.HealthStatus{IsConnected: true, IsSearchAvailable: true, Latency: 2 * time.Second},
			breaker:         healthyClosed,
			wantPrimary:     PathDatabase,
			wantFallback:    PathCache,
			wantReason:      "cache slow",
		},
		{
			name:            "disconnected",
			cacheConfigured: true,
			healthKnown:     true,
			health:          provider.HealthStatus{IsConnected: false},
			breaker:         healthyClosed,
			wantPrimary:     PathDatabase,
			wantFallback:    PathDatabase,
			wantReason:      "cache unavailable",
		},
		{
			name:            "health unknown",
			cacheConfigured: true,
			healthKnown:     false,
			breaker:         healthyClosed,
			wantPrimary:     PathDatabase,
			wantFallback:    PathDatabase,
			wantReason:      "cache unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(Config{}, tt.cacheConfigured, tt.health, tt.healthKnown, tt.breaker)
			if got.Primary != tt.wantPrimary || got.Fallback != tt.wantFallback || got.Reason != tt.wantReason {
				t.Errorf("Select() = %+v, want primary=%v fallback=%v reason=%q", got, tt.wantPrimary, tt.wantFallback, tt.wantReason)
			}
		})
	}
}

func TestSelect_DefaultFastThreshold(t *testing.T) {
	got := Select(Config{}, true, provider.HealthStatus{
		IsConnected:       true,
		IsSearchAvailable: true,
		Latency:           999 * time.Millisecond,
	}, true, resilience.Snapshot{State: resilience.StateClosed})

	if got.Primary != PathCache {
		t.Errorf("Primary = %v, want cache (latency under default 1s threshold)", got.Primary)
	}
}
