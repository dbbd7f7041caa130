package health

import (
	"errors"
	"strings"

	"github.com/samas-it-services/smart-search/provider"
)

// FromProviderStatus converts a search provider's self-reported
// provider.HealthStatus into the Result shape this package's Checker,
// Aggregator, and HTTP handlers understand. This is the one place that
// translates between provider's domain-specific health model and
// health's generic one, so callers like engine.Engine.HealthAggregator
// don't each have to re-derive the same Healthy/Degraded/Unhealthy
// classification.
//
// A non-nil err (the CheckHealth call itself failed) always reports
// Unhealthy. Otherwise: not connected is Unhealthy, connected but
// search-unavailable is Degraded, and connected-and-search-capable is
// Healthy.
func FromProviderStatus(status provider.HealthStatus, err error) Result {
	if err != nil {
		return Unhealthy("health check failed", err)
	}
	if !status.IsConnected {
		return Unhealthy("not connected", statusErrors(status)).WithDuration(status.Latency)
	}
	if !status.IsSearchAvailable {
		return Degraded("connected, search unavailable").WithDuration(status.Latency)
	}
	return Healthy("reachable and search-capable").
		WithDuration(status.Latency).
		WithDetails(counterDetails(status))
}

func statusErrors(status provider.HealthStatus) error {
	if len(status.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(status.Errors, "; "))
}

func counterDetails(status provider.HealthStatus) map[string]any {
	if len(status.Counters) == 0 {
		return nil
	}
	details := make(map[string]any, len(status.Counters))
	for k, v := range status.Counters {
		details[k] = v
	}
	return details
}
