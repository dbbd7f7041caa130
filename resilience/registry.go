package resilience

import "sync"

// Registry is a named collection of circuit breakers, one per protected
// dependency (e.g. "cache", "database"). It lets the engine look up a
// breaker by name for metrics/strategy decisions without threading the
// breaker instance through every call site.
type Registry struct {
	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
	order    []string
}

// NewRegistry creates an empty breaker registry.
func NewRegistry() *Registry {
	return &Registry{
		breakers: make(map[string]*CircuitBreaker),
	}
}

// GetOrCreate returns the named breaker, creating it with config if it
// doesn't exist yet. config is ignored on subsequent calls for the same
// name - the first registration wins.
func (r *Registry) GetOrCreate(name string, config CircuitBreakerConfig) *CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers[name]; ok {
		return cb
	}

	cb := newNamedCircuitBreaker(name, config)
	r.breakers[name] = cb
	r.order = append(r.order, name)
	return cb
}

// Get returns the named breaker and whether it was found.
func (r *Registry) Get(name string) (*CircuitBreaker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.breakers[name]
	return cb, ok
}

// Names returns registered breaker names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Snapshot is a point-in-time view of a single breaker's health, used by
// the strategy package to fold circuit state into a routing decision
// without depending on the full *CircuitBreaker type.
type Snapshot struct {
	Name        string
	State       State
	IsHealthy   bool
	FailureRate float64
}

// SnapshotAll returns a Snapshot for every registered breaker.
func (r *Registry) SnapshotAll() map[string]Snapshot {
	r.mu.RLock()
	breakers := make(map[string]*CircuitBreaker, len(r.breakers))
	for name, cb := range r.breakers {
		breakers[name] = cb
	}
	r.mu.RUnlock()

	snapshots := make(map[string]Snapshot, len(breakers))
	for name, cb := range breakers {
		snapshots[name] = Snapshot{
			Name:        name,
			State:       cb.State(),
			IsHealthy:   cb.IsHealthy(),
			FailureRate: cb.FailureRate(),
		}
	}
	return snapshots
}
