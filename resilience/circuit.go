package resilience

import (
	"context"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is operating normally.
	StateClosed State = iota
	// StateOpen means the circuit is blocking all requests.
	StateOpen
	// StateHalfOpen means the circuit is testing if the service recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of failures before opening the circuit.
	// Default: 5
	MaxFailures int

	// ResetTimeout is how long to wait before attempting recovery.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// MonitoringWindow bounds how far back FailureRate looks when folding
	// recent failure timestamps. Default: 1 minute.
	MonitoringWindow time.Duration

	// HalfOpenMaxRequests is the max requests allowed in half-open state.
	// Default: 1
	HalfOpenMaxRequests int

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to State)

	// IsFailure determines if an error should count as a failure.
	// Default: all non-nil errors are failures.
	IsFailure func(err error) bool
}

// CircuitBreaker implements the circuit breaker pattern: CLOSED lets
// traffic through, OPEN sheds it until ResetTimeout elapses, HALF_OPEN
// admits a bounded number of probes to decide whether to close again.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig

	mu             sync.Mutex
	state          State
	failures       int
	successes      int
	totalSuccesses int
	lastFailure    time.Time
	lastSuccess    time.Time
	nextRetry      time.Time
	recentFailures []time.Time
	halfOpenCount  int
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	return newNamedCircuitBreaker("", config)
}

func newNamedCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	// Apply defaults
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.MonitoringWindow <= 0 {
		config.MonitoringWindow = time.Minute
	}
	if config.HalfOpenMaxRequests <= 0 {
		config.HalfOpenMaxRequests = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}

	return &CircuitBreaker{
		name:   name,
		config: config,
		state:  StateClosed,
	}
}

// Name returns the dependency name this breaker protects, or "" when it
// was constructed directly rather than obtained from a Registry.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Execute runs the operation through the circuit breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := op(ctx)
	cb.afterRequest(err)
	return err
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentStateLocked()
}

// IsHealthy reports whether the breaker is currently CLOSED, or
// HALF_OPEN with at least one successful probe recorded so far.
func (cb *CircuitBreaker) IsHealthy() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentStateLocked() {
	case StateClosed:
		return true
	case StateHalfOpen:
		return cb.successes > 0
	default:
		return false
	}
}

// NextRetryTime returns the time the breaker will next admit a probe,
// and whether one is scheduled. It only reports a time while OPEN.
func (cb *CircuitBreaker) NextRetryTime() (time.Time, bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.currentStateLocked() != StateOpen {
		return time.Time{}, false
	}
	return cb.nextRetry, true
}

// FailureRate returns the failures within MonitoringWindow divided by
// those failures plus every success recorded since construction or the
// last Reset; successes are not windowed. Returns 0 when nothing has
// been recorded.
func (cb *CircuitBreaker) FailureRate() float64 {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.pruneRecentFailuresLocked()
	total := len(cb.recentFailures) + cb.totalSuccesses
	if total == 0 {
		return 0
	}
	return float64(len(cb.recentFailures)) / float64(total)
}

// Reset resets the circuit breaker to closed state.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.state = StateClosed
	cb.failures = 0
	cb.successes = 0
	cb.totalSuccesses = 0
	cb.halfOpenCount = 0
	cb.recentFailures = nil
	cb.nextRetry = time.Time{}

	if oldState != StateClosed && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, StateClosed)
	}
}

// ForceOpen administratively opens the breaker with a fresh retry
// deadline regardless of the current failure count. reason is accepted
// so callers can log why (e.g. a manual operator action); the breaker
// itself does not retain it.
func (cb *CircuitBreaker) ForceOpen(reason string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.lastFailure = time.Now()
	cb.setState(StateOpen)

	if oldState != cb.state && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, cb.state)
	}
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state := cb.currentStateLocked()

	switch state {
	case StateOpen:
		return &CircuitOpenError{Name: cb.name, NextRetry: cb.nextRetry}
	case StateHalfOpen:
		if cb.halfOpenCount >= cb.config.HalfOpenMaxRequests {
			return &CircuitOpenError{Name: cb.name, NextRetry: cb.nextRetry}
		}
		cb.halfOpenCount++
	}

	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	isFailure := cb.config.IsFailure(err)
	oldState := cb.state

	switch cb.state {
	case StateClosed:
		if isFailure {
			now := time.Now()
			cb.failures++
			cb.lastFailure = now
			cb.recentFailures = append(cb.recentFailures, now)
			cb.pruneRecentFailuresLocked()
			if cb.failures >= cb.config.MaxFailures {
				cb.setState(StateOpen)
			}
		} else {
			cb.lastSuccess = time.Now()
			cb.totalSuccesses++
			// Reset failure count on success
			cb.failures = 0
		}

	case StateHalfOpen:
		if isFailure {
			// Failed during probe, go back to open
			cb.lastFailure = time.Now() // Reset timeout for open state
			cb.recentFailures = append(cb.recentFailures, cb.lastFailure)
			cb.setState(StateOpen)
		} else {
			cb.lastSuccess = time.Now()
			cb.totalSuccesses++
			cb.successes++
			// Successful probe, close the circuit
			cb.setState(StateClosed)
			cb.failures = 0
			cb.successes = 0
		}
	}

	if oldState != cb.state && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, cb.state)
	}
}

func (cb *CircuitBreaker) currentStateLocked() State {
	if cb.state == StateOpen && time.Since(cb.lastFailure) >= cb.config.ResetTimeout {
		cb.state = StateHalfOpen
		cb.halfOpenCount = 0
		cb.successes = 0
		if cb.config.OnStateChange != nil {
			cb.config.OnStateChange(StateOpen, StateHalfOpen)
		}
	}
	return cb.state
}

func (cb *CircuitBreaker) setState(state State) {
	cb.state = state
	switch state {
	case StateOpen:
		cb.nextRetry = time.Now().Add(cb.config.ResetTimeout)
		cb.halfOpenCount = 0
	case StateHalfOpen:
		cb.halfOpenCount = 0
		cb.successes = 0
	case StateClosed:
		cb.nextRetry = time.Time{}
	}
}

// pruneRecentFailuresLocked drops failure timestamps older than
// MonitoringWindow. Caller must hold cb.mu.
func (cb *CircuitBreaker) pruneRecentFailuresLocked() {
	if len(cb.recentFailures) == 0 {
		return
	}
	cutoff := time.Now().Add(-cb.config.MonitoringWindow)
	i := 0
	for i < len(cb.recentFailures) && cb.recentFailures[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		cb.recentFailures = cb.recentFailures[i:]
	}
}

// Metrics returns current circuit breaker metrics.
func (cb *CircuitBreaker) Metrics() CircuitBreakerMetrics {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.pruneRecentFailuresLocked()

	return CircuitBreakerMetrics{
		State:          cb.currentStateLocked(),
		Failures:       cb.failures,
		Successes:      cb.successes,
		LastFailure:    cb.lastFailure,
		LastSuccess:    cb.lastSuccess,
		RecentFailures: len(cb.recentFailures),
	}
}

// CircuitBreakerMetrics contains circuit breaker statistics.
type CircuitBreakerMetrics struct {
	State          State
	Failures       int
	Successes      int
	LastFailure    time.Time
	LastSuccess    time.Time
	RecentFailures int
}
