package resilience

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is the sentinel a caller can match against with
	// errors.Is; CircuitBreaker.Execute actually returns the richer
	// *CircuitOpenError, which wraps this sentinel.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrMaxRetriesExceeded is returned when max retry attempts are exhausted.
	ErrMaxRetriesExceeded = errors.New("resilience: max retries exceeded")

	// ErrRateLimitExceeded is returned when the rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = errors.New("resilience: bulkhead at capacity")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("resilience: operation timed out")
)

// CircuitOpenError is returned by CircuitBreaker.Execute while the
// breaker is shedding traffic. It carries the named breaker and the
// time a probe will next be admitted, so callers (in particular the
// search engine's strategy selection) can report a retry-after hint
// without a second lookup.
type CircuitOpenError struct {
	// Name is the breaker's registry name, or "" for an unnamed breaker.
	Name string
	// NextRetry is when the breaker will next admit a half-open probe.
	NextRetry time.Time
}

// Error implements the error interface.
func (e *CircuitOpenError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("resilience: circuit %q is open until %s", e.Name, e.NextRetry.Format(time.RFC3339))
	}
	return fmt.Sprintf("resilience: circuit breaker is open until %s", e.NextRetry.Format(time.RFC3339))
}

// Is reports that CircuitOpenError matches the ErrCircuitOpen sentinel,
// so existing errors.Is(err, ErrCircuitOpen) checks keep working.
func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}
