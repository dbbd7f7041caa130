// Package searcherr implements the typed failure taxonomy the search
// engine classifies provider and governance errors against, and the
// retry/propagation rules that hang off that classification.
package searcherr

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure, not a concrete error type.
type Kind int

const (
	// Connectivity indicates the database or cache is unreachable.
	Connectivity Kind = iota
	// Timeout indicates a provider call exceeded its operation timeout.
	Timeout
	// CircuitBreakerOpen indicates a dependency is currently being shed.
	CircuitBreakerOpen
	// InvalidQuery indicates the caller-supplied query failed validation.
	InvalidQuery
	// ProviderFault indicates a provider-side error that isn't
	// connectivity or timeout related.
	ProviderFault
	// SecurityAccessDenied indicates governance rejected the request.
	SecurityAccessDenied
	// ComplianceViolation indicates an audit/classification rule
	// rejected the request or its output.
	ComplianceViolation
	// RateLimitExceeded is a backpressure signal.
	RateLimitExceeded
	// ResourceExhausted is a backpressure signal.
	ResourceExhausted
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Connectivity:
		return "connectivity"
	case Timeout:
		return "timeout"
	case CircuitBreakerOpen:
		return "circuit_breaker_open"
	case InvalidQuery:
		return "invalid_query"
	case ProviderFault:
		return "provider_fault"
	case SecurityAccessDenied:
		return "security_access_denied"
	case ComplianceViolation:
		return "compliance_violation"
	case RateLimitExceeded:
		return "rate_limit_exceeded"
	case ResourceExhausted:
		return "resource_exhausted"
	default:
		return "unknown"
	}
}

// retryableKinds is the set of kinds the executor's retry policy may
// re-attempt. CircuitBreakerOpen, InvalidQuery, ProviderFault,
// SecurityAccessDenied and ComplianceViolation are deliberately absent.
var retryableKinds = map[Kind]bool{
	Connectivity:      true,
	Timeout:           true,
	RateLimitExceeded: true,
	ResourceExhausted: true,
}

// Error is a classified search-engine error.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New constructs a classified error.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("searcherr: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("searcherr: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether this error's kind is in the retryable set.
func (e *Error) Retryable() bool {
	return retryableKinds[e.Kind]
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error.
// Unclassified errors report ProviderFault.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ProviderFault
}

// Retryable reports whether err should be retried by the executor's
// backoff policy: classified errors defer to their own Kind, and
// unclassified errors are treated as non-retryable ProviderFault.
func Retryable(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return false
}
