package engine

import (
	"github.com/samas-it-services/smart-search/governance"
	"github.com/samas-it-services/smart-search/observe"
	"github.com/samas-it-services/smart-search/resilience"
)

// Option configures an Engine at construction time, mirroring
// resilience.NewExecutor's functional-options pattern: components a
// host wants to share (an Observer wired to its own process-wide
// telemetry pipeline, a Registry shared with other engines) are
// injected this way instead of being re-derived from Config.
type Option func(*Engine)

// WithObserver supplies a pre-built Observer. Without this option, New
// builds a disabled Observer (every telemetry call becomes a no-op).
func WithObserver(obs observe.Observer) Option {
	return func(e *Engine) {
		e.observer = obs
	}
}

// WithBreakerRegistry supplies a resilience.Registry to register the
// cache breaker into, letting a host expose breaker state for several
// engines through one /health endpoint. Without this option, New
// creates a private registry.
func WithBreakerRegistry(reg *resilience.Registry) Option {
	return func(e *Engine) {
		e.breakers = reg
	}
}

// WithGovernance supplies a pre-built Governance, overriding
// Config.Governance. Use this when the governance policy needs wiring
// New itself can't perform (e.g. a sink built from a live secret
// store connection).
func WithGovernance(g *governance.Governance) Option {
	return func(e *Engine) {
		e.governance = g
	}
}
