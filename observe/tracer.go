package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// SearchMeta contains metadata about a search call for telemetry
// purposes: which operation ran, which provider ultimately served it,
// and which routing strategy was chosen.
type SearchMeta struct {
	Operation string // "search", "hybridSearch", or "secureSearch"
	Provider  string // "cache", "database", or "hybrid" - which path actually served the call
	Strategy  string // the strategy.Reason that led to this path
}

// SpanName returns the deterministic span name for this call.
// Format: search.exec.<operation>
func (m SearchMeta) SpanName() string {
	return "search.exec." + m.Operation
}

// Tracer wraps OpenTelemetry tracing with search-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan must honor cancellation/deadlines and return ctx.Err() when canceled.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a search call.
	StartSpan(ctx context.Context, meta SearchMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with search metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta SearchMeta) (context.Context, trace.Span) {
	spanName := meta.SpanName()

	attrs := []attribute.KeyValue{
		attribute.String("search.operation", meta.Operation),
		attribute.Bool("search.error", false), // Will be updated in EndSpan if error
	}

	if meta.Provider != "" {
		attrs = append(attrs, attribute.String("search.provider", meta.Provider))
	}
	if meta.Strategy != "" {
		attrs = append(attrs, attribute.String("search.strategy", meta.Strategy))
	}

	ctx, span := t.tracer.Start(ctx, spanName,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("search.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta SearchMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
