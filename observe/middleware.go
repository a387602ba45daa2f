package observe

import (
	"context"
	"time"
)

// Middleware wraps operations with a span, metrics, and a log line.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Context: fn receives the context carrying the operation span.
//   - Errors: the error from fn is recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced with no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// NopMiddleware returns a Middleware that only runs the wrapped function.
func NopMiddleware() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Observe runs fn inside an operation span and records its outcome.
// An invalid meta is returned without running fn.
func (m *Middleware) Observe(ctx context.Context, meta OpMeta, fn func(ctx context.Context) error) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	ctx, span := m.tracer.StartSpan(ctx, meta)
	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)
	m.tracer.EndSpan(span, err)
	m.metrics.RecordOperation(ctx, meta, duration, err)

	fields := []Field{
		F("op", meta.SpanName()),
		F("duration_ms", float64(duration.Microseconds())/1000),
	}
	if meta.Key != "" {
		fields = append(fields, F("key", meta.Key))
	}
	if err != nil {
		m.logger.Error(ctx, "operation failed", append(fields, F("error", err.Error()))...)
	} else {
		m.logger.Debug(ctx, "operation completed", fields...)
	}
	return err
}

// RecordLookup forwards a cache lookup outcome to the metrics instruments.
func (m *Middleware) RecordLookup(ctx context.Context, component, outcome string) {
	m.metrics.RecordLookup(ctx, component, outcome)
}

// Logger returns the middleware's logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}
