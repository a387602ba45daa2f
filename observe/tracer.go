package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// SpanPrefix starts every span name.
const SpanPrefix = "trackprobe."

// OpMeta describes one observed operation.
type OpMeta struct {
	Component string // e.g. "qualityprobe", "itemcache"
	Name      string // required, e.g. "resolve"
	Key       string // cache key or item id being worked on (optional)
}

// SpanName returns trackprobe.<component>.<name>, or trackprobe.<name>
// without a component.
func (m OpMeta) SpanName() string {
	if m.Component != "" {
		return SpanPrefix + m.Component + "." + m.Name
	}
	return SpanPrefix + m.Name
}

// Validate reports ErrMissingOpName when Name is empty.
func (m OpMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingOpName
	}
	return nil
}

func (m OpMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("op.name", m.Name)}
	if m.Component != "" {
		attrs = append(attrs, attribute.String("op.component", m.Component))
	}
	return attrs
}

// Tracer starts and ends operation spans.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span)
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.Bool("op.error", false))
	if meta.Key != "" {
		attrs = append(attrs, attribute.String("op.key", meta.Key))
	}
	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("op.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ error) {
	span.End()
}
