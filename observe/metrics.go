package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric instrument names.
const (
	MetricOpTotal      = "trackprobe.op.total"
	MetricOpErrors     = "trackprobe.op.errors"
	MetricOpDuration   = "trackprobe.op.duration_ms"
	MetricCacheLookups = "trackprobe.cache.lookups"
)

// Metrics records operation and cache lookup metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordOperation records one finished operation.
	RecordOperation(ctx context.Context, meta OpMeta, duration time.Duration, err error)

	// RecordLookup counts one cache lookup with its outcome (hit, miss, shared).
	RecordLookup(ctx context.Context, component, outcome string)
}

type metricsImpl struct {
	total    metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
	lookups  metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	total, err := meter.Int64Counter(MetricOpTotal,
		metric.WithDescription("Total number of operations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(MetricOpErrors,
		metric.WithDescription("Total number of failed operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(MetricOpDuration,
		metric.WithDescription("Operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter(MetricCacheLookups,
		metric.WithDescription("Cache lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{total: total, errors: errs, duration: duration, lookups: lookups}, nil
}

func (m *metricsImpl) RecordOperation(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(meta.attributes()...)
	m.total.Add(ctx, 1, opt)
	if err != nil {
		m.errors.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *metricsImpl) RecordLookup(ctx context.Context, component, outcome string) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op.component", component),
		attribute.String("outcome", outcome),
	))
}

type noopMetrics struct{}

func (noopMetrics) RecordOperation(context.Context, OpMeta, time.Duration, error) {}
func (noopMetrics) RecordLookup(context.Context, string, string)                 {}
