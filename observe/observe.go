package observe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/trackprobe/observe/exporters"
)

// DefaultServiceName is the service.name resource attribute set by DefaultConfig.
const DefaultServiceName = "trackprobe"

// Config selects where cache lookups, item probes and probe computations
// are reported.
type Config struct {
	// ServiceName becomes the service.name resource attribute and the
	// "service" field of every log line. Required.
	ServiceName string

	// Version becomes service.version.
	Version string

	Tracing TracingConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

// TracingConfig controls the operation spans (trackprobe.<component>.<name>).
type TracingConfig struct {
	Enabled bool

	// Exporter is one of otlp, jaeger, stdout or none.
	Exporter string

	// SamplePct is the fraction of root spans kept, from 0 to 1.
	// Spans under a sampled parent are always kept.
	SamplePct float64
}

// MetricsConfig controls the op and cache lookup instruments.
type MetricsConfig struct {
	Enabled bool

	// Exporter is one of otlp, prometheus, stdout or none.
	Exporter string
}

// LoggingConfig controls the JSON log lines written per operation.
type LoggingConfig struct {
	Enabled bool

	// Level is debug, info, warn or error. Successful operations log at debug.
	Level string

	// Writer receives JSON log lines. Default: os.Stderr
	Writer io.Writer
}

// DefaultConfig logs at info level and exports no spans or metrics.
func DefaultConfig() Config {
	return Config{
		ServiceName: DefaultServiceName,
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
	}
}

// An empty name is accepted everywhere and means none (or info for levels).
var (
	tracingExporters = []string{"", "none", "stdout", "otlp", "jaeger"}
	metricsExporters = []string{"", "none", "stdout", "otlp", "prometheus"}
	logLevels        = []string{"", "debug", "info", "warn", "error"}
)

// Validate checks only the enabled sections.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return ErrMissingServiceName
	}
	if t := c.Tracing; t.Enabled {
		if !slices.Contains(tracingExporters, t.Exporter) {
			return fmt.Errorf("%w: %q", ErrInvalidTracingExporter, t.Exporter)
		}
		if t.SamplePct < MinSamplePct || t.SamplePct > MaxSamplePct {
			return fmt.Errorf("%w: got %f", ErrInvalidSamplePct, t.SamplePct)
		}
	}
	if m := c.Metrics; m.Enabled && !slices.Contains(metricsExporters, m.Exporter) {
		return fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, m.Exporter)
	}
	if l := c.Logging; l.Enabled && !slices.Contains(logLevels, l.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}
	return nil
}

// Observer owns the tracer, meter and logger that a Middleware reports to.
// Disabled sections get no-op implementations.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Context: Shutdown honors ctx while flushing buffered spans and metrics.
//   - Errors: Shutdown joins the provider errors; calls after the first return nil.
type Observer interface {
	Tracer() trace.Tracer
	Meter() metric.Meter
	Logger() Logger

	// Shutdown flushes pending telemetry and stops the exporters.
	Shutdown(ctx context.Context) error
}

// Logger writes leveled entries with structured fields.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Errors: a failed write is dropped; logging never panics.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)

	// With returns a logger that adds fields to every entry.
	With(fields ...Field) Logger
}

// Field is one key/value pair of a log entry.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

type observer struct {
	tracer trace.Tracer
	meter  metric.Meter
	logger Logger

	// shutdown is empty when no SDK provider was built.
	shutdown []func(context.Context) error
	once     sync.Once
}

// NewObserver builds the providers for cfg and installs them as the otel
// globals, so spans started by instrumented HTTP transports join the
// operation spans.
func NewObserver(ctx context.Context, cfg Config) (Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	))
	if err != nil {
		return nil, fmt.Errorf("observe: resource: %w", err)
	}

	obs := &observer{
		tracer: tracenoop.NewTracerProvider().Tracer(cfg.ServiceName),
		meter:  noop.NewMeterProvider().Meter(cfg.ServiceName),
		logger: NopLogger(),
	}

	if cfg.Tracing.Enabled {
		exp, err := exporters.NewTracingExporter(ctx, cfg.Tracing.Exporter)
		if err != nil {
			return nil, fmt.Errorf("observe: tracing: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sampler(cfg.Tracing.SamplePct))),
			sdktrace.WithBatcher(exp),
		)
		otel.SetTracerProvider(tp)
		obs.tracer = tp.Tracer(cfg.ServiceName)
		obs.shutdown = append(obs.shutdown, tp.Shutdown)
	}

	if cfg.Metrics.Enabled {
		reader, err := exporters.NewMetricsReader(ctx, cfg.Metrics.Exporter)
		if err != nil {
			obs.stop(ctx)
			return nil, fmt.Errorf("observe: metrics: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
		otel.SetMeterProvider(mp)
		obs.meter = mp.Meter(cfg.ServiceName)
		obs.shutdown = append(obs.shutdown, mp.Shutdown)
	}

	if cfg.Logging.Enabled {
		w := cfg.Logging.Writer
		if w == nil {
			w = os.Stderr
		}
		obs.logger = NewLoggerWithWriter(cfg.Logging.Level, w).With(F("service", cfg.ServiceName))
	}
	return obs, nil
}

func sampler(pct float64) sdktrace.Sampler {
	switch {
	case pct >= MaxSamplePct:
		return sdktrace.AlwaysSample()
	case pct <= MinSamplePct:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(pct)
	}
}

func (o *observer) Tracer() trace.Tracer { return o.tracer }
func (o *observer) Meter() metric.Meter  { return o.meter }
func (o *observer) Logger() Logger       { return o.logger }

func (o *observer) Shutdown(ctx context.Context) error {
	var err error
	o.once.Do(func() { err = o.stop(ctx) })
	return err
}

func (o *observer) stop(ctx context.Context) error {
	var errs []error
	for _, fn := range o.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type noopLogger struct{}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

func (noopLogger) Info(context.Context, string, ...Field)  {}
func (noopLogger) Warn(context.Context, string, ...Field)  {}
func (noopLogger) Error(context.Context, string, ...Field) {}
func (noopLogger) Debug(context.Context, string, ...Field) {}
func (l noopLogger) With(...Field) Logger                  { return l }
