package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "missing service", cfg: Config{}, wantErr: ErrMissingServiceName},
		{
			name:    "bad tracing exporter",
			cfg:     Config{ServiceName: "s", Tracing: TracingConfig{Enabled: true, Exporter: "zipkin"}},
			wantErr: ErrInvalidTracingExporter,
		},
		{
			name:    "bad sample pct",
			cfg:     Config{ServiceName: "s", Tracing: TracingConfig{Enabled: true, SamplePct: 1.5}},
			wantErr: ErrInvalidSamplePct,
		},
		{
			name:    "bad metrics exporter",
			cfg:     Config{ServiceName: "s", Metrics: MetricsConfig{Enabled: true, Exporter: "statsd"}},
			wantErr: ErrInvalidMetricsExporter,
		},
		{
			name:    "bad log level",
			cfg:     Config{ServiceName: "s", Logging: LoggingConfig{Enabled: true, Level: "trace"}},
			wantErr: ErrInvalidLogLevel,
		},
		{
			name: "disabled sections are not validated",
			cfg:  Config{ServiceName: "s", Tracing: TracingConfig{Exporter: "zipkin"}, Logging: LoggingConfig{Level: "trace"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewObserver_Disabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "trackprobe-test"})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}
	if obs.Tracer() == nil || obs.Meter() == nil || obs.Logger() == nil {
		t.Fatal("observer components must be non-nil")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewObserver_Enabled(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		ServiceName: "trackprobe-test",
		Version:     "0.1.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "info", Writer: &buf},
	}
	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}
	defer func() { _ = obs.Shutdown(context.Background()) }()

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() error = %v", err)
	}
	_ = mw.Observe(context.Background(), OpMeta{Component: "cache", Name: "resolve"}, func(context.Context) error {
		return errors.New("fail")
	})

	line := decodeLines(t, &buf)[0]
	if line["service"] != "trackprobe-test" {
		t.Errorf("service field = %v", line["service"])
	}
}

func TestNewObserver_InvalidConfig(t *testing.T) {
	if _, err := NewObserver(context.Background(), Config{}); !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("NewObserver() error = %v, want ErrMissingServiceName", err)
	}
}

func TestObserver_ShutdownTwice(t *testing.T) {
	cfg := Config{
		ServiceName: "trackprobe-test",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
	}
	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}
	for i := range 2 {
		if err := obs.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() #%d error = %v", i+1, err)
		}
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{pct: 0, want: "AlwaysOffSampler"},
		{pct: 1, want: "AlwaysOnSampler"},
		{pct: 0.25, want: "TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		if got := sampler(tt.pct).Description(); got != tt.want {
			t.Errorf("sampler(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
