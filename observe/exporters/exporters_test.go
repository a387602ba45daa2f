package exporters

import (
	"context"
	"errors"
	"testing"
)

func TestNewTracingExporter(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "stdout"},
		{name: "none"},
		{name: ""},
		{name: "otlp", env: map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": "http://localhost:4317"}},
		{name: "otlp", wantErr: ErrEndpointNotConfigured},
		{name: "jaeger", wantErr: ErrEndpointNotConfigured},
		{name: "jaeger", env: map[string]string{"OTEL_EXPORTER_JAEGER_ENDPOINT": "http://localhost:4317"}},
		{name: "zipkin", wantErr: ErrUnknownExporter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
			t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
			t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			exp, err := NewTracingExporter(context.Background(), tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exp == nil {
				t.Fatal("expected non-nil exporter")
			}
			_ = exp.Shutdown(context.Background())
		})
	}
}

func TestNewMetricsReader(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "stdout"},
		{name: "none"},
		{name: "prometheus"},
		{name: "otlp", env: map[string]string{"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT": "http://localhost:4317"}},
		{name: "otlp", wantErr: ErrEndpointNotConfigured},
		{name: "badvalue", wantErr: ErrUnknownExporter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
			t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			reader, err := NewMetricsReader(context.Background(), tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reader == nil {
				t.Fatal("expected non-nil reader")
			}
		})
	}
}
