package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("slid")

	if cfg.ServiceName != "slid" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("Interval = %v", cfg.Interval)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("Insecure should default to true for development")
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		ServiceName: "slid",
		Endpoint:    "collector:4318",
		Interval:    time.Minute,
		SampleRate:  0.25,
	}
	cfg.ApplyDefaults()

	if cfg.Endpoint != "collector:4318" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Interval != time.Minute {
		t.Errorf("Interval = %v", cfg.Interval)
	}
	if cfg.SampleRate != 0.25 {
		t.Errorf("SampleRate = %v", cfg.SampleRate)
	}
}

func TestStartSpanRecordsThroughProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx, span := StartSpan(context.Background(), "pipeline.tick")
	SetSpanError(ctx, context.DeadlineExceeded)
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Name != "pipeline.tick" {
		t.Errorf("span name = %q", spans[0].Name)
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("events = %d, want 1 error event", len(spans[0].Events))
	}
}
