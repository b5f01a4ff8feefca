package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mercator-hq/relay/pkg/config"
)

func newTestTracer(t *testing.T, sampler string) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tracer, err := New(&config.TracingConfig{
		Enabled:     true,
		Sampler:     sampler,
		SampleRatio: 1.0,
		ServiceName: "relay-test",
	}, WithExporter(exporter), WithServiceVersion("test"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })

	return tracer, exporter
}

func TestNew_Disabled(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if tracer.Enabled() {
		t.Error("expected tracer to be disabled")
	}

	ctx, span := tracer.Start(context.Background(), "noop")
	span.End()

	if span.SpanContext().IsValid() {
		t.Error("expected noop span to have invalid span context")
	}
	if id := TraceID(ctx); id != "" {
		t.Errorf("expected empty trace ID, got %q", id)
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNew_InvalidSampler(t *testing.T) {
	_, err := New(&config.TracingConfig{
		Enabled:  true,
		Sampler:  "sometimes",
		Endpoint: "localhost:4317",
	}, WithExporter(tracetest.NewInMemoryExporter()))
	if err == nil {
		t.Fatal("expected error for unknown sampler")
	}
}

func TestTracer_StartRecordsSpans(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerAlways)

	ctx, parent := tracer.Start(context.Background(), "parent")
	_, child := tracer.Start(ctx, "child")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	byName := map[string]tracetest.SpanStub{}
	for _, s := range spans {
		byName[s.Name] = s
	}
	if byName["child"].Parent.SpanID() != byName["parent"].SpanContext.SpanID() {
		t.Error("expected child span to be parented to parent span")
	}
	if byName["child"].SpanContext.TraceID() != byName["parent"].SpanContext.TraceID() {
		t.Error("expected spans to share a trace ID")
	}
}

func TestTracer_NeverSampler(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerNever)

	_, span := tracer.Start(context.Background(), "dropped")
	span.End()

	if n := len(exporter.GetSpans()); n != 0 {
		t.Errorf("expected no exported spans, got %d", n)
	}
}

func TestTracer_NilSafe(t *testing.T) {
	var tracer *Tracer

	_, span := tracer.Start(context.Background(), "nil")
	span.End()

	if tracer.Enabled() {
		t.Error("nil tracer must report disabled")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown on nil tracer failed: %v", err)
	}
	if err := tracer.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush on nil tracer failed: %v", err)
	}
}

func TestTracer_ForceFlushExportsBatchedSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := New(&config.TracingConfig{
		Enabled:     true,
		Sampler:     SamplerAlways,
		SampleRatio: 1.0,
		ServiceName: "relay-test",
	}, WithBatchExporter(exporter))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })

	_, span := tracer.Start(context.Background(), "batched")
	span.End()

	if n := len(exporter.GetSpans()); n != 0 {
		t.Fatalf("expected span to be buffered, got %d exported", n)
	}

	if err := tracer.ForceFlush(context.Background()); err != nil {
		t.Fatalf("ForceFlush failed: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "batched" {
		t.Errorf("expected the batched span after flush, got %v", spans)
	}
}

func TestTraceID(t *testing.T) {
	tracer, _ := newTestTracer(t, SamplerAlways)

	ctx, span := tracer.Start(context.Background(), "op")
	defer span.End()

	got := TraceID(ctx)
	if got != span.SpanContext().TraceID().String() {
		t.Errorf("TraceID() = %q, want %q", got, span.SpanContext().TraceID().String())
	}
	if len(got) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(got))
	}
}

func TestAttributes(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerAlways)

	_, span := tracer.Start(context.Background(), "chat")
	SetChatAttributes(span, "openai", 3, 512, 0.7)
	SetErrorAttributes(span, errors.New("OpenAI error: 401 bad key"), "provider_http")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes {
		attrs[kv.Key] = kv.Value
	}

	if attrs[AttrProvider].AsString() != "openai" {
		t.Errorf("unexpected provider attribute %v", attrs[AttrProvider])
	}
	if attrs[AttrMessages].AsInt64() != 3 {
		t.Errorf("unexpected messages attribute %v", attrs[AttrMessages])
	}
	if attrs[AttrMaxTokens].AsInt64() != 512 {
		t.Errorf("unexpected max_tokens attribute %v", attrs[AttrMaxTokens])
	}
	if attrs[AttrErrorKind].AsString() != "provider_http" {
		t.Errorf("unexpected error kind attribute %v", attrs[AttrErrorKind])
	}
	if s.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status.Code)
	}
	if len(s.Events) == 0 {
		t.Error("expected RecordError to add an exception event")
	}
}

func TestSetErrorAttributes_NilError(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerAlways)

	_, span := tracer.Start(context.Background(), "ok")
	SetErrorAttributes(span, nil, "ignored")
	SetSuccess(span, 5)
	span.End()

	s := exporter.GetSpans()[0]
	if s.Status.Code != codes.Ok {
		t.Errorf("expected ok status, got %v", s.Status.Code)
	}
	for _, kv := range s.Attributes {
		if kv.Key == AttrErrorKind {
			t.Error("nil error must not set an error kind")
		}
	}
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{name: "always", strategy: SamplerAlways},
		{name: "never", strategy: SamplerNever},
		{name: "ratio", strategy: SamplerRatio, ratio: 0.25},
		{name: "empty means ratio", strategy: "", ratio: 1},
		{name: "ratio too high", strategy: SamplerRatio, ratio: 1.5, wantErr: true},
		{name: "ratio negative", strategy: SamplerRatio, ratio: -0.1, wantErr: true},
		{name: "unknown", strategy: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := createSampler(tt.strategy, tt.ratio)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var _ sdktrace.Sampler = sampler
			if sampler.Description() == "" {
				t.Error("expected sampler description")
			}
		})
	}
}
