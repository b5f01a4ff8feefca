package logging

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestContextValues(t *testing.T) {
	ctx := WithProvider(WithRequestID(context.Background(), "req-1"), "anthropic")

	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-1")
	}
	if got := GetProvider(ctx); got != "anthropic" {
		t.Errorf("GetProvider() = %q, want %q", got, "anthropic")
	}

	ctx = WithRequestID(ctx, "req-2")
	if got := GetRequestID(ctx); got != "req-2" {
		t.Errorf("GetRequestID() after overwrite = %q, want %q", got, "req-2")
	}
}

func TestContextAttrs(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	tests := []struct {
		name string
		ctx  context.Context
		want map[string]string
	}{
		{
			name: "empty",
			ctx:  context.Background(),
			want: map[string]string{},
		},
		{
			name: "request fields",
			ctx:  WithProvider(WithRequestID(context.Background(), "req-9"), "openai"),
			want: map[string]string{"request_id": "req-9", "provider": "openai"},
		},
		{
			name: "active span",
			ctx:  trace.ContextWithSpanContext(WithRequestID(context.Background(), "req-3"), spanCtx),
			want: map[string]string{
				"request_id": "req-3",
				"trace_id":   "4bf92f3577b34da6a3ce929d0e0e4736",
				"span_id":    "00f067aa0ba902b7",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]string{}
			for _, a := range contextAttrs(tt.ctx) {
				got[a.Key] = a.Value.String()
			}
			if len(got) != len(tt.want) {
				t.Fatalf("contextAttrs() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}
