// Package tracing provides OpenTelemetry distributed tracing for the relay.
//
// # Overview
//
// Every inbound request gets a server span from HTTPMiddleware. The router
// adds a "router.Route" child span, and the provider client injects the
// current span into the outbound call as a W3C traceparent header, so a
// provider that participates in tracing shows up under the same trace.
//
// # Trace Context Propagation
//
// W3C Trace Context (https://www.w3.org/TR/trace-context/) and Baggage
// propagators are installed globally by New, whether or not spans are
// recorded:
//
//	traceparent: 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//
// # Sampling Strategies
//
//   - always: sample all traces
//   - never: sample no traces
//   - ratio: sample a fraction of root traces (sample_ratio)
//
// All strategies respect the parent's sampling decision.
//
// # Export
//
// Spans are exported over OTLP/gRPC to telemetry.tracing.endpoint in
// batches. The connection is established lazily.
//
// # Span Attributes
//
// Chat spans carry relay.provider, relay.messages, relay.max_tokens and
// relay.temperature. Failures add relay.error.kind. Message contents and
// credentials are never recorded.
//
// # Basic Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
//
//	handler = tracer.HTTPMiddleware(handler)
package tracing
