// Package metrics provides Prometheus metrics collection for the relay.
//
// # Metrics
//
//   - relay_chat_requests_total{provider,outcome}
//   - relay_chat_request_duration_seconds{provider}
//   - relay_provider_latency_seconds{provider}
//   - relay_provider_errors_total{provider,error_type}
//   - relay_http_requests_total{path,status}
//   - relay_http_request_duration_seconds{path}
//
// Go runtime and process collectors are registered alongside them. The
// "relay" prefix is telemetry.metrics.namespace.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordChat("openai", "success", 850*time.Millisecond)
//	collector.RecordProviderError("gemini", "provider_http")
//
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// # Cardinality
//
// Provider labels come from a closed set; the router records anything else
// as "unsupported". HTTP path labels pass through a CardinalityLimiter and
// are folded into "other" past DefaultMaxCardinality distinct values.
package metrics
