// Package telemetry groups the relay's observability packages.
//
//   - logging: slog-based structured logging with key redaction and
//     request-scoped fields
//   - metrics: Prometheus counters and histograms for chat traffic
//   - tracing: OpenTelemetry spans around routing and provider calls
//   - health: liveness, readiness and version endpoints
//
// Each package is independent; the server wires them together at startup.
package telemetry
