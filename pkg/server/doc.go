// Package server runs the relay's HTTP listener.
//
// It mounts the API routes, the Prometheus endpoint and the optional static
// directory on one mux, wraps them in the middleware chain and manages the
// listener lifecycle:
//
//	POST /api/chat      chat request, routed to the selected provider
//	GET  /api/health    liveness: {"ok": true, "time": ...}
//	GET  /api/ready     readiness checks (503 when any fails)
//	GET  /api/version   build information
//	GET  /metrics       Prometheus metrics (telemetry.metrics.path)
//	GET  /...           files from server.static_dir, when it exists
//
// Unknown /api/ paths answer 404 {"error": "not found"}.
//
// Start blocks until the context is cancelled or SIGINT/SIGTERM arrives,
// then drains in-flight requests within server.shutdown_timeout. With
// security.tls.enabled the listener serves HTTPS and reloads its
// certificate when the files change.
package server
