// Package middleware provides the HTTP middleware wrapped around the relay's
// routes.
//
// The server chains them outermost first:
//
//	handler = Chain(mux,
//	    RequestIDMiddleware,
//	    tracer.HTTPMiddleware,
//	    LoggingMiddleware(logger),
//	    RecoveryMiddleware(logger),
//	    MetricsMiddleware(collector, routes...),
//	    SecurityHeadersMiddleware,
//	    CORSMiddleware(cfg.Server.CORS),
//	)
//
// Request ID and tracing run before logging so every log line for the
// request carries its request_id and trace_id. Recovery sits inside logging
// so a recovered panic is still logged as a 500.
package middleware
