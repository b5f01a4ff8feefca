package middleware

import (
	"net/http"
	"time"

	"mercator-hq/relay/pkg/telemetry/metrics"
)

// MetricsMiddleware records request count and duration per path and status.
// Paths not listed in routes, such as static files, are recorded as
// metrics.OtherLabel so the path label stays bounded.
func MetricsMiddleware(collector *metrics.Collector, routes ...string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		if !collector.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if _, ok := known[path]; !ok {
				path = metrics.OtherLabel
			}
			collector.RecordHTTPRequest(path, rw.statusCode, time.Since(start))
		})
	}
}
