// Package health serves the relay's probe endpoints.
//
//   - GET /api/health: liveness, always {"ok": true, "time": ...}
//   - GET /api/ready: readiness, runs the registered checks and returns 503
//     when any of them fails
//   - GET /api/version: build information
//
// Checks are registered by the server at startup:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("router", func(ctx context.Context) error {
//	    return router.Current().Validate()
//	})
//
// Checks run concurrently and each is bounded by the checker's timeout.
package health
