// Package routing dispatches chat requests to provider adapters.
//
// A DefaultRouter holds a dispatch table with one adapter per supported
// provider. Route looks up the adapter by exact provider ID, forwards the
// messages and generation parameters unmodified, and returns the adapter's
// reply or error unchanged. Unknown providers fail with
// *providers.UnsupportedProviderError without any outbound call.
//
// Each Route call is counted in RoutingStats, recorded on the metrics
// collector (chat_requests_total, provider_latency_seconds,
// provider_errors_total) and wrapped in a "router.Route" span. None of this
// changes the result.
//
// Swappable lets a configuration reload install a new router atomically:
//
//	active := routing.NewSwappable(router)
//	// on reload
//	next, err := routing.NewFromConfig(newCfg, chain, opts...)
//	if err == nil {
//	    active.Swap(next)
//	}
package routing
