package routing

import "time"

// RoutingStats contains statistics about routing decisions.
type RoutingStats struct {
	// TotalRequests is the total number of Route calls.
	TotalRequests int64

	// RequestsPerProvider tracks calls dispatched to each adapter.
	// Key: provider ID, Value: request count
	RequestsPerProvider map[string]int64

	// ErrorsPerKind tracks failures by providers.Kind.
	// Key: error kind, Value: failure count
	ErrorsPerKind map[string]int64

	// Errors is the total number of failed Route calls.
	Errors int64

	// Since is when counting started.
	Since time.Time
}
