package routing

import (
	"sync"
	"sync/atomic"
	"time"
)

// AtomicRoutingStats implements thread-safe routing statistics using atomic operations.
// All counters are updated atomically for lock-free performance.
type AtomicRoutingStats struct {
	// totalRequests is the total number of routing requests processed
	totalRequests atomic.Int64

	// requestsPerProvider tracks requests routed to each provider
	requestsPerProvider sync.Map // map[string]*atomic.Int64

	// errorsPerKind tracks failures by error kind
	errorsPerKind sync.Map // map[string]*atomic.Int64

	// errors is the total number of routing errors
	errors atomic.Int64

	// startTime is when the tracker was created
	startTime time.Time
}

// NewAtomicRoutingStats creates a new atomic routing statistics tracker.
func NewAtomicRoutingStats() *AtomicRoutingStats {
	return &AtomicRoutingStats{
		startTime: time.Now(),
	}
}

// IncrementTotal increments the total request counter.
func (s *AtomicRoutingStats) IncrementTotal() {
	s.totalRequests.Add(1)
}

// IncrementProvider increments the counter for a specific provider.
func (s *AtomicRoutingStats) IncrementProvider(provider string) {
	increment(&s.requestsPerProvider, provider)
}

// IncrementErrors increments the error counter and the counter for kind.
func (s *AtomicRoutingStats) IncrementErrors(kind string) {
	s.errors.Add(1)
	increment(&s.errorsPerKind, kind)
}

func increment(m *sync.Map, key string) {
	val, _ := m.LoadOrStore(key, &atomic.Int64{})
	val.(*atomic.Int64).Add(1)
}

func snapshot(m *sync.Map) map[string]int64 {
	out := make(map[string]int64)
	m.Range(func(key, value interface{}) bool {
		out[key.(string)] = value.(*atomic.Int64).Load()
		return true
	})
	return out
}

// Snapshot returns a point-in-time snapshot of the statistics.
// The returned RoutingStats struct is safe to read without locks.
func (s *AtomicRoutingStats) Snapshot() *RoutingStats {
	return &RoutingStats{
		TotalRequests:       s.totalRequests.Load(),
		RequestsPerProvider: snapshot(&s.requestsPerProvider),
		ErrorsPerKind:       snapshot(&s.errorsPerKind),
		Errors:              s.errors.Load(),
		Since:               s.startTime,
	}
}
