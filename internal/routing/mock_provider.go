package routing

import (
	"context"
	"sync"

	"mercator-hq/relay/pkg/providers"
)

// Call records the arguments of one Send invocation.
type Call struct {
	Messages    []providers.ChatMessage
	MaxTokens   int
	Temperature float64
}

// MockAdapter is a counting providers.Adapter for router tests.
type MockAdapter struct {
	id providers.ProviderID

	mu    sync.Mutex
	reply string
	err   error
	calls []Call
}

// NewMockAdapter creates a mock adapter for id that replies "mock response".
func NewMockAdapter(id providers.ProviderID) *MockAdapter {
	return &MockAdapter{
		id:    id,
		reply: "mock response",
	}
}

// SetReply sets the text returned by Send.
func (m *MockAdapter) SetReply(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply = reply
}

// SetError makes Send fail with err.
func (m *MockAdapter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// ID implements providers.Adapter.
func (m *MockAdapter) ID() providers.ProviderID {
	return m.id
}

// Send implements providers.Adapter.
func (m *MockAdapter) Send(ctx context.Context, messages []providers.ChatMessage, maxTokens int, temperature float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})

	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// CallCount returns the number of Send invocations.
func (m *MockAdapter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent Send invocation.
func (m *MockAdapter) LastCall() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// MockAdapters returns one mock adapter per supported provider, keyed by ID,
// plus the same adapters as a slice for routing.New.
func MockAdapters() (map[providers.ProviderID]*MockAdapter, []providers.Adapter) {
	byID := make(map[providers.ProviderID]*MockAdapter)
	var list []providers.Adapter
	for _, id := range providers.All() {
		m := NewMockAdapter(id)
		byID[id] = m
		list = append(list, m)
	}
	return byID, list
}
