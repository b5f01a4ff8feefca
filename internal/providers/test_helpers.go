package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercator-hq/relay/pkg/providers"
)

// TestCredentials is a credential source backed by a fixed map.
type TestCredentials map[string]string

// Lookup implements providers.CredentialSource.
func (c TestCredentials) Lookup(_ context.Context, key string) (string, error) {
	return c[key], nil
}

// TestMessages builds a conversation from alternating role/content pairs.
func TestMessages(pairs ...string) []providers.ChatMessage {
	msgs := make([]providers.ChatMessage, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		msgs = append(msgs, providers.ChatMessage{Role: pairs[i], Content: pairs[i+1]})
	}
	return msgs
}

// UserMessage returns a single user message conversation.
func UserMessage(content string) []providers.ChatMessage {
	return TestMessages("user", content)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorAs fails the test unless err matches target via errors.As.
func AssertErrorAs(t *testing.T, err error, target interface{}) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.As(err, target) {
		t.Fatalf("expected error of type %T, got %T: %v", target, err, err)
	}
}

// WithTimeout runs a function with a timeout context.
func WithTimeout(t *testing.T, timeout time.Duration, fn func(ctx context.Context)) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		fn(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timeout after %s", timeout)
	}
}
