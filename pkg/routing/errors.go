package routing

import (
	"errors"
	"fmt"
	"strings"

	"mercator-hq/relay/pkg/providers"
)

// Construction errors that can be checked with errors.Is().
var (
	// ErrDuplicateAdapter is returned when two adapters claim the same provider.
	ErrDuplicateAdapter = errors.New("duplicate adapter")

	// ErrUnknownAdapter is returned when an adapter serves a provider outside
	// the supported set.
	ErrUnknownAdapter = errors.New("adapter for unknown provider")

	// ErrIncompleteDispatch is returned when a supported provider has no adapter.
	ErrIncompleteDispatch = errors.New("dispatch table is incomplete")
)

// DuplicateAdapterError is returned by New when an adapter's provider is
// already registered.
type DuplicateAdapterError struct {
	// Provider is the provider registered twice.
	Provider providers.ProviderID
}

// Error implements the error interface.
func (e *DuplicateAdapterError) Error() string {
	return fmt.Sprintf("adapter for provider %q registered twice", e.Provider)
}

// Is implements error matching for errors.Is().
func (e *DuplicateAdapterError) Is(target error) bool {
	return target == ErrDuplicateAdapter
}

// UnknownAdapterError is returned by New when an adapter reports an ID that
// is not a supported provider.
type UnknownAdapterError struct {
	// Provider is the unrecognized provider ID.
	Provider providers.ProviderID
}

// Error implements the error interface.
func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("adapter for unknown provider %q", e.Provider)
}

// Is implements error matching for errors.Is().
func (e *UnknownAdapterError) Is(target error) bool {
	return target == ErrUnknownAdapter
}

// IncompleteDispatchError is returned by Validate when one or more supported
// providers lack an adapter.
type IncompleteDispatchError struct {
	// Missing lists the providers without an adapter.
	Missing []providers.ProviderID
}

// Error implements the error interface.
func (e *IncompleteDispatchError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, id := range e.Missing {
		names = append(names, string(id))
	}
	return fmt.Sprintf("no adapter registered for providers: %s", strings.Join(names, ", "))
}

// Is implements error matching for errors.Is().
func (e *IncompleteDispatchError) Is(target error) bool {
	return target == ErrIncompleteDispatch
}
