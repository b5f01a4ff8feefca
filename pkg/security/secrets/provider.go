// Package secrets resolves provider credentials from pluggable sources.
package secrets

import "context"

// Source retrieves a credential by key.
//
// An absent credential is reported as an empty string with a nil error so
// callers can distinguish "not configured" from "backend failed". Sources
// are read on every call and must not cache values.
type Source interface {
	// Lookup returns the value stored under key.
	Lookup(ctx context.Context, key string) (string, error)

	// Name returns the source name (env, file, ssm, static, chain).
	Name() string
}
