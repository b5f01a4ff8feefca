package secrets

import "context"

// StaticSource serves credentials from a fixed map.
type StaticSource map[string]string

// Lookup returns the mapped value, or "" when absent.
func (s StaticSource) Lookup(_ context.Context, key string) (string, error) {
	return s[key], nil
}

// Name returns the source name.
func (s StaticSource) Name() string {
	return "static"
}
