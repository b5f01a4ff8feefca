package secrets

import (
	"context"
	"os"
)

// EnvSource loads credentials from environment variables named after the
// credential key.
type EnvSource struct {
	lookupEnv func(string) (string, bool)
}

// NewEnvSource creates a source reading unprefixed environment variables.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookupEnv: os.LookupEnv}
}

// Lookup reads the variable on every call.
func (s *EnvSource) Lookup(_ context.Context, key string) (string, error) {
	lookup := s.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, _ := lookup(key)
	return value, nil
}

// Name returns the source name.
func (s *EnvSource) Name() string {
	return "env"
}
