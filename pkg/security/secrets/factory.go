package secrets

import (
	"context"
	"fmt"
)

// Source names accepted by Build.
const (
	SourceEnv  = "env"
	SourceFile = "file"
	SourceSSM  = "ssm"
)

// BuildOptions selects and configures the sources of a chain.
type BuildOptions struct {
	// Sources lists source names in lookup order. Empty means env only.
	Sources []string

	// FileDir is the directory used by the file source.
	FileDir string

	// SSMPrefix is the parameter path prefix used by the ssm source.
	SSMPrefix string

	// NewSSM overrides SSM client construction (tests).
	NewSSM func(ctx context.Context, prefix string) (*SSMSource, error)
}

// Build constructs a Chain from opts.
func Build(ctx context.Context, opts BuildOptions) (*Chain, error) {
	names := opts.Sources
	if len(names) == 0 {
		names = []string{SourceEnv}
	}

	newSSM := opts.NewSSM
	if newSSM == nil {
		newSSM = NewSSMSourceFromEnvironment
	}

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		switch name {
		case SourceEnv:
			sources = append(sources, NewEnvSource())
		case SourceFile:
			if opts.FileDir == "" {
				return nil, fmt.Errorf("secrets: file source requires a directory")
			}
			sources = append(sources, NewFileSource(opts.FileDir))
		case SourceSSM:
			src, err := newSSM(ctx, opts.SSMPrefix)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		default:
			return nil, fmt.Errorf("secrets: unknown source %q", name)
		}
	}

	return NewChain(sources...), nil
}
