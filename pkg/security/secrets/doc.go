/*
Package secrets resolves provider credentials from pluggable sources.

# Overview

Every outbound provider call looks its API key up by name (for example
OPENAI_API_KEY). The lookup goes through a Source, and the value is never
cached: rotating a key in the environment, a mounted file or Parameter Store
takes effect on the next request.

# Sources

  - EnvSource: process environment variables
  - FileSource: one file per key in a directory (Kubernetes-style mounts)
  - SSMSource: AWS Systems Manager Parameter Store, decrypted
  - StaticSource: a fixed map, for tests and one-off CLI use
  - Chain: tries sources in order, first non-empty value wins

# Absent vs failed

A Source returns ("", nil) when the key is simply not there. Errors are
reserved for backend failures (permission denied, network, insecure file
mode) and are propagated by Chain without trying later sources.

# Usage

	src := secrets.NewChain(
	    secrets.NewEnvSource(),
	    secrets.NewFileSource("/run/secrets"),
	)
	key, err := src.Lookup(ctx, "OPENAI_API_KEY")
*/
package secrets
