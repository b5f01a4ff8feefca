// Package types defines the JSON bodies exchanged on the relay's HTTP API.
package types
