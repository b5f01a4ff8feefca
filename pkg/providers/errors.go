package providers

import (
	"errors"
	"fmt"
)

// UnsupportedProviderError is returned when a request names a provider
// outside the supported set. No outbound call is made.
type UnsupportedProviderError struct {
	// Provider is the identifier as supplied by the caller
	Provider string
}

// Error implements the error interface.
func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("Unsupported provider: %s", e.Provider)
}

// MissingCredentialError is returned when the credential for a provider is
// absent or empty. No outbound call is made.
type MissingCredentialError struct {
	// Key is the configuration key the credential was expected under
	Key string
}

// Error implements the error interface.
func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("Missing %s", e.Key)
}

// ProviderHTTPError represents a non-2xx response from a provider.
// Body holds the raw response text; it is never parsed.
type ProviderHTTPError struct {
	// Provider is the provider that rejected the call
	Provider ProviderID

	// Status is the HTTP status code
	Status int

	// Body is the raw response body
	Body string
}

// Error implements the error interface.
func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("%s error: %d %s", e.Provider.DisplayName(), e.Status, e.Body)
}

// MalformedResponseError represents a 2xx response whose body does not
// contain reply text at the expected location.
type MalformedResponseError struct {
	// Provider is the provider that returned the response
	Provider ProviderID

	// Reason describes what was missing
	Reason string

	// Cause is the underlying decode error (if any)
	Cause error
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error: malformed response: %s: %v", e.Provider.DisplayName(), e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s error: malformed response: %s", e.Provider.DisplayName(), e.Reason)
}

// Unwrap returns the underlying error for error chain support.
func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// TransportError represents a failure to complete the round trip at all:
// DNS, connection refused, TLS, or a cancelled context.
type TransportError struct {
	// Provider is the provider being called
	Provider ProviderID

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s error: request failed: %v", e.Provider.DisplayName(), e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a malformed inbound request.
type ValidationError struct {
	// Field is the name of the invalid field
	Field string

	// Message describes what is invalid about the field
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %q: %s", e.Field, e.Message)
}

// Error kinds reported by Kind.
const (
	KindUnsupportedProvider = "unsupported_provider"
	KindMissingCredential   = "missing_credential"
	KindProviderHTTP        = "provider_http"
	KindMalformedResponse   = "malformed_response"
	KindTransport           = "transport"
	KindValidation          = "validation"
	KindInternal            = "internal"
)

// Kind classifies err into a stable label for metrics and logs.
// It returns an empty string for a nil error.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var (
		unsupported *UnsupportedProviderError
		missing     *MissingCredentialError
		httpErr     *ProviderHTTPError
		malformed   *MalformedResponseError
		transport   *TransportError
		validation  *ValidationError
	)

	switch {
	case errors.As(err, &unsupported):
		return KindUnsupportedProvider
	case errors.As(err, &missing):
		return KindMissingCredential
	case errors.As(err, &httpErr):
		return KindProviderHTTP
	case errors.As(err, &malformed):
		return KindMalformedResponse
	case errors.As(err, &transport):
		return KindTransport
	case errors.As(err, &validation):
		return KindValidation
	default:
		return KindInternal
	}
}

// ConfigError represents an invalid adapter configuration.
// It is returned at construction time, never from Send.
type ConfigError struct {
	// Provider is the provider with invalid configuration
	Provider ProviderID

	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q configuration error for field %q: %s",
		e.Provider, e.Field, e.Message)
}
