package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCacheMiss indicates no cached result exists for a request.
var ErrCacheMiss = errors.New("cache miss")

// ConfigurationError wraps a path or template mismatch encountered while
// building a request. Always a provider-definition bug, never retried.
type ConfigurationError struct {
	ProviderID string
	Reason     string
	Err        error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s misconfigured: %s: %v", e.ProviderID, e.Reason, e.Err)
	}
	return fmt.Sprintf("provider %s misconfigured: %s", e.ProviderID, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnsupportedProviderError indicates no client variant can be constructed for
// the requested provider.
type UnsupportedProviderError struct {
	ProviderID string
	Reason     string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider %s: %s", e.ProviderID, e.Reason)
}

// EmptyResponseError indicates the provider responded but the declared
// response path yields no usable text. The raw body is kept for diagnostics.
type EmptyResponseError struct {
	ProviderID string
	Path       string
	RawBody    []byte
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("provider %s: no text found in response at path %q", e.ProviderID, e.Path)
}

// TransportError covers network failures, timeouts, and non-2xx statuses that
// don't map to a more specific classification. A caller may retry with backoff.
type TransportError struct {
	ProviderID string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s: transport failure (status %d): %s", e.ProviderID, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("provider %s: transport failure: %v", e.ProviderID, e.Err)
	}
	return fmt.Sprintf("provider %s: transport failure: %s", e.ProviderID, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthenticationError indicates the provider rejected the supplied credentials
// (401/403).
type AuthenticationError struct {
	ProviderID string
	StatusCode int
	Message    string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("provider %s: authentication failed (status %d): %s", e.ProviderID, e.StatusCode, e.Message)
}

// RateLimitError indicates the provider throttled the request (429).
type RateLimitError struct {
	ProviderID string
	StatusCode int
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("provider %s: rate limited: %s", e.ProviderID, e.Message)
}

// ServerUnavailableError indicates a provider-side failure (5xx).
type ServerUnavailableError struct {
	ProviderID string
	StatusCode int
	Message    string
}

func (e *ServerUnavailableError) Error() string {
	return fmt.Sprintf("provider %s: server unavailable (status %d): %s", e.ProviderID, e.StatusCode, e.Message)
}

// ClassifyStatus maps a non-2xx HTTP status to the error taxonomy so callers
// can implement differentiated retry policies. All client variants share this
// classifier.
func ClassifyStatus(providerID string, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthenticationError{ProviderID: providerID, StatusCode: statusCode, Message: message}
	case statusCode == http.StatusTooManyRequests:
		return &RateLimitError{ProviderID: providerID, StatusCode: statusCode, Message: message}
	case statusCode >= 500:
		return &ServerUnavailableError{ProviderID: providerID, StatusCode: statusCode, Message: message}
	default:
		return &TransportError{ProviderID: providerID, StatusCode: statusCode, Message: message}
	}
}
