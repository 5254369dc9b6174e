package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey holds the unique request identifier.
	RequestIDKey contextKey = "request_id"

	// ProviderKey holds the provider id for this request.
	ProviderKey contextKey = "provider"

	// ClientVariantKey holds the client variant serving this request.
	ClientVariantKey contextKey = "client_variant"
)

// WithRequestID injects request ID into context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithProvider injects provider id into context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// WithClientVariant injects the selected client variant into context.
func WithClientVariant(ctx context.Context, variant string) context.Context {
	return context.WithValue(ctx, ClientVariantKey, variant)
}

// GetRequestID extracts request ID from context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetProvider extracts provider id from context.
func GetProvider(ctx context.Context) string {
	if provider, ok := ctx.Value(ProviderKey).(string); ok {
		return provider
	}
	return ""
}

// GetClientVariant extracts the client variant from context.
func GetClientVariant(ctx context.Context) string {
	if variant, ok := ctx.Value(ClientVariantKey).(string); ok {
		return variant
	}
	return ""
}

// GenerateRequestID generates a unique request identifier (UUID).
func GenerateRequestID() string {
	return uuid.New().String()
}
