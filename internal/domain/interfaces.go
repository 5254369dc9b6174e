package domain

import (
	"context"
	"time"
)

// ProviderClient is the single capability every client variant implements:
// send one prompt, get back generated text. Calls are independent and carry no
// session state; retry policy is a caller concern.
type ProviderClient interface {
	// Generate sends the prompt and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)

	// ProviderID returns the provider this client is bound to.
	ProviderID() string

	// Variant returns the client variant identifier (declarative, fixed,
	// remote-proxy, loopback).
	Variant() string
}

// ClientOptions carries per-client model and parameter overrides resolved at
// construction time, so Generate stays a plain prompt call.
type ClientOptions struct {
	Model      string
	Parameters map[string]any
}

// ClientFactory selects and constructs the correct ProviderClient variant.
type ClientFactory interface {
	// Create builds a client for a registered provider. It never constructs a
	// client with missing credentials.
	Create(ctx context.Context, providerID string, creds CredentialSet, opts ClientOptions) (ProviderClient, error)

	// CreateFromPortableConfig rehydrates a client from an exported bundle,
	// reusing the bundle's embedded provider identity and overrides.
	CreateFromPortableConfig(ctx context.Context, cfg *PortableConfig) (ProviderClient, error)
}

// DescriptionRegistry manages declarative provider descriptions. Built-ins are
// pre-registered; custom providers are added and removed through it at runtime.
type DescriptionRegistry interface {
	// Register adds a description after validating it.
	Register(ctx context.Context, desc *APIDescription) error

	// Get retrieves a description by provider id.
	Get(ctx context.Context, providerID string) (*APIDescription, bool)

	// Remove deletes a custom description. Built-ins cannot be removed.
	Remove(ctx context.Context, providerID string) error

	// List returns all registered descriptions.
	List(ctx context.Context) []*APIDescription
}

// HealthChecker probes whether a remote endpoint is reachable and willing to
// serve. Injected into the factory so selection policy stays a pure function.
type HealthChecker interface {
	Healthy(ctx context.Context, endpoint string) bool
}

// ResponseCache stores generation results keyed by request fingerprint.
type ResponseCache interface {
	// Get returns a cached result, or ErrCacheMiss.
	Get(ctx context.Context, key string) (*GenerationResult, error)

	// Set stores a result with a TTL.
	Set(ctx context.Context, key string, result *GenerationResult, ttl time.Duration) error
}

// EventPublisher publishes generation lifecycle events for observability.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data map[string]any)
}
