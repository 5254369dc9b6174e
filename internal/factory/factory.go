// Package factory selects and constructs the right ProviderClient variant for
// a request. The selection policy itself is a pure function over a
// capabilities value; the network probe feeding it is an injected
// collaborator, so policy and probing are tested separately.
package factory

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/davidbz/hearth/internal/bundle"
	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/observability"
	"github.com/davidbz/hearth/internal/provider/declarative"
	"github.com/davidbz/hearth/internal/provider/fixed"
	"github.com/davidbz/hearth/internal/provider/loopback"
	"github.com/davidbz/hearth/internal/provider/registry"
	"github.com/davidbz/hearth/internal/provider/remoteproxy"
)

// Config controls client selection.
type Config struct {
	// ProxyEndpoint, when set, is probed and preferred over building clients
	// locally; credentials then never reach this process.
	ProxyEndpoint string

	// LegacyFixedClients routes the built-in providers through their
	// hand-written clients instead of the declarative engine.
	LegacyFixedClients bool
}

// Capabilities is everything the selection policy needs to know about one
// request. Assembling it involves I/O (the proxy probe); deciding on it does not.
type Capabilities struct {
	ProxyConfigured       bool
	ProxyHealthy          bool
	DescriptionRegistered bool
	CredentialsPresent    bool
	BuiltinProvider       bool
	LegacyFixedEnabled    bool
	LoopbackProvider      bool
}

// SelectVariant is the pure selection policy: proxy when reachable, loopback
// for the loopback provider, otherwise a locally built client for a
// registered description with credentials.
func SelectVariant(caps Capabilities) (string, error) {
	switch {
	case caps.ProxyConfigured && caps.ProxyHealthy:
		return remoteproxy.Variant, nil
	case caps.LoopbackProvider:
		return loopback.Variant, nil
	case !caps.DescriptionRegistered:
		return "", &domain.UnsupportedProviderError{Reason: "no declarative description registered"}
	case !caps.CredentialsPresent:
		return "", &domain.UnsupportedProviderError{Reason: "required credentials missing or blank"}
	case caps.BuiltinProvider && caps.LegacyFixedEnabled:
		return fixed.Variant, nil
	default:
		return declarative.Variant, nil
	}
}

// Factory implements domain.ClientFactory.
type Factory struct {
	registry   *registry.Registry
	health     domain.HealthChecker
	cfg        Config
	httpClient *http.Client
}

// NewFactory creates a client factory (DI constructor). The HTTP client is
// shared by all constructed declarative and proxy clients.
func NewFactory(reg *registry.Registry, health domain.HealthChecker, cfg Config, httpClient *http.Client) *Factory {
	return &Factory{
		registry:   reg,
		health:     health,
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// Create builds a client for a registered provider following the selection
// policy. It never constructs a client with missing credentials.
func (f *Factory) Create(
	ctx context.Context,
	providerID string,
	creds domain.CredentialSet,
	opts domain.ClientOptions,
) (domain.ProviderClient, error) {
	if providerID == "" {
		return nil, &domain.UnsupportedProviderError{Reason: "provider id cannot be empty"}
	}

	desc, registered := f.registry.Get(ctx, providerID)
	caps := Capabilities{
		ProxyConfigured:       f.cfg.ProxyEndpoint != "",
		DescriptionRegistered: registered,
		CredentialsPresent:    registered && credentialsPresent(desc, creds),
		BuiltinProvider:       f.registry.IsBuiltin(providerID),
		LegacyFixedEnabled:    f.cfg.LegacyFixedClients,
		LoopbackProvider:      providerID == loopback.ProviderID,
	}
	if caps.ProxyConfigured {
		caps.ProxyHealthy = f.health != nil && f.health.Healthy(ctx, f.cfg.ProxyEndpoint)
	}

	variant, err := SelectVariant(caps)
	if err != nil {
		var unsupported *domain.UnsupportedProviderError
		if errors.As(err, &unsupported) {
			return nil, &domain.UnsupportedProviderError{ProviderID: providerID, Reason: unsupported.Reason}
		}
		return nil, err
	}

	observability.FromContext(ctx).Debug("client variant selected",
		observability.String("provider", providerID),
		observability.String("variant", variant))

	switch variant {
	case remoteproxy.Variant:
		return remoteproxy.NewClient(f.cfg.ProxyEndpoint, providerID, opts, f.httpClient)
	case loopback.Variant:
		return loopback.NewClient(), nil
	case fixed.Variant:
		return f.createFixed(ctx, providerID, creds, opts)
	default:
		return declarative.NewClient(desc, creds, opts, f.httpClient)
	}
}

// CreateFromPortableConfig rehydrates a client from an exported bundle. A
// bundle still carrying placeholder credentials parses fine but cannot drive a
// live call, so it is rejected here.
func (f *Factory) CreateFromPortableConfig(ctx context.Context, cfg *domain.PortableConfig) (domain.ProviderClient, error) {
	if cfg == nil {
		return nil, &domain.UnsupportedProviderError{Reason: "portable config cannot be nil"}
	}
	if cfg.ProviderID == "" {
		return nil, &domain.UnsupportedProviderError{Reason: "portable config has no provider id"}
	}
	if bundle.HasPlaceholderCredentials(cfg.KeyData) {
		return nil, &domain.UnsupportedProviderError{
			ProviderID: cfg.ProviderID,
			Reason:     "portable config still contains placeholder credentials",
		}
	}

	return f.Create(ctx, cfg.ProviderID, domain.CredentialSet(cfg.KeyData), domain.ClientOptions{
		Model:      cfg.Model,
		Parameters: cfg.Parameters,
	})
}

func (f *Factory) createFixed(
	ctx context.Context,
	providerID string,
	creds domain.CredentialSet,
	opts domain.ClientOptions,
) (domain.ProviderClient, error) {
	switch providerID {
	case registry.ProviderOpenAI:
		return fixed.NewOpenAIClient(creds, opts)
	case registry.ProviderClaude:
		return fixed.NewClaudeClient(creds, opts)
	case registry.ProviderGemini:
		return fixed.NewGeminiClient(ctx, creds, opts)
	case registry.ProviderWatsonX:
		return fixed.NewWatsonXClient(creds, opts, f.httpClient)
	default:
		return nil, &domain.UnsupportedProviderError{
			ProviderID: providerID,
			Reason:     "no fixed-logic client exists for this provider",
		}
	}
}

// credentialsPresent checks the fields the description actually requires: the
// API key always, the project id only when the description writes one.
func credentialsPresent(desc *domain.APIDescription, creds domain.CredentialSet) bool {
	if strings.TrimSpace(creds.APIKey()) == "" {
		return false
	}
	if desc.ProjectIDJSONPath != "" && strings.TrimSpace(creds.ProjectID()) == "" {
		return false
	}
	return true
}
