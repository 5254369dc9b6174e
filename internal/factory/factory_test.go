package factory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/factory"
	"github.com/davidbz/hearth/internal/provider/registry"
)

// stubHealthChecker reports a fixed health verdict and records probes.
type stubHealthChecker struct {
	healthy bool
	probed  []string
}

func (s *stubHealthChecker) Healthy(_ context.Context, endpoint string) bool {
	s.probed = append(s.probed, endpoint)
	return s.healthy
}

func openAICreds() domain.CredentialSet {
	return domain.CredentialSet{domain.FieldAPIKey: "sk-test"}
}

func TestSelectVariant(t *testing.T) {
	tests := []struct {
		name    string
		caps    factory.Capabilities
		variant string
		wantErr bool
	}{
		{
			name: "should prefer healthy proxy over everything",
			caps: factory.Capabilities{
				ProxyConfigured:       true,
				ProxyHealthy:          true,
				DescriptionRegistered: true,
				CredentialsPresent:    true,
			},
			variant: "remote-proxy",
		},
		{
			name: "should fall through when proxy configured but unhealthy",
			caps: factory.Capabilities{
				ProxyConfigured:       true,
				ProxyHealthy:          false,
				DescriptionRegistered: true,
				CredentialsPresent:    true,
			},
			variant: "declarative",
		},
		{
			name: "should pick loopback for the loopback provider",
			caps: factory.Capabilities{
				LoopbackProvider: true,
			},
			variant: "loopback",
		},
		{
			name:    "should reject unregistered provider",
			caps:    factory.Capabilities{},
			wantErr: true,
		},
		{
			name: "should reject registered provider with missing credentials",
			caps: factory.Capabilities{
				DescriptionRegistered: true,
			},
			wantErr: true,
		},
		{
			name: "should pick fixed client for builtin when legacy mode enabled",
			caps: factory.Capabilities{
				DescriptionRegistered: true,
				CredentialsPresent:    true,
				BuiltinProvider:       true,
				LegacyFixedEnabled:    true,
			},
			variant: "fixed",
		},
		{
			name: "should pick declarative for builtin when legacy mode disabled",
			caps: factory.Capabilities{
				DescriptionRegistered: true,
				CredentialsPresent:    true,
				BuiltinProvider:       true,
			},
			variant: "declarative",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			variant, err := factory.SelectVariant(tc.caps)
			if tc.wantErr {
				var unsupported *domain.UnsupportedProviderError
				require.ErrorAs(t, err, &unsupported)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.variant, variant)
		})
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("should build declarative client for builtin provider", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		client, err := f.Create(ctx, registry.ProviderOpenAI, openAICreds(), domain.ClientOptions{})
		require.NoError(t, err)
		require.Equal(t, registry.ProviderOpenAI, client.ProviderID())
		require.Equal(t, "declarative", client.Variant())
	})

	t.Run("should never build a client with blank credentials", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		_, err := f.Create(ctx, registry.ProviderOpenAI, domain.CredentialSet{domain.FieldAPIKey: "   "}, domain.ClientOptions{})

		var unsupported *domain.UnsupportedProviderError
		require.ErrorAs(t, err, &unsupported)
		require.Equal(t, registry.ProviderOpenAI, unsupported.ProviderID)
	})

	t.Run("should require project id when the description declares one", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		_, err := f.Create(ctx, registry.ProviderWatsonX, domain.CredentialSet{domain.FieldAPIKey: "k"}, domain.ClientOptions{})

		var unsupported *domain.UnsupportedProviderError
		require.ErrorAs(t, err, &unsupported)

		client, err := f.Create(ctx, registry.ProviderWatsonX, domain.CredentialSet{
			domain.FieldAPIKey:    "k",
			domain.FieldProjectID: "proj",
		}, domain.ClientOptions{})
		require.NoError(t, err)
		require.Equal(t, "declarative", client.Variant())
	})

	t.Run("should reject unknown provider", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		_, err := f.Create(ctx, "nope", openAICreds(), domain.ClientOptions{})

		var unsupported *domain.UnsupportedProviderError
		require.ErrorAs(t, err, &unsupported)
		require.Equal(t, "nope", unsupported.ProviderID)
	})

	t.Run("should reject empty provider id", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		_, err := f.Create(ctx, "", openAICreds(), domain.ClientOptions{})

		var unsupported *domain.UnsupportedProviderError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("should route through healthy proxy without credentials", func(t *testing.T) {
		health := &stubHealthChecker{healthy: true}
		f := factory.NewFactory(registry.NewRegistry(), health, factory.Config{
			ProxyEndpoint: "https://proxy.example.com",
		}, nil)

		client, err := f.Create(ctx, registry.ProviderOpenAI, nil, domain.ClientOptions{})
		require.NoError(t, err)
		require.Equal(t, "remote-proxy", client.Variant())
		require.Equal(t, []string{"https://proxy.example.com"}, health.probed)
	})

	t.Run("should fall back to declarative when proxy is down", func(t *testing.T) {
		health := &stubHealthChecker{healthy: false}
		f := factory.NewFactory(registry.NewRegistry(), health, factory.Config{
			ProxyEndpoint: "https://proxy.example.com",
		}, nil)

		client, err := f.Create(ctx, registry.ProviderOpenAI, openAICreds(), domain.ClientOptions{})
		require.NoError(t, err)
		require.Equal(t, "declarative", client.Variant())
	})

	t.Run("should not probe when no proxy configured", func(t *testing.T) {
		health := &stubHealthChecker{healthy: true}
		f := factory.NewFactory(registry.NewRegistry(), health, factory.Config{}, nil)

		_, err := f.Create(ctx, registry.ProviderOpenAI, openAICreds(), domain.ClientOptions{})
		require.NoError(t, err)
		require.Empty(t, health.probed)
	})

	t.Run("should build loopback client without credentials", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		client, err := f.Create(ctx, "loopback", nil, domain.ClientOptions{})
		require.NoError(t, err)
		require.Equal(t, "loopback", client.Variant())

		text, err := client.Generate(ctx, "ping")
		require.NoError(t, err)
		require.Equal(t, "Echo: ping", text)
	})

	t.Run("should build fixed client for builtin in legacy mode", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{
			LegacyFixedClients: true,
		}, nil)

		client, err := f.Create(ctx, registry.ProviderOpenAI, openAICreds(), domain.ClientOptions{})
		require.NoError(t, err)
		require.Equal(t, "fixed", client.Variant())
	})

	t.Run("should build declarative client for custom provider even in legacy mode", func(t *testing.T) {
		reg := registry.NewRegistry()
		require.NoError(t, reg.Register(ctx, &domain.APIDescription{
			ID:               "acme",
			DisplayName:      "Acme",
			BaseURL:          "https://api.acme.ai",
			EndpointPath:     "/v1/complete",
			Method:           "POST",
			AuthHeaderName:   "Authorization",
			PromptJSONPath:   "prompt",
			ResponseJSONPath: "text",
		}))

		f := factory.NewFactory(reg, nil, factory.Config{LegacyFixedClients: true}, nil)

		client, err := f.Create(ctx, "acme", openAICreds(), domain.ClientOptions{})
		require.NoError(t, err)
		require.Equal(t, "declarative", client.Variant())
	})
}

func TestCreateFromPortableConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("should build client from a complete bundle", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		client, err := f.CreateFromPortableConfig(ctx, &domain.PortableConfig{
			Version:    "1.0",
			ProviderID: registry.ProviderOpenAI,
			KeyData:    map[string]string{domain.FieldAPIKey: "sk-test"},
			Model:      "gpt-4o",
		})
		require.NoError(t, err)
		require.Equal(t, registry.ProviderOpenAI, client.ProviderID())
	})

	t.Run("should reject nil config", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		_, err := f.CreateFromPortableConfig(ctx, nil)

		var unsupported *domain.UnsupportedProviderError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("should reject config without provider id", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		_, err := f.CreateFromPortableConfig(ctx, &domain.PortableConfig{
			Version: "1.0",
			KeyData: map[string]string{domain.FieldAPIKey: "sk-test"},
		})

		var unsupported *domain.UnsupportedProviderError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("should reject placeholder credentials", func(t *testing.T) {
		f := factory.NewFactory(registry.NewRegistry(), nil, factory.Config{}, nil)

		_, err := f.CreateFromPortableConfig(ctx, &domain.PortableConfig{
			Version:    "1.0",
			ProviderID: registry.ProviderOpenAI,
			KeyData:    map[string]string{domain.FieldAPIKey: "YOUR_OPENAI_API_KEY"},
		})

		var unsupported *domain.UnsupportedProviderError
		require.ErrorAs(t, err, &unsupported)
		require.Contains(t, unsupported.Reason, "placeholder")
	})
}
