package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/hearth/internal/config"
	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/provider/registry"
)

func TestLoad(t *testing.T) {
	t.Run("should apply defaults when environment is empty", func(t *testing.T) {
		cfg := config.Load()

		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 60, cfg.Server.WriteTimeout)
		require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		require.True(t, cfg.CORS.AllowCredentials)
		require.False(t, cfg.Redis.Enabled)
		require.Equal(t, "localhost:6379", cfg.Redis.Addr)
		require.False(t, cfg.Providers.LegacyFixedClients)
		require.Empty(t, cfg.Proxy.Endpoint)
	})

	t.Run("should read overrides from environment", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("PROXY_ENDPOINT", "https://proxy.internal")
		t.Setenv("CACHE_ENABLED", "true")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("LEGACY_FIXED_CLIENTS", "true")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg := config.Load()

		require.Equal(t, 9090, cfg.Server.Port)
		require.Equal(t, "https://proxy.internal", cfg.Proxy.Endpoint)
		require.True(t, cfg.Redis.Enabled)
		require.Equal(t, "redis:6379", cfg.Redis.Addr)
		require.True(t, cfg.Providers.LegacyFixedClients)
		require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	})
}

func TestCredentialsFor(t *testing.T) {
	t.Run("should map provider keys to credential fields", func(t *testing.T) {
		creds := config.CredentialsConfig{
			OpenAIAPIKey:     "sk-openai",
			WatsonXAPIKey:    "wx-key",
			WatsonXProjectID: "wx-proj",
		}

		openai := creds.For(registry.ProviderOpenAI)
		require.Equal(t, "sk-openai", openai.APIKey())

		watsonx := creds.For(registry.ProviderWatsonX)
		require.Equal(t, "wx-key", watsonx.APIKey())
		require.Equal(t, "wx-proj", watsonx.ProjectID())
	})

	t.Run("should omit unset fields", func(t *testing.T) {
		creds := config.CredentialsConfig{}

		set := creds.For(registry.ProviderGemini)
		require.Empty(t, set)
		_, hasKey := set[domain.FieldAPIKey]
		require.False(t, hasKey)
	})

	t.Run("should return empty set for unknown provider", func(t *testing.T) {
		creds := config.CredentialsConfig{OpenAIAPIKey: "sk"}
		require.Empty(t, creds.For("acme"))
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	t.Run("should expose pointers into the parsed config", func(t *testing.T) {
		cfg := config.Load()
		deps := config.ParseDependenciesConfig(cfg)

		require.Same(t, &cfg.Server, deps.ServerConfig)
		require.Same(t, &cfg.Proxy, deps.ProxyConfig)
		require.Same(t, &cfg.Credentials, deps.CredentialsConfig)
	})
}
