// Package config loads gateway configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/provider/registry"
)

// Config represents the gateway configuration.
type Config struct {
	Server      ServerConfig
	CORS        CORSConfig
	Proxy       ProxyConfig
	Redis       RedisConfig
	Providers   ProvidersConfig
	Credentials CredentialsConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"60"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// ProxyConfig contains the optional trusted remote proxy settings. When an
// endpoint is configured and healthy, all generation requests are forwarded
// there and credentials never reach this process.
type ProxyConfig struct {
	Endpoint string `env:"PROXY_ENDPOINT"`
}

// RedisConfig contains the optional response cache settings.
type RedisConfig struct {
	Enabled  bool   `env:"CACHE_ENABLED"  envDefault:"false"`
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
}

// ProvidersConfig controls provider registration and client selection.
type ProvidersConfig struct {
	// File optionally points to a YAML file of custom provider descriptions
	// loaded at startup.
	File string `env:"PROVIDERS_FILE"`

	// LegacyFixedClients routes built-in providers through their hand-written
	// clients instead of the declarative engine.
	LegacyFixedClients bool `env:"LEGACY_FIXED_CLIENTS" envDefault:"false"`
}

// CredentialsConfig holds server-side default credentials per built-in
// provider. Request-supplied credentials always take precedence; these only
// fill gaps for deployments that hold their own keys.
type CredentialsConfig struct {
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	ClaudeAPIKey     string `env:"CLAUDE_API_KEY"`
	WatsonXAPIKey    string `env:"WATSONX_API_KEY"`
	WatsonXProjectID string `env:"WATSONX_PROJECT_ID"`
}

// For returns the configured default credential set for a provider, which may
// be empty.
func (c *CredentialsConfig) For(providerID string) domain.CredentialSet {
	creds := domain.CredentialSet{}
	switch providerID {
	case registry.ProviderOpenAI:
		if c.OpenAIAPIKey != "" {
			creds[domain.FieldAPIKey] = c.OpenAIAPIKey
		}
	case registry.ProviderGemini:
		if c.GeminiAPIKey != "" {
			creds[domain.FieldAPIKey] = c.GeminiAPIKey
		}
	case registry.ProviderClaude:
		if c.ClaudeAPIKey != "" {
			creds[domain.FieldAPIKey] = c.ClaudeAPIKey
		}
	case registry.ProviderWatsonX:
		if c.WatsonXAPIKey != "" {
			creds[domain.FieldAPIKey] = c.WatsonXAPIKey
		}
		if c.WatsonXProjectID != "" {
			creds[domain.FieldProjectID] = c.WatsonXProjectID
		}
	}
	return creds
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*ProxyConfig
	*RedisConfig
	*ProvidersConfig
	*CredentialsConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Proxy,
		&cfg.Redis,
		&cfg.Providers,
		&cfg.Credentials,
	}
}
