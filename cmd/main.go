package main

import (
	"context"
	"log"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	redicache "github.com/davidbz/hearth/internal/cache/redis"
	"github.com/davidbz/hearth/internal/config"
	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/factory"
	"github.com/davidbz/hearth/internal/httpapi"
	"github.com/davidbz/hearth/internal/httpapi/middleware"
	"github.com/davidbz/hearth/internal/observability"
	"github.com/davidbz/hearth/internal/provider/registry"
	"github.com/davidbz/hearth/internal/provider/remoteproxy"
)

const outboundTimeout = 60 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *httpapi.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Provider registry, with optional custom providers from file
	if err := container.Provide(func(cfg *config.ProvidersConfig, logger *zap.Logger) (*registry.Registry, error) {
		reg := registry.NewRegistry()
		if cfg.File != "" {
			count, err := reg.LoadFile(context.Background(), cfg.File)
			if err != nil {
				return nil, err
			}
			logger.Info("custom providers loaded",
				zap.String("file", cfg.File),
				zap.Int("count", count))
		}
		return reg, nil
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Shared outbound HTTP client
	if err := container.Provide(func() *http.Client {
		return &http.Client{Timeout: outboundTimeout}
	}); err != nil {
		log.Fatalf("Failed to provide HTTP client: %v", err)
	}

	// Proxy health checking and client factory
	if err := container.Provide(func() domain.HealthChecker {
		return remoteproxy.NewHealthChecker(nil)
	}); err != nil {
		log.Fatalf("Failed to provide health checker: %v", err)
	}
	if err := container.Provide(func(
		reg *registry.Registry,
		health domain.HealthChecker,
		proxyCfg *config.ProxyConfig,
		providersCfg *config.ProvidersConfig,
		httpClient *http.Client,
	) domain.ClientFactory {
		return factory.NewFactory(reg, health, factory.Config{
			ProxyEndpoint:      proxyCfg.Endpoint,
			LegacyFixedClients: providersCfg.LegacyFixedClients,
		}, httpClient)
	}); err != nil {
		log.Fatalf("Failed to provide client factory: %v", err)
	}

	// Optional Redis response cache
	if err := container.Provide(func(cfg *config.RedisConfig) domain.ResponseCache {
		if !cfg.Enabled {
			return nil
		}
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		return redicache.NewResponseCache(client)
	}); err != nil {
		log.Fatalf("Failed to provide response cache: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewGenerationService); err != nil {
		log.Fatalf("Failed to provide generation service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware: %v", err)
	}
	if err := container.Provide(httpapi.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(httpapi.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
