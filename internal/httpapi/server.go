package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/hearth/internal/config"
	"github.com/davidbz/hearth/internal/httpapi/middleware"
	"github.com/davidbz/hearth/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server (DI constructor).
func NewServer(
	cfg *config.ServerConfig,
	handler *Handler,
	middlewares middleware.Middleware,
) *Server {
	return &Server{
		config:      *cfg,
		handler:     handler,
		middlewares: middlewares,
		srv:         nil,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Register routes.
	mux.HandleFunc("POST /v1/generate", s.handler.HandleGenerate)
	mux.HandleFunc("GET /v1/providers", s.handler.HandleListProviders)
	mux.HandleFunc("POST /v1/providers", s.handler.HandleRegisterProvider)
	mux.HandleFunc("DELETE /v1/providers/{id}", s.handler.HandleRemoveProvider)
	mux.HandleFunc("POST /v1/bundles/validate", s.handler.HandleValidateBundle)
	mux.HandleFunc("POST /v1/bundles/generate", s.handler.HandleGenerateFromBundle)
	mux.HandleFunc("POST /v1/bundles/snippet", s.handler.HandleBundleSnippet)
	mux.HandleFunc("POST /v1/bundles/export", s.handler.HandleExportBundle)
	mux.HandleFunc("GET /health", s.handler.HandleHealth)

	// Apply middleware chain.
	handlerWithMiddleware := s.middlewares(mux)

	// Create server with timeouts.
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      handlerWithMiddleware,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
