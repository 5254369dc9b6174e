package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/davidbz/hearth/internal/config"
)

// CORS builds the cross-origin policy middleware from configuration. The
// request id header written by Trace is exposed so browser callers can
// correlate a failed generation with the server logs.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	policy := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return policy.Handler
}
