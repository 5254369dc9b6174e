package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/hearth/internal/config"
	"github.com/davidbz/hearth/internal/httpapi/middleware"
)

func corsTestConfig() *config.CORSConfig {
	return &config.CORSConfig{
		AllowedOrigins:   []string{"https://dashboard.example"},
		AllowedMethods:   []string{"GET", "POST", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

func TestCORS(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("should answer preflight with the configured policy", func(t *testing.T) {
		handler := middleware.CORS(corsTestConfig())(okHandler)

		req := httptest.NewRequest(http.MethodOptions, "/v1/generate", nil)
		req.Header.Set("Origin", "https://dashboard.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, "https://dashboard.example", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("should expose the request id header on actual responses", func(t *testing.T) {
		handler := middleware.CORS(corsTestConfig())(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://dashboard.example")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, "X-Request-Id", rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("should pass requests through untouched when config is nil", func(t *testing.T) {
		handler := middleware.CORS(nil)(okHandler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
