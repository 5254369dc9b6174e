package fixed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/hearth/internal/domain"
)

func watsonxTestClient(t *testing.T, server *httptest.Server) *WatsonXClient {
	t.Helper()
	client, err := NewWatsonXClient(domain.CredentialSet{
		domain.FieldAPIKey:    "wx-key",
		domain.FieldProjectID: "wx-proj",
	}, domain.ClientOptions{}, server.Client())
	require.NoError(t, err)
	client.baseURL = server.URL
	return client
}

func TestWatsonXGenerate(t *testing.T) {
	t.Run("should send versioned request and extract generated text", func(t *testing.T) {
		var captured watsonxRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/ml/v1/text/generation", r.URL.Path)
			require.Equal(t, watsonxAPIVersion, r.URL.Query().Get("version"))
			require.Equal(t, "Bearer wx-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": []any{map[string]any{"generated_text": "granite says hi"}},
			})
		}))
		defer server.Close()

		client := watsonxTestClient(t, server)

		text, err := client.Generate(context.Background(), "Hello")
		require.NoError(t, err)
		require.Equal(t, "granite says hi", text)

		require.Equal(t, "Hello", captured.Input)
		require.Equal(t, watsonxDefaultModel, captured.ModelID)
		require.Equal(t, "wx-proj", captured.ProjectID)
	})

	t.Run("should classify errors using the provider message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"errors": []any{map[string]any{"message": "project access denied"}},
			})
		}))
		defer server.Close()

		client := watsonxTestClient(t, server)

		_, err := client.Generate(context.Background(), "Hello")

		var authErr *domain.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, "project access denied", authErr.Message)
	})

	t.Run("should fail with empty response error on blank generated text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		}))
		defer server.Close()

		client := watsonxTestClient(t, server)

		_, err := client.Generate(context.Background(), "Hello")

		var emptyErr *domain.EmptyResponseError
		require.ErrorAs(t, err, &emptyErr)
	})
}
