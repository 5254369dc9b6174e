package fixed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/hearth/internal/domain"
)

func TestFloatParam(t *testing.T) {
	t.Run("should accept numeric types produced by JSON and YAML decoding", func(t *testing.T) {
		params := map[string]any{
			"f64": float64(0.7),
			"f32": float32(0.5),
			"i":   int(2),
			"i64": int64(3),
		}

		for key, want := range map[string]float64{"f64": 0.7, "f32": 0.5, "i": 2, "i64": 3} {
			got, ok := floatParam(params, key)
			require.True(t, ok, "key %s", key)
			require.InDelta(t, want, got, 0.0001)
		}
	})

	t.Run("should report absence and non-numeric values", func(t *testing.T) {
		params := map[string]any{"s": "0.7"}

		_, ok := floatParam(params, "missing")
		require.False(t, ok)

		_, ok = floatParam(params, "s")
		require.False(t, ok)
	})
}

func TestIntParam(t *testing.T) {
	t.Run("should truncate fractional values", func(t *testing.T) {
		got, ok := intParam(map[string]any{"max_tokens": float64(300.0)}, "max_tokens")
		require.True(t, ok)
		require.Equal(t, 300, got)
	})
}

func TestFixedConstructors(t *testing.T) {
	withKey := domain.CredentialSet{domain.FieldAPIKey: "test-key"}

	t.Run("should reject missing API keys", func(t *testing.T) {
		_, err := NewOpenAIClient(domain.CredentialSet{}, domain.ClientOptions{})
		require.Error(t, err)

		_, err = NewClaudeClient(domain.CredentialSet{}, domain.ClientOptions{})
		require.Error(t, err)

		_, err = NewWatsonXClient(domain.CredentialSet{}, domain.ClientOptions{}, nil)
		require.Error(t, err)
	})

	t.Run("should require a project id for WatsonX", func(t *testing.T) {
		_, err := NewWatsonXClient(withKey, domain.ClientOptions{}, nil)
		require.Error(t, err)

		client, err := NewWatsonXClient(domain.CredentialSet{
			domain.FieldAPIKey:    "test-key",
			domain.FieldProjectID: "proj",
		}, domain.ClientOptions{}, nil)
		require.NoError(t, err)
		require.Equal(t, "watsonx", client.ProviderID())
		require.Equal(t, Variant, client.Variant())
	})

	t.Run("should apply default models", func(t *testing.T) {
		openai, err := NewOpenAIClient(withKey, domain.ClientOptions{})
		require.NoError(t, err)
		require.Equal(t, openAIDefaultModel, openai.model)

		claude, err := NewClaudeClient(withKey, domain.ClientOptions{Model: "claude-3-opus-20240229"})
		require.NoError(t, err)
		require.Equal(t, "claude-3-opus-20240229", claude.model)
	})
}
