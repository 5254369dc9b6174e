package bundle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/hearth/internal/bundle"
	"github.com/davidbz/hearth/internal/domain"
)

func snippetDescription() *domain.APIDescription {
	return &domain.APIDescription{
		ID:               "openai",
		DisplayName:      "OpenAI",
		BaseURL:          "https://api.openai.com",
		EndpointPath:     "/v1/chat/completions",
		Method:           "POST",
		Headers:          map[string]string{"Content-Type": "application/json"},
		AuthHeaderName:   "Authorization",
		AuthHeaderPrefix: "Bearer ",
		RequestBodyStructure: map[string]any{
			"messages": []any{map[string]any{"role": "user"}},
		},
		PromptJSONPath:   "messages[0].content",
		ModelJSONPath:    "model",
		ResponseJSONPath: "choices[0].message.content",
		DefaultModel:     "gpt-4o-mini",
	}
}

func snippetConfig() *domain.PortableConfig {
	return &domain.PortableConfig{
		Version:    bundle.Version,
		ProviderID: "openai",
		KeyData:    map[string]string{domain.FieldAPIKey: "YOUR_OPENAI_API_KEY"},
	}
}

func TestEmitSnippet(t *testing.T) {
	t.Run("should emit a curl command matching the mapped request", func(t *testing.T) {
		snippet, err := bundle.EmitSnippet(snippetDescription(), snippetConfig(), bundle.TargetCurl)
		require.NoError(t, err)

		require.Contains(t, snippet, "curl -X POST 'https://api.openai.com/v1/chat/completions'")
		require.Contains(t, snippet, "-H 'Authorization: Bearer YOUR_OPENAI_API_KEY'")
		require.Contains(t, snippet, "Hello, world!")
		require.Contains(t, snippet, "gpt-4o-mini")
	})

	t.Run("should emit python with requests", func(t *testing.T) {
		snippet, err := bundle.EmitSnippet(snippetDescription(), snippetConfig(), bundle.TargetPython)
		require.NoError(t, err)

		require.Contains(t, snippet, "import requests")
		require.Contains(t, snippet, `url = "https://api.openai.com/v1/chat/completions"`)
		require.Contains(t, snippet, "Bearer YOUR_OPENAI_API_KEY")
	})

	t.Run("should emit javascript with fetch", func(t *testing.T) {
		snippet, err := bundle.EmitSnippet(snippetDescription(), snippetConfig(), bundle.TargetJavaScript)
		require.NoError(t, err)

		require.Contains(t, snippet, "await fetch")
		require.Contains(t, snippet, "JSON.stringify")
		require.Contains(t, snippet, "Bearer YOUR_OPENAI_API_KEY")
	})

	t.Run("should use the bundle prompt template when present", func(t *testing.T) {
		cfg := snippetConfig()
		cfg.PromptTemplate = "Summarize the following text"

		snippet, err := bundle.EmitSnippet(snippetDescription(), cfg, bundle.TargetCurl)
		require.NoError(t, err)
		require.Contains(t, snippet, "Summarize the following text")
		require.NotContains(t, snippet, "Hello, world!")
	})

	t.Run("should reject unsupported target", func(t *testing.T) {
		_, err := bundle.EmitSnippet(snippetDescription(), snippetConfig(), "ruby")
		require.Error(t, err)
	})

	t.Run("should reject missing inputs", func(t *testing.T) {
		_, err := bundle.EmitSnippet(nil, snippetConfig(), bundle.TargetCurl)
		require.Error(t, err)

		_, err = bundle.EmitSnippet(snippetDescription(), nil, bundle.TargetCurl)
		require.Error(t, err)
	})
}
