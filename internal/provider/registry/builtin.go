package registry

import "github.com/davidbz/hearth/internal/domain"

// Built-in provider ids.
const (
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderClaude  = "claude"
	ProviderWatsonX = "watsonx"
)

// BuiltinDescriptions returns the declarative contracts for the built-in
// providers. These are the same descriptions the generic client consumes for
// custom providers; nothing about them is special beyond being pre-registered.
func BuiltinDescriptions() []*domain.APIDescription {
	return []*domain.APIDescription{
		{
			ID:           ProviderOpenAI,
			DisplayName:  "OpenAI",
			BaseURL:      "https://api.openai.com",
			EndpointPath: "/v1/chat/completions",
			Method:       "POST",
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
			AuthHeaderName:   "Authorization",
			AuthHeaderPrefix: "Bearer ",
			RequestBodyStructure: map[string]any{
				"model": "",
				"messages": []any{
					map[string]any{"role": "user", "content": ""},
				},
			},
			PromptJSONPath:   "messages[0].content",
			ModelJSONPath:    "model",
			ResponseJSONPath: "choices[0].message.content",
			ErrorJSONPath:    "error.message",
			DefaultModel:     "gpt-4o-mini",
			DefaultParameters: map[string]any{
				"temperature": 0.7,
			},
		},
		{
			ID:           ProviderGemini,
			DisplayName:  "Google Gemini",
			BaseURL:      "https://generativelanguage.googleapis.com",
			EndpointPath: "/v1beta/models/gemini-1.5-flash:generateContent",
			Method:       "POST",
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
			APIKeyInURLParam: true,
			URLParamName:     "key",
			RequestBodyStructure: map[string]any{
				"contents": []any{
					map[string]any{
						"parts": []any{
							map[string]any{"text": ""},
						},
					},
				},
			},
			PromptJSONPath:     "contents[0].parts[0].text",
			ParametersJSONPath: "generationConfig",
			ResponseJSONPath:   "candidates[0].content.parts[0].text",
			ErrorJSONPath:      "error.message",
			DefaultModel:       "gemini-1.5-flash",
			DefaultParameters: map[string]any{
				"temperature": 0.7,
			},
		},
		{
			ID:           ProviderClaude,
			DisplayName:  "Anthropic Claude",
			BaseURL:      "https://api.anthropic.com",
			EndpointPath: "/v1/messages",
			Method:       "POST",
			Headers: map[string]string{
				"Content-Type":      "application/json",
				"anthropic-version": "2023-06-01",
			},
			AuthHeaderName: "x-api-key",
			RequestBodyStructure: map[string]any{
				"model":      "",
				"max_tokens": 1024,
				"messages": []any{
					map[string]any{"role": "user", "content": ""},
				},
			},
			PromptJSONPath:   "messages[0].content",
			ModelJSONPath:    "model",
			ResponseJSONPath: "content[0].text",
			ErrorJSONPath:    "error.message",
			DefaultModel:     "claude-3-5-sonnet-20241022",
		},
		{
			ID:           ProviderWatsonX,
			DisplayName:  "IBM WatsonX",
			BaseURL:      "https://us-south.ml.cloud.ibm.com",
			EndpointPath: "/ml/v1/text/generation?version=2023-05-29",
			Method:       "POST",
			Headers: map[string]string{
				"Content-Type": "application/json",
				"Accept":       "application/json",
			},
			AuthHeaderName:   "Authorization",
			AuthHeaderPrefix: "Bearer ",
			RequestBodyStructure: map[string]any{
				"input":      "",
				"model_id":   "",
				"project_id": "",
			},
			PromptJSONPath:     "input",
			ModelJSONPath:      "model_id",
			ProjectIDJSONPath:  "project_id",
			ParametersJSONPath: "parameters",
			ResponseJSONPath:   "results[0].generated_text",
			ErrorJSONPath:      "errors[0].message",
			DefaultModel:       "ibm/granite-13b-chat-v2",
			DefaultParameters: map[string]any{
				"max_new_tokens": 300,
			},
		},
	}
}
