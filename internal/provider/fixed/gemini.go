package fixed

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/observability"
)

const geminiDefaultModel = "gemini-1.5-flash"

// GeminiClient is the legacy fixed-logic client for Google Gemini, built on
// the official genai SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
	params map[string]any
}

// NewGeminiClient creates a fixed Gemini client. The genai SDK requires a
// context at construction time.
func NewGeminiClient(ctx context.Context, creds domain.CredentialSet, opts domain.ClientOptions) (*GeminiClient, error) {
	if creds.APIKey() == "" {
		return nil, errors.New("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: creds.APIKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = geminiDefaultModel
	}

	return &GeminiClient{
		client: client,
		model:  model,
		params: opts.Parameters,
	}, nil
}

// Generate sends the prompt as a single user turn.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini API", observability.String("model", c.model))

	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	config := &genai.GenerateContentConfig{}
	if temperature, ok := floatParam(c.params, "temperature"); ok {
		t := float32(temperature)
		config.Temperature = &t
	}
	if maxTokens, ok := intParam(c.params, "max_tokens"); ok {
		config.MaxOutputTokens = int32(maxTokens)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		logger.Error("Gemini API call failed", observability.Error(err))
		return "", &domain.TransportError{
			ProviderID: "gemini",
			Message:    fmt.Sprintf("Gemini API call failed: %v", err),
			Err:        err,
		}
	}

	var content string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			content += part.Text
		}
		break
	}
	if content == "" {
		return "", &domain.EmptyResponseError{
			ProviderID: "gemini",
			Path:       "candidates[0].content.parts[0].text",
		}
	}

	return content, nil
}

// ProviderID returns the provider identifier.
func (c *GeminiClient) ProviderID() string {
	return "gemini"
}

// Variant returns the client variant identifier.
func (c *GeminiClient) Variant() string {
	return Variant
}
