package fixed

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/observability"
)

const openAIDefaultModel = "gpt-4o-mini"

// OpenAIClient is the legacy fixed-logic client for OpenAI, built on the
// official SDK.
type OpenAIClient struct {
	client openai.Client
	model  string
	params map[string]any
}

// NewOpenAIClient creates a fixed OpenAI client.
func NewOpenAIClient(creds domain.CredentialSet, opts domain.ClientOptions) (*OpenAIClient, error) {
	if creds.APIKey() == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	model := opts.Model
	if model == "" {
		model = openAIDefaultModel
	}

	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(creds.APIKey())),
		model:  model,
		params: opts.Parameters,
	}, nil
}

// Generate sends the prompt as a single user message.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API", observability.String("model", c.model))

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}

	if temperature, ok := floatParam(c.params, "temperature"); ok {
		params.Temperature = openai.Float(temperature)
	}
	if maxTokens, ok := intParam(c.params, "max_tokens"); ok {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return "", &domain.TransportError{
			ProviderID: "openai",
			Message:    fmt.Sprintf("OpenAI API call failed: %v", err),
			Err:        err,
		}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &domain.EmptyResponseError{
			ProviderID: "openai",
			Path:       "choices[0].message.content",
		}
	}

	return resp.Choices[0].Message.Content, nil
}

// ProviderID returns the provider identifier.
func (c *OpenAIClient) ProviderID() string {
	return "openai"
}

// Variant returns the client variant identifier.
func (c *OpenAIClient) Variant() string {
	return Variant
}
