package fixed

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/observability"
)

const (
	claudeDefaultModel     = "claude-3-5-sonnet-20241022"
	claudeDefaultMaxTokens = 1024
)

// ClaudeClient is the legacy fixed-logic client for Anthropic Claude, built on
// the official SDK.
type ClaudeClient struct {
	client anthropic.Client
	model  string
	params map[string]any
}

// NewClaudeClient creates a fixed Claude client.
func NewClaudeClient(creds domain.CredentialSet, opts domain.ClientOptions) (*ClaudeClient, error) {
	if creds.APIKey() == "" {
		return nil, errors.New("Claude API key is required")
	}

	model := opts.Model
	if model == "" {
		model = claudeDefaultModel
	}

	return &ClaudeClient{
		client: anthropic.NewClient(option.WithAPIKey(creds.APIKey())),
		model:  model,
		params: opts.Parameters,
	}, nil
}

// Generate sends the prompt as a single user message.
func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling Claude API", observability.String("model", c.model))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: claudeDefaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	if temperature, ok := floatParam(c.params, "temperature"); ok {
		params.Temperature = anthropic.Float(temperature)
	}
	if maxTokens, ok := intParam(c.params, "max_tokens"); ok {
		params.MaxTokens = int64(maxTokens)
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		logger.Error("Claude API call failed", observability.Error(err))
		return "", &domain.TransportError{
			ProviderID: "claude",
			Message:    fmt.Sprintf("Claude API call failed: %v", err),
			Err:        err,
		}
	}

	var content string
	for _, block := range message.Content {
		content += block.Text
	}
	if content == "" {
		return "", &domain.EmptyResponseError{
			ProviderID: "claude",
			Path:       "content[0].text",
		}
	}

	return content, nil
}

// ProviderID returns the provider identifier.
func (c *ClaudeClient) ProviderID() string {
	return "claude"
}

// Variant returns the client variant identifier.
func (c *ClaudeClient) Variant() string {
	return Variant
}
