// Package loopback provides a client that echoes the prompt back without any
// external call. It gives deterministic responses for tests and lets the
// gateway be exercised end to end with no credentials at all.
package loopback

import (
	"context"
	"fmt"

	"github.com/davidbz/hearth/internal/observability"
)

// ProviderID is the loopback provider identifier.
const ProviderID = "loopback"

// Variant is the client variant identifier.
const Variant = "loopback"

// Client implements domain.ProviderClient entirely in memory.
type Client struct{}

// NewClient creates a loopback client. No configuration is required.
func NewClient() *Client {
	return &Client{}
}

// Generate echoes the prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	observability.FromContext(ctx).Debug("echoing prompt",
		observability.Int("prompt_length", len(prompt)))

	return fmt.Sprintf("Echo: %s", prompt), nil
}

// ProviderID returns the provider identifier.
func (c *Client) ProviderID() string {
	return ProviderID
}

// Variant returns the client variant identifier.
func (c *Client) Variant() string {
	return Variant
}
