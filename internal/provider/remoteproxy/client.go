// Package remoteproxy implements the client variant that forwards the entire
// request to a trusted server-side proxy. Credentials never leave the server;
// the proxy holds them and performs the provider call itself.
package remoteproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/observability"
)

const defaultTimeout = 60 * time.Second

// Variant is the client variant identifier.
const Variant = "remote-proxy"

// Client implements domain.ProviderClient by delegating to a remote proxy
// endpoint.
type Client struct {
	endpoint   string
	providerID string
	opts       domain.ClientOptions
	httpClient *http.Client
}

// proxyRequest is the wire contract sent to the proxy.
type proxyRequest struct {
	ProviderID string         `json:"providerId"`
	Prompt     string         `json:"prompt"`
	Model      string         `json:"model,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// proxyResponse is the wire contract returned by the proxy.
type proxyResponse struct {
	Success  bool           `json:"success"`
	Response string         `json:"response,omitempty"`
	Model    string         `json:"model,omitempty"`
	Metrics  map[string]any `json:"metrics,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// NewClient creates a remote proxy client bound to one provider.
func NewClient(endpoint, providerID string, opts domain.ClientOptions, httpClient *http.Client) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("proxy endpoint cannot be empty")
	}
	if providerID == "" {
		return nil, errors.New("provider id cannot be empty")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		endpoint:   endpoint,
		providerID: providerID,
		opts:       opts,
		httpClient: httpClient,
	}, nil
}

// Generate forwards the prompt to the proxy and returns its response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(proxyRequest{
		ProviderID: c.providerID,
		Prompt:     prompt,
		Model:      c.opts.Model,
		Parameters: c.opts.Parameters,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal proxy request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger := observability.FromContext(ctx)
	logger.Debug("forwarding request to proxy",
		observability.String("provider", c.providerID))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.TransportError{ProviderID: c.providerID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.TransportError{ProviderID: c.providerID, Err: err}
	}

	var parsed proxyResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ""
		if decodeErr == nil {
			message = parsed.Error
		}
		return "", domain.ClassifyStatus(c.providerID, resp.StatusCode, message)
	}

	if decodeErr != nil {
		return "", &domain.TransportError{
			ProviderID: c.providerID,
			Message:    "proxy response is not valid JSON",
			Err:        decodeErr,
		}
	}

	if !parsed.Success {
		message := parsed.Error
		if message == "" {
			message = "proxy reported failure without a message"
		}
		return "", &domain.TransportError{ProviderID: c.providerID, Message: message}
	}

	if parsed.Response == "" {
		return "", &domain.EmptyResponseError{
			ProviderID: c.providerID,
			Path:       "response",
			RawBody:    body,
		}
	}

	return parsed.Response, nil
}

// ProviderID returns the provider this client forwards for.
func (c *Client) ProviderID() string {
	return c.providerID
}

// Variant returns the client variant identifier.
func (c *Client) Variant() string {
	return Variant
}
