// Package declarative implements the generic provider client: a resolved
// APIDescription plus a credential set, driven entirely by the request builder
// and response extractor. This is the path meant to replace all hand-written
// per-provider logic.
package declarative

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
	"github.com/davidbz/hearth/internal/mapping"
	"github.com/davidbz/hearth/internal/observability"
)

const defaultTimeout = 60 * time.Second

// Variant is the client variant identifier.
const Variant = "declarative"

// Client implements domain.ProviderClient for any declaratively described
// provider.
type Client struct {
	desc       *domain.APIDescription
	creds      domain.CredentialSet
	opts       domain.ClientOptions
	httpClient *http.Client
}

// NewClient creates a declarative client. The HTTP client may be nil, in which
// case a default with a 60s timeout is used.
func NewClient(
	desc *domain.APIDescription,
	creds domain.CredentialSet,
	opts domain.ClientOptions,
	httpClient *http.Client,
) (*Client, error) {
	if desc == nil {
		return nil, errors.New("description cannot be nil")
	}
	if creds.APIKey() == "" {
		return nil, errors.New("API key is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		desc:       desc,
		creds:      creds,
		opts:       opts,
		httpClient: httpClient,
	}, nil
}

// Generate builds the request from the description, performs the HTTP call,
// and extracts the generated text from the response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	spec, err := mapping.Build(c.desc, c.creds, &domain.GenerationRequest{
		Prompt:     prompt,
		Model:      c.opts.Model,
		Parameters: c.opts.Parameters,
	})
	if err != nil {
		return "", err
	}

	logger := observability.FromContext(ctx)
	logger.Debug("sending declarative provider request",
		observability.String("provider", c.desc.ID),
		observability.String("method", spec.Method))

	respBody, err := c.perform(ctx, spec)
	if err != nil {
		return "", err
	}

	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &domain.TransportError{
			ProviderID: c.desc.ID,
			Message:    "response is not valid JSON",
			Err:        err,
		}
	}

	return mapping.Extract(c.desc, parsed)
}

func (c *Client) perform(ctx context.Context, spec *domain.RequestSpec) ([]byte, error) {
	var reqBody io.Reader
	if spec.Method != http.MethodGet {
		encoded, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, spec.Method, spec.URL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range spec.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("Content-Type") == "" && reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.TransportError{ProviderID: c.desc.ID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{ProviderID: c.desc.ID, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.classifyFailure(resp.StatusCode, body)
	}

	return body, nil
}

// classifyFailure maps a non-2xx response to the error taxonomy, preferring a
// structured provider message at the declared error path over the status text.
func (c *Client) classifyFailure(statusCode int, body []byte) error {
	message := ""
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if extracted, ok := mapping.ExtractError(c.desc, parsed); ok {
			message = extracted
		}
	}

	return domain.ClassifyStatus(c.desc.ID, statusCode, message)
}

// ProviderID returns the provider this client is bound to.
func (c *Client) ProviderID() string {
	return c.desc.ID
}

// Variant returns the client variant identifier.
func (c *Client) Variant() string {
	return Variant
}
