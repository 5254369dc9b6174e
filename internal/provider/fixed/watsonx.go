package fixed

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

const (
	watsonxDefaultModel   = "ibm/granite-13b-chat-v2"
	watsonxDefaultBaseURL = "https://us-south.ml.cloud.ibm.com"
	watsonxAPIVersion     = "2023-05-29"
	watsonxTimeout        = 60 * time.Second
)

// WatsonXClient is the legacy fixed-logic client for IBM WatsonX. There is no
// Go SDK for it, so it speaks the text-generation REST API directly.
type WatsonXClient struct {
	apiKey     string
	projectID  string
	baseURL    string
	model      string
	params     map[string]any
	httpClient *http.Client
}

// WatsonX API request/response structures.
type watsonxRequest struct {
	Input      string         `json:"input"`
	ModelID    string         `json:"model_id"`
	ProjectID  string         `json:"project_id"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type watsonxResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

type watsonxErrorResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// NewWatsonXClient creates a fixed WatsonX client. WatsonX scopes every call
// to a project, so the project id credential field is required alongside the
// API key.
func NewWatsonXClient(creds domain.CredentialSet, opts domain.ClientOptions, httpClient *http.Client) (*WatsonXClient, error) {
	if creds.APIKey() == "" {
		return nil, errors.New("WatsonX API key is required")
	}
	if creds.ProjectID() == "" {
		return nil, errors.New("WatsonX project id is required")
	}

	model := opts.Model
	if model == "" {
		model = watsonxDefaultModel
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: watsonxTimeout}
	}

	return &WatsonXClient{
		apiKey:     creds.APIKey(),
		projectID:  creds.ProjectID(),
		baseURL:    watsonxDefaultBaseURL,
		model:      model,
		params:     opts.Parameters,
		httpClient: httpClient,
	}, nil
}

// Generate sends the prompt to the text-generation endpoint.
func (c *WatsonXClient) Generate(ctx context.Context, prompt string) (string, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling WatsonX API", observability.String("model", c.model))

	reqBody, err := json.Marshal(watsonxRequest{
		Input:      prompt,
		ModelID:    c.model,
		ProjectID:  c.projectID,
		Parameters: c.params,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/ml/v1/text/generation?version=" + watsonxAPIVersion
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.TransportError{ProviderID: "watsonx", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.TransportError{ProviderID: "watsonx", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ""
		var errResp watsonxErrorResponse
		if json.Unmarshal(body, &errResp) == nil && len(errResp.Errors) > 0 {
			message = errResp.Errors[0].Message
		}
		return "", domain.ClassifyStatus("watsonx", resp.StatusCode, message)
	}

	var parsed watsonxResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &domain.TransportError{
			ProviderID: "watsonx",
			Message:    "response is not valid JSON",
			Err:        err,
		}
	}

	if len(parsed.Results) == 0 || parsed.Results[0].GeneratedText == "" {
		return "", &domain.EmptyResponseError{
			ProviderID: "watsonx",
			Path:       "results[0].generated_text",
			RawBody:    body,
		}
	}

	return parsed.Results[0].GeneratedText, nil
}

// ProviderID returns the provider identifier.
func (c *WatsonXClient) ProviderID() string {
	return "watsonx"
}

// Variant returns the client variant identifier.
func (c *WatsonXClient) Variant() string {
	return Variant
}
