package domain

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/davidbz/hearth/internal/jsonpath"
)

// Credential field names shared across providers.
const (
	FieldAPIKey    = "apiKey"
	FieldProjectID = "projectId"
)

// APIDescription is the declarative shape of a provider's HTTP contract. One
// description plus a credential set is everything the generic client needs to
// talk to a provider; no provider-specific code is involved.
type APIDescription struct {
	ID          string `json:"id"          yaml:"id"`
	DisplayName string `json:"displayName" yaml:"display_name"`

	BaseURL      string            `json:"baseUrl"           yaml:"base_url"`
	EndpointPath string            `json:"endpointPath"      yaml:"endpoint_path"`
	Method       string            `json:"method"            yaml:"method"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Auth either goes into a header (name + optional prefix, commonly
	// "Bearer ") or into a URL query parameter.
	AuthHeaderName   string `json:"authHeaderName,omitempty"   yaml:"auth_header_name,omitempty"`
	AuthHeaderPrefix string `json:"authHeaderPrefix,omitempty" yaml:"auth_header_prefix,omitempty"`
	APIKeyInURLParam bool   `json:"apiKeyInUrlParam,omitempty" yaml:"api_key_in_url_param,omitempty"`
	URLParamName     string `json:"urlParamName,omitempty"     yaml:"url_param_name,omitempty"`

	// RequestBodyStructure is the JSON template the prompt, model and
	// parameters are written into.
	RequestBodyStructure map[string]any `json:"requestBodyStructure" yaml:"request_body_structure"`

	PromptJSONPath     string `json:"promptJsonPath"               yaml:"prompt_json_path"`
	ModelJSONPath      string `json:"modelJsonPath,omitempty"      yaml:"model_json_path,omitempty"`
	ParametersJSONPath string `json:"parametersJsonPath,omitempty" yaml:"parameters_json_path,omitempty"`
	ProjectIDJSONPath  string `json:"projectIdJsonPath,omitempty"  yaml:"project_id_json_path,omitempty"`
	ResponseJSONPath   string `json:"responseJsonPath"             yaml:"response_json_path"`
	ErrorJSONPath      string `json:"errorJsonPath,omitempty"      yaml:"error_json_path,omitempty"`

	DefaultModel      string         `json:"defaultModel"                yaml:"default_model"`
	DefaultParameters map[string]any `json:"defaultParameters,omitempty" yaml:"default_parameters,omitempty"`
}

// Validate checks the description at definition time, so path grammar mistakes
// surface when the provider is registered rather than mid-request.
func (d *APIDescription) Validate() error {
	if d.ID == "" {
		return errors.New("provider id cannot be empty")
	}
	if d.BaseURL == "" {
		return errors.New("base URL cannot be empty")
	}
	if d.PromptJSONPath == "" {
		return errors.New("prompt JSON path is required")
	}
	if d.ResponseJSONPath == "" {
		return errors.New("response JSON path is required")
	}
	if d.APIKeyInURLParam && d.URLParamName == "" {
		return errors.New("URL parameter name is required when the API key goes in the URL")
	}

	switch d.Method {
	case "", http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return fmt.Errorf("unsupported HTTP method %q", d.Method)
	}

	paths := map[string]string{
		"promptJsonPath":     d.PromptJSONPath,
		"modelJsonPath":      d.ModelJSONPath,
		"parametersJsonPath": d.ParametersJSONPath,
		"projectIdJsonPath":  d.ProjectIDJSONPath,
		"responseJsonPath":   d.ResponseJSONPath,
		"errorJsonPath":      d.ErrorJSONPath,
	}
	for field, path := range paths {
		if path == "" {
			continue
		}
		if _, err := jsonpath.Parse(path); err != nil {
			return fmt.Errorf("invalid %s: %w", field, err)
		}
	}

	return nil
}

// CredentialSet maps credential field names to values for one provider. It is
// supplied per call and never persisted by the core.
type CredentialSet map[string]string

// APIKey returns the API key field.
func (c CredentialSet) APIKey() string {
	return c[FieldAPIKey]
}

// ProjectID returns the project/tenant scope field, where the provider uses one.
func (c CredentialSet) ProjectID() string {
	return c[FieldProjectID]
}

// GenerationRequest is a single prompt issued against a provider.
type GenerationRequest struct {
	Prompt     string         `json:"prompt"`
	Model      string         `json:"model,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// GenerationResult is the text a provider produced for one request.
type GenerationResult struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

// RequestSpec is a fully assembled HTTP request descriptor. RequestBuilder
// produces it; performing the actual I/O is the client's job.
type RequestSpec struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    map[string]any
}

// PortableConfig is an exportable bundle capturing everything needed to
// reconstruct a provider client: provider identity, credentials (possibly
// placeholders), and optional model/parameter overrides.
type PortableConfig struct {
	Version        string                  `json:"version"`
	ProviderID     string                  `json:"providerId"`
	KeyData        map[string]string       `json:"keyData"`
	AgentID        string                  `json:"agentId,omitempty"`
	PromptTemplate string                  `json:"promptTemplate,omitempty"`
	Model          string                  `json:"model,omitempty"`
	Parameters     map[string]any          `json:"parameters,omitempty"`
	Metadata       *PortableConfigMetadata `json:"metadata,omitempty"`
}

// PortableConfigMetadata carries export bookkeeping.
type PortableConfigMetadata struct {
	ExportedAt  string `json:"exportedAt"`
	Description string `json:"description,omitempty"`
}
