// Package mapping turns declarative provider descriptions into concrete HTTP
// requests and extracts generated text from raw responses. Everything here is
// pure data transformation; no I/O happens in this package.
package mapping

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/jsonpath"
)

// Build assembles the full request descriptor for one prompt: URL with
// optional query-parameter auth, headers with optional header auth, and the
// request body template with prompt/model/project-id/parameters written at
// their declared paths.
func Build(
	desc *domain.APIDescription,
	creds domain.CredentialSet,
	req *domain.GenerationRequest,
) (*domain.RequestSpec, error) {
	endpoint := desc.BaseURL + desc.EndpointPath
	if desc.APIKeyInURLParam {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + desc.URLParamName + "=" + url.QueryEscape(creds.APIKey())
	}

	headers := make(map[string]string, len(desc.Headers)+1)
	for k, v := range desc.Headers {
		headers[k] = v
	}
	if !desc.APIKeyInURLParam && desc.AuthHeaderName != "" {
		headers[desc.AuthHeaderName] = desc.AuthHeaderPrefix + creds.APIKey()
	}

	body, err := buildBody(desc, creds, req)
	if err != nil {
		return nil, err
	}

	method := desc.Method
	if method == "" {
		method = http.MethodPost
	}

	return &domain.RequestSpec{
		URL:     endpoint,
		Method:  method,
		Headers: headers,
		Body:    body,
	}, nil
}

func buildBody(
	desc *domain.APIDescription,
	creds domain.CredentialSet,
	req *domain.GenerationRequest,
) (map[string]any, error) {
	var root any = jsonpath.Clone(desc.RequestBodyStructure)
	if root == nil {
		root = map[string]any{}
	}

	promptPath, err := parseDeclaredPath(desc, "promptJsonPath", desc.PromptJSONPath)
	if err != nil {
		return nil, err
	}
	root, err = setAt(desc, root, promptPath, req.Prompt)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = desc.DefaultModel
	}
	if desc.ModelJSONPath != "" && model != "" {
		path, pathErr := parseDeclaredPath(desc, "modelJsonPath", desc.ModelJSONPath)
		if pathErr != nil {
			return nil, pathErr
		}
		root, err = setAt(desc, root, path, model)
		if err != nil {
			return nil, err
		}
	}

	if desc.ProjectIDJSONPath != "" && creds.ProjectID() != "" {
		path, pathErr := parseDeclaredPath(desc, "projectIdJsonPath", desc.ProjectIDJSONPath)
		if pathErr != nil {
			return nil, pathErr
		}
		root, err = setAt(desc, root, path, creds.ProjectID())
		if err != nil {
			return nil, err
		}
	}

	// Caller-supplied parameters win over declared defaults on conflict.
	params := make(map[string]any, len(desc.DefaultParameters)+len(req.Parameters))
	for k, v := range desc.DefaultParameters {
		params[k] = v
	}
	for k, v := range req.Parameters {
		params[k] = v
	}
	if len(params) > 0 {
		var paramsPath *jsonpath.Path
		if desc.ParametersJSONPath != "" {
			paramsPath, err = parseDeclaredPath(desc, "parametersJsonPath", desc.ParametersJSONPath)
			if err != nil {
				return nil, err
			}
		}
		root, err = jsonpath.Merge(root, paramsPath, params)
		if err != nil {
			return nil, &domain.ConfigurationError{
				ProviderID: desc.ID,
				Reason:     "cannot merge parameters into request template",
				Err:        err,
			}
		}
	}

	body, ok := root.(map[string]any)
	if !ok {
		return nil, &domain.ConfigurationError{
			ProviderID: desc.ID,
			Reason:     "request body template must be a JSON object",
		}
	}
	return body, nil
}

func setAt(desc *domain.APIDescription, root any, path *jsonpath.Path, value any) (any, error) {
	out, err := jsonpath.Set(root, path, value)
	if err != nil {
		return nil, &domain.ConfigurationError{
			ProviderID: desc.ID,
			Reason:     fmt.Sprintf("request template conflicts with path %q", path.String()),
			Err:        err,
		}
	}
	return out, nil
}

// parseDeclaredPath wraps grammar failures as configuration errors; these
// should have been caught when the description was registered.
func parseDeclaredPath(desc *domain.APIDescription, field, raw string) (*jsonpath.Path, error) {
	path, err := jsonpath.Parse(raw)
	if err != nil {
		return nil, &domain.ConfigurationError{
			ProviderID: desc.ID,
			Reason:     "invalid " + field,
			Err:        err,
		}
	}
	return path, nil
}
