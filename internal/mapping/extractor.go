package mapping

import (
	"encoding/json"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/jsonpath"
)

// Extract reads the generated text from a parsed response body at the
// description's response path. An absent or non-string value fails with
// EmptyResponseError carrying the raw body for diagnostics.
func Extract(desc *domain.APIDescription, responseBody any) (string, error) {
	path, err := parseDeclaredPath(desc, "responseJsonPath", desc.ResponseJSONPath)
	if err != nil {
		return "", err
	}

	text, ok := jsonpath.GetString(responseBody, path)
	if !ok {
		raw, _ := json.Marshal(responseBody)
		return "", &domain.EmptyResponseError{
			ProviderID: desc.ID,
			Path:       desc.ResponseJSONPath,
			RawBody:    raw,
		}
	}

	return text, nil
}

// ExtractError attempts the declared error path against an HTTP error body.
// It reports false when no error path is declared or the path doesn't resolve
// to a string, letting the caller fall back to a status-code message.
func ExtractError(desc *domain.APIDescription, errorBody any) (string, bool) {
	if desc.ErrorJSONPath == "" {
		return "", false
	}

	path, err := jsonpath.Parse(desc.ErrorJSONPath)
	if err != nil {
		return "", false
	}

	message, ok := jsonpath.GetString(errorBody, path)
	if !ok || message == "" {
		return "", false
	}
	return message, true
}
