// Package bundle serializes, deserializes and validates portable provider
// configuration bundles: self-contained JSON documents carrying a provider id,
// credentials (or placeholders), and optional model/parameter overrides.
package bundle

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/hearth/internal/domain"
)

// Version is the bundle format version this package produces.
const Version = "1.0"

// ValidationResult reports structural errors and usability warnings for a
// bundle. A bundle with placeholder credentials is structurally valid but
// carries a warning: it round-trips fine yet cannot drive a live call.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Export assembles a portable config for a provider with the current time as
// the export timestamp.
func Export(
	providerID string,
	creds domain.CredentialSet,
	model string,
	parameters map[string]any,
	description string,
) *domain.PortableConfig {
	return &domain.PortableConfig{
		Version:    Version,
		ProviderID: providerID,
		KeyData:    map[string]string(creds),
		AgentID:    uuid.New().String(),
		Model:      model,
		Parameters: parameters,
		Metadata: &domain.PortableConfigMetadata{
			ExportedAt:  time.Now().UTC().Format(time.RFC3339),
			Description: description,
		},
	}
}

// Marshal serializes a bundle to indented JSON.
func Marshal(cfg *domain.PortableConfig) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("portable config cannot be nil")
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal portable config: %w", err)
	}
	return data, nil
}

// Unmarshal parses a bundle document. Structural validity is checked
// separately via Validate so callers can surface warnings alongside success.
func Unmarshal(data []byte) (*domain.PortableConfig, error) {
	var cfg domain.PortableConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse portable config: %w", err)
	}
	return &cfg, nil
}

// Validate checks a bundle's structure and flags insecure placeholder
// credentials as warnings rather than errors.
func Validate(cfg *domain.PortableConfig) ValidationResult {
	result := ValidationResult{IsValid: true}

	if cfg == nil {
		return ValidationResult{IsValid: false, Errors: []string{"portable config is empty"}}
	}

	if cfg.Version == "" {
		result.Errors = append(result.Errors, "version is required")
	} else if cfg.Version != Version {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("bundle version %q differs from supported version %q", cfg.Version, Version))
	}

	if cfg.ProviderID == "" {
		result.Errors = append(result.Errors, "providerId is required")
	}
	if len(cfg.KeyData) == 0 {
		result.Errors = append(result.Errors, "keyData is required")
	}

	for field, value := range cfg.KeyData {
		if IsPlaceholder(value) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("credential field %q contains a placeholder value; replace it before use", field))
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// IsPlaceholder reports whether a credential value follows the placeholder
// convention (begins with YOUR_ and mentions _API_KEY).
func IsPlaceholder(value string) bool {
	return strings.HasPrefix(value, "YOUR_") && strings.Contains(value, "_API_KEY")
}

// HasPlaceholderCredentials reports whether any credential field is a
// placeholder.
func HasPlaceholderCredentials(keyData map[string]string) bool {
	for _, value := range keyData {
		if IsPlaceholder(value) {
			return true
		}
	}
	return false
}
