package registry

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davidbz/hearth/internal/domain"
)

// providersFile is the on-disk shape of a custom providers file.
type providersFile struct {
	Providers []*domain.APIDescription `yaml:"providers"`
}

// LoadFile registers user-defined provider descriptions from a YAML file.
// Registration stops at the first invalid description so a broken file is
// reported as a whole rather than half-applied silently.
func (r *Registry) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read providers file: %w", err)
	}

	var file providersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse providers file: %w", err)
	}

	registered := 0
	for _, desc := range file.Providers {
		if err := r.Register(ctx, desc); err != nil {
			return registered, fmt.Errorf("providers file %s: %w", path, err)
		}
		registered++
	}

	return registered, nil
}
