// Package registry holds the declarative provider descriptions: the four
// built-in providers plus any user-defined custom providers added at runtime.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/davidbz/hearth/internal/domain"
)

// Registry implements the domain.DescriptionRegistry interface.
type Registry struct {
	mu           sync.RWMutex
	descriptions map[string]*domain.APIDescription
	builtin      map[string]bool
}

// NewRegistry creates a registry with the built-in provider descriptions
// pre-registered.
func NewRegistry() *Registry {
	r := &Registry{
		mu:           sync.RWMutex{},
		descriptions: make(map[string]*domain.APIDescription),
		builtin:      make(map[string]bool),
	}

	for _, desc := range BuiltinDescriptions() {
		r.descriptions[desc.ID] = desc
		r.builtin[desc.ID] = true
	}

	return r
}

// Register adds a custom provider description after validating it.
func (r *Registry) Register(_ context.Context, desc *domain.APIDescription) error {
	if desc == nil {
		return errors.New("description cannot be nil")
	}
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("invalid provider description: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptions[desc.ID]; exists {
		return fmt.Errorf("provider %s already registered", desc.ID)
	}

	r.descriptions[desc.ID] = desc
	return nil
}

// Get retrieves a description by provider id.
func (r *Registry) Get(_ context.Context, providerID string) (*domain.APIDescription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, exists := r.descriptions[providerID]
	return desc, exists
}

// Remove deletes a custom provider description. Built-ins cannot be removed.
func (r *Registry) Remove(_ context.Context, providerID string) error {
	if providerID == "" {
		return errors.New("provider id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.builtin[providerID] {
		return fmt.Errorf("provider %s is built-in and cannot be removed", providerID)
	}
	if _, exists := r.descriptions[providerID]; !exists {
		return fmt.Errorf("provider %s not found", providerID)
	}

	delete(r.descriptions, providerID)
	return nil
}

// List returns all registered descriptions.
func (r *Registry) List(_ context.Context) []*domain.APIDescription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.APIDescription, 0, len(r.descriptions))
	for _, desc := range r.descriptions {
		out = append(out, desc)
	}
	return out
}

// IsBuiltin reports whether a provider id names a built-in description.
func (r *Registry) IsBuiltin(providerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.builtin[providerID]
}
