package service

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pkordes/tagengine/internal/domain"
)

// TypeRegistry records which application types are taggable and in which
// contexts. It is the lookup table every tagging operation validates against.
// Register types at startup; lookups are safe for concurrent use.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]domain.TaggableType
}

// NewTypeRegistry builds a registry holding types.
// Returns domain.ErrValidation if any type is malformed or registered twice.
func NewTypeRegistry(types ...domain.TaggableType) (*TypeRegistry, error) {
	r := &TypeRegistry{types: make(map[string]domain.TaggableType, len(types))}
	for _, t := range types {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates t and adds it to the registry.
func (r *TypeRegistry) Register(t domain.TaggableType) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("service.TypeRegistry.Register: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.types[t.Name]; dup {
		return fmt.Errorf("service.TypeRegistry.Register: %w: taggable type %q already registered", domain.ErrValidation, t.Name)
	}
	t.Contexts = slices.Clone(t.Contexts)
	r.types[t.Name] = t
	return nil
}

// Lookup returns the registered type called name.
func (r *TypeRegistry) Lookup(name string) (domain.TaggableType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Types returns every registered type ordered by name.
func (r *TypeRegistry) Types() []domain.TaggableType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.TaggableType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b domain.TaggableType) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// ValidateContext checks that typeName is registered and declares tagContext.
// Both failures are domain.ErrValidation.
func (r *TypeRegistry) ValidateContext(typeName, tagContext string) error {
	if strings.TrimSpace(tagContext) == "" {
		return fmt.Errorf("%w: context is required", domain.ErrValidation)
	}
	t, ok := r.Lookup(typeName)
	if !ok {
		return fmt.Errorf("%w: taggable type %q is not registered", domain.ErrValidation, typeName)
	}
	if !t.HasContext(tagContext) {
		return fmt.Errorf("%w: context %q is not declared for %q", domain.ErrValidation, tagContext, typeName)
	}
	return nil
}
