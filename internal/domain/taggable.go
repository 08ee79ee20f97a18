package domain

import (
	"context"
	"fmt"
	"strings"
)

// Loader resolves entity identifiers of one taggable type to the
// application's own representation of those entities. Missing IDs are simply
// absent from the returned map.
type Loader interface {
	Load(ctx context.Context, ids []string) (map[string]any, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, ids []string) (map[string]any, error)

// Load calls f(ctx, ids).
func (f LoaderFunc) Load(ctx context.Context, ids []string) (map[string]any, error) {
	return f(ctx, ids)
}

// TaggableType declares an application type as taggable: its name as stored
// in taggings.taggable_type, the contexts it may be tagged in, and an
// optional loader used to hydrate relation query results.
type TaggableType struct {
	Name     string
	Contexts []string
	Loader   Loader
}

// Validate enforces the registration rules: a non-empty name and at least
// one context, with no blank or repeated context names.
func (t TaggableType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: taggable type name is required", ErrValidation)
	}
	if len(t.Contexts) == 0 {
		return fmt.Errorf("%w: taggable type %q declares no contexts", ErrValidation, t.Name)
	}
	seen := make(map[string]struct{}, len(t.Contexts))
	for _, c := range t.Contexts {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w: taggable type %q declares a blank context", ErrValidation, t.Name)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: taggable type %q declares context %q twice", ErrValidation, t.Name, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// HasContext reports whether tagContext was declared for t.
func (t TaggableType) HasContext(tagContext string) bool {
	for _, c := range t.Contexts {
		if c == tagContext {
			return true
		}
	}
	return false
}
