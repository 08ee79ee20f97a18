package handler

import (
	"fmt"
	"strings"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler/gen"
)

// limitValue applies the ?limit= rules: def when absent, at least 1, capped at
// ceiling.
func limitValue(limit *gen.Limit, def, ceiling int) (int, error) {
	if limit == nil {
		return def, nil
	}
	if *limit < 1 {
		return 0, fmt.Errorf("limit must be at least 1")
	}
	return min(*limit, ceiling), nil
}

// targetType returns the ?target= type, defaulting to the entity's own.
func targetType(entity domain.Ref, target *string) string {
	if t := strings.TrimSpace(deref(target)); t != "" {
		return t
	}
	return entity.Type
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
