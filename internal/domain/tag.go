// Package domain contains the core data types for the tag engine.
// It has no dependency on the store, the transport layer, or any other
// internal package; every other internal package imports it.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a canonical, globally unique label.
// Name keeps the casing supplied by whoever first created the tag; lookups
// compare it case-insensitively. UsageCount is derived: it always equals the
// number of taggings that reference the tag.
type Tag struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UsageCount int64     `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t Tag) String() string {
	return t.Name
}

// Comparison selects how the tag registry matches a requested name against
// stored tag names. Both modes are case-insensitive.
type Comparison string

const (
	// ComparisonExact matches names by case-insensitive equality.
	ComparisonExact Comparison = "exact"
	// ComparisonLike matches stored names containing the requested name.
	ComparisonLike Comparison = "like"
)

// Valid reports whether c is a known comparison mode.
func (c Comparison) Valid() bool {
	return c == ComparisonExact || c == ComparisonLike
}
