package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ref is a polymorphic reference to an application entity: the registered
// taggable type name plus the entity's identifier in that type's own store.
// The zero Ref means "nobody" and is only legal as a tagger.
type Ref struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// IsZero reports whether r references nothing.
func (r Ref) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// Validate checks that r names both a type and an identifier.
func (r Ref) Validate() error {
	if strings.TrimSpace(r.Type) == "" {
		return fmt.Errorf("%w: reference type is required", ErrValidation)
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: reference id is required", ErrValidation)
	}
	return nil
}

func (r Ref) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return r.Type + "#" + r.ID
}

// Tagging is the join record linking a tag to a taggable entity within a
// context, optionally credited to a tagger. The tuple
// (TagID, Taggable, Context, Tagger) is unique.
type Tagging struct {
	ID        uuid.UUID
	TagID     uuid.UUID
	Taggable  Ref
	Context   string
	Tagger    Ref // zero when nobody owns the tagging
	CreatedAt time.Time
}

// Related is one row of a relation query: a target entity and the number of
// distinct tags it shares with the source entity. Entity is populated only
// when the target type registered a loader.
type Related struct {
	Ref    Ref   `json:"ref"`
	Count  int64 `json:"count"`
	Entity any   `json:"entity,omitempty"`
}
