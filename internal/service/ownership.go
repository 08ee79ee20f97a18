package service

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/pkordes/tagengine/internal/domain"
)

// ownershipKey identifies one staged tag list: who owns the tags and in
// which context. A zero owner stages the unowned tags.
type ownershipKey struct {
	owner   domain.Ref
	context string
}

// OwnershipCache stages edits to one taggable entity's tag lists before they
// are committed. Create one per editing session, edit with Get and Set, save
// the entity itself, then call Flush exactly once.
//
// An OwnershipCache is not safe for concurrent use; it belongs to a single
// in-memory handle of the entity.
type OwnershipCache struct {
	store    *TaggingStore
	taggable domain.Ref
	entries  map[ownershipKey]domain.TagList
}

// NewOwnershipCache returns an empty cache for taggable. taggable.ID may be
// empty for an entity that has not been saved yet; see BindID.
func NewOwnershipCache(store *TaggingStore, taggable domain.Ref) *OwnershipCache {
	return &OwnershipCache{
		store:    store,
		taggable: taggable,
		entries:  make(map[ownershipKey]domain.TagList),
	}
}

// Taggable returns the entity this cache stages tags for.
func (c *OwnershipCache) Taggable() domain.Ref {
	return c.taggable
}

// Get returns the staged list for (owner, tagContext). On a miss it loads the
// persisted tag names, stages them, and returns them. An unsaved entity has
// no persisted tags, so a miss stages an empty list.
func (c *OwnershipCache) Get(ctx context.Context, owner domain.Ref, tagContext string) (domain.TagList, error) {
	key := ownershipKey{owner: owner, context: tagContext}
	if list, ok := c.entries[key]; ok {
		return list, nil
	}
	if err := c.validate(owner, tagContext); err != nil {
		return domain.TagList{}, fmt.Errorf("service.OwnershipCache.Get: %w", err)
	}

	var list domain.TagList
	if c.taggable.ID != "" {
		tags, err := c.store.TagsOn(ctx, c.taggable, tagContext, owner)
		if err != nil {
			return domain.TagList{}, fmt.Errorf("service.OwnershipCache.Get: %w", err)
		}
		list = domain.TagListFromTags(tags...)
	}
	c.entries[key] = list
	return list, nil
}

// Set stages list for (owner, tagContext), replacing anything staged before.
// Storage is not touched until Flush.
func (c *OwnershipCache) Set(owner domain.Ref, tagContext string, list domain.TagList) error {
	if err := c.validate(owner, tagContext); err != nil {
		return fmt.Errorf("service.OwnershipCache.Set: %w", err)
	}
	c.entries[ownershipKey{owner: owner, context: tagContext}] = list
	return nil
}

// Reload discards every staged list, so the next Get reads storage again.
func (c *OwnershipCache) Reload() {
	clear(c.entries)
}

// Pending returns the number of staged lists.
func (c *OwnershipCache) Pending() int {
	return len(c.entries)
}

// BindID records the id a new entity received when it was saved, so Flush can
// reference it.
func (c *OwnershipCache) BindID(id string) {
	c.taggable.ID = id
}

// Flush reconciles every staged list against storage, in a fixed order
// (context, then owner), and clears each entry once its reconcile commits.
// It stops at the first failure; that entry and the ones after it stay
// staged. Returns domain.ErrValidation if the entity has not been saved.
func (c *OwnershipCache) Flush(ctx context.Context) error {
	if c.taggable.ID == "" {
		return fmt.Errorf("service.OwnershipCache.Flush: %w: save %s before flushing its tags", domain.ErrValidation, c.taggable.Type)
	}

	keys := slices.SortedFunc(maps.Keys(c.entries), func(a, b ownershipKey) int {
		return cmp.Or(
			cmp.Compare(a.context, b.context),
			cmp.Compare(a.owner.Type, b.owner.Type),
			cmp.Compare(a.owner.ID, b.owner.ID),
		)
	})
	for _, key := range keys {
		if err := c.store.Reconcile(ctx, c.taggable, key.context, key.owner, c.entries[key]); err != nil {
			return fmt.Errorf("service.OwnershipCache.Flush: %w", err)
		}
		delete(c.entries, key)
	}
	return nil
}

func (c *OwnershipCache) validate(owner domain.Ref, tagContext string) error {
	if err := c.store.types.ValidateContext(c.taggable.Type, tagContext); err != nil {
		return err
	}
	if !owner.IsZero() {
		if err := owner.Validate(); err != nil {
			return fmt.Errorf("owner: %w", err)
		}
	}
	return nil
}
