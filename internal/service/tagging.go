package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/metrics"
	"github.com/pkordes/tagengine/internal/repo"
	"github.com/pkordes/tagengine/internal/tracing"
)

// TaggingStore applies desired tag sets to persisted taggings and keeps tag
// usage counters in step with them.
type TaggingStore struct {
	store repo.Store
	tags  *TagRegistry
	types *TypeRegistry
	log   *slog.Logger
}

// NewTaggingStore constructs a TaggingStore. Tags named in a reconcile are
// resolved through tags; taggables and contexts are validated against types.
// A nil log falls back to slog.Default().
func NewTaggingStore(store repo.Store, tags *TagRegistry, types *TypeRegistry, log *slog.Logger) *TaggingStore {
	if log == nil {
		log = slog.Default()
	}
	return &TaggingStore{store: store, tags: tags, types: types, log: log}
}

// Reconcile makes the tags linked to (taggable, tagContext, tagger) equal
// desired with the fewest row changes: it deletes the links to tags no longer
// wanted, inserts links to new ones, and moves each affected tag's usage
// count by the same amount. The deletes, inserts, and counter updates commit
// as one transaction, so a failed Reconcile changes no taggings and no
// counters.
//
// Tags named in desired are found or created before that transaction opens
// and are not rolled back with it: a failed Reconcile can leave newly
// created tags behind with a zero usage count.
//
// A zero tagger reconciles the unowned taggings. Reconciling the same desired
// list twice is a no-op the second time. A link inserted concurrently by
// another caller counts as already satisfied.
func (s *TaggingStore) Reconcile(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, desired domain.TagList) error {
	defer func(start time.Time) {
		metrics.ReconcileDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	ctx, span := tracing.Start(ctx, "tagging.reconcile",
		attribute.String("tagengine.taggable", taggable.String()),
		attribute.String("tagengine.context", tagContext),
		attribute.String("tagengine.tagger", tagger.String()),
		attribute.Int("tagengine.desired", desired.Len()),
	)
	defer span.End()

	if err := s.validateTuple(taggable, tagContext, tagger); err != nil {
		return tracing.Fail(span, fmt.Errorf("service.TaggingStore.Reconcile: %w", err))
	}

	// Tags are resolved before the transaction opens: a tag-creation conflict
	// aborts a Postgres transaction, and creating a tag is harmless on its own.
	wanted, err := s.tags.FindOrCreateMany(ctx, desired.Names())
	if err != nil {
		return tracing.Fail(span, fmt.Errorf("service.TaggingStore.Reconcile: %w", err))
	}

	var inserted, deleted []uuid.UUID
	err = s.store.WithinTx(ctx, func(r repo.Repos) error {
		current, err := r.Taggings.TagsOn(ctx, taggable, tagContext, tagger)
		if err != nil {
			return err
		}
		toRemove, toAdd := diffTags(current, wanted)

		if deleted, err = r.Taggings.Delete(ctx, taggable, tagContext, tagger, toRemove); err != nil {
			return err
		}
		if inserted, err = r.Taggings.Insert(ctx, taggable, tagContext, tagger, toAdd); err != nil {
			return err
		}
		if lost := len(toAdd) - len(inserted); lost > 0 {
			metrics.ConflictsResolved.WithLabelValues("tagging").Add(float64(lost))
			s.log.DebugContext(ctx, "taggings inserted concurrently, treating as satisfied",
				"taggable", taggable.String(), "context", tagContext, "tagger", tagger.String(), "count", lost)
		}
		return r.Tags.AdjustUsage(ctx, usageDeltas(inserted, deleted))
	})
	if err != nil {
		return tracing.Fail(span, fmt.Errorf("service.TaggingStore.Reconcile: %w", err))
	}

	metrics.TaggingsInserted.WithLabelValues(tagContext).Add(float64(len(inserted)))
	metrics.TaggingsDeleted.WithLabelValues(tagContext).Add(float64(len(deleted)))
	span.SetAttributes(
		attribute.Int("tagengine.inserted", len(inserted)),
		attribute.Int("tagengine.deleted", len(deleted)),
	)
	return nil
}

// DestroyAllFor deletes every tagging of taggable, in all contexts and by all
// taggers, and decrements the affected usage counters. Call it when the
// taggable entity itself is destroyed. Tags are never deleted.
func (s *TaggingStore) DestroyAllFor(ctx context.Context, taggable domain.Ref) error {
	ctx, span := tracing.Start(ctx, "tagging.destroy_all",
		attribute.String("tagengine.taggable", taggable.String()),
	)
	defer span.End()

	if err := taggable.Validate(); err != nil {
		return tracing.Fail(span, fmt.Errorf("service.TaggingStore.DestroyAllFor: %w", err))
	}

	var deleted []uuid.UUID
	err := s.store.WithinTx(ctx, func(r repo.Repos) error {
		var err error
		if deleted, err = r.Taggings.DeleteAllFor(ctx, taggable); err != nil {
			return err
		}
		return r.Tags.AdjustUsage(ctx, usageDeltas(nil, deleted))
	})
	if err != nil {
		return tracing.Fail(span, fmt.Errorf("service.TaggingStore.DestroyAllFor: %w", err))
	}

	metrics.TaggingsDeleted.WithLabelValues("*").Add(float64(len(deleted)))
	s.log.InfoContext(ctx, "taggings destroyed", "taggable", taggable.String(), "count", len(deleted))
	return nil
}

// TagsOn returns the tags currently linked to (taggable, tagContext, tagger),
// ordered by name. Always returns a non-nil slice.
func (s *TaggingStore) TagsOn(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) ([]domain.Tag, error) {
	if err := s.validateTuple(taggable, tagContext, tagger); err != nil {
		return nil, fmt.Errorf("service.TaggingStore.TagsOn: %w", err)
	}
	tags, err := s.store.Repos().Taggings.TagsOn(ctx, taggable, tagContext, tagger)
	if err != nil {
		return nil, fmt.Errorf("service.TaggingStore.TagsOn: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}

func (s *TaggingStore) validateTuple(taggable domain.Ref, tagContext string, tagger domain.Ref) error {
	if err := taggable.Validate(); err != nil {
		return err
	}
	if err := s.types.ValidateContext(taggable.Type, tagContext); err != nil {
		return err
	}
	if !tagger.IsZero() {
		if err := tagger.Validate(); err != nil {
			return fmt.Errorf("tagger: %w", err)
		}
	}
	return nil
}

// diffTags compares tags by identity and returns the ids to unlink
// (current − wanted) and to link (wanted − current). Both are sorted by id so
// concurrent reconciles of one tuple touch its rows in the same order and
// cannot deadlock on each other.
func diffTags(current, wanted []domain.Tag) (toRemove, toAdd []uuid.UUID) {
	inCurrent := make(map[uuid.UUID]bool, len(current))
	for _, t := range current {
		inCurrent[t.ID] = true
	}
	inWanted := make(map[uuid.UUID]bool, len(wanted))
	for _, t := range wanted {
		inWanted[t.ID] = true
	}

	for _, t := range current {
		if !inWanted[t.ID] {
			toRemove = append(toRemove, t.ID)
		}
	}
	for _, t := range wanted {
		if !inCurrent[t.ID] {
			toAdd = append(toAdd, t.ID)
			inCurrent[t.ID] = true
		}
	}
	slices.SortFunc(toRemove, compareIDs)
	slices.SortFunc(toAdd, compareIDs)
	return toRemove, toAdd
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func usageDeltas(inserted, deleted []uuid.UUID) map[uuid.UUID]int64 {
	deltas := make(map[uuid.UUID]int64, len(inserted)+len(deleted))
	for _, id := range inserted {
		deltas[id]++
	}
	for _, id := range deleted {
		deltas[id]--
	}
	return deltas
}
