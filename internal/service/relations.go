package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/repo"
	"github.com/pkordes/tagengine/internal/tracing"
)

// Relations answers overlap queries: which taggables share tags with a given
// entity. Results are point-in-time reads and are never cached.
type Relations struct {
	store repo.Store
	types *TypeRegistry
}

// NewRelations constructs a Relations backed by store.
func NewRelations(store repo.Store, types *TypeRegistry) *Relations {
	return &Relations{store: store, types: types}
}

// RelatedEntities ranks taggables of targetType by how many distinct tags
// they share with entity's tags in tagContext, most shared first. When
// targetType is entity's own type, entity itself is left out. A limit of
// zero returns every match.
func (r *Relations) RelatedEntities(ctx context.Context, entity domain.Ref, tagContext, targetType string, limit int) ([]domain.Related, error) {
	related, err := r.related(ctx, entity, tagContext, "", targetType, limit)
	if err != nil {
		return nil, fmt.Errorf("service.Relations.RelatedEntities: %w", err)
	}
	return related, nil
}

// MatchingContexts is RelatedEntities restricted to target taggings recorded
// in resultContext: it finds taggables whose resultContext tags match
// entity's searchContext tags.
func (r *Relations) MatchingContexts(ctx context.Context, entity domain.Ref, searchContext, resultContext, targetType string, limit int) ([]domain.Related, error) {
	if err := r.types.ValidateContext(targetType, resultContext); err != nil {
		return nil, fmt.Errorf("service.Relations.MatchingContexts: %w", err)
	}
	related, err := r.related(ctx, entity, searchContext, resultContext, targetType, limit)
	if err != nil {
		return nil, fmt.Errorf("service.Relations.MatchingContexts: %w", err)
	}
	return related, nil
}

func (r *Relations) related(ctx context.Context, entity domain.Ref, searchContext, resultContext, targetType string, limit int) ([]domain.Related, error) {
	ctx, span := tracing.Start(ctx, "relations.related",
		attribute.String("tagengine.entity", entity.String()),
		attribute.String("tagengine.search_context", searchContext),
		attribute.String("tagengine.result_context", resultContext),
		attribute.String("tagengine.target_type", targetType),
	)
	defer span.End()

	if err := entity.Validate(); err != nil {
		return nil, err
	}
	if err := r.types.ValidateContext(entity.Type, searchContext); err != nil {
		return nil, err
	}
	target, ok := r.types.Lookup(targetType)
	if !ok {
		return nil, fmt.Errorf("%w: taggable type %q is not registered", domain.ErrValidation, targetType)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", domain.ErrValidation)
	}

	repos := r.store.Repos()
	names, err := repos.Taggings.TagNamesInContext(ctx, entity, searchContext)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if len(names) == 0 {
		return []domain.Related{}, nil
	}

	q := repo.RelatedQuery{
		TargetType:    targetType,
		Names:         names,
		ResultContext: resultContext,
		Limit:         limit,
	}
	if targetType == entity.Type {
		q.ExcludeID = entity.ID
	}
	related, err := repos.Taggings.Related(ctx, q)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if related == nil {
		related = []domain.Related{}
	}
	span.SetAttributes(attribute.Int("tagengine.results", len(related)))

	if target.Loader == nil || len(related) == 0 {
		return related, nil
	}
	ids := make([]string, len(related))
	for i, rel := range related {
		ids[i] = rel.Ref.ID
	}
	entities, err := target.Loader.Load(ctx, ids)
	if err != nil {
		return nil, tracing.Fail(span, fmt.Errorf("load %s: %w", targetType, err))
	}
	for i := range related {
		related[i].Entity = entities[related[i].Ref.ID]
	}
	return related, nil
}
