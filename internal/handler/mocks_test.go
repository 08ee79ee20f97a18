package handler_test

import (
	"context"
	"net/http"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler"
)

// The mocks below are hand-written test doubles. Each method is a function
// field; set only the ones a test needs.

type mockTagServicer struct {
	findOrCreate func(ctx context.Context, name string) (domain.Tag, error)
	listPaged    func(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)
	popular      func(ctx context.Context, limit int) ([]domain.Tag, error)
	all          func(ctx context.Context) ([]domain.Tag, error)
}

func (m *mockTagServicer) FindOrCreate(ctx context.Context, name string) (domain.Tag, error) {
	return m.findOrCreate(ctx, name)
}
func (m *mockTagServicer) ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	return m.listPaged(ctx, prefix, p)
}
func (m *mockTagServicer) Popular(ctx context.Context, limit int) ([]domain.Tag, error) {
	return m.popular(ctx, limit)
}
func (m *mockTagServicer) All(ctx context.Context) ([]domain.Tag, error) {
	return m.all(ctx)
}

type mockTaggingServicer struct {
	tagsOn        func(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) ([]domain.Tag, error)
	reconcile     func(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, desired domain.TagList) error
	destroyAllFor func(ctx context.Context, taggable domain.Ref) error
}

func (m *mockTaggingServicer) TagsOn(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) ([]domain.Tag, error) {
	return m.tagsOn(ctx, taggable, tagContext, tagger)
}
func (m *mockTaggingServicer) Reconcile(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, desired domain.TagList) error {
	return m.reconcile(ctx, taggable, tagContext, tagger, desired)
}
func (m *mockTaggingServicer) DestroyAllFor(ctx context.Context, taggable domain.Ref) error {
	return m.destroyAllFor(ctx, taggable)
}

type mockRelationServicer struct {
	relatedEntities  func(ctx context.Context, entity domain.Ref, tagContext, targetType string, limit int) ([]domain.Related, error)
	matchingContexts func(ctx context.Context, entity domain.Ref, searchContext, resultContext, targetType string, limit int) ([]domain.Related, error)
}

func (m *mockRelationServicer) RelatedEntities(ctx context.Context, entity domain.Ref, tagContext, targetType string, limit int) ([]domain.Related, error) {
	return m.relatedEntities(ctx, entity, tagContext, targetType, limit)
}
func (m *mockRelationServicer) MatchingContexts(ctx context.Context, entity domain.Ref, searchContext, resultContext, targetType string, limit int) ([]domain.Related, error) {
	return m.matchingContexts(ctx, entity, searchContext, resultContext, targetType, limit)
}

// compile-time checks
var (
	_ handler.TagServicer      = (*mockTagServicer)(nil)
	_ handler.TaggingServicer  = (*mockTaggingServicer)(nil)
	_ handler.RelationServicer = (*mockRelationServicer)(nil)
)

// newHTTPHandler wires a Server around the given mocks. Pass nil for mocks
// the test does not use.
func newHTTPHandler(tags handler.TagServicer, taggings handler.TaggingServicer, relations handler.RelationServicer) http.Handler {
	return handler.NewServer(tags, taggings, relations, nil).Routes()
}
