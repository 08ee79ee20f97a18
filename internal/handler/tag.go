package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler/gen"
)

// ListTags handles GET /tags.
// The optional ?q= query parameter filters tags by name prefix, ignoring case.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListTags(ctx context.Context, req gen.ListTagsRequestObject) (gen.ListTagsResponseObject, error) {
	params := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)
	tags, total, err := s.tags.ListPaged(ctx, strings.TrimSpace(deref(req.Params.Q)), params)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.ListTags422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.ListTags200JSONResponse{
		Data: tagsToResponse(tags),
		Pagination: gen.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}, nil
}

// FindOrCreateTag handles POST /tags.
// The body's name is resolved under the server's tag comparison: with "like"
// an existing tag containing the name is returned. A tag is created only when
// nothing matches.
func (s *Server) FindOrCreateTag(ctx context.Context, req gen.FindOrCreateTagRequestObject) (gen.FindOrCreateTagResponseObject, error) {
	tag, err := s.tags.FindOrCreate(ctx, req.Body.Name)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.FindOrCreateTag422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}
	return gen.FindOrCreateTag200JSONResponse(tagToResponse(tag)), nil
}

// ListPopularTags handles GET /tags/popular.
// Returns up to ?limit= (default 20, max 100) tags in use, most used first.
func (s *Server) ListPopularTags(ctx context.Context, req gen.ListPopularTagsRequestObject) (gen.ListPopularTagsResponseObject, error) {
	limit, err := limitValue(req.Params.Limit, domain.DefaultLimit, domain.MaxLimit)
	if err != nil {
		return gen.ListPopularTags422JSONResponse(requestBody(err.Error())), nil
	}

	tags, err := s.tags.Popular(ctx, limit)
	if err != nil {
		return nil, err
	}
	return gen.ListPopularTags200JSONResponse(tagsToResponse(tags)), nil
}
