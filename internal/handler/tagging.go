package handler

import (
	"context"
	"errors"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler/gen"
)

// GetTaggings handles GET /taggables/{type}/{id}/tags/{context}.
// ?tagger_type= and ?tagger_id= select an owner's tags; without them the
// unowned tags are returned.
func (s *Server) GetTaggings(ctx context.Context, req gen.GetTaggingsRequestObject) (gen.GetTaggingsResponseObject, error) {
	taggable := domain.Ref{Type: req.Type, ID: req.Id}
	tagger := domain.Ref{Type: deref(req.Params.TaggerType), ID: deref(req.Params.TaggerId)}

	resp, err := s.taggingsOf(ctx, taggable, req.Context, tagger)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.GetTaggings422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}
	return gen.GetTaggings200JSONResponse(resp), nil
}

// PutTaggings handles PUT /taggables/{type}/{id}/tags/{context}.
// The body's tag list replaces the tuple's tags with the smallest set of
// changes; the resulting tags are returned.
func (s *Server) PutTaggings(ctx context.Context, req gen.PutTaggingsRequestObject) (gen.PutTaggingsResponseObject, error) {
	taggable := domain.Ref{Type: req.Type, ID: req.Id}
	tagger := refFromRequest(req.Body.Tagger)

	err := s.taggings.Reconcile(ctx, taggable, req.Context, tagger, domain.ParseTagList(req.Body.Tags))
	if err == nil {
		var resp gen.Taggings
		if resp, err = s.taggingsOf(ctx, taggable, req.Context, tagger); err == nil {
			return gen.PutTaggings200JSONResponse(resp), nil
		}
	}
	if errors.Is(err, domain.ErrValidation) {
		return gen.PutTaggings422JSONResponse(validationBody(err)), nil
	}
	return nil, err
}

// DestroyTaggings handles DELETE /taggables/{type}/{id}/tags.
// It removes every tagging of the taggable in all contexts. Tags themselves
// are kept.
func (s *Server) DestroyTaggings(ctx context.Context, req gen.DestroyTaggingsRequestObject) (gen.DestroyTaggingsResponseObject, error) {
	if err := s.taggings.DestroyAllFor(ctx, domain.Ref{Type: req.Type, ID: req.Id}); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.DestroyTaggings422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}
	return gen.DestroyTaggings204Response{}, nil
}

func (s *Server) taggingsOf(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) (gen.Taggings, error) {
	tags, err := s.taggings.TagsOn(ctx, taggable, tagContext, tagger)
	if err != nil {
		return gen.Taggings{}, err
	}

	resp := gen.Taggings{
		Taggable: refToResponse(taggable),
		Context:  tagContext,
		Tags:     tagsToResponse(tags),
		TagList:  domain.TagListFromTags(tags...).String(),
	}
	if !tagger.IsZero() {
		t := refToResponse(tagger)
		resp.Tagger = &t
	}
	return resp, nil
}
