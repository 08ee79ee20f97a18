package handler

import (
	"context"
	"errors"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler/gen"
)

// GetRelated handles GET /taggables/{type}/{id}/related/{context}.
// Ranks taggables of ?target= (default: the same type) by how many of the
// entity's tags in context they share. ?limit= defaults to 20, max 100.
func (s *Server) GetRelated(ctx context.Context, req gen.GetRelatedRequestObject) (gen.GetRelatedResponseObject, error) {
	entity := domain.Ref{Type: req.Type, ID: req.Id}
	limit, err := limitValue(req.Params.Limit, domain.DefaultLimit, domain.MaxLimit)
	if err != nil {
		return gen.GetRelated422JSONResponse(requestBody(err.Error())), nil
	}

	related, err := s.relations.RelatedEntities(ctx, entity, req.Context, targetType(entity, req.Params.Target), limit)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.GetRelated422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}
	return gen.GetRelated200JSONResponse(relatedToResponse(related)), nil
}

// GetMatching handles GET /taggables/{type}/{id}/matching.
// Finds taggables of ?target= whose ?result= context tags match the entity's
// ?search= context tags. search and result are required.
func (s *Server) GetMatching(ctx context.Context, req gen.GetMatchingRequestObject) (gen.GetMatchingResponseObject, error) {
	entity := domain.Ref{Type: req.Type, ID: req.Id}
	limit, err := limitValue(req.Params.Limit, domain.DefaultLimit, domain.MaxLimit)
	if err != nil {
		return gen.GetMatching422JSONResponse(requestBody(err.Error())), nil
	}

	related, err := s.relations.MatchingContexts(ctx, entity, req.Params.Search, req.Params.Result, targetType(entity, req.Params.Target), limit)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.GetMatching422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}
	return gen.GetMatching200JSONResponse(relatedToResponse(related)), nil
}
