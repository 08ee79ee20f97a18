package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler/gen"
)

func tagToResponse(t domain.Tag) gen.Tag {
	return gen.Tag{
		Id:         openapi_types.UUID(t.ID),
		Name:       t.Name,
		UsageCount: t.UsageCount,
		CreatedAt:  t.CreatedAt,
	}
}

func tagsToResponse(tags []domain.Tag) []gen.Tag {
	out := make([]gen.Tag, len(tags))
	for i, t := range tags {
		out[i] = tagToResponse(t)
	}
	return out
}

func refToResponse(r domain.Ref) gen.Ref {
	return gen.Ref{Type: r.Type, Id: r.ID}
}

func refFromRequest(r *gen.Ref) domain.Ref {
	if r == nil {
		return domain.Ref{}
	}
	return domain.Ref{Type: r.Type, ID: r.Id}
}

func relatedToResponse(related []domain.Related) gen.RelatedList {
	data := make([]gen.Related, len(related))
	for i, rel := range related {
		data[i] = gen.Related{Type: rel.Ref.Type, Id: rel.Ref.ID, Count: rel.Count}
		if rel.Entity != nil {
			entity := rel.Entity
			data[i].Entity = &entity
		}
	}
	return gen.RelatedList{Data: data}
}
