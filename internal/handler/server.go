// Package handler implements the HTTP handlers for the tag engine API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into resource files (health.go, tag.go, tagging.go,
// relations.go, export.go) but share the same Server struct so they can reach
// its dependencies. Routes mounts them on chi through gen.NewStrictHandler.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler/gen"
)

// TagServicer defines the tag registry operations the handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// mocks without a database.
type TagServicer interface {
	FindOrCreate(ctx context.Context, name string) (domain.Tag, error)
	ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)
	Popular(ctx context.Context, limit int) ([]domain.Tag, error)
	All(ctx context.Context) ([]domain.Tag, error)
}

// TaggingServicer defines the tagging operations the handlers depend on.
type TaggingServicer interface {
	TagsOn(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) ([]domain.Tag, error)
	Reconcile(ctx context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, desired domain.TagList) error
	DestroyAllFor(ctx context.Context, taggable domain.Ref) error
}

// RelationServicer defines the relation queries the handlers depend on.
type RelationServicer interface {
	RelatedEntities(ctx context.Context, entity domain.Ref, tagContext, targetType string, limit int) ([]domain.Related, error)
	MatchingContexts(ctx context.Context, entity domain.Ref, searchContext, resultContext, targetType string, limit int) ([]domain.Related, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
type Server struct {
	tags      TagServicer
	taggings  TaggingServicer
	relations RelationServicer
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// Pass nil for services a test does not exercise; a nil log uses slog.Default().
func NewServer(tags TagServicer, taggings TaggingServicer, relations RelationServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{tags: tags, taggings: taggings, relations: relations, log: log}
}

var _ gen.StrictServerInterface = (*Server)(nil)

// Routes returns a router serving every endpoint of the API, plus
// /openapi.yaml and /metrics.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("no such route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})

	r.Get("/openapi.yaml", s.serveOpenAPI)
	r.Handle("/metrics", promhttp.Handler())

	strict := gen.NewStrictHandlerWithOptions(s, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.badRequestBody,
		ResponseErrorHandlerFunc: s.respondError,
	})
	gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: badParameter,
	})
	return r
}
