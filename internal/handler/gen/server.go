package gen

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /healthz)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /tags)
	ListTags(w http.ResponseWriter, r *http.Request, params ListTagsParams)
	// (POST /tags)
	FindOrCreateTag(w http.ResponseWriter, r *http.Request)
	// (GET /tags/export)
	ExportTags(w http.ResponseWriter, r *http.Request, params ExportTagsParams)
	// (GET /tags/popular)
	ListPopularTags(w http.ResponseWriter, r *http.Request, params ListPopularTagsParams)
	// (GET /taggables/{type}/{id}/matching)
	GetMatching(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId, params GetMatchingParams)
	// (GET /taggables/{type}/{id}/related/{context})
	GetRelated(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId, tagContext string, params GetRelatedParams)
	// (DELETE /taggables/{type}/{id}/tags)
	DestroyTaggings(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId)
	// (GET /taggables/{type}/{id}/tags/{context})
	GetTaggings(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId, tagContext string, params GetTaggingsParams)
	// (PUT /taggables/{type}/{id}/tags/{context})
	PutTaggings(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId, tagContext string)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

// GetHealth operation middleware
func (siw *ServerInterfaceWrapper) GetHealth(w http.ResponseWriter, r *http.Request) {
	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetHealth(w, r)
	}))
	siw.serve(handler, w, r)
}

// ListTags operation middleware
func (siw *ServerInterfaceWrapper) ListTags(w http.ResponseWriter, r *http.Request) {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListTagsParams

	// ------------- Optional query parameter "q" -------------
	err = runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}

	// ------------- Optional query parameter "page" -------------
	err = runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &params.Page)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "page", Err: err})
		return
	}

	// ------------- Optional query parameter "limit" -------------
	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListTags(w, r, params)
	}))
	siw.serve(handler, w, r)
}

// FindOrCreateTag operation middleware
func (siw *ServerInterfaceWrapper) FindOrCreateTag(w http.ResponseWriter, r *http.Request) {
	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.FindOrCreateTag(w, r)
	}))
	siw.serve(handler, w, r)
}

// ExportTags operation middleware
func (siw *ServerInterfaceWrapper) ExportTags(w http.ResponseWriter, r *http.Request) {
	var err error

	var params ExportTagsParams

	// ------------- Optional query parameter "format" -------------
	err = runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &params.Format)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "format", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ExportTags(w, r, params)
	}))
	siw.serve(handler, w, r)
}

// ListPopularTags operation middleware
func (siw *ServerInterfaceWrapper) ListPopularTags(w http.ResponseWriter, r *http.Request) {
	var err error

	var params ListPopularTagsParams

	// ------------- Optional query parameter "limit" -------------
	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListPopularTags(w, r, params)
	}))
	siw.serve(handler, w, r)
}

// GetMatching operation middleware
func (siw *ServerInterfaceWrapper) GetMatching(w http.ResponseWriter, r *http.Request) {
	pType, id, ok := siw.bindTaggable(w, r)
	if !ok {
		return
	}

	var err error

	var params GetMatchingParams

	// ------------- Required query parameter "search" -------------
	if paramValue := r.URL.Query().Get("search"); paramValue == "" {
		siw.ErrorHandlerFunc(w, r, &RequiredParamError{ParamName: "search"})
		return
	}
	err = runtime.BindQueryParameter("form", true, true, "search", r.URL.Query(), &params.Search)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "search", Err: err})
		return
	}

	// ------------- Required query parameter "result" -------------
	if paramValue := r.URL.Query().Get("result"); paramValue == "" {
		siw.ErrorHandlerFunc(w, r, &RequiredParamError{ParamName: "result"})
		return
	}
	err = runtime.BindQueryParameter("form", true, true, "result", r.URL.Query(), &params.Result)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "result", Err: err})
		return
	}

	// ------------- Optional query parameter "target" -------------
	err = runtime.BindQueryParameter("form", true, false, "target", r.URL.Query(), &params.Target)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "target", Err: err})
		return
	}

	// ------------- Optional query parameter "limit" -------------
	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetMatching(w, r, pType, id, params)
	}))
	siw.serve(handler, w, r)
}

// GetRelated operation middleware
func (siw *ServerInterfaceWrapper) GetRelated(w http.ResponseWriter, r *http.Request) {
	pType, id, ok := siw.bindTaggable(w, r)
	if !ok {
		return
	}
	tagContext, ok := siw.bindPath(w, r, "context")
	if !ok {
		return
	}

	var err error

	var params GetRelatedParams

	// ------------- Optional query parameter "target" -------------
	err = runtime.BindQueryParameter("form", true, false, "target", r.URL.Query(), &params.Target)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "target", Err: err})
		return
	}

	// ------------- Optional query parameter "limit" -------------
	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetRelated(w, r, pType, id, tagContext, params)
	}))
	siw.serve(handler, w, r)
}

// DestroyTaggings operation middleware
func (siw *ServerInterfaceWrapper) DestroyTaggings(w http.ResponseWriter, r *http.Request) {
	pType, id, ok := siw.bindTaggable(w, r)
	if !ok {
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DestroyTaggings(w, r, pType, id)
	}))
	siw.serve(handler, w, r)
}

// GetTaggings operation middleware
func (siw *ServerInterfaceWrapper) GetTaggings(w http.ResponseWriter, r *http.Request) {
	pType, id, ok := siw.bindTaggable(w, r)
	if !ok {
		return
	}
	tagContext, ok := siw.bindPath(w, r, "context")
	if !ok {
		return
	}

	var err error

	var params GetTaggingsParams

	// ------------- Optional query parameter "tagger_type" -------------
	err = runtime.BindQueryParameter("form", true, false, "tagger_type", r.URL.Query(), &params.TaggerType)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "tagger_type", Err: err})
		return
	}

	// ------------- Optional query parameter "tagger_id" -------------
	err = runtime.BindQueryParameter("form", true, false, "tagger_id", r.URL.Query(), &params.TaggerId)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "tagger_id", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetTaggings(w, r, pType, id, tagContext, params)
	}))
	siw.serve(handler, w, r)
}

// PutTaggings operation middleware
func (siw *ServerInterfaceWrapper) PutTaggings(w http.ResponseWriter, r *http.Request) {
	pType, id, ok := siw.bindTaggable(w, r)
	if !ok {
		return
	}
	tagContext, ok := siw.bindPath(w, r, "context")
	if !ok {
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PutTaggings(w, r, pType, id, tagContext)
	}))
	siw.serve(handler, w, r)
}

func (siw *ServerInterfaceWrapper) serve(handler http.Handler, w http.ResponseWriter, r *http.Request) {
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// bindTaggable binds the {type} and {id} path parameters shared by every
// /taggables route.
func (siw *ServerInterfaceWrapper) bindTaggable(w http.ResponseWriter, r *http.Request) (TaggableType, TaggableId, bool) {
	pType, ok := siw.bindPath(w, r, "type")
	if !ok {
		return "", "", false
	}
	id, ok := siw.bindPath(w, r, "id")
	if !ok {
		return "", "", false
	}
	return pType, id, true
}

// bindPath binds a required simple-style path parameter, unescaping it.
func (siw *ServerInterfaceWrapper) bindPath(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return "", false
	}
	return v, true
}

type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("Query argument %s is required, but not found", e.ParamName)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates an http.Handler routing every operation of openapi.yaml.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions creates an http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/healthz", wrapper.GetHealth)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/tags", wrapper.ListTags)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/tags", wrapper.FindOrCreateTag)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/tags/export", wrapper.ExportTags)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/tags/popular", wrapper.ListPopularTags)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/taggables/{type}/{id}/matching", wrapper.GetMatching)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/taggables/{type}/{id}/related/{context}", wrapper.GetRelated)
	})
	r.Group(func(r chi.Router) {
		r.Delete(options.BaseURL+"/taggables/{type}/{id}/tags", wrapper.DestroyTaggings)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/taggables/{type}/{id}/tags/{context}", wrapper.GetTaggings)
	})
	r.Group(func(r chi.Router) {
		r.Put(options.BaseURL+"/taggables/{type}/{id}/tags/{context}", wrapper.PutTaggings)
	})

	return r
}
