package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	strictnethttp "github.com/oapi-codegen/runtime/strictmiddleware/nethttp"
)

type GetHealthRequestObject struct {
}

type GetHealthResponseObject interface {
	VisitGetHealthResponse(w http.ResponseWriter) error
}

type GetHealth200JSONResponse HealthResponse

func (response GetHealth200JSONResponse) VisitGetHealthResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type ListTagsRequestObject struct {
	Params ListTagsParams
}

type ListTagsResponseObject interface {
	VisitListTagsResponse(w http.ResponseWriter) error
}

type ListTags200JSONResponse TagPage

func (response ListTags200JSONResponse) VisitListTagsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type ListTags422JSONResponse ErrorResponse

func (response ListTags422JSONResponse) VisitListTagsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

type FindOrCreateTagRequestObject struct {
	Body *FindOrCreateTagJSONRequestBody
}

type FindOrCreateTagResponseObject interface {
	VisitFindOrCreateTagResponse(w http.ResponseWriter) error
}

type FindOrCreateTag200JSONResponse Tag

func (response FindOrCreateTag200JSONResponse) VisitFindOrCreateTagResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type FindOrCreateTag413JSONResponse ErrorResponse

func (response FindOrCreateTag413JSONResponse) VisitFindOrCreateTagResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(413)

	return json.NewEncoder(w).Encode(response)
}

type FindOrCreateTag422JSONResponse ErrorResponse

func (response FindOrCreateTag422JSONResponse) VisitFindOrCreateTagResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

type ExportTagsRequestObject struct {
	Params ExportTagsParams
}

type ExportTagsResponseObject interface {
	VisitExportTagsResponse(w http.ResponseWriter) error
}

type ExportTags200JSONResponse []Tag

func (response ExportTags200JSONResponse) VisitExportTagsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type ExportTags200ResponseHeaders struct {
	ContentDisposition string
}

type ExportTags200TextcsvResponse struct {
	Body          io.Reader
	Headers       ExportTags200ResponseHeaders
	ContentLength int64
}

func (response ExportTags200TextcsvResponse) VisitExportTagsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	if response.ContentLength != 0 {
		w.Header().Set("Content-Length", fmt.Sprint(response.ContentLength))
	}
	w.Header().Set("Content-Disposition", fmt.Sprint(response.Headers.ContentDisposition))
	w.WriteHeader(200)

	if closer, ok := response.Body.(io.ReadCloser); ok {
		defer closer.Close()
	}
	_, err := io.Copy(w, response.Body)
	return err
}

type ExportTags422JSONResponse ErrorResponse

func (response ExportTags422JSONResponse) VisitExportTagsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

type ListPopularTagsRequestObject struct {
	Params ListPopularTagsParams
}

type ListPopularTagsResponseObject interface {
	VisitListPopularTagsResponse(w http.ResponseWriter) error
}

type ListPopularTags200JSONResponse []Tag

func (response ListPopularTags200JSONResponse) VisitListPopularTagsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type ListPopularTags422JSONResponse ErrorResponse

func (response ListPopularTags422JSONResponse) VisitListPopularTagsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

type GetMatchingRequestObject struct {
	Type   TaggableType `json:"type"`
	Id     TaggableId   `json:"id"`
	Params GetMatchingParams
}

type GetMatchingResponseObject interface {
	VisitGetMatchingResponse(w http.ResponseWriter) error
}

type GetMatching200JSONResponse RelatedList

func (response GetMatching200JSONResponse) VisitGetMatchingResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type GetMatching422JSONResponse ErrorResponse

func (response GetMatching422JSONResponse) VisitGetMatchingResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

type GetRelatedRequestObject struct {
	Type    TaggableType `json:"type"`
	Id      TaggableId   `json:"id"`
	Context string       `json:"context"`
	Params  GetRelatedParams
}

type GetRelatedResponseObject interface {
	VisitGetRelatedResponse(w http.ResponseWriter) error
}

type GetRelated200JSONResponse RelatedList

func (response GetRelated200JSONResponse) VisitGetRelatedResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type GetRelated422JSONResponse ErrorResponse

func (response GetRelated422JSONResponse) VisitGetRelatedResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

type DestroyTaggingsRequestObject struct {
	Type TaggableType `json:"type"`
	Id   TaggableId   `json:"id"`
}

type DestroyTaggingsResponseObject interface {
	VisitDestroyTaggingsResponse(w http.ResponseWriter) error
}

type DestroyTaggings204Response struct {
}

func (response DestroyTaggings204Response) VisitDestroyTaggingsResponse(w http.ResponseWriter) error {
	w.WriteHeader(204)
	return nil
}

type DestroyTaggings422JSONResponse ErrorResponse

func (response DestroyTaggings422JSONResponse) VisitDestroyTaggingsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

type GetTaggingsRequestObject struct {
	Type    TaggableType `json:"type"`
	Id      TaggableId   `json:"id"`
	Context string       `json:"context"`
	Params  GetTaggingsParams
}

type GetTaggingsResponseObject interface {
	VisitGetTaggingsResponse(w http.ResponseWriter) error
}

type GetTaggings200JSONResponse Taggings

func (response GetTaggings200JSONResponse) VisitGetTaggingsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type GetTaggings422JSONResponse ErrorResponse

func (response GetTaggings422JSONResponse) VisitGetTaggingsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

type PutTaggingsRequestObject struct {
	Type    TaggableType `json:"type"`
	Id      TaggableId   `json:"id"`
	Context string       `json:"context"`
	Body    *PutTaggingsJSONRequestBody
}

type PutTaggingsResponseObject interface {
	VisitPutTaggingsResponse(w http.ResponseWriter) error
}

type PutTaggings200JSONResponse Taggings

func (response PutTaggings200JSONResponse) VisitPutTaggingsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type PutTaggings413JSONResponse ErrorResponse

func (response PutTaggings413JSONResponse) VisitPutTaggingsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(413)

	return json.NewEncoder(w).Encode(response)
}

type PutTaggings422JSONResponse ErrorResponse

func (response PutTaggings422JSONResponse) VisitPutTaggingsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(422)

	return json.NewEncoder(w).Encode(response)
}

// StrictServerInterface represents all server handlers.
type StrictServerInterface interface {
	// (GET /healthz)
	GetHealth(ctx context.Context, request GetHealthRequestObject) (GetHealthResponseObject, error)
	// (GET /tags)
	ListTags(ctx context.Context, request ListTagsRequestObject) (ListTagsResponseObject, error)
	// (POST /tags)
	FindOrCreateTag(ctx context.Context, request FindOrCreateTagRequestObject) (FindOrCreateTagResponseObject, error)
	// (GET /tags/export)
	ExportTags(ctx context.Context, request ExportTagsRequestObject) (ExportTagsResponseObject, error)
	// (GET /tags/popular)
	ListPopularTags(ctx context.Context, request ListPopularTagsRequestObject) (ListPopularTagsResponseObject, error)
	// (GET /taggables/{type}/{id}/matching)
	GetMatching(ctx context.Context, request GetMatchingRequestObject) (GetMatchingResponseObject, error)
	// (GET /taggables/{type}/{id}/related/{context})
	GetRelated(ctx context.Context, request GetRelatedRequestObject) (GetRelatedResponseObject, error)
	// (DELETE /taggables/{type}/{id}/tags)
	DestroyTaggings(ctx context.Context, request DestroyTaggingsRequestObject) (DestroyTaggingsResponseObject, error)
	// (GET /taggables/{type}/{id}/tags/{context})
	GetTaggings(ctx context.Context, request GetTaggingsRequestObject) (GetTaggingsResponseObject, error)
	// (PUT /taggables/{type}/{id}/tags/{context})
	PutTaggings(ctx context.Context, request PutTaggingsRequestObject) (PutTaggingsResponseObject, error)
}

type StrictHandlerFunc = strictnethttp.StrictHTTPHandlerFunc
type StrictMiddlewareFunc = strictnethttp.StrictHTTPMiddlewareFunc

type StrictHTTPServerOptions struct {
	RequestErrorHandlerFunc  func(w http.ResponseWriter, r *http.Request, err error)
	ResponseErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func NewStrictHandler(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		},
	}}
}

func NewStrictHandlerWithOptions(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc, options StrictHTTPServerOptions) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: options}
}

type strictHandler struct {
	ssi         StrictServerInterface
	middlewares []StrictMiddlewareFunc
	options     StrictHTTPServerOptions
}

// GetHealth operation middleware
func (sh *strictHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	var request GetHealthRequestObject

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetHealth(ctx, request.(GetHealthRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "GetHealth")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetHealthResponseObject); ok {
		if err := validResponse.VisitGetHealthResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// ListTags operation middleware
func (sh *strictHandler) ListTags(w http.ResponseWriter, r *http.Request, params ListTagsParams) {
	var request ListTagsRequestObject

	request.Params = params

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.ListTags(ctx, request.(ListTagsRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "ListTags")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(ListTagsResponseObject); ok {
		if err := validResponse.VisitListTagsResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// FindOrCreateTag operation middleware
func (sh *strictHandler) FindOrCreateTag(w http.ResponseWriter, r *http.Request) {
	var request FindOrCreateTagRequestObject

	var body FindOrCreateTagJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return
	}
	request.Body = &body

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.FindOrCreateTag(ctx, request.(FindOrCreateTagRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "FindOrCreateTag")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(FindOrCreateTagResponseObject); ok {
		if err := validResponse.VisitFindOrCreateTagResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// ExportTags operation middleware
func (sh *strictHandler) ExportTags(w http.ResponseWriter, r *http.Request, params ExportTagsParams) {
	var request ExportTagsRequestObject

	request.Params = params

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.ExportTags(ctx, request.(ExportTagsRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "ExportTags")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(ExportTagsResponseObject); ok {
		if err := validResponse.VisitExportTagsResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// ListPopularTags operation middleware
func (sh *strictHandler) ListPopularTags(w http.ResponseWriter, r *http.Request, params ListPopularTagsParams) {
	var request ListPopularTagsRequestObject

	request.Params = params

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.ListPopularTags(ctx, request.(ListPopularTagsRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "ListPopularTags")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(ListPopularTagsResponseObject); ok {
		if err := validResponse.VisitListPopularTagsResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// GetMatching operation middleware
func (sh *strictHandler) GetMatching(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId, params GetMatchingParams) {
	var request GetMatchingRequestObject

	request.Type = pType
	request.Id = id
	request.Params = params

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetMatching(ctx, request.(GetMatchingRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "GetMatching")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetMatchingResponseObject); ok {
		if err := validResponse.VisitGetMatchingResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// GetRelated operation middleware
func (sh *strictHandler) GetRelated(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId, tagContext string, params GetRelatedParams) {
	var request GetRelatedRequestObject

	request.Type = pType
	request.Id = id
	request.Context = tagContext
	request.Params = params

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetRelated(ctx, request.(GetRelatedRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "GetRelated")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetRelatedResponseObject); ok {
		if err := validResponse.VisitGetRelatedResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// DestroyTaggings operation middleware
func (sh *strictHandler) DestroyTaggings(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId) {
	var request DestroyTaggingsRequestObject

	request.Type = pType
	request.Id = id

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.DestroyTaggings(ctx, request.(DestroyTaggingsRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "DestroyTaggings")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(DestroyTaggingsResponseObject); ok {
		if err := validResponse.VisitDestroyTaggingsResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// GetTaggings operation middleware
func (sh *strictHandler) GetTaggings(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId, tagContext string, params GetTaggingsParams) {
	var request GetTaggingsRequestObject

	request.Type = pType
	request.Id = id
	request.Context = tagContext
	request.Params = params

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetTaggings(ctx, request.(GetTaggingsRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "GetTaggings")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetTaggingsResponseObject); ok {
		if err := validResponse.VisitGetTaggingsResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// PutTaggings operation middleware
func (sh *strictHandler) PutTaggings(w http.ResponseWriter, r *http.Request, pType TaggableType, id TaggableId, tagContext string) {
	var request PutTaggingsRequestObject

	request.Type = pType
	request.Id = id
	request.Context = tagContext

	var body PutTaggingsJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return
	}
	request.Body = &body

	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.PutTaggings(ctx, request.(PutTaggingsRequestObject))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, "PutTaggings")
	}

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(PutTaggingsResponseObject); ok {
		if err := validResponse.VisitPutTaggingsResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}
