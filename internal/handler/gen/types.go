// Package gen holds the wire types and server interfaces of the tag engine
// API described by openapi.yaml. It follows the layout of oapi-codegen's
// chi server with the strict-server option: ServerInterface binds path and
// query parameters, and NewStrictHandler adapts a StrictServerInterface,
// whose methods take typed request objects and return typed responses.
package gen

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for ExportTagsParamsFormat.
const (
	Csv  ExportTagsParamsFormat = "csv"
	Json ExportTagsParamsFormat = "json"
)

// ErrorDetail defines model for ErrorDetail.
type ErrorDetail struct {
	// Code One of not_found, validation_error, payload_too_large, method_not_allowed, internal_error.
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// FindOrCreateTagRequest defines model for FindOrCreateTagRequest.
type FindOrCreateTagRequest struct {
	Name string `json:"name"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status string `json:"status"`
}

// Pagination defines model for Pagination.
type Pagination struct {
	Limit int   `json:"limit"`
	Page  int   `json:"page"`
	Total int64 `json:"total"`
}

// PutTaggingsRequest defines model for PutTaggingsRequest.
type PutTaggingsRequest struct {
	Tagger *Ref   `json:"tagger,omitempty"`
	Tags   string `json:"tags"`
}

// Ref defines model for Ref.
type Ref struct {
	Id   string `json:"id"`
	Type string `json:"type"`
}

// Related defines model for Related.
type Related struct {
	Count int64 `json:"count"`

	// Entity Application entity, when a loader is registered for the type.
	Entity *interface{} `json:"entity,omitempty"`
	Id     string       `json:"id"`
	Type   string       `json:"type"`
}

// RelatedList defines model for RelatedList.
type RelatedList struct {
	Data []Related `json:"data"`
}

// Tag defines model for Tag.
type Tag struct {
	CreatedAt  time.Time          `json:"created_at"`
	Id         openapi_types.UUID `json:"id"`
	Name       string             `json:"name"`
	UsageCount int64              `json:"usage_count"`
}

// TagPage defines model for TagPage.
type TagPage struct {
	Data       []Tag      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Taggings defines model for Taggings.
type Taggings struct {
	Context  string `json:"context"`
	TagList  string `json:"tag_list"`
	Taggable Ref    `json:"taggable"`
	Tagger   *Ref   `json:"tagger,omitempty"`
	Tags     []Tag  `json:"tags"`
}

// Limit defines model for Limit.
type Limit = int

// Page defines model for Page.
type Page = int

// TaggableId defines model for TaggableId.
type TaggableId = string

// TaggableType defines model for TaggableType.
type TaggableType = string

// ListTagsParams defines parameters for ListTags.
type ListTagsParams struct {
	// Q Case-insensitive name prefix.
	Q     *string `form:"q,omitempty" json:"q,omitempty"`
	Page  *Page   `form:"page,omitempty" json:"page,omitempty"`
	Limit *Limit  `form:"limit,omitempty" json:"limit,omitempty"`
}

// ExportTagsParams defines parameters for ExportTags.
type ExportTagsParams struct {
	Format *ExportTagsParamsFormat `form:"format,omitempty" json:"format,omitempty"`
}

// ExportTagsParamsFormat defines parameters for ExportTags.
type ExportTagsParamsFormat string

// ListPopularTagsParams defines parameters for ListPopularTags.
type ListPopularTagsParams struct {
	Limit *Limit `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetMatchingParams defines parameters for GetMatching.
type GetMatchingParams struct {
	Search string  `form:"search" json:"search"`
	Result string  `form:"result" json:"result"`
	Target *string `form:"target,omitempty" json:"target,omitempty"`
	Limit  *Limit  `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetRelatedParams defines parameters for GetRelated.
type GetRelatedParams struct {
	// Target Target taggable type. Defaults to the entity's type.
	Target *string `form:"target,omitempty" json:"target,omitempty"`
	Limit  *Limit  `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetTaggingsParams defines parameters for GetTaggings.
type GetTaggingsParams struct {
	TaggerType *string `form:"tagger_type,omitempty" json:"tagger_type,omitempty"`
	TaggerId   *string `form:"tagger_id,omitempty" json:"tagger_id,omitempty"`
}

// FindOrCreateTagJSONRequestBody defines body for FindOrCreateTag for application/json ContentType.
type FindOrCreateTagJSONRequestBody = FindOrCreateTagRequest

// PutTaggingsJSONRequestBody defines body for PutTaggings for application/json ContentType.
type PutTaggingsJSONRequestBody = PutTaggingsRequest
