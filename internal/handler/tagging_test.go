package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler/gen"
)

// ---- GET /taggables/{type}/{id}/tags/{context} -----------------------------

func TestGetTaggings_200(t *testing.T) {
	svc := &mockTaggingServicer{
		tagsOn: func(_ context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref) ([]domain.Tag, error) {
			assert.Equal(t, domain.Ref{Type: "Post", ID: "1"}, taggable)
			assert.Equal(t, "skills", tagContext)
			assert.True(t, tagger.IsZero())
			return []domain.Tag{tagFixture("ruby", 1), tagFixture("foo, bar", 1)}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/taggables/Post/1/tags/skills", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body gen.Taggings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, gen.Ref{Type: "Post", Id: "1"}, body.Taggable)
	assert.Equal(t, "skills", body.Context)
	assert.Nil(t, body.Tagger)
	assert.Len(t, body.Tags, 2)
	assert.Equal(t, `ruby, "foo, bar"`, body.TagList)
}

func TestGetTaggings_TaggerFromQuery(t *testing.T) {
	var captured domain.Ref
	svc := &mockTaggingServicer{
		tagsOn: func(_ context.Context, _ domain.Ref, _ string, tagger domain.Ref) ([]domain.Tag, error) {
			captured = tagger
			return []domain.Tag{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/taggables/Post/1/tags/skills?tagger_type=User&tagger_id=7", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Ref{Type: "User", ID: "7"}, captured)
	assert.Contains(t, rec.Body.String(), `"tagger":{"type":"User","id":"7"}`)
	assert.Contains(t, rec.Body.String(), `"tags":[]`)
}

func TestGetTaggings_UnescapesPathParams(t *testing.T) {
	var captured domain.Ref
	svc := &mockTaggingServicer{
		tagsOn: func(_ context.Context, taggable domain.Ref, _ string, _ domain.Ref) ([]domain.Tag, error) {
			captured = taggable
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/taggables/Blog%20Post/a%2Fb/tags/skills", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Ref{Type: "Blog Post", ID: "a/b"}, captured)
}

func TestGetTaggings_422_UndeclaredContext(t *testing.T) {
	svc := &mockTaggingServicer{
		tagsOn: func(context.Context, domain.Ref, string, domain.Ref) ([]domain.Tag, error) {
			return nil, fmt.Errorf("service.TaggingStore.TagsOn: %w: context \"moods\" is not declared for Post", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/taggables/Post/1/tags/moods", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, `context "moods" is not declared for Post`, body.Error.Message)
}

// ---- PUT /taggables/{type}/{id}/tags/{context} -----------------------------

func TestPutTaggings_200(t *testing.T) {
	var (
		reconciled domain.TagList
		owner      domain.Ref
	)
	stored := []domain.Tag{tagFixture("ruby", 1), tagFixture("foo, bar", 1)}
	svc := &mockTaggingServicer{
		reconcile: func(_ context.Context, taggable domain.Ref, tagContext string, tagger domain.Ref, desired domain.TagList) error {
			assert.Equal(t, domain.Ref{Type: "Post", ID: "1"}, taggable)
			assert.Equal(t, "skills", tagContext)
			owner, reconciled = tagger, desired
			return nil
		},
		tagsOn: func(_ context.Context, _ domain.Ref, _ string, tagger domain.Ref) ([]domain.Tag, error) {
			assert.Equal(t, owner, tagger, "the response reads back the same tuple")
			return stored, nil
		},
	}

	body := `{"tags":"ruby, \"foo, bar\", RUBY","tagger":{"type":"User","id":"1"}}`
	req := httptest.NewRequest(http.MethodPut, "/taggables/Post/1/tags/skills", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ruby", "foo, bar"}, reconciled.Names())
	assert.Equal(t, domain.Ref{Type: "User", ID: "1"}, owner)

	var resp gen.Taggings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Tagger)
	assert.Equal(t, "User", resp.Tagger.Type)
	assert.Equal(t, `ruby, "foo, bar"`, resp.TagList)
}

func TestPutTaggings_EmptyListClears(t *testing.T) {
	var reconciled domain.TagList
	svc := &mockTaggingServicer{
		reconcile: func(_ context.Context, _ domain.Ref, _ string, _ domain.Ref, desired domain.TagList) error {
			reconciled = desired
			return nil
		},
		tagsOn: func(context.Context, domain.Ref, string, domain.Ref) ([]domain.Tag, error) {
			return []domain.Tag{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/taggables/Post/1/tags/skills", strings.NewReader(`{"tags":""}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, reconciled.Len())
	assert.Contains(t, rec.Body.String(), `"tag_list":""`)
}

func TestPutTaggings_422_MalformedBody(t *testing.T) {
	svc := &mockTaggingServicer{
		reconcile: func(context.Context, domain.Ref, string, domain.Ref, domain.TagList) error {
			t.Fatal("Reconcile must not be called for a malformed body")
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/taggables/Post/1/tags/skills", strings.NewReader(`["ruby"]`))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body must be a JSON object")
}

func TestPutTaggings_422_Validation(t *testing.T) {
	svc := &mockTaggingServicer{
		reconcile: func(context.Context, domain.Ref, string, domain.Ref, domain.TagList) error {
			return fmt.Errorf("service.TaggingStore.Reconcile: %w: taggable type \"Comment\" is not registered", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/taggables/Comment/1/tags/skills", strings.NewReader(`{"tags":"go"}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, `taggable type "Comment" is not registered`, body.Error.Message)
}

func TestPutTaggings_500(t *testing.T) {
	svc := &mockTaggingServicer{
		reconcile: func(context.Context, domain.Ref, string, domain.Ref, domain.TagList) error {
			return errors.New("connection reset by peer")
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/taggables/Post/1/tags/skills", strings.NewReader(`{"tags":"go"}`))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "connection reset")
}

func TestPutTaggings_413_BodyTooLarge(t *testing.T) {
	svc := &mockTaggingServicer{}
	h := newHTTPHandler(nil, svc, nil)

	// The size limit is normally applied by middleware.MaxBodySize.
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 16)
		h.ServeHTTP(w, r)
	})

	body := `{"tags":"` + strings.Repeat("a,", 64) + `"}`
	req := httptest.NewRequest(http.MethodPut, "/taggables/Post/1/tags/skills", strings.NewReader(body))
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "payload_too_large")
}

// ---- DELETE /taggables/{type}/{id}/tags ------------------------------------

func TestDestroyTaggings_204(t *testing.T) {
	var captured domain.Ref
	svc := &mockTaggingServicer{
		destroyAllFor: func(_ context.Context, taggable domain.Ref) error {
			captured = taggable
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/taggables/Post/9/tags", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, domain.Ref{Type: "Post", ID: "9"}, captured)
}

func TestDestroyTaggings_422(t *testing.T) {
	svc := &mockTaggingServicer{
		destroyAllFor: func(context.Context, domain.Ref) error {
			return fmt.Errorf("%w: taggable type \"Ghost\" is not registered", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/taggables/Ghost/1/tags", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
