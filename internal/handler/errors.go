package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/handler/gen"
)

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) gen.ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) gen.ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err))
}

// requestBody returns an ErrorResponse for a request rejected before reaching
// the service layer, e.g. a malformed body or query parameter.
func requestBody(message string) gen.ErrorResponse {
	return errorBody("validation_error", message)
}

func errorBody(code, message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TaggingStore.Reconcile: validation error: context is required"
// becomes "context is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

// badParameter answers a path or query parameter that failed to bind.
func badParameter(w http.ResponseWriter, _ *http.Request, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
}

// badRequestBody answers a JSON body the strict handler could not decode.
func (s *Server) badRequestBody(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be a JSON object"))
}

// respondError maps an error returned by a handler onto its HTTP status.
// Unexpected errors are logged and reported as 500 without leaking their text.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(unwrapMessage(err)))
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", tooLarge.Error()))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// writeJSON encodes body as the JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
