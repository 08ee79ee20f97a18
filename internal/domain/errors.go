package domain

import "errors"

// ErrNotFound is returned by repo functions when the requested row does not
// exist, e.g. a tag lookup by name that matches nothing.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty tag name, missing or undeclared context).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by repo functions when an insert violates a
// uniqueness constraint. Services resolve it as "already satisfied" and
// never surface it to callers.
var ErrConflict = errors.New("conflict")
