package shared

import "errors"

// Error kinds. Domain errors wrap exactly one of these so the HTTP layer
// can pick a status without knowing every domain sentinel.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrTerminalState = errors.New("already reviewed")
	ErrSelfReview    = errors.New("self review is not allowed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)
