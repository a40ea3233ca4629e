package entity

import "errors"

// Domain error taxonomy. Every failure surfaced by a usecase wraps one
// of these sentinels; the HTTP layer maps them to status codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("permission denied")
	ErrBadRequest         = errors.New("invalid request")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrDraftLimit         = errors.New("draft limit exceeded")
	ErrConflict           = errors.New("operation conflicts with current state")
)
