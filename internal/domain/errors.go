package domain

import "errors"

// Error kinds surfaced by the real-time core. Adapters map them with errors.Is.
var (
	ErrAuthMissing  = errors.New("missing token")
	ErrAuthInvalid  = errors.New("invalid token")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrPersistence  = errors.New("persistence failure")
	ErrNotFound     = errors.New("not found")
	ErrUserExists   = errors.New("user already exists")
	ErrRateLimited  = errors.New("rate limited")
)
