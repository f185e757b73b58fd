package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a request is semantically invalid.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials is returned on failed sign-in attempts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
