// Package common defines shared constants and sentinel errors used across
// client and server layers of CityGuardian. Callers should use errors.Is to
// match these values; services wrap them with oops codes for logging.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Gateway errors. Token failures collapse into ErrUnauthenticated at the
	// HTTP boundary.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("invalid token")
)
