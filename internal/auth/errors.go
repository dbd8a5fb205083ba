package auth

import "errors"

// Verification failure categories. Verify wraps the library cause with one of
// these so callers can branch with errors.Is and still log the full chain.
var (
	ErrTokenExpired     = errors.New("auth: token expired")
	ErrTokenMalformed   = errors.New("auth: token malformed or signature invalid")
	ErrTokenUnsupported = errors.New("auth: token type or algorithm unsupported")
	ErrTokenInternal    = errors.New("auth: token verification failed")
)

// ErrInvalidIdentity is returned when verified claims cannot be mapped to an Identity.
var ErrInvalidIdentity = errors.New("auth: invalid identity claims")
