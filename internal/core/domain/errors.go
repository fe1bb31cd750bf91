package domain

import "errors"

// Token validation failures. TokenService returns exactly one of these for a
// rejected credential; callers outside the auth middleware must not surface
// which one occurred.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token expired")
)

// Authentication and authorization failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	// ErrLastAdmin guards the system-wide invariant that at least one
	// administrator exists at all times.
	ErrLastAdmin = errors.New("cannot remove the last administrator")
)

// Resource errors.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("email already registered")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)
