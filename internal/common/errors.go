// Package common defines shared constants and sentinel errors used across
// the Evento server and CLI. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Service-level errors (generic/internal flow control).
	ErrInternal   = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Credential errors.
	ErrBadPassword            = errors.New("invalid password")
	ErrContributorNotApproved = errors.New("contributor account is not approved")

	// Token errors (invalid or malformed, expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Gate errors.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Contributor approval errors.
	ErrInvalidTransition = errors.New("invalid status transition")

	// Event-specific errors.
	ErrInvalidCategory = errors.New("invalid category")
)
