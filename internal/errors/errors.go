package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth service
var (
	// Request errors
	ErrMissingField   = errors.New("missing required fields")
	ErrInvalidRequest = errors.New("invalid request")
	ErrRateLimited    = errors.New("too many requests")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidIdentity    = errors.New("identity requires an id and a username")

	// Token errors. Every token failure wraps ErrInvalidToken so callers that only
	// care whether a token is usable can test for that one value.
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenMalformed   = fmt.Errorf("token malformed: %w", ErrInvalidToken)
	ErrInvalidSignature = fmt.Errorf("token signature invalid: %w", ErrInvalidToken)
	ErrTokenExpired     = fmt.Errorf("token expired: %w", ErrInvalidToken)
	ErrWeakSigningKey   = errors.New("signing key must be at least 32 bytes")

	// Session errors
	ErrInvalidOrExpiredSession = errors.New("invalid or expired session")
	ErrSessionNotFound         = fmt.Errorf("session not found: %w", ErrInvalidOrExpiredSession)
	ErrSessionExpired          = fmt.Errorf("session expired: %w", ErrInvalidOrExpiredSession)
	ErrSessionNotAuthenticated = errors.New("session not authenticated")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInternal = errors.New("internal error")
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
