package auth

import autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"

// Failure kinds returned by the AuthorizationService. Test with errors.Is.
var (
	ErrMissingField            = autherrors.ErrMissingField
	ErrInvalidRequest          = autherrors.ErrInvalidRequest
	ErrInvalidOrExpiredSession = autherrors.ErrInvalidOrExpiredSession
	ErrInvalidCredentials      = autherrors.ErrInvalidCredentials
	ErrSessionNotAuthenticated = autherrors.ErrSessionNotAuthenticated
	ErrInvalidToken            = autherrors.ErrInvalidToken
)
