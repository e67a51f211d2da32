package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/oauthmodel"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
)

// Error codes returned in the "error" field of JSON error bodies
const (
	errCodeMissingField            = "missing_field"
	errCodeInvalidSession          = "invalid_session"
	errCodeInvalidCredentials      = "invalid_credentials"
	errCodeSessionNotAuthenticated = "session_not_authenticated"
	errCodeInvalidToken            = "invalid_token"
	errCodeInvalidRequest          = "invalid_request"
	errCodeRateLimited             = "rate_limited"
	errCodeNotFound                = "not_found"
	errCodeConflict                = "conflict"
	errCodeInternal                = "internal_error"
)

var errRateLimited = autherrors.ErrRateLimited

type errorClass struct {
	status  int
	code    string
	message string
}

// classifyError maps a service error onto its HTTP status, code and default message.
func classifyError(err error) errorClass {
	switch {
	case autherrors.Is(err, autherrors.ErrMissingField):
		return errorClass{http.StatusBadRequest, errCodeMissingField, "Missing required fields"}
	case autherrors.Is(err, autherrors.ErrInvalidOrExpiredSession):
		return errorClass{http.StatusBadRequest, errCodeInvalidSession, "Invalid or expired session"}
	case autherrors.Is(err, autherrors.ErrInvalidCredentials):
		return errorClass{http.StatusUnauthorized, errCodeInvalidCredentials, "Invalid credentials"}
	case autherrors.Is(err, autherrors.ErrSessionNotAuthenticated):
		return errorClass{http.StatusBadRequest, errCodeSessionNotAuthenticated, "Session not authenticated"}
	case autherrors.Is(err, autherrors.ErrInvalidToken):
		return errorClass{http.StatusUnauthorized, errCodeInvalidToken, "Invalid token"}
	case autherrors.Is(err, autherrors.ErrInvalidRequest):
		return errorClass{http.StatusBadRequest, errCodeInvalidRequest, "Invalid request"}
	case autherrors.Is(err, autherrors.ErrRateLimited):
		return errorClass{http.StatusTooManyRequests, errCodeRateLimited, "Too many requests"}
	case autherrors.Is(err, autherrors.ErrNotFound):
		return errorClass{http.StatusNotFound, errCodeNotFound, "Not found"}
	case autherrors.Is(err, autherrors.ErrConflict):
		return errorClass{http.StatusBadRequest, errCodeConflict, "Already exists"}
	default:
		return errorClass{http.StatusInternalServerError, errCodeInternal, "Internal server error"}
	}
}

// writeError writes the JSON error body for err. A non-empty message replaces the default one.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	class := classifyError(err)
	if message == "" {
		message = class.message
	}

	logger := hlog.FromRequest(r)
	if class.status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("path", r.URL.Path).Str("code", class.code).Msg("request rejected")
	}
	writeJSONError(w, class.status, class.code, message)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, oauthmodel.ErrorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
