package server

import (
	"net/http"

	"github.com/jrsteele09/studyflow-auth/auth"
	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/oauthmodel"
)

// AuthorizeHandler starts a login session (GET /auth/authorize)
func (s *Server) AuthorizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := s.auth.Begin(auth.BeginParameters{
			RedirectURI: r.URL.Query().Get("redirectUri"),
		})
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// AuthenticateHandler checks credentials against a pending session (POST /auth/authenticate)
func (s *Server) AuthenticateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req oauthmodel.AuthenticateRequest
		if err := decodeJSONBody(w, r, s.schemas.authenticate, &req); err != nil {
			s.writeError(w, r, err, "")
			return
		}

		resp, err := s.auth.Verify(auth.AuthenticateParametersFromRequest(req))
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// TokenHandler exchanges an authenticated session for an access token (POST /auth/token)
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req oauthmodel.TokenRequest
		if err := decodeJSONBody(w, r, s.schemas.token, &req); err != nil {
			message := ""
			if autherrors.Is(err, autherrors.ErrMissingField) {
				message = "Missing state parameter"
			}
			s.writeError(w, r, err, message)
			return
		}

		resp, err := s.auth.Exchange(auth.TokenParametersFromRequest(req))
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// VerifyHandler reports whether the presented bearer token is valid (GET /auth/verify)
func (s *Server) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.auth.VerifyToken(r.Header.Get("Authorization"))
		if err != nil {
			class := classifyError(err)
			message := class.message
			if autherrors.Is(err, autherrors.ErrMissingField) {
				message = "Missing token"
			}
			writeJSON(w, http.StatusUnauthorized, oauthmodel.VerifyResponse{
				Valid:   false,
				Message: message,
			})
			return
		}

		user := auth.ToUserInfo(identity)
		writeJSON(w, http.StatusOK, oauthmodel.VerifyResponse{
			Valid: true,
			User:  &user,
		})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
