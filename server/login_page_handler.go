package server

import (
	"net/http"
	"sort"

	"github.com/rs/zerolog/hlog"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/users"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName     string
	State       string // Login session state (hidden field in form)
	RedirectURI string // Validated at Begin; the query string is never trusted
	ExpiresIn   int    // Session lifetime in seconds
	DemoUsers   []DemoUser
}

type DemoUser struct {
	Username string
	Password string
}

// ErrorPageData contains data for rendering the error page
type ErrorPageData struct {
	AppName string
	Title   string
	Message string
}

// LoginPageHandler renders the credential form for a live session (GET /auth/login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		session, err := s.auth.Present(state)
		if err != nil {
			message := "Invalid or expired session"
			if autherrors.Is(err, autherrors.ErrMissingField) {
				message = "Missing state parameter"
			}
			hlog.FromRequest(r).Debug().Err(err).Msg("login page rejected")
			s.renderErrorPage(w, r, http.StatusBadRequest, message)
			return
		}

		data := LoginPageData{
			AppName:     s.config.GetAppName(),
			State:       session.State,
			RedirectURI: session.RedirectURI,
			ExpiresIn:   int(session.TTL().Seconds()),
		}
		if s.env == "DEV" {
			data.DemoUsers = demoUsers()
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.pages.login.Execute(w, data); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("failed to render login template")
		}
	}
}

func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	data := ErrorPageData{
		AppName: s.config.GetAppName(),
		Title:   http.StatusText(status),
		Message: message,
	}
	if err := s.pages.errorPage.Execute(w, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to render error template")
	}
}

func demoUsers() []DemoUser {
	list := make([]DemoUser, 0, len(users.DemoCredentials))
	for username, password := range users.DemoCredentials {
		list = append(list, DemoUser{Username: username, Password: password})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list
}
