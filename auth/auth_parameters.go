package auth

import (
	"strings"

	"github.com/jrsteele09/studyflow-auth/oauthmodel"
)

// BeginParameters starts a login handshake.
type BeginParameters struct {
	RedirectURI string // Optional absolute http(s) URL the login page returns the browser to
}

// AuthenticateParameters carries the credentials submitted on the login page.
type AuthenticateParameters struct {
	Username string
	Password string
	State    string
}

// TokenParameters identifies the session whose token is being collected.
type TokenParameters struct {
	State string
}

func AuthenticateParametersFromRequest(r oauthmodel.AuthenticateRequest) AuthenticateParameters {
	return AuthenticateParameters{
		Username: r.Username,
		Password: r.Password,
		State:    strings.TrimSpace(r.State),
	}
}

func TokenParametersFromRequest(r oauthmodel.TokenRequest) TokenParameters {
	return TokenParameters{State: strings.TrimSpace(r.State)}
}
