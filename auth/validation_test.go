package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/studyflow-auth/auth"
	"github.com/jrsteele09/studyflow-auth/oauthmodel"
)

func TestBeginParametersValidate(t *testing.T) {
	valid := []string{"", "http://localhost:3000/callback", "https://app.studyflow.test/done?x=1"}
	for _, uri := range valid {
		require.NoError(t, auth.BeginParameters{RedirectURI: uri}.Validate(), uri)
	}

	invalid := []string{"localhost:3000", "mailto:someone@example.com", "https:///nohost", "%zz"}
	for _, uri := range invalid {
		require.ErrorIs(t, auth.BeginParameters{RedirectURI: uri}.Validate(), auth.ErrInvalidRequest, uri)
	}
}

func TestParametersFromRequest(t *testing.T) {
	p := auth.AuthenticateParametersFromRequest(oauthmodel.AuthenticateRequest{Username: " demo ", Password: " pw ", State: " s "})
	require.Equal(t, " demo ", p.Username, "usernames are matched verbatim")
	require.Equal(t, " pw ", p.Password, "passwords are used verbatim")
	require.Equal(t, "s", p.State)
	require.NoError(t, p.Validate())

	blank := auth.AuthenticateParametersFromRequest(oauthmodel.AuthenticateRequest{Username: "   ", Password: "pw", State: "s"})
	require.ErrorIs(t, blank.Validate(), auth.ErrMissingField)

	tp := auth.TokenParametersFromRequest(oauthmodel.TokenRequest{State: "  "})
	require.ErrorIs(t, tp.Validate(), auth.ErrMissingField)
}
