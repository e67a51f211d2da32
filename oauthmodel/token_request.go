package oauthmodel

// AuthenticateRequest is the JSON body posted by the login page to /auth/authenticate.
type AuthenticateRequest struct {
	// Username entered on the login form.
	// Required: Yes
	Username string `json:"username"`

	// Password entered on the login form.
	// Required: Yes
	// Security: Never log or echo this value
	Password string `json:"password"`

	// State identifies the login session the form was rendered for.
	// Required: Yes
	// Example: "Zx3m...43 base64url characters"
	State string `json:"state"`
}

// TokenRequest is the JSON body the client posts to /auth/token once the user has logged in.
type TokenRequest struct {
	// State is the value returned by /auth/authorize.
	// Required: Yes
	// Usage: Exchanged once for a token, then becomes invalid
	State string `json:"state"`
}
