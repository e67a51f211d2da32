package oauthmodel

// UserInfo is the identity embedded in token and verification responses.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthURLResponse is returned from /auth/authorize to start a login handshake.
type AuthURLResponse struct {
	// AuthURL is the login page the user opens in a browser.
	// Example: "http://localhost:8080/auth/login?state=Zx3m..."
	AuthURL string `json:"authUrl"`

	// State identifies the session. The client keeps it and later exchanges it at /auth/token.
	State string `json:"state"`

	// ExpiresIn is the lifetime of the session in seconds.
	// Example: 300
	ExpiresIn int `json:"expiresIn"`
}

// AuthenticateResponse is returned from /auth/authenticate after a successful login.
type AuthenticateResponse struct {
	Message  string `json:"message"`
	State    string `json:"state"`
	Username string `json:"username"`
}

// TokenResponse is returned from /auth/token.
type TokenResponse struct {
	// AccessToken is the signed JWT used to access protected resources.
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Usage: Include in Authorization header: "Bearer <accessToken>"
	AccessToken string `json:"accessToken"`

	// TokenType indicates how to use the access token (always "Bearer").
	TokenType string `json:"tokenType"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 86400 (for 24 hours)
	// Note: This is a hint - actual expiration is in the JWT's "exp" claim
	ExpiresIn int `json:"expiresIn"`

	// User is the identity the token was minted for.
	User UserInfo `json:"user"`
}

// VerifyResponse is returned from /auth/verify.
type VerifyResponse struct {
	Valid   bool      `json:"valid"`
	User    *UserInfo `json:"user,omitempty"`
	Message string    `json:"message,omitempty"`
}

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// UnauthorizedResponse is sent when a protected route is called without an identity.
type UnauthorizedResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
}

const TokenTypeBearer = "Bearer"
