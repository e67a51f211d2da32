package auth

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/studyflow-auth/oauthmodel"
	"github.com/jrsteele09/studyflow-auth/sessions"
	"github.com/jrsteele09/studyflow-auth/users"
)

const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultTokenExpiry = 24 * time.Hour

	// LoginPath is where Begin points the browser.
	LoginPath = "/auth/login"

	authenticationSuccessful = "Authentication successful"
)

// TokenCodec mints and verifies access tokens.
type TokenCodec interface {
	Mint(identity users.Identity, ttl time.Duration) (string, error)
	Verify(raw string) (users.Identity, error)
}

// Dependencies holds all collaborators required by the AuthorizationService
type Dependencies struct {
	Sessions    sessions.Repo            // Login sessions keyed by state
	Credentials users.CredentialVerifier // Username/password check
	Tokens      TokenCodec               // Access token minting and verification
}

// AuthorizationService drives the browser login handshake: Begin, Present, Verify and Exchange.
type AuthorizationService struct {
	deps        Dependencies
	baseURL     string
	tokenExpiry time.Duration
	emailDomain string
	newID       func() string
}

// AuthorizationServiceOption defines a function type to modify the AuthorizationService instance.
type AuthorizationServiceOption func(*AuthorizationService)

// WithBaseURL sets the externally visible URL used to build the login link.
func WithBaseURL(baseURL string) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithTokenExpiry(expiry time.Duration) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.tokenExpiry = expiry
	}
}

func WithEmailDomain(domain string) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.emailDomain = domain
	}
}

// WithIDGenerator replaces the identity ID generator (primarily for testing)
func WithIDGenerator(newID func() string) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.newID = newID
	}
}

// NewAuthorizationService initializes a new AuthorizationService with required dependencies.
func NewAuthorizationService(deps Dependencies, options ...AuthorizationServiceOption) (*AuthorizationService, error) {
	if deps.Sessions == nil {
		return nil, errors.New("[NewAuthorizationService] Sessions repo is required")
	}
	if deps.Credentials == nil {
		return nil, errors.New("[NewAuthorizationService] Credentials verifier is required")
	}
	if deps.Tokens == nil {
		return nil, errors.New("[NewAuthorizationService] Tokens codec is required")
	}

	as := &AuthorizationService{
		deps:        deps,
		baseURL:     DefaultBaseURL,
		tokenExpiry: DefaultTokenExpiry,
		emailDomain: users.DefaultEmailDomain,
		newID:       func() string { return uuid.New().String() },
	}
	for _, opt := range options {
		opt(as)
	}
	if as.tokenExpiry < time.Second {
		return nil, errors.Errorf("[NewAuthorizationService] token expiry must be at least 1s, got %s", as.tokenExpiry)
	}
	return as, nil
}

// Begin creates a login session and returns the URL the user should open.
func (as *AuthorizationService) Begin(params BeginParameters) (*oauthmodel.AuthURLResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "[AuthorizationService.Begin]")
	}

	session, err := as.deps.Sessions.Create(params.RedirectURI)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthorizationService.Begin] creating session")
	}

	return &oauthmodel.AuthURLResponse{
		AuthURL:   as.loginURL(session),
		State:     session.State,
		ExpiresIn: int(session.TTL() / time.Second),
	}, nil
}

// Present returns the live session behind state so the login form can be rendered.
func (as *AuthorizationService) Present(state string) (sessions.Session, error) {
	state = strings.TrimSpace(state)
	if state == "" {
		return sessions.Session{}, errors.Wrap(ErrMissingField, "[AuthorizationService.Present] state")
	}
	session, err := as.deps.Sessions.Get(state)
	if err != nil {
		return sessions.Session{}, errors.Wrap(err, "[AuthorizationService.Present]")
	}
	return session, nil
}

// Verify checks the submitted credentials and, when they match, marks the session authenticated.
// A mismatch leaves the session untouched so the user can retry while it is live.
func (as *AuthorizationService) Verify(params AuthenticateParameters) (*oauthmodel.AuthenticateResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "[AuthorizationService.Verify]")
	}

	if _, err := as.deps.Sessions.Get(params.State); err != nil {
		return nil, errors.Wrap(err, "[AuthorizationService.Verify]")
	}

	if !as.deps.Credentials.VerifyCredentials(params.Username, params.Password) {
		log.Warn().Str("username", params.Username).Msg("credential mismatch")
		return nil, errors.Wrap(ErrInvalidCredentials, "[AuthorizationService.Verify]")
	}

	identity := users.Identity{
		ID:       as.newID(),
		Username: params.Username,
		Email:    users.EmailFor(params.Username, as.emailDomain),
	}
	if err := as.deps.Sessions.MarkAuthenticated(params.State, identity); err != nil {
		return nil, errors.Wrap(err, "[AuthorizationService.Verify] marking session authenticated")
	}

	log.Info().Str("username", identity.Username).Msg("session authenticated")
	return &oauthmodel.AuthenticateResponse{
		Message:  authenticationSuccessful,
		State:    params.State,
		Username: identity.Username,
	}, nil
}

// Exchange turns an authenticated session into an access token. The session is consumed,
// so at most one Exchange per state succeeds.
func (as *AuthorizationService) Exchange(params TokenParameters) (*oauthmodel.TokenResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "[AuthorizationService.Exchange]")
	}

	session, err := as.deps.Sessions.Get(params.State)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthorizationService.Exchange]")
	}
	if !session.IsAuthenticated || session.Identity == nil {
		return nil, errors.Wrap(ErrSessionNotAuthenticated, "[AuthorizationService.Exchange]")
	}
	identity := *session.Identity

	accessToken, err := as.deps.Tokens.Mint(identity, as.tokenExpiry)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthorizationService.Exchange] minting token")
	}

	if !as.deps.Sessions.Remove(params.State) {
		// another exchange consumed the session first
		return nil, errors.Wrap(ErrInvalidOrExpiredSession, "[AuthorizationService.Exchange] session already consumed")
	}

	log.Info().Str("username", identity.Username).Msg("token issued")
	return &oauthmodel.TokenResponse{
		AccessToken: accessToken,
		TokenType:   oauthmodel.TokenTypeBearer,
		ExpiresIn:   int(as.tokenExpiry / time.Second),
		User:        ToUserInfo(identity),
	}, nil
}

// VerifyToken validates a bearer token and returns the identity it carries.
// A leading "Bearer " scheme is accepted and stripped.
func (as *AuthorizationService) VerifyToken(raw string) (users.Identity, error) {
	raw = StripBearer(raw)
	if raw == "" {
		return users.Identity{}, errors.Wrap(ErrMissingField, "[AuthorizationService.VerifyToken] token")
	}
	identity, err := as.deps.Tokens.Verify(raw)
	if err != nil {
		return users.Identity{}, errors.Wrap(err, "[AuthorizationService.VerifyToken]")
	}
	return identity, nil
}

// StripBearer removes a case-insensitive "Bearer " prefix and surrounding space.
func StripBearer(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func ToUserInfo(identity users.Identity) oauthmodel.UserInfo {
	return oauthmodel.UserInfo{
		ID:       identity.ID,
		Username: identity.Username,
		Email:    identity.Email,
	}
}

func (as *AuthorizationService) loginURL(session sessions.Session) string {
	query := url.Values{}
	query.Set("state", session.State)
	if session.RedirectURI != "" {
		query.Set("redirectUri", session.RedirectURI)
	}
	return as.baseURL + LoginPath + "?" + query.Encode()
}
