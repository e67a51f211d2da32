// Package client is a Go client for the login handshake and the protected record API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/oauthmodel"
	"github.com/jrsteele09/studyflow-auth/records"
)

const DefaultPollInterval = 2 * time.Second

// APIError is a non-success response from the server. It unwraps to the matching error sentinel.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case "missing_field":
		return autherrors.ErrMissingField
	case "invalid_session":
		return autherrors.ErrInvalidOrExpiredSession
	case "invalid_credentials":
		return autherrors.ErrInvalidCredentials
	case "session_not_authenticated":
		return autherrors.ErrSessionNotAuthenticated
	case "invalid_token", "Unauthorized":
		return autherrors.ErrInvalidToken
	case "invalid_request":
		return autherrors.ErrInvalidRequest
	case "rate_limited":
		return autherrors.ErrRateLimited
	case "not_found":
		return autherrors.ErrNotFound
	case "conflict":
		return autherrors.ErrConflict
	}
	return autherrors.ErrInternal
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPollInterval sets how often WaitForToken retries the exchange.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
	}
}

func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   http.DefaultClient,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Authorize begins a login session. redirectURI may be empty.
func (c *Client) Authorize(ctx context.Context, redirectURI string) (oauthmodel.AuthURLResponse, error) {
	query := url.Values{}
	if redirectURI != "" {
		query.Set("redirectUri", redirectURI)
	}
	var resp oauthmodel.AuthURLResponse
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/auth/authorize", query, nil, http.StatusOK, &resp); err != nil {
		return oauthmodel.AuthURLResponse{}, errors.Wrap(err, "[Client.Authorize]")
	}
	return resp, nil
}

// Authenticate submits credentials for a pending session, as the login page does.
func (c *Client) Authenticate(ctx context.Context, username, password, state string) (oauthmodel.AuthenticateResponse, error) {
	req := oauthmodel.AuthenticateRequest{Username: username, Password: password, State: state}
	var resp oauthmodel.AuthenticateResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/auth/authenticate", nil, req, http.StatusOK, &resp); err != nil {
		return oauthmodel.AuthenticateResponse{}, errors.Wrap(err, "[Client.Authenticate]")
	}
	return resp, nil
}

// Exchange trades an authenticated state for an access token.
func (c *Client) Exchange(ctx context.Context, state string) (*oauth2.Token, oauthmodel.UserInfo, error) {
	var resp oauthmodel.TokenResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/auth/token", nil, oauthmodel.TokenRequest{State: state}, http.StatusOK, &resp); err != nil {
		return nil, oauthmodel.UserInfo{}, errors.Wrap(err, "[Client.Exchange]")
	}
	tok := &oauth2.Token{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		Expiry:      time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
	return tok, resp.User, nil
}

// WaitForToken retries Exchange until the user finishes logging in, the session is gone, or ctx ends.
func (c *Client) WaitForToken(ctx context.Context, state string) (*oauth2.Token, oauthmodel.UserInfo, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		tok, user, err := c.Exchange(ctx, state)
		if err == nil {
			return tok, user, nil
		}
		if !autherrors.Is(err, autherrors.ErrSessionNotAuthenticated) {
			return nil, oauthmodel.UserInfo{}, err
		}
		select {
		case <-ctx.Done():
			return nil, oauthmodel.UserInfo{}, errors.Wrap(ctx.Err(), "[Client.WaitForToken]")
		case <-ticker.C:
		}
	}
}

// Verify asks the server whether accessToken is valid and returns its user.
func (c *Client) Verify(ctx context.Context, accessToken string) (oauthmodel.UserInfo, error) {
	httpClient := c.authorizedClient(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: oauthmodel.TokenTypeBearer})
	var resp oauthmodel.VerifyResponse
	err := c.do(ctx, httpClient, http.MethodGet, "/auth/verify", nil, nil, http.StatusOK, &resp)
	if err != nil {
		return oauthmodel.UserInfo{}, errors.Wrap(err, "[Client.Verify]")
	}
	if !resp.Valid || resp.User == nil {
		return oauthmodel.UserInfo{}, errors.Wrap(autherrors.ErrInvalidToken, "[Client.Verify]")
	}
	return *resp.User, nil
}

func (c *Client) ListRecords(ctx context.Context, tok *oauth2.Token) ([]records.Record, error) {
	var list []records.Record
	if err := c.do(ctx, c.authorizedClient(ctx, tok), http.MethodGet, "/records", nil, nil, http.StatusOK, &list); err != nil {
		return nil, errors.Wrap(err, "[Client.ListRecords]")
	}
	return list, nil
}

// authorizedClient returns an HTTP client that sends tok as a bearer credential on every request.
func (c *Client) authorizedClient(ctx context.Context, tok *oauth2.Token) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
}

func (c *Client) do(
	ctx context.Context,
	httpClient *http.Client,
	method string,
	path string,
	query url.Values,
	reqBodyObj any,
	successCode int,
	respObj any,
) error {
	var reqBody io.Reader
	if reqBodyObj != nil {
		reqBodyBytes, err := json.Marshal(reqBodyObj)
		if err != nil {
			return errors.Wrap(err, "error marshaling request body")
		}
		reqBody = bytes.NewReader(reqBodyBytes)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return errors.Wrapf(err, "error creating request %s %s", method, path)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "error invoking API")
	}
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "error reading response body")
	}

	if resp.StatusCode != successCode {
		return apiError(resp.StatusCode, respBodyBytes)
	}
	if respObj != nil {
		if err := json.Unmarshal(respBodyBytes, respObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

func apiError(status int, body []byte) *APIError {
	var errResp oauthmodel.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		// /auth/verify answers with {valid:false, message}
		var verifyResp oauthmodel.VerifyResponse
		_ = json.Unmarshal(body, &verifyResp)
		code := "internal_error"
		if status == http.StatusUnauthorized {
			code = "invalid_token"
		}
		return &APIError{Status: status, Code: code, Message: verifyResp.Message}
	}
	return &APIError{Status: status, Code: errResp.Error, Message: errResp.Message}
}
