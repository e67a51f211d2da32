package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/studyflow-auth/client"
	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/oauthmodel"
	"github.com/jrsteele09/studyflow-auth/records"
)

const (
	testState       = "state-123"
	testAccessToken = "header.payload.signature"
)

var testUser = oauthmodel.UserInfo{ID: "u1", Username: "demo", Email: "demo@example.com"}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// fakeAuthServer answers session_not_authenticated until pendingPolls exchanges have been made.
func fakeAuthServer(t *testing.T, pendingPolls int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var polls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/authorize", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, oauthmodel.AuthURLResponse{
			AuthURL:   "http://auth.test/auth/login?state=" + testState + "&redirectUri=" + r.URL.Query().Get("redirectUri"),
			State:     testState,
			ExpiresIn: 300,
		})
	})
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		var req oauthmodel.TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.State != testState {
			writeJSON(w, http.StatusBadRequest, oauthmodel.ErrorResponse{Error: "invalid_session", Message: "Invalid or expired session"})
			return
		}
		if polls.Add(1) <= pendingPolls {
			writeJSON(w, http.StatusBadRequest, oauthmodel.ErrorResponse{Error: "session_not_authenticated", Message: "Session not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, oauthmodel.TokenResponse{
			AccessToken: testAccessToken,
			TokenType:   oauthmodel.TokenTypeBearer,
			ExpiresIn:   3600,
			User:        testUser,
		})
	})
	mux.HandleFunc("GET /auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testAccessToken {
			writeJSON(w, http.StatusUnauthorized, oauthmodel.VerifyResponse{Valid: false, Message: "Invalid token"})
			return
		}
		user := testUser
		writeJSON(w, http.StatusOK, oauthmodel.VerifyResponse{Valid: true, User: &user})
	})
	mux.HandleFunc("GET /records", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testAccessToken {
			writeJSON(w, http.StatusUnauthorized, oauthmodel.UnauthorizedResponse{Error: "Unauthorized", Path: "/records", Status: 401})
			return
		}
		writeJSON(w, http.StatusOK, []records.Record{{ID: "r1", Name: "Lecture 1"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &polls
}

func TestAuthorize(t *testing.T) {
	srv, _ := fakeAuthServer(t, 0)
	c := client.New(srv.URL + "/")

	resp, err := c.Authorize(context.Background(), "http://localhost:3000/cb")
	require.NoError(t, err)
	require.Equal(t, testState, resp.State)
	require.Equal(t, 300, resp.ExpiresIn)
	require.Contains(t, resp.AuthURL, "redirectUri=http://localhost:3000/cb")
}

func TestExchange(t *testing.T) {
	srv, _ := fakeAuthServer(t, 0)
	c := client.New(srv.URL)

	tok, user, err := c.Exchange(context.Background(), testState)
	require.NoError(t, err)
	require.Equal(t, testAccessToken, tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.WithinDuration(t, time.Now().Add(time.Hour), tok.Expiry, time.Minute)
	require.Equal(t, testUser, user)

	_, _, err = c.Exchange(context.Background(), "unknown")
	require.ErrorIs(t, err, autherrors.ErrInvalidOrExpiredSession)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Invalid or expired session", apiErr.Message)
}

func TestWaitForToken(t *testing.T) {
	srv, polls := fakeAuthServer(t, 2)
	c := client.New(srv.URL, client.WithPollInterval(time.Millisecond))

	tok, user, err := c.WaitForToken(context.Background(), testState)
	require.NoError(t, err)
	require.Equal(t, testAccessToken, tok.AccessToken)
	require.Equal(t, testUser, user)
	require.Equal(t, int32(3), polls.Load())
}

func TestWaitForToken_StopsOnTerminalError(t *testing.T) {
	srv, polls := fakeAuthServer(t, 0)
	c := client.New(srv.URL, client.WithPollInterval(time.Millisecond))

	_, _, err := c.WaitForToken(context.Background(), "unknown")
	require.ErrorIs(t, err, autherrors.ErrInvalidOrExpiredSession)
	require.Equal(t, int32(0), polls.Load())
}

func TestWaitForToken_ContextCancelled(t *testing.T) {
	srv, _ := fakeAuthServer(t, 1000)
	c := client.New(srv.URL, client.WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, _, err := c.WaitForToken(ctx, testState)
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	srv, _ := fakeAuthServer(t, 0)
	c := client.New(srv.URL)

	user, err := c.Verify(context.Background(), testAccessToken)
	require.NoError(t, err)
	require.Equal(t, testUser, user)

	_, err = c.Verify(context.Background(), "forged")
	require.ErrorIs(t, err, autherrors.ErrInvalidToken)
}

func TestListRecords(t *testing.T) {
	srv, _ := fakeAuthServer(t, 0)
	c := client.New(srv.URL)

	tok, _, err := c.Exchange(context.Background(), testState)
	require.NoError(t, err)

	list, err := c.ListRecords(context.Background(), tok)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "r1", list[0].ID)
}
