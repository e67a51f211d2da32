package server_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/studyflow-auth/server"
	"github.com/jrsteele09/studyflow-auth/users"
)

type panickingVerifier struct{}

func (panickingVerifier) Verify(string) (users.Identity, error) {
	panic("verifier exploded")
}

func TestAuthenticate_RecoversVerifierPanic(t *testing.T) {
	f := setupTestFixture(t, nil)

	srv, err := server.New(f.config, server.Dependencies{
		Auth:    f.auth,
		Tokens:  panickingVerifier{},
		Records: f.records,
	})
	require.NoError(t, err)
	f.server = srv

	rec := f.do(t, http.MethodGet, server.RouteRecords, "", bearer("anything"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// the API key path never reaches the verifier
	rec = f.do(t, http.MethodGet, server.RouteRecords, "", apiKeyHeaders)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, server.RouteHealth, "", bearer("anything"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_IdentityIsPerRequest(t *testing.T) {
	f := setupTestFixture(t, nil)

	const workers = 40
	tokens := make([]string, workers)
	for i := range tokens {
		if i%2 == 1 {
			continue // odd workers send no credentials
		}
		identity := users.Identity{
			ID:       fmt.Sprintf("id-%d", i),
			Username: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
		}
		raw, err := f.codec.Mint(identity, time.Hour)
		require.NoError(t, err)
		tokens[i] = raw
	}

	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var headers map[string]string
			if tokens[i] != "" {
				headers = bearer(tokens[i])
			}
			body := fmt.Sprintf(`{"id":"r%d","name":"Record %d"}`, i, i)
			codes[i] = f.do(t, http.MethodPost, server.RouteRecords, body, headers).Code
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		id := fmt.Sprintf("r%d", i)
		if tokens[i] == "" {
			require.Equal(t, http.StatusUnauthorized, codes[i], id)
			_, err := f.records.Get(id)
			require.Error(t, err, id)
			continue
		}
		require.Equal(t, http.StatusCreated, codes[i], id)
		record, err := f.records.Get(id)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("user%d", i), record.CreatedBy)
	}
}
