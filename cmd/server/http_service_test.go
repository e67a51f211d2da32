package main

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"
)

func TestListen_PortInUse(t *testing.T) {
	first, err := listen("127.0.0.1:0")
	require.NoError(t, err)
	defer first.Close()

	_, err = listen(first.Addr().String())
	require.Error(t, err)
	require.Contains(t, err.Error(), first.Addr().String())
}

func TestHTTPService_ServeAndShutdown(t *testing.T) {
	listener, err := listen("127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	service := newHTTPService(listener, handler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Serve(ctx) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("service did not stop after cancel")
	}
}

func TestHTTPService_ServeFailureTerminatesTree(t *testing.T) {
	listener, err := listen("127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	service := newHTTPService(listener, http.NotFoundHandler())
	err = service.Serve(context.Background())
	require.ErrorIs(t, err, suture.ErrTerminateSupervisorTree)
}
