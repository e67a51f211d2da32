package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/thejerf/suture/v4"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const shutdownTimeout = 5 * time.Second

// httpService runs the HTTP server as a supervised service on a listener bound by run.
// The listener does not survive a shutdown, so a serve failure ends the supervisor tree.
type httpService struct {
	listener net.Listener
	handler  http.Handler
}

// listen binds addr up front so a port that is already taken fails startup
// instead of being retried by the supervisor.
func listen(addr string) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "[listen] binding %s", addr)
	}
	return listener, nil
}

func newHTTPService(listener net.Listener, handler http.Handler) *httpService {
	return &httpService{listener: listener, handler: handler}
}

func (h *httpService) Serve(ctx context.Context) error {
	server := &http.Server{
		Handler:           h2c.NewHandler(h.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", h.listener.Addr().String()).Msg("Server listening")
		errCh <- server.Serve(h.listener)
	}()

	select {
	case err := <-errCh:
		log.Error().Err(err).Str("addr", h.listener.Addr().String()).Msg("server.Serve failed")
		return suture.ErrTerminateSupervisorTree
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	return ctx.Err()
}

func (h *httpService) String() string {
	return "http server " + h.listener.Addr().String()
}
