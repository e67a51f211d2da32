package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/thejerf/abtime"
	"github.com/thejerf/suture/v4"

	"github.com/jrsteele09/studyflow-auth/auth"
	"github.com/jrsteele09/studyflow-auth/internal/config"
	"github.com/jrsteele09/studyflow-auth/records"
	"github.com/jrsteele09/studyflow-auth/server"
	"github.com/jrsteele09/studyflow-auth/sessions"
	"github.com/jrsteele09/studyflow-auth/token"
	"github.com/jrsteele09/studyflow-auth/users"
	fakeuserrepo "github.com/jrsteele09/studyflow-auth/users/repofake"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load()
	if err != nil {
		return err
	}
	configureLogging(c)
	displayAppname(c.GetAppName())

	clock := abtime.NewRealTime()
	sessionRepo := sessions.NewInMemoryRepo(&sessions.InMemorySettings{
		Timeout:      c.GetSessionTimeout(),
		AbstractTime: clock,
	})

	userRepo := fakeuserrepo.NewFakeUserRepo()
	if err := users.Seed(userRepo, users.DemoCredentials, c.GetEmailDomain()); err != nil {
		return err
	}

	signer, err := token.NewHMACSigner(c.GetSigningSecret())
	if err != nil {
		return err
	}
	codec, err := token.NewCodec(signer, token.WithIssuer(c.GetIssuer()), token.WithNowFunc(clock.Now))
	if err != nil {
		return err
	}

	authService, err := auth.NewAuthorizationService(
		auth.Dependencies{
			Sessions:    sessionRepo,
			Credentials: users.NewRepoVerifier(userRepo),
			Tokens:      codec,
		},
		auth.WithBaseURL(c.GetBaseURL()),
		auth.WithTokenExpiry(c.GetTokenExpiry()),
		auth.WithEmailDomain(c.GetEmailDomain()),
	)
	if err != nil {
		return err
	}

	srv, err := server.New(c, server.Dependencies{
		Auth:    authService,
		Tokens:  codec,
		Records: records.NewInMemoryRepo(),
	})
	if err != nil {
		return err
	}

	listener, err := listen(c.GetPort())
	if err != nil {
		return err
	}

	supervisor := suture.New("studyflow-auth", suture.Spec{
		EventHook: func(e suture.Event) {
			log.Warn().Str("event", e.String()).Msg("supervisor event")
		},
	})
	supervisor.Add(newHTTPService(listener, srv))
	supervisor.Add(sessions.NewSweeper(sessionRepo, c.GetSessionSweepInterval(), clock))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := supervisor.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "supervisor stopped")
	}
	return nil
}

func configureLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
