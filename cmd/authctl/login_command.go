package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jrsteele09/studyflow-auth/client"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to StudyFlow",
	Description: "Starts a login session and waits for it to be completed in a browser. " +
		"With --username and --password the credentials are submitted directly.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     flagServer,
			Aliases:  []string{"s"},
			Usage:    "Log into the auth server at the specified address (required)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    flagBrowse,
			Aliases: []string{"b"},
			Usage:   "Use the system's default web browser to complete authentication",
		},
		&cli.StringFlag{
			Name:  flagRedirectURI,
			Usage: "Where the browser is sent after signing in",
		},
		&cli.StringFlag{
			Name:    flagUsername,
			Aliases: []string{"u"},
			Usage:   "Username for non-interactive login",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage:   "Password for non-interactive login",
		},
		&cli.DurationFlag{
			Name:  flagTimeout,
			Usage: "How long to wait for the browser login to complete",
			Value: 5 * time.Minute,
		},
	},
	Action: login,
}

func login(c *cli.Context) error {
	address := c.String(flagServer)
	username := c.String(flagUsername)
	password := c.String(flagPassword)

	authClient := client.New(address)

	begin, err := authClient.Authorize(c.Context, c.String(flagRedirectURI))
	if err != nil {
		return err
	}

	if username != "" && password != "" {
		if _, err := authClient.Authenticate(c.Context, username, password, begin.State); err != nil {
			return err
		}
	} else if c.Bool(flagBrowse) {
		if err := openBrowser(begin.AuthURL); err != nil {
			return errors.Wrapf(
				err,
				"Error opening authentication URL using the system's default web "+
					"browser.\n\nPlease visit  %s  to complete authentication.\n",
				begin.AuthURL,
			)
		}
	} else {
		fmt.Printf("Please visit  %s  to complete authentication.\n", begin.AuthURL)
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration(flagTimeout))
	defer cancel()
	tok, user, err := authClient.WaitForToken(ctx, begin.State)
	if err != nil {
		return err
	}

	if err := saveConfig(&config{
		ServerAddress: address,
		AccessToken:   tok.AccessToken,
		TokenType:     tok.TokenType,
		Expiry:        tok.Expiry,
		Username:      user.Username,
	}); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	fmt.Printf("\nYou are logged in as %s.\n", user.Username)
	return nil
}

func openBrowser(target string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	case "darwin":
		return exec.Command("open", target).Start()
	}
	return errors.New("unsupported OS")
}

var logoutCommand = &cli.Command{
	Name:  "logout",
	Usage: "Forget the saved access token",
	Action: func(c *cli.Context) error {
		if err := deleteConfig(); err != nil {
			return err
		}
		fmt.Println("You have been logged out.")
		return nil
	},
}
