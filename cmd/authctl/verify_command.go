package main

import (
	"time"

	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"

	"github.com/jrsteele09/studyflow-auth/client"
)

var verifyCommand = &cli.Command{
	Name:   "verify",
	Usage:  "Check the saved access token with the server",
	Flags:  []cli.Flag{cliFlagOutput},
	Action: verify,
}

func verify(c *cli.Context) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}

	user, err := client.New(cfg.ServerAddress).Verify(c.Context, cfg.AccessToken)
	if err != nil {
		return err
	}

	return printOutput(c.String(flagOutput), user, func(t *uitable.Table) {
		t.AddRow("ID", "USERNAME", "EMAIL", "EXPIRES")
		t.AddRow(user.ID, user.Username, user.Email, cfg.Expiry.Format(time.RFC3339))
	})
}
