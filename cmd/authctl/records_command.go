package main

import (
	"strings"

	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"

	"github.com/jrsteele09/studyflow-auth/client"
)

var recordsCommand = &cli.Command{
	Name:  "records",
	Usage: "Work with study records",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "List records",
			Flags:  []cli.Flag{cliFlagOutput},
			Action: recordsList,
		},
	},
}

func recordsList(c *cli.Context) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}

	list, err := client.New(cfg.ServerAddress).ListRecords(c.Context, cfg.token())
	if err != nil {
		return err
	}

	return printOutput(c.String(flagOutput), list, func(t *uitable.Table) {
		t.AddRow("ID", "NAME", "TAGS", "NOTES", "CREATED BY")
		for _, record := range list {
			t.AddRow(record.ID, record.Name, strings.Join(record.Tags, ","), len(record.Note), record.CreatedBy)
		}
	})
}
