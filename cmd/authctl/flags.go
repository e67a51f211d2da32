package main

import "github.com/urfave/cli/v2"

const (
	flagBrowse      = "browse"
	flagOutput      = "output"
	flagPassword    = "password"
	flagRedirectURI = "redirect-uri"
	flagServer      = "server"
	flagTimeout     = "timeout"
	flagUsername    = "username"
)

var cliFlagOutput = &cli.StringFlag{
	Name:    flagOutput,
	Aliases: []string{"o"},
	Usage:   "Return output in the specified format; supported formats: table, yaml, json",
	Value:   "table",
}
