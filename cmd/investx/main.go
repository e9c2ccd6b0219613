// Command investx is a terminal client for the InvestX API: it projects
// returns locally and lists products, the dashboard and versions for the
// account given by INVESTX_EMAIL and INVESTX_PASSWORD.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/bobmcallan/investx-portal/internal/config"
	"github.com/google/subcommands"
)

func main() {
	config.LoadDotEnv()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands(os.Stdout) {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
