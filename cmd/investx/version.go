package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/bobmcallan/investx-portal/internal/config"
	"github.com/google/subcommands"
)

type versionCmd struct {
	out io.Writer
}

func (*versionCmd) Name() string           { return "version" }
func (*versionCmd) Synopsis() string       { return "print client and API server versions" }
func (*versionCmd) Usage() string          { return "investx version\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (c *versionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(c.out, "investx %s\n", config.GetFullVersion())

	e, err := loadEnv()
	if err != nil {
		return failf("Error loading configuration: %v", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	v, err := e.client.GetServerVersion(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "server %s unavailable\n", e.client.BaseURL())
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(c.out, "server %s\n", v)
	return subcommands.ExitSuccess
}
