package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bobmcallan/investx-portal/internal/cache"
	"github.com/bobmcallan/investx-portal/internal/client"
	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/config"
	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/google/subcommands"
)

var (
	apiURL     = flag.String("api", "", "InvestX API base URL (default from config or INVESTX_API_URL)")
	configFile = flag.String("config", "", "Configuration file path")
	grouping   = flag.String("grouping", "", "Digit grouping for amounts: indian or western")
	verbose    = flag.Bool("v", false, "Log API requests to stderr")
)

// commands returns every subcommand, writing to out.
func commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&returnsCmd{out: out},
		&productsCmd{out: out},
		&dashboardCmd{out: out},
		&versionCmd{out: out},
	}
}

// env bundles what the API-backed commands share.
type env struct {
	cfg       *config.Config
	client    *client.InvestXClient
	formatter *format.Formatter
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadFromFile(*configFile)
	if err != nil {
		return nil, err
	}
	if *apiURL != "" {
		cfg.API.URL = *apiURL
	}
	if *grouping != "" {
		cfg.Display.Grouping = *grouping
	}

	logger := common.NewSilentLogger()
	if *verbose {
		logger = common.NewLoggerWithOutput("debug", os.Stderr)
	}

	return &env{
		cfg:       cfg,
		client:    client.NewInvestXClient(cfg.API.URL, cfg.APITimeout(), cache.New(time.Minute, 16), logger),
		formatter: format.New(cfg.Display.Currency, cfg.Display.Grouping),
	}, nil
}

var errNoCredentials = errors.New("set INVESTX_EMAIL and INVESTX_PASSWORD")

// login signs in with the credentials from the environment and returns
// the API token.
func (e *env) login(ctx context.Context) (*client.AuthResult, error) {
	email, password := os.Getenv("INVESTX_EMAIL"), os.Getenv("INVESTX_PASSWORD")
	if email == "" || password == "" {
		return nil, errNoCredentials
	}
	res, err := e.client.Login(ctx, email, password)
	if err != nil {
		if detail := client.DetailOf(err); detail != "" {
			return nil, fmt.Errorf("login failed: %s", detail)
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return res, nil
}

// failf prints to stderr and returns ExitFailure.
func failf(format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
