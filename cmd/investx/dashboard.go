package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/google/subcommands"
)

// dashboardCmd prints the portfolio summary, recent investments and
// recommendations.
type dashboardCmd struct {
	out io.Writer
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the portfolio overview" }
func (*dashboardCmd) Usage() string {
	return `investx dashboard

  Prints the same overview as the portal dashboard.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := loadEnv()
	if err != nil {
		return failf("Error loading configuration: %v", err)
	}
	auth, err := e.login(ctx)
	if err != nil {
		return failf("%v", err)
	}

	dash, err := e.client.LoadDashboard(ctx, auth.Token)
	if err != nil {
		return failf("Failed to load dashboard data: %v", err)
	}

	f := e.formatter
	s := dash.Summary
	fmt.Fprintf(c.out, "Welcome back, %s!\n\n", auth.User.FirstName)
	fmt.Fprintf(c.out, "Total invested:     %s\n", f.Currency(s.TotalInvested))
	fmt.Fprintf(c.out, "Expected returns:   %s\n", f.Currency(s.TotalExpectedReturn))
	fmt.Fprintf(c.out, "Total gains:        %s (%s%%)\n", f.Currency(s.TotalGain), format.GainPercent(s.TotalGain, s.TotalInvested))
	fmt.Fprintf(c.out, "Active investments: %d\n", s.ActiveInvestments)

	fmt.Fprintln(c.out, "\nRecent investments:")
	recent := dash.RecentInvestments()
	if len(recent) == 0 {
		fmt.Fprintln(c.out, "  No investments yet")
	}
	for _, inv := range recent {
		fmt.Fprintf(c.out, "  %s  %s  %s\n", format.Date(inv.InvestedAt.Time), f.Currency(inv.Amount), inv.ProductName)
	}

	fmt.Fprintf(c.out, "\nRecommended for your %s risk appetite:\n", auth.User.RiskAppetite)
	recs := dash.TopRecommendations()
	if len(recs) == 0 {
		fmt.Fprintln(c.out, "  No recommendations available")
	}
	for _, p := range recs {
		fmt.Fprintf(c.out, "  %s  %v%%  %d months\n", p.Name, p.AnnualYield, p.TenureMonths)
	}
	return subcommands.ExitSuccess
}
