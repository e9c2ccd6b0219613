package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/bobmcallan/investx-portal/internal/invest"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// returnsCmd projects the value of an investment at maturity. It runs
// offline.
type returnsCmd struct {
	out    io.Writer
	amount float64
	yield  float64
	tenure int
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "project the value of an investment at maturity" }
func (*returnsCmd) Usage() string {
	return `investx returns -amount <amount> -yield <percent> -tenure <months>

  Projects amount + amount * yield * tenure / 1200 using simple interest.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Principal to invest")
	f.Float64Var(&c.yield, "yield", 0, "Annual yield in percent")
	f.IntVar(&c.tenure, "tenure", 12, "Tenure in months")
}

func (c *returnsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	projected, err := invest.ProjectReturns(c.amount, c.yield, c.tenure)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	f := format.New("INR", *grouping)
	gain := decimal.NewFromFloat(projected).Sub(decimal.NewFromFloat(c.amount)).InexactFloat64()

	fmt.Fprintf(c.out, "Invested:          %s\n", f.Currency(c.amount))
	fmt.Fprintf(c.out, "Annual yield:      %v%%\n", c.yield)
	fmt.Fprintf(c.out, "Tenure:            %d months\n", c.tenure)
	fmt.Fprintf(c.out, "Value at maturity: %s\n", f.Currency(projected))
	fmt.Fprintf(c.out, "Gain:              %s (%s%%)\n", f.Currency(gain), format.GainPercent(gain, c.amount))
	return subcommands.ExitSuccess
}
