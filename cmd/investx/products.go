package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/bobmcallan/investx-portal/internal/invest"
	"github.com/google/subcommands"
)

// productsCmd lists the product catalogue through the filter pipeline.
type productsCmd struct {
	out    io.Writer
	search string
	typ    string
	risk   string
	sortBy string
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "list investment products" }
func (*productsCmd) Usage() string {
	return `investx products [-q <text>] [-type bond|fd|mf|etf] [-risk low|moderate|high] [-sort <key>]

  Lists products sorted by the API and filtered locally.
  Sort keys: annual_yield (default), tenure_months, min_investment, created_at.
`
}

func (c *productsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "q", "", "Search text matched against name and description")
	f.StringVar(&c.typ, "type", "", "Investment type")
	f.StringVar(&c.risk, "risk", "", "Risk level")
	f.StringVar(&c.sortBy, "sort", string(invest.DefaultSortKey), "Sort key")
}

func (c *productsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := loadEnv()
	if err != nil {
		return failf("Error loading configuration: %v", err)
	}
	auth, err := e.login(ctx)
	if err != nil {
		return failf("%v", err)
	}

	products, err := e.client.ListProducts(ctx, auth.Token, invest.ParseSortKey(c.sortBy))
	if err != nil {
		return failf("Failed to load products: %v", err)
	}
	matched := invest.Apply(products, invest.ProductFilter{Search: c.search, Type: c.typ, Risk: c.risk})
	if len(matched) == 0 {
		fmt.Fprintln(c.out, "No products found")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tRISK\tYIELD\tTENURE\tMIN")
	for _, p := range matched {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v%%\t%dm\t%s\n",
			p.Name,
			format.TypeLabel(string(p.InvestmentType)),
			format.Capitalize(string(p.RiskLevel)),
			p.AnnualYield,
			p.TenureMonths,
			e.formatter.Currency(p.MinInvestment),
		)
	}
	w.Flush()
	fmt.Fprintf(c.out, "\n%d of %d products\n", len(matched), len(products))
	return subcommands.ExitSuccess
}
