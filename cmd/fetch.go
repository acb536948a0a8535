package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/hanjk/divsim"
)

// fetchCmd refreshes the local market database for one or more tickers.
type fetchCmd struct {
	start string
	end   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download market history into the local database" }
func (*fetchCmd) Usage() string {
	return `dsim fetch [-s <date>] [-d <date>] <ticker>...

  Downloads daily prices, dividends and splits for each ticker and stores
  them locally. Simulations read from the local database first, so fetching
  ahead of time makes them work offline.

Usage Examples:
$ dsim fetch -s 2020-01-01 TSLY MSTY
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the history to fetch. Defaults to five years ago.")
	f.StringVar(&c.end, "d", divsim.Today().String(), "End date of the history to fetch.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	end, err := divsim.ParseDate(c.end)
	if err != nil {
		return fail(err)
	}
	start := end.AddMonths(-60)
	if c.start != "" {
		if start, err = divsim.ParseDate(c.start); err != nil {
			return fail(err)
		}
	}

	st, supplier, err := openSupplier()
	if err != nil {
		return fail(err)
	}
	defer st.Close()

	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		prices, err := supplier.Prices(ticker, start, end)
		if err != nil {
			logger().WithError(err).WithField("ticker", ticker).Error("fetch failed")
			status = subcommands.ExitFailure
			continue
		}
		last, _, _ := st.LastPriceDay(ticker)
		fmt.Printf("%s: %d bars stored, last trading day %s\n", ticker, len(prices), last)
	}
	return status
}
