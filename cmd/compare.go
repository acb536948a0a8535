package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/hanjk/divsim"
	"github.com/hanjk/divsim/renderer"
)

// compareCmd runs the same strategy over several tickers side by side.
type compareCmd struct {
	req requestFlags
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "run the same strategy over several tickers" }
func (*compareCmd) Usage() string {
	return `dsim compare [-s <date>] [-d <date>] [-amount <cash>] [-reinvest] <ticker> <ticker>...

  Runs the identical strategy over each ticker and prints the results side by
  side. Tickers run concurrently and independently: a data gap on one still
  reports the others.

Usage Examples:
$ dsim compare -s 2022-01-01 -reinvest TSLY SPY
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		cfg = &Config{}
	}
	c.req.register(f, cfg)
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	reqs := make([]divsim.Request, 0, f.NArg())
	for _, ticker := range f.Args() {
		req, err := c.req.request(ticker)
		if err != nil {
			return fail(err)
		}
		reqs = append(reqs, req)
	}

	st, supplier, err := openSupplier()
	if err != nil {
		return fail(err)
	}
	defer st.Close()

	comparison := divsim.Compare(supplier, reqs...)
	printMarkdown(renderer.ComparisonMarkdown(comparison))

	if comparison.Failed() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
