package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/hanjk/divsim"
	"github.com/hanjk/divsim/renderer"
)

// simulateCmd runs one simulation and prints its report.
type simulateCmd struct {
	req     requestFlags
	ledger  bool
	journal bool
	cfg     *Config
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate an investment strategy over history" }
func (*simulateCmd) Usage() string {
	return `dsim simulate [-s <date>] [-d <date>] [-amount <cash>] [-mode lump_sum|periodic] [-reinvest] <ticker>

  Replays an investment strategy against the ticker's actual price, dividend
  and split history and reports what it would have returned. This is a
  historical simulation, not a forecast.

Usage Examples:
# $1000 lump sum in TSLY one year ago, dividends reinvested monthly.
$ dsim simulate -reinvest TSLY

# $500 every month over three years, with the full period ledger.
$ dsim simulate -s 2021-01-01 -mode periodic -amount 500 -ledger SCHD
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		cfg = &Config{}
	}
	c.cfg = cfg
	c.req.register(f, cfg)
	f.BoolVar(&c.ledger, "ledger", false, "Also print the period-by-period ledger.")
	f.BoolVar(&c.journal, "journal", false, "Also print every executed trade.")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	req, err := c.req.request(f.Arg(0))
	if err != nil {
		return fail(err)
	}

	st, supplier, err := openSupplier()
	if err != nil {
		return fail(err)
	}
	defer st.Close()

	result, err := divsim.Run(supplier, req)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.SummaryMarkdown(result))
	if c.ledger {
		printMarkdown(renderer.LedgerMarkdown(result))
	}
	if c.journal {
		printMarkdown(renderer.JournalMarkdown(result))
	}
	return subcommands.ExitSuccess
}
