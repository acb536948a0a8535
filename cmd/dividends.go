package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/hanjk/divsim"
	"github.com/hanjk/divsim/renderer"
)

// dividendsCmd reports the dividend stream a strategy would have collected.
type dividendsCmd struct {
	req requestFlags
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "report the dividend stream of a strategy" }
func (*dividendsCmd) Usage() string {
	return `dsim dividends [-s <date>] [-d <date>] [-amount <cash>] <ticker>

  Shows the period-by-period dividend cash a strategy would have collected,
  with the inferred payout frequency.

Usage Examples:
$ dsim dividends -s 2023-01-01 TSLY
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		cfg = &Config{}
	}
	c.req.register(f, cfg)
}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.DividendsMarkdown(result))
	return subcommands.ExitSuccess
}
