package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/hanjk/divsim/yahoo"
)

// searchCmd looks tickers up by free text.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search for a ticker symbol" }
func (*searchCmd) Usage() string {
	return `dsim search <query>...

  Searches the data source for instruments matching the query and prints
  their symbols, so you can find the exact ticker to simulate.

Usage Examples:
$ dsim search yieldmax tesla
`
}

func (*searchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return fail(err)
	}
	client := yahoo.New(logger())
	if cfg.Yahoo.BaseURL != "" {
		client = client.WithBase(cfg.Yahoo.BaseURL)
	}

	results, err := client.Search(strings.Join(f.Args(), " "))
	if err != nil {
		return fail(err)
	}
	if len(results) == 0 {
		fmt.Println("No match.")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintln(&b, "| Symbol | Name | Exchange | Type |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|")
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Symbol, r.Name, r.Exchange, r.Type)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
