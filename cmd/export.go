package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/hanjk/divsim"
	"github.com/hanjk/divsim/renderer"
)

// exportCmd writes a full simulation report to a file.
type exportCmd struct {
	req    requestFlags
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a full simulation report to a file" }
func (*exportCmd) Usage() string {
	return `dsim export -o <file.md|file.html> [simulate flags] <ticker>

  Runs a simulation and writes the summary, ledger and trade journal to one
  document. The format follows the file extension: .html produces a
  standalone page, anything else raw markdown.

Usage Examples:
$ dsim export -o tsly.html -s 2022-01-01 -reinvest TSLY
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		cfg = &Config{}
	}
	c.req.register(f, cfg)
	f.StringVar(&c.output, "o", "", "Output file. Required.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.output == "" {
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

	md := strings.Join([]string{
		renderer.SummaryMarkdown(result),
		renderer.LedgerMarkdown(result),
		renderer.JournalMarkdown(result),
	}, "\n")

	out, err := os.Create(c.output)
	if err != nil {
		return fail(err)
	}
	defer out.Close()

	if strings.EqualFold(filepath.Ext(c.output), ".html") {
		title := fmt.Sprintf("%s %s", result.Ticker, result.Window)
		if err := renderer.HTML(out, title, md); err != nil {
			return fail(err)
		}
	} else {
		if _, err := out.WriteString(md); err != nil {
			return fail(err)
		}
	}

	fmt.Printf("Report written to %s\n", c.output)
	return subcommands.ExitSuccess
}
