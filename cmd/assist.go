package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/hanjk/divsim"
	"github.com/hanjk/divsim/agent"
	"github.com/hanjk/divsim/renderer"
)

// assistCmd starts an interactive assistant grounded on fresh simulations.
type assistCmd struct {
	req requestFlags
	ask string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat about simulation results with an AI analyst" }
func (*assistCmd) Usage() string {
	return `dsim assist [simulate flags] [-ask <question>] <ticker>...

  Runs the configured strategy over each ticker, hands the reports to an AI
  analyst, and opens an interactive session about them. Requires a Gemini
  API key (config file or GEMINI_API_KEY).

Usage Examples:
$ dsim assist -s 2022-01-01 -reinvest -ask "which one paid more dividends?" TSLY SPY
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		cfg = &Config{}
	}
	c.req.register(f, cfg)
	f.StringVar(&c.ask, "ask", "", "Initial question to ask before the interactive session.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return fail(err)
	}
	if cfg.GeminiAPIKey == "" {
		return fail(fmt.Errorf("no Gemini API key: set gemini_api_key in the config or GEMINI_API_KEY"))
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
	reports := make([]string, 0, len(comparison.Legs))
	for _, leg := range comparison.Legs {
		if leg.Err != nil {
			logger().WithError(leg.Err).WithField("ticker", leg.Request.Ticker).Warn("leg skipped")
			continue
		}
		reports = append(reports,
			renderer.SummaryMarkdown(leg.Result),
			renderer.LedgerMarkdown(leg.Result))
	}
	if len(reports) == 0 {
		return fail(fmt.Errorf("no simulation succeeded, nothing to discuss"))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
	if err != nil {
		return fail(err)
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewAnalyst(reports...))
	var prompts []string
	if strings.TrimSpace(c.ask) != "" {
		prompts = append(prompts, c.ask)
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
