package renderer

import (
	"fmt"
	"strings"

	"github.com/hanjk/divsim"
)

// ComparisonMarkdown renders several simulations side by side, one column per
// ticker. Legs that failed keep their column with the error in place of
// numbers, so a data gap on one ticker never hides the others.
func ComparisonMarkdown(c *divsim.Comparison) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Comparison")
	for _, leg := range c.Legs {
		fmt.Fprintf(&b, " %s", leg.Request.Ticker)
	}
	fmt.Fprint(&b, "\n\n")

	fmt.Fprint(&b, "| |")
	for _, leg := range c.Legs {
		fmt.Fprintf(&b, " %s |", leg.Request.Ticker)
	}
	fmt.Fprint(&b, "\n|:---|")
	for range c.Legs {
		fmt.Fprint(&b, "---:|")
	}
	fmt.Fprintln(&b)

	row := func(label string, cell func(m divsim.Metrics, r *divsim.SimulationResult) string) {
		fmt.Fprintf(&b, "| %s |", label)
		for _, leg := range c.Legs {
			if leg.Err != nil {
				fmt.Fprint(&b, " n/a |")
				continue
			}
			fmt.Fprintf(&b, " %s |", cell(leg.Result.Metrics(), leg.Result))
		}
		fmt.Fprintln(&b)
	}

	row("Invested", func(m divsim.Metrics, _ *divsim.SimulationResult) string { return m.Invested.String() })
	row("End Value", func(m divsim.Metrics, _ *divsim.SimulationResult) string { return m.EndValue.String() })
	row("Dividends", func(m divsim.Metrics, _ *divsim.SimulationResult) string { return money(m.Dividends) })
	row("Capital Gain", func(m divsim.Metrics, _ *divsim.SimulationResult) string { return m.CapitalGain.SignedString() })
	row("Total Return", func(m divsim.Metrics, _ *divsim.SimulationResult) string { return m.TotalReturn.SignedString() })
	row("Return", func(m divsim.Metrics, _ *divsim.SimulationResult) string { return m.ReturnPct.SignedString() })
	row("CAGR", func(m divsim.Metrics, _ *divsim.SimulationResult) string { return m.CAGR.SignedString() })

	if c.Failed() {
		fmt.Fprintln(&b)
		for _, leg := range c.Legs {
			if leg.Err != nil {
				fmt.Fprintf(&b, "- %s: %v\n", leg.Request.Ticker, leg.Err)
			}
		}
	}
	return b.String()
}
