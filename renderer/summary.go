package renderer

import (
	"fmt"
	"strings"

	"github.com/hanjk/divsim"
)

// SummaryMarkdown renders the headline numbers of one simulation.
func SummaryMarkdown(r *divsim.SimulationResult) string {
	m := r.Metrics()
	var b strings.Builder

	fmt.Fprintf(&b, "# %s from %s to %s\n\n", r.Ticker, r.Window.From, r.Window.To)
	fmt.Fprintf(&b, "Strategy: %s", modeLabel(r))
	if r.Options.Reinvest {
		fmt.Fprint(&b, ", dividends reinvested")
	}
	fmt.Fprint(&b, "\n\n")

	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Invested | %s |\n", m.Invested)
	fmt.Fprintf(&b, "| End Value | %s |\n", m.EndValue)
	fmt.Fprintf(&b, "| Shares | %s |\n", r.Shares)
	fmt.Fprintf(&b, "| End Price | %s |\n", price(r.EndPrice))
	fmt.Fprintf(&b, "| Dividends | %s |\n", money(m.Dividends))
	if !m.Cash.IsZero() {
		fmt.Fprintf(&b, "| Dividend Cash Held | %s |\n", m.Cash)
	}
	fmt.Fprintf(&b, "| Capital Gain | %s |\n", m.CapitalGain.SignedString())
	if r.Options.Reinvest && !m.ReinvestmentGain.IsZero() {
		fmt.Fprintf(&b, "| Pure Capital Gain | %s |\n", m.PureCapitalGain.SignedString())
		fmt.Fprintf(&b, "| Reinvestment Gain | %s |\n", m.ReinvestmentGain.SignedString())
	}
	fmt.Fprintf(&b, "| **Total Return** | **%s** |\n", m.TotalReturn.SignedString())
	fmt.Fprintf(&b, "| Return | %s |\n", m.ReturnPct.SignedString())
	if !m.Dividends.IsZero() {
		fmt.Fprintf(&b, "| Yield on Cost | %s |\n", m.YieldOnCost)
	}
	if m.Years >= 1 {
		fmt.Fprintf(&b, "| CAGR | %s |\n", m.CAGR.SignedString())
	}

	return b.String()
}

// DividendsMarkdown renders the per-period dividend attribution of a finished
// simulation: what each period paid per share and in cash.
func DividendsMarkdown(r *divsim.SimulationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Dividends from %s to %s\n\n", r.Ticker, r.Window.From, r.Window.To)
	fmt.Fprintf(&b, "Payout frequency: %s\n\n", r.Frequency)

	total := divsim.M(0, r.Currency)
	fmt.Fprintln(&b, "| Period | Cash | Cumulative |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, row := range r.Rows {
		if row.Dividends.IsZero() {
			continue
		}
		total = total.Add(row.Dividends)
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row.Period, row.Dividends, total)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | |\n", total)

	return b.String()
}
