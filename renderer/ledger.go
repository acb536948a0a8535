package renderer

import (
	"fmt"
	"strings"

	"github.com/hanjk/divsim"
)

// LedgerMarkdown renders the period-by-period position table.
func LedgerMarkdown(r *divsim.SimulationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Ledger from %s to %s\n\n", r.Ticker, r.Window.From, r.Window.To)

	fmt.Fprintln(&b, "| Period | Price | Contributed | Bought | Dividends | Shares | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			row.Period,
			price(row.Price),
			money(row.Contributed),
			qty(row.SharesBought),
			money(row.Dividends),
			row.Shares,
			row.Value,
		)
	}

	m := r.Metrics()
	fmt.Fprintf(&b, "\nInvested %s, end value %s, total return %s.\n",
		m.Invested, m.EndValue, m.TotalReturn.SignedString())
	return b.String()
}

// JournalMarkdown renders every executed trade in date order.
func JournalMarkdown(r *divsim.SimulationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Trades from %s to %s\n\n", r.Ticker, r.Window.From, r.Window.To)

	fmt.Fprintln(&b, "| Date | Action | Shares | Price | Amount |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for _, e := range r.Journal {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			e.Day, e.Action, e.Shares, price(e.Price), e.Amount)
	}
	return b.String()
}
