// Package renderer turns simulation results into markdown reports. Every
// renderer returns a plain markdown string; the command layer decides whether
// to pretty-print it for a terminal or convert it to HTML.
package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hanjk/divsim"
)

// money formats a money cell, or "-" for a zero value.
func money(m divsim.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}

// qty formats a share count cell, or "-" for zero.
func qty(q divsim.Quantity) string {
	if q.IsZero() {
		return "-"
	}
	return q.String()
}

func price(p float64) string { return fmt.Sprintf("%.2f", p) }

// modeLabel names the contribution layout for report headers.
func modeLabel(r *divsim.SimulationResult) string {
	if r.Mode == divsim.Periodic && len(r.Contribs) > 0 {
		return fmt.Sprintf("periodic contributions of %s", r.Contribs[0].Amount)
	}
	return fmt.Sprintf("lump sum of %s", r.Invested)
}

// ConditionalBlock fully writes a block and decides at the end to print it or
// not. If the block function returns true the content is copied to w,
// otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	buf := &bytes.Buffer{}
	if block(buf) {
		io.Copy(w, buf)
	}
}
