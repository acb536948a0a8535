package divsim

import "math"

// Metrics are the headline return numbers derived from a finished simulation.
// All money values share the simulation currency; percent values are on the
// 0..100 scale.
type Metrics struct {
	Invested    Money `json:"invested"`
	MarketValue Money `json:"marketValue"` // final share position
	Cash        Money `json:"cash"`        // dividend cash never reinvested
	EndValue    Money `json:"endValue"`    // MarketValue + Cash

	Dividends   Money `json:"dividends"`
	CapitalGain Money `json:"capitalGain"` // price appreciation only
	TotalReturn Money `json:"totalReturn"` // CapitalGain + Dividends

	// Reinvestment split. PureCapitalGain is the gain the contributed cash
	// alone would show; ReinvestmentGain is the extra value created by the
	// shares dividends bought. They sum, with Dividends, to TotalReturn.
	PureCapitalGain  Money `json:"pureCapitalGain"`
	ReinvestmentGain Money `json:"reinvestmentGain"`

	ReturnPct   Percent `json:"returnPct"`
	YieldOnCost Percent `json:"yieldOnCost"`
	CAGR        Percent `json:"cagr"`
	Years       float64 `json:"years"`
}

// Metrics reduces the simulation to its headline numbers.
//
// Capital gain is price appreciation alone: end value minus invested minus
// dividends, so a dividend credited and still held as cash moves total return
// but never capital gain. When nothing was invested every metric is zero, not
// NaN. CAGR annualizes over calendar days divided by 365.25 and is left zero
// for windows shorter than a day or a non-positive position.
func (r *SimulationResult) Metrics() Metrics {
	zero := M(0, r.Currency)
	m := Metrics{
		Invested: r.Invested, MarketValue: zero, Cash: zero, EndValue: zero,
		Dividends: zero, CapitalGain: zero, TotalReturn: zero,
		PureCapitalGain: zero, ReinvestmentGain: zero,
	}
	if !r.Invested.IsPositive() {
		return m
	}

	end := M(r.EndPrice, r.Currency)
	m.MarketValue = end.Mul(r.Shares)
	m.Cash = r.Cash
	m.EndValue = m.MarketValue.Add(r.Cash)
	m.Dividends = r.Dividends

	m.TotalReturn = m.EndValue.Sub(r.Invested)
	m.CapitalGain = m.TotalReturn.Sub(r.Dividends)

	m.PureCapitalGain = end.Mul(r.Bought).Sub(r.Invested)
	reinvested := r.Dividends.Sub(r.Cash) // dividend cash converted to shares
	m.ReinvestmentGain = end.Mul(r.Shares.Sub(r.Bought)).Sub(reinvested)

	m.ReturnPct = Percent(m.TotalReturn.AsFloat() / r.Invested.AsFloat() * 100)
	m.YieldOnCost = Percent(r.Dividends.AsFloat() / r.Invested.AsFloat() * 100)

	days := r.EndDay.Sub(r.Window.From)
	m.Years = float64(days) / 365.25
	if m.Years > 0 && m.EndValue.IsPositive() {
		growth := m.EndValue.AsFloat() / r.Invested.AsFloat()
		m.CAGR = Percent((math.Pow(growth, 1/m.Years) - 1) * 100)
	}
	return m
}
