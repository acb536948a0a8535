package divsim

// AdjustedSeries is a ticker's close series rewritten to the split-adjusted
// basis: every price is expressed in end-of-window share units, so per-share
// quantities are comparable across split boundaries. At any historical point,
// adjusted price times adjusted shares reproduces the unadjusted cash value.
type AdjustedSeries struct {
	Ticker string
	Prices History[float64] // split-adjusted closes by trading day

	splits []SplitEvent // sorted by date
	suffix []float64    // suffix[i] = product of ratios of splits[i:]
}

// AdjustSplits rewrites a timeline's close series onto the split-adjusted
// basis. Each split divides (forward) or multiplies (reverse) every close
// strictly before its effective date by its ratio; a close on the effective
// date itself is already quoted post-split. Multiple splits compound, so the
// adjusted series is continuous across every boundary. A split dated exactly
// on the window boundary participates like any other.
func AdjustSplits(t *Timeline) (*AdjustedSeries, error) {
	a := &AdjustedSeries{
		Ticker: t.Ticker,
		splits: t.Splits,
		suffix: make([]float64, len(t.Splits)+1),
	}

	a.suffix[len(t.Splits)] = 1
	for i := len(t.Splits) - 1; i >= 0; i-- {
		s := t.Splits[i]
		if s.Ratio <= 0 {
			return nil, &InvalidSplitError{Ticker: t.Ticker, Day: s.Day, Ratio: s.Ratio}
		}
		a.suffix[i] = a.suffix[i+1] * s.Ratio
	}

	for day, close := range t.prices.Values() {
		a.Prices.Append(day, close/a.FactorAfter(day))
	}
	return a, nil
}

// FactorAfter returns the cumulative ratio of every split strictly after the
// given day: the multiplier that converts a share count held on that day to
// the end-of-window basis. It is 1 when no further split occurs.
func (a *AdjustedSeries) FactorAfter(day Date) float64 {
	// first split strictly after day; splits are sorted.
	lo, hi := 0, len(a.splits)
	for lo < hi {
		mid := (lo + hi) / 2
		if a.splits[mid].Day.After(day) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return a.suffix[lo]
}

// CloseAsOf returns the adjusted close on the given day, or on the nearest
// preceding trading day.
func (a *AdjustedSeries) CloseAsOf(day Date) (float64, bool) { return a.Prices.ValueAsOf(day) }

// EntryAsOf returns the trading day and adjusted close on or before the given day.
func (a *AdjustedSeries) EntryAsOf(day Date) (Date, float64, bool) { return a.Prices.EntryAsOf(day) }

// Unadjust converts an adjusted price on a given day back to the price basis
// quoted at that day. Adjusting then unadjusting reproduces the raw series.
func (a *AdjustedSeries) Unadjust(day Date, price float64) float64 {
	return price * a.FactorAfter(day)
}
