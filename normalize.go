package divsim

import (
	"slices"
	"sync"
	"time"
)

var (
	defaultLocOnce sync.Once
	defaultLoc     *time.Location
)

// DefaultLocation returns the canonical time reference used when none is
// given: US eastern time, the exchange time of the data sources. Falls back to
// UTC when the tz database is unavailable.
func DefaultLocation() *time.Location {
	defaultLocOnce.Do(func() {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			loc = time.UTC
		}
		defaultLoc = loc
	})
	return defaultLoc
}

// Timeline is the canonical daily view of one ticker over a window: price
// bars, dividends and splits collapsed onto one time reference, sorted,
// deduplicated and clipped. Non-trading days are left unfilled; consumers look
// prices up by "on or before" date, never by wall-clock gap.
type Timeline struct {
	Ticker string
	Window Range

	Bars      []PriceBar
	Dividends []DividendEvent
	Splits    []SplitEvent

	prices History[float64] // close by trading day
}

// CloseAsOf returns the close on the given day, or on the nearest preceding
// trading day inside the window.
func (t *Timeline) CloseAsOf(day Date) (float64, bool) { return t.prices.ValueAsOf(day) }

// FirstTradingDay returns the first trading day on or after the given date.
func (t *Timeline) FirstTradingDay(day Date) (Date, bool) {
	d, _, ok := t.prices.EntryOnOrAfter(day)
	return d, ok
}

// sortedDays returns the keys of a date-indexed map in chronological order.
func sortedDays[T any](index map[Date]T) []Date {
	days := make([]Date, 0, len(index))
	for on := range index {
		days = append(days, on)
	}
	slices.SortFunc(days, func(a, b Date) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		default:
			return 0
		}
	})
	return days
}

// Normalize aligns raw price, dividend and split rows for one ticker onto a
// single canonical daily timeline. Source timestamps are observed in loc and
// collapsed to date-only values, so rows delivered with differing time
// references cannot drift across a midnight boundary. Duplicate (ticker, date)
// rows collapse last-write-wins; rows outside the window are dropped, with the
// window boundaries themselves included.
//
// It fails with DataGapError when no price row at all falls inside the window,
// and with InvalidSplitError when a split carries a ratio <= 0.
func Normalize(ticker string, prices []RawPriceRow, dividends []RawDividendRow, splits []RawSplitRow, window Range, loc *time.Location) (*Timeline, error) {
	if loc == nil {
		loc = DefaultLocation()
	}
	day := func(t time.Time) Date { return DateOf(t.In(loc)) }

	t := &Timeline{Ticker: ticker, Window: window}

	barIndex := make(map[Date]PriceBar)
	for _, row := range prices {
		on := day(row.Time)
		if !window.Contains(on) {
			continue
		}
		// last write wins on duplicate dates
		barIndex[on] = PriceBar{
			Ticker: ticker, Day: on,
			Open: row.Open, High: row.High, Low: row.Low, Close: row.Close,
			Volume: row.Volume,
		}
	}
	if len(barIndex) == 0 {
		return nil, &DataGapError{Ticker: ticker, Window: window}
	}
	t.Bars = make([]PriceBar, 0, len(barIndex))
	for _, on := range sortedDays(barIndex) {
		bar := barIndex[on]
		t.Bars = append(t.Bars, bar)
		t.prices.Append(on, bar.Close)
	}

	divIndex := make(map[Date]DividendEvent)
	for _, row := range dividends {
		on := day(row.Time)
		if !window.Contains(on) {
			continue
		}
		divIndex[on] = DividendEvent{Ticker: ticker, ExDate: on, Amount: row.Amount}
	}
	t.Dividends = make([]DividendEvent, 0, len(divIndex))
	for _, on := range sortedDays(divIndex) {
		t.Dividends = append(t.Dividends, divIndex[on])
	}

	splitIndex := make(map[Date]SplitEvent)
	for _, row := range splits {
		on := day(row.Time)
		if row.Ratio <= 0 {
			return nil, &InvalidSplitError{Ticker: ticker, Day: on, Ratio: row.Ratio}
		}
		if !window.Contains(on) {
			continue
		}
		splitIndex[on] = SplitEvent{Ticker: ticker, Day: on, Ratio: row.Ratio}
	}
	t.Splits = make([]SplitEvent, 0, len(splitIndex))
	for _, on := range sortedDays(splitIndex) {
		t.Splits = append(t.Splits, splitIndex[on])
	}

	return t, nil
}
