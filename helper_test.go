package divsim

import (
	"fmt"
	"time"
)

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for tests to create money with no currency set.
func NO(v float64) Money { return M(v, "") }

// at returns a timestamp at the given hour UTC on a date, for raw rows.
func at(d Date, hour int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

// rawPrices builds one raw close row per weekday of the range, at noon UTC.
// The close for a day is looked up in closes by date string, falling back to
// def.
func rawPrices(ticker string, window Range, def float64, closes map[string]float64) []RawPriceRow {
	var rows []RawPriceRow
	for d := range window.Dates() {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		c := def
		if v, ok := closes[d.String()]; ok {
			c = v
		}
		rows = append(rows, RawPriceRow{
			Ticker: ticker, Time: at(d, 12),
			Open: c, High: c, Low: c, Close: c, Volume: 1000,
		})
	}
	return rows
}

// fakeSupplier serves fixed raw rows, or a canned error per call kind.
type fakeSupplier struct {
	prices    map[string][]RawPriceRow
	dividends map[string][]RawDividendRow
	splits    map[string][]RawSplitRow
	err       map[string]error // keyed by ticker
}

func newFakeSupplier() *fakeSupplier {
	return &fakeSupplier{
		prices:    make(map[string][]RawPriceRow),
		dividends: make(map[string][]RawDividendRow),
		splits:    make(map[string][]RawSplitRow),
		err:       make(map[string]error),
	}
}

func (s *fakeSupplier) Prices(ticker string, from, to Date) ([]RawPriceRow, error) {
	if err := s.err[ticker]; err != nil {
		return nil, err
	}
	return s.prices[ticker], nil
}

func (s *fakeSupplier) Dividends(ticker string, from, to Date) ([]RawDividendRow, error) {
	if err := s.err[ticker]; err != nil {
		return nil, err
	}
	return s.dividends[ticker], nil
}

func (s *fakeSupplier) Splits(ticker string, from, to Date) ([]RawSplitRow, error) {
	if err := s.err[ticker]; err != nil {
		return nil, err
	}
	return s.splits[ticker], nil
}

// mustTimeline normalizes or panics, for fixtures that cannot fail.
func mustTimeline(ticker string, prices []RawPriceRow, dividends []RawDividendRow, splits []RawSplitRow, window Range) *Timeline {
	tl, err := Normalize(ticker, prices, dividends, splits, window, time.UTC)
	if err != nil {
		panic(fmt.Sprintf("fixture timeline: %v", err))
	}
	return tl
}
