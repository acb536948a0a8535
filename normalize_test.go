package divsim

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeCollapsesTimezones(t *testing.T) {
	// Same trading day delivered with two time references: a UTC midnight
	// timestamp and a New York late-evening one that is already the next day
	// in UTC.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database unavailable")
	}
	day := NewDate(2024, 3, 5)
	window := NewRange(NewDate(2024, 3, 1), NewDate(2024, 3, 31))

	rows := []RawPriceRow{
		{Ticker: "T", Time: time.Date(2024, 3, 5, 21, 0, 0, 0, ny), Close: 101},
	}
	tl, err := Normalize("T", rows, nil, nil, window, ny)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.Bars) != 1 || tl.Bars[0].Day != day {
		t.Fatalf("bars = %v, want one bar on %s", tl.Bars, day)
	}

	// The same instant observed in UTC is already March 6.
	utcView, err := Normalize("T", rows, nil, nil, window, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if utcView.Bars[0].Day != NewDate(2024, 3, 6) {
		t.Fatalf("utc day = %s, want 2024-03-06", utcView.Bars[0].Day)
	}
}

func TestNormalizeDeduplicates(t *testing.T) {
	window := NewRange(NewDate(2024, 1, 1), NewDate(2024, 1, 31))
	rows := []RawPriceRow{
		{Ticker: "T", Time: at(NewDate(2024, 1, 2), 10), Close: 100},
		{Ticker: "T", Time: at(NewDate(2024, 1, 2), 16), Close: 105}, // same day, later write
	}
	tl, err := Normalize("T", rows, nil, nil, window, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.Bars) != 1 {
		t.Fatalf("bars = %d, want 1", len(tl.Bars))
	}
	if tl.Bars[0].Close != 105 {
		t.Errorf("close = %v, want last write 105", tl.Bars[0].Close)
	}
}

func TestNormalizeClipsWindowInclusive(t *testing.T) {
	window := NewRange(NewDate(2024, 1, 10), NewDate(2024, 1, 20))
	rows := []RawPriceRow{
		{Ticker: "T", Time: at(NewDate(2024, 1, 9), 12), Close: 1},  // out
		{Ticker: "T", Time: at(NewDate(2024, 1, 10), 12), Close: 2}, // boundary in
		{Ticker: "T", Time: at(NewDate(2024, 1, 20), 12), Close: 3}, // boundary in
		{Ticker: "T", Time: at(NewDate(2024, 1, 21), 12), Close: 4}, // out
	}
	divs := []RawDividendRow{
		{Ticker: "T", Time: at(NewDate(2024, 1, 10), 12), Amount: 0.5}, // boundary in
		{Ticker: "T", Time: at(NewDate(2024, 1, 21), 12), Amount: 0.5}, // out
	}
	tl, err := Normalize("T", rows, divs, nil, window, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.Bars) != 2 {
		t.Errorf("bars = %d, want 2", len(tl.Bars))
	}
	if len(tl.Dividends) != 1 || tl.Dividends[0].ExDate != NewDate(2024, 1, 10) {
		t.Errorf("dividends = %v, want the boundary event only", tl.Dividends)
	}
}

func TestNormalizeDataGap(t *testing.T) {
	window := NewRange(NewDate(2024, 1, 1), NewDate(2024, 1, 31))
	rows := []RawPriceRow{
		{Ticker: "T", Time: at(NewDate(2023, 12, 1), 12), Close: 1}, // outside the window
	}
	_, err := Normalize("T", rows, nil, nil, window, time.UTC)

	var gap *DataGapError
	if !errors.As(err, &gap) {
		t.Fatalf("err = %v, want DataGapError", err)
	}
	if gap.Ticker != "T" || gap.Window != window {
		t.Errorf("gap = %+v", gap)
	}
}

func TestNormalizeInvalidSplit(t *testing.T) {
	window := NewRange(NewDate(2024, 1, 1), NewDate(2024, 1, 31))
	rows := rawPrices("T", window, 100, nil)
	splits := []RawSplitRow{{Ticker: "T", Time: at(NewDate(2024, 1, 10), 12), Ratio: 0}}

	_, err := Normalize("T", rows, nil, splits, window, time.UTC)
	var bad *InvalidSplitError
	if !errors.As(err, &bad) {
		t.Fatalf("err = %v, want InvalidSplitError", err)
	}
}
