package divsim

import (
	"math"
	"testing"
)

// splitFixture is a week with closes 100, 100, 200 around a 2-for-1 split:
// the doubling of the quote is entirely the split, not a market move.
func splitFixture(t *testing.T) (*Timeline, *AdjustedSeries) {
	t.Helper()
	window := NewRange(NewDate(2024, 1, 1), NewDate(2024, 1, 3))
	prices := []RawPriceRow{
		{Ticker: "T", Time: at(NewDate(2024, 1, 1), 12), Close: 100},
		{Ticker: "T", Time: at(NewDate(2024, 1, 2), 12), Close: 100},
		{Ticker: "T", Time: at(NewDate(2024, 1, 3), 12), Close: 200},
	}
	// 1 pre-split share became 0.5 post-split shares, quotes doubled
	splits := []RawSplitRow{{Ticker: "T", Time: at(NewDate(2024, 1, 3), 12), Ratio: 0.5}}

	tl := mustTimeline("T", prices, nil, splits, window)
	adj, err := AdjustSplits(tl)
	if err != nil {
		t.Fatal(err)
	}
	return tl, adj
}

func TestAdjustSplitsContinuity(t *testing.T) {
	_, adj := splitFixture(t)

	tests := []struct {
		day  Date
		want float64
	}{
		{NewDate(2024, 1, 1), 200}, // 100 / 0.5
		{NewDate(2024, 1, 2), 200},
		{NewDate(2024, 1, 3), 200}, // quoted post-split already
	}
	for _, tt := range tests {
		got, ok := adj.CloseAsOf(tt.day)
		if !ok || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("adjusted close on %s = %v, want %v", tt.day, got, tt.want)
		}
	}
}

// A 2-for-1 forward split (1 share becomes 2, price halves) is ratio 2.
func TestAdjustForwardSplit(t *testing.T) {
	window := NewRange(NewDate(2024, 1, 1), NewDate(2024, 1, 3))
	prices := []RawPriceRow{
		{Ticker: "T", Time: at(NewDate(2024, 1, 1), 12), Close: 100},
		{Ticker: "T", Time: at(NewDate(2024, 1, 2), 12), Close: 100},
		{Ticker: "T", Time: at(NewDate(2024, 1, 3), 12), Close: 50},
	}
	splits := []RawSplitRow{{Ticker: "T", Time: at(NewDate(2024, 1, 3), 12), Ratio: 2}}

	adj, err := AdjustSplits(mustTimeline("T", prices, nil, splits, window))
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := adj.CloseAsOf(NewDate(2024, 1, 1)); math.Abs(got-50) > 1e-9 {
		t.Errorf("adjusted pre-split close = %v, want 50", got)
	}
	if got := adj.FactorAfter(NewDate(2024, 1, 1)); got != 2 {
		t.Errorf("FactorAfter(pre-split day) = %v, want 2", got)
	}
	if got := adj.FactorAfter(NewDate(2024, 1, 3)); got != 1 {
		t.Errorf("FactorAfter(split day) = %v, want 1", got)
	}
}

func TestUnadjustRoundTrip(t *testing.T) {
	tl, adj := splitFixture(t)

	for _, bar := range tl.Bars {
		adjusted, ok := adj.Prices.Get(bar.Day)
		if !ok {
			t.Fatalf("no adjusted close on %s", bar.Day)
		}
		if back := adj.Unadjust(bar.Day, adjusted); math.Abs(back-bar.Close) > 1e-9 {
			t.Errorf("unadjust(%s) = %v, want %v", bar.Day, back, bar.Close)
		}
	}
}

// Two 2-for-1 forward splits compound: the earliest closes carry both ratios.
func TestMultipleSplitsCompound(t *testing.T) {
	window := NewRange(NewDate(2024, 1, 1), NewDate(2024, 1, 5))
	var prices []RawPriceRow
	for i, c := range []float64{100, 50, 50, 25, 25} {
		prices = append(prices, RawPriceRow{
			Ticker: "T", Time: at(NewDate(2024, 1, 1).Add(i), 12), Close: c,
		})
	}
	splits := []RawSplitRow{
		{Ticker: "T", Time: at(NewDate(2024, 1, 2), 12), Ratio: 2},
		{Ticker: "T", Time: at(NewDate(2024, 1, 4), 12), Ratio: 2},
	}

	adj, err := AdjustSplits(mustTimeline("T", prices, nil, splits, window))
	if err != nil {
		t.Fatal(err)
	}
	for day, close := range adj.Prices.Values() {
		if math.Abs(close-25) > 1e-9 {
			t.Errorf("adjusted close on %s = %v, want flat 25", day, close)
		}
	}
	if got := adj.FactorAfter(NewDate(2024, 1, 1)); got != 4 {
		t.Errorf("FactorAfter before both splits = %v, want 4", got)
	}
}
