package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/hanjk/divsim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func noon(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rows := []divsim.RawPriceRow{
		{Ticker: "T", Time: noon(2024, 1, 2), Open: 99, High: 101, Low: 98, Close: 100, Volume: 1000},
		{Ticker: "T", Time: noon(2024, 1, 3), Open: 100, High: 102, Low: 99, Close: 101, Volume: 1100},
	}
	if err := s.UpsertPrices(rows); err != nil {
		t.Fatal(err)
	}

	got, err := s.Prices("T", divsim.NewDate(2024, 1, 1), divsim.NewDate(2024, 1, 31))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].Close != 100 || got[1].Close != 101 {
		t.Errorf("closes = %v, %v, want 100, 101", got[0].Close, got[1].Close)
	}
}

func TestStoreUpsertReplaces(t *testing.T) {
	s := openTestStore(t)

	row := divsim.RawPriceRow{Ticker: "T", Time: noon(2024, 1, 2), Close: 100}
	if err := s.UpsertPrices([]divsim.RawPriceRow{row}); err != nil {
		t.Fatal(err)
	}
	row.Close = 105
	if err := s.UpsertPrices([]divsim.RawPriceRow{row}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Prices("T", divsim.NewDate(2024, 1, 1), divsim.NewDate(2024, 1, 31))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Close != 105 {
		t.Errorf("rows = %+v, want one row closing at 105", got)
	}
}

func TestStoreFreshness(t *testing.T) {
	s := openTestStore(t)

	if fresh, _ := s.Fresh("T", time.Hour); fresh {
		t.Error("an empty ticker must not be fresh")
	}
	if err := s.UpsertPrices([]divsim.RawPriceRow{{Ticker: "T", Time: noon(2024, 1, 2), Close: 100}}); err != nil {
		t.Fatal(err)
	}
	if fresh, _ := s.Fresh("T", time.Hour); !fresh {
		t.Error("just-written rows must be fresh for an hour")
	}
	if fresh, _ := s.Fresh("T", 0); fresh {
		t.Error("zero max age must never be fresh")
	}
}

func TestLastPriceDay(t *testing.T) {
	s := openTestStore(t)

	if _, ok, _ := s.LastPriceDay("T"); ok {
		t.Error("empty ticker should have no last day")
	}
	s.UpsertPrices([]divsim.RawPriceRow{
		{Ticker: "T", Time: noon(2024, 1, 2), Close: 100},
		{Ticker: "T", Time: noon(2024, 1, 5), Close: 101},
	})
	d, ok, err := s.LastPriceDay("T")
	if err != nil || !ok {
		t.Fatalf("LastPriceDay: %v %v", ok, err)
	}
	if d != divsim.NewDate(2024, 1, 5) {
		t.Errorf("last day = %s, want 2024-01-05", d)
	}
}

// flakySupplier fails until the store holds data, then keeps failing.
type flakySupplier struct {
	prices []divsim.RawPriceRow
	fail   bool
}

func (f *flakySupplier) Prices(string, divsim.Date, divsim.Date) ([]divsim.RawPriceRow, error) {
	if f.fail {
		return nil, fmt.Errorf("upstream down")
	}
	return f.prices, nil
}
func (f *flakySupplier) Dividends(string, divsim.Date, divsim.Date) ([]divsim.RawDividendRow, error) {
	if f.fail {
		return nil, fmt.Errorf("upstream down")
	}
	return nil, nil
}
func (f *flakySupplier) Splits(string, divsim.Date, divsim.Date) ([]divsim.RawSplitRow, error) {
	if f.fail {
		return nil, fmt.Errorf("upstream down")
	}
	return nil, nil
}

func TestCachedServesStale(t *testing.T) {
	s := openTestStore(t)
	upstream := &flakySupplier{prices: []divsim.RawPriceRow{{Ticker: "T", Time: noon(2024, 1, 2), Close: 100}}}
	cached := NewCached(s, upstream, nil).WithMaxAge(0) // force refetch every read

	from, to := divsim.NewDate(2024, 1, 1), divsim.NewDate(2024, 1, 31)

	rows, err := cached.Prices("T", from, to)
	if err != nil || len(rows) != 1 {
		t.Fatalf("first read: %v rows, err %v", len(rows), err)
	}

	// upstream goes down; the stored rows keep the simulation alive
	upstream.fail = true
	rows, err = cached.Prices("T", from, to)
	if err != nil {
		t.Fatalf("stale read failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Close != 100 {
		t.Errorf("stale rows = %+v, want the stored bar", rows)
	}
}

func TestCachedFailsWithoutAnyData(t *testing.T) {
	s := openTestStore(t)
	cached := NewCached(s, &flakySupplier{fail: true}, nil)

	_, err := cached.Prices("T", divsim.NewDate(2024, 1, 1), divsim.NewDate(2024, 1, 31))
	if err == nil {
		t.Fatal("want an error when upstream is down and the store is empty")
	}
}
