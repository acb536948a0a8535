package yahoo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hanjk/divsim"
)

// chartPayload mimics the v8 chart endpoint: three bars with a null close on
// a holiday, one dividend and one split.
const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {"currency": "USD", "exchangeTimezoneName": "America/New_York"},
      "timestamp": [1704207600, 1704294000, 1704380400, 1704466800],
      "indicators": {"quote": [{
        "open":   [99.0, null, 100.5, 101.0],
        "high":   [101.0, null, 102.0, 103.0],
        "low":    [98.0, null, 99.5, 100.0],
        "close":  [100.0, null, 101.0, 102.0],
        "volume": [1000, null, 1100, 1200]
      }]},
      "events": {
        "dividends": {"1704294000": {"amount": 0.5, "date": 1704294000}},
        "splits": {"1704380400": {"date": 1704380400, "numerator": 2, "denominator": 1, "splitRatio": "2:1"}}
      }
    }],
    "error": null
  }
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(nil).WithBase(srv.URL)
}

func TestChartParsing(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("events"); got != "div,split" {
			t.Errorf("events query = %q, want div,split", got)
		}
		fmt.Fprint(w, chartPayload)
	})

	chart, err := c.Chart("TST", divsim.NewDate(2024, 1, 1), divsim.NewDate(2024, 1, 10))
	if err != nil {
		t.Fatal(err)
	}

	if chart.Currency != "USD" {
		t.Errorf("currency = %q, want USD", chart.Currency)
	}
	// the null bar is dropped
	if len(chart.Prices) != 3 {
		t.Fatalf("bars = %d, want 3", len(chart.Prices))
	}
	if chart.Prices[0].Close != 100 || chart.Prices[2].Close != 102 {
		t.Errorf("closes = %v ... %v, want 100 ... 102", chart.Prices[0].Close, chart.Prices[2].Close)
	}
	if !chart.Prices[0].Time.Before(chart.Prices[1].Time) {
		t.Error("bars are not sorted by time")
	}

	if len(chart.Dividends) != 1 || chart.Dividends[0].Amount != 0.5 {
		t.Errorf("dividends = %+v, want one of 0.5", chart.Dividends)
	}
	if len(chart.Splits) != 1 || chart.Splits[0].Ratio != 2 {
		t.Errorf("splits = %+v, want one 2-for-1", chart.Splits)
	}
}

func TestChartAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`)
	})

	_, err := c.Chart("GONE", divsim.NewDate(2024, 1, 1), divsim.NewDate(2024, 1, 10))
	if err == nil {
		t.Fatal("want an error for a delisted symbol")
	}
}

func TestChartHTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := c.Chart("TST", divsim.NewDate(2024, 1, 1), divsim.NewDate(2024, 1, 10))
	if err == nil {
		t.Fatal("want an error on http 429")
	}
}

func TestSearch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quotes": [
			{"symbol": "TSLY", "shortname": "YieldMax TSLA Option Income", "exchange": "PCX", "quoteType": "ETF"},
			{"exchange": "NYQ", "quoteType": "EQUITY"}
		]}`)
	})

	results, err := c.Search("tsly")
	if err != nil {
		t.Fatal(err)
	}
	// the symbol-less quote is dropped
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Symbol != "TSLY" || results[0].Type != "ETF" {
		t.Errorf("result = %+v", results[0])
	}
}

func TestUnixDayRange(t *testing.T) {
	from := divsim.NewDate(2024, 1, 2)
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Unix()
	if got := unixDay(from); got != want {
		t.Errorf("unixDay = %d, want %d", got, want)
	}
}
