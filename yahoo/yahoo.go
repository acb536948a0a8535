// Package yahoo fetches daily bars, dividends and splits from the Yahoo
// Finance chart API. Responses are cached on disk with a daily key, so a
// ticker is queried at most once per day no matter how many simulations run.
package yahoo

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hanjk/divsim"
)

const defaultBase = "https://query1.finance.yahoo.com"

// Client talks to the Yahoo Finance public endpoints. The zero value is not
// usable; construct it with New.
type Client struct {
	http *http.Client
	base string
	log  *logrus.Logger
}

// New returns a client with a daily-expiring disk cache. A nil logger
// silences the client.
func New(log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &diskCache{base: http.DefaultTransport, log: log},
		},
		base: defaultBase,
		log:  log,
	}
}

// WithBase points the client at another host. Tests use it with httptest.
func (c *Client) WithBase(base string) *Client {
	c.base = base
	c.http.Transport = nil // no cache against a test server
	return c
}

// diskCache caches whole HTTP responses on disk. The key includes today's
// date, so entries expire at midnight without any eviction bookkeeping.
type diskCache struct {
	base http.RoundTripper
	log  *logrus.Logger
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", divsim.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"method": req.Method,
		"host":   req.URL.Host,
		"path":   req.URL.Path,
		"status": resp.Status,
	}).Debug("http fetch")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.log.WithError(err).Warn("cache write failed (ignored)")
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), key), content, 0o644)
}

// jwget performs a GET and unmarshals the JSON response into data.
func (c *Client) jwget(addr string, data any) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return json.Unmarshal(body, data)
}

// chartResponse is the subset of the v8 chart payload we read. OHLCV arrays
// carry JSON nulls on holidays, hence any.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string `json:"currency"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []any `json:"open"`
					High   []any `json:"high"`
					Low    []any `json:"low"`
					Close  []any `json:"close"`
					Volume []any `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
				Splits map[string]struct {
					Date        int64   `json:"date"`
					Numerator   float64 `json:"numerator"`
					Denominator float64 `json:"denominator"`
					SplitRatio  string  `json:"splitRatio"`
				} `json:"splits"`
			} `json:"events"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// at reads arr[i] as a float, tolerating short arrays and JSON nulls.
func at(arr []any, i int) float64 {
	if i >= len(arr) {
		return 0
	}
	return toFloat(arr[i])
}

// Chart is one ticker's raw market history over a range, as delivered.
type Chart struct {
	Ticker    string
	Currency  string
	Prices    []divsim.RawPriceRow
	Dividends []divsim.RawDividendRow
	Splits    []divsim.RawSplitRow
}

// Chart fetches daily bars plus dividend and split events for the inclusive
// date range. Null bars (holidays) are dropped; rows come back sorted by time.
func (c *Client) Chart(ticker string, from, to divsim.Date) (*Chart, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div%%2Csplit",
		c.base, url.PathEscape(ticker), unixDay(from), unixDay(to.Add(1)))

	var payload chartResponse
	if err := c.jwget(addr, &payload); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s", ticker, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no data returned", ticker)
	}

	result := payload.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	chart := &Chart{Ticker: ticker, Currency: result.Meta.Currency}

	for i, ts := range result.Timestamp {
		cl := at(quote.Close, i)
		if cl == 0 {
			continue
		}
		chart.Prices = append(chart.Prices, divsim.RawPriceRow{
			Ticker: ticker, Time: time.Unix(ts, 0),
			Open: at(quote.Open, i), High: at(quote.High, i), Low: at(quote.Low, i), Close: cl,
			Volume: int64(at(quote.Volume, i)),
		})
	}
	for _, d := range result.Events.Dividends {
		chart.Dividends = append(chart.Dividends, divsim.RawDividendRow{
			Ticker: ticker, Time: time.Unix(d.Date, 0), Amount: d.Amount,
		})
	}
	for _, s := range result.Events.Splits {
		if s.Denominator == 0 {
			continue
		}
		chart.Splits = append(chart.Splits, divsim.RawSplitRow{
			Ticker: ticker, Time: time.Unix(s.Date, 0), Ratio: s.Numerator / s.Denominator,
		})
	}

	sort.Slice(chart.Prices, func(i, j int) bool { return chart.Prices[i].Time.Before(chart.Prices[j].Time) })
	sort.Slice(chart.Dividends, func(i, j int) bool { return chart.Dividends[i].Time.Before(chart.Dividends[j].Time) })
	sort.Slice(chart.Splits, func(i, j int) bool { return chart.Splits[i].Time.Before(chart.Splits[j].Time) })

	c.log.WithFields(logrus.Fields{
		"ticker":    ticker,
		"bars":      len(chart.Prices),
		"dividends": len(chart.Dividends),
		"splits":    len(chart.Splits),
	}).Info("chart fetched")
	return chart, nil
}

func unixDay(d divsim.Date) int64 {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// Supplier bridging: the disk cache makes the three calls cost one request.

func (c *Client) Prices(ticker string, from, to divsim.Date) ([]divsim.RawPriceRow, error) {
	chart, err := c.Chart(ticker, from, to)
	if err != nil {
		return nil, err
	}
	return chart.Prices, nil
}

func (c *Client) Dividends(ticker string, from, to divsim.Date) ([]divsim.RawDividendRow, error) {
	chart, err := c.Chart(ticker, from, to)
	if err != nil {
		return nil, err
	}
	return chart.Dividends, nil
}

func (c *Client) Splits(ticker string, from, to divsim.Date) ([]divsim.RawSplitRow, error) {
	chart, err := c.Chart(ticker, from, to)
	if err != nil {
		return nil, err
	}
	return chart.Splits, nil
}

var _ divsim.Supplier = (*Client)(nil)
