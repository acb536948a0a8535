package divsim

import (
	"fmt"
	"sync"
	"time"
)

// Supplier provides raw market rows for a ticker over an inclusive date range.
// Implementations are expected to be safe for concurrent use; Run and Compare
// call them from multiple goroutines.
type Supplier interface {
	Prices(ticker string, from, to Date) ([]RawPriceRow, error)
	Dividends(ticker string, from, to Date) ([]RawDividendRow, error)
	Splits(ticker string, from, to Date) ([]RawSplitRow, error)
}

// Request describes one simulation to run.
type Request struct {
	Ticker  string
	Window  Range
	Mode    Mode
	Cadence Period // zero value means Monthly
	Amount  Money  // per contribution
	Options Options

	// Location is the time reference raw timestamps are observed in.
	// Nil means DefaultLocation.
	Location *time.Location
}

func (r Request) normalized() Request {
	if r.Cadence == Daily {
		r.Cadence = Monthly
	}
	if r.Location == nil {
		r.Location = DefaultLocation()
	}
	return r
}

// Run executes the whole pipeline for one request: fetch raw rows, normalize
// them onto a canonical timeline, rewrite prices onto the split-adjusted
// basis, lay out the contribution schedule, attribute dividends to periods,
// and simulate the position. It holds no state between calls; running the
// same request against the same supplier rows yields an identical result.
func Run(s Supplier, req Request) (*SimulationResult, error) {
	req = req.normalized()

	prices, err := s.Prices(req.Ticker, req.Window.From, req.Window.To)
	if err != nil {
		return nil, fmt.Errorf("fetching prices for %s: %w", req.Ticker, err)
	}
	dividends, err := s.Dividends(req.Ticker, req.Window.From, req.Window.To)
	if err != nil {
		return nil, fmt.Errorf("fetching dividends for %s: %w", req.Ticker, err)
	}
	splits, err := s.Splits(req.Ticker, req.Window.From, req.Window.To)
	if err != nil {
		return nil, fmt.Errorf("fetching splits for %s: %w", req.Ticker, err)
	}

	timeline, err := Normalize(req.Ticker, prices, dividends, splits, req.Window, req.Location)
	if err != nil {
		return nil, err
	}
	adjusted, err := AdjustSplits(timeline)
	if err != nil {
		return nil, err
	}
	schedule, err := NewSchedule(req.Mode, req.Cadence, req.Amount, req.Window)
	if err != nil {
		return nil, err
	}
	freq := InferFrequency(timeline.Dividends)
	matched := MatchDividends(timeline.Dividends, schedule.Periods, freq)
	return Simulate(timeline, adjusted, schedule, matched, freq, req.Options)
}

// Leg is one ticker's outcome inside a comparison. Result is nil when Err is
// set.
type Leg struct {
	Request Request
	Result  *SimulationResult
	Err     error
}

// Comparison holds the outcome of running several requests side by side.
type Comparison struct {
	Legs []Leg
}

// Failed reports whether any leg errored.
func (c *Comparison) Failed() bool {
	for _, l := range c.Legs {
		if l.Err != nil {
			return true
		}
	}
	return false
}

// Compare runs every request concurrently against the same supplier. Legs are
// independent: one ticker's data gap never discards another ticker's result,
// so callers can render the legs that succeeded and report the ones that did
// not. Legs come back in request order.
func Compare(s Supplier, reqs ...Request) *Comparison {
	c := &Comparison{Legs: make([]Leg, len(reqs))}

	var wg sync.WaitGroup
	for i, req := range reqs {
		c.Legs[i].Request = req
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Legs[i].Result, c.Legs[i].Err = Run(s, req)
		}()
	}
	wg.Wait()
	return c
}
