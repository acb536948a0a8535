package store

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hanjk/divsim"
)

// DefaultMaxAge is how long stored rows are served without refetching.
const DefaultMaxAge = time.Hour

// Cached is a read-through supplier: reads come from the local store, which
// is refreshed from the upstream source when its rows are older than MaxAge.
// When the upstream is unreachable but the store holds data, the stale rows
// are served with a warning rather than failing the whole simulation.
type Cached struct {
	store    *Store
	upstream divsim.Supplier
	maxAge   time.Duration
	log      *logrus.Logger
}

// NewCached wires a store in front of an upstream supplier.
func NewCached(s *Store, upstream divsim.Supplier, log *logrus.Logger) *Cached {
	return &Cached{store: s, upstream: upstream, maxAge: DefaultMaxAge, log: log}
}

// WithMaxAge overrides the freshness horizon. Zero forces a refetch on every
// read.
func (c *Cached) WithMaxAge(maxAge time.Duration) *Cached {
	c.maxAge = maxAge
	return c
}

// refresh pulls the ticker's history from upstream into the store unless the
// stored rows are still fresh.
func (c *Cached) refresh(ticker string, from, to divsim.Date) error {
	fresh, err := c.store.Fresh(ticker, c.maxAge)
	if err != nil {
		return err
	}
	if fresh {
		return nil
	}

	prices, err := c.upstream.Prices(ticker, from, to)
	if err != nil {
		return c.serveStale(ticker, err)
	}
	dividends, err := c.upstream.Dividends(ticker, from, to)
	if err != nil {
		return c.serveStale(ticker, err)
	}
	splits, err := c.upstream.Splits(ticker, from, to)
	if err != nil {
		return c.serveStale(ticker, err)
	}

	if err := c.store.UpsertPrices(prices); err != nil {
		return fmt.Errorf("storing prices for %s: %w", ticker, err)
	}
	if err := c.store.UpsertDividends(dividends); err != nil {
		return fmt.Errorf("storing dividends for %s: %w", ticker, err)
	}
	if err := c.store.UpsertSplits(splits); err != nil {
		return fmt.Errorf("storing splits for %s: %w", ticker, err)
	}
	if c.log != nil {
		c.log.WithFields(logrus.Fields{
			"ticker": ticker, "bars": len(prices),
			"dividends": len(dividends), "splits": len(splits),
		}).Info("market data refreshed")
	}
	return nil
}

// serveStale decides what to do when upstream failed: keep going on stored
// rows when there are any, surface the error otherwise.
func (c *Cached) serveStale(ticker string, cause error) error {
	last, ok, err := c.store.LastPriceDay(ticker)
	if err != nil || !ok {
		return fmt.Errorf("fetching %s: %w", ticker, cause)
	}
	if c.log != nil {
		c.log.WithError(cause).WithFields(logrus.Fields{
			"ticker": ticker, "last": last.String(),
		}).Warn("upstream unavailable, serving stored data")
	}
	return nil
}

func (c *Cached) Prices(ticker string, from, to divsim.Date) ([]divsim.RawPriceRow, error) {
	if err := c.refresh(ticker, from, to); err != nil {
		return nil, err
	}
	return c.store.Prices(ticker, from, to)
}

func (c *Cached) Dividends(ticker string, from, to divsim.Date) ([]divsim.RawDividendRow, error) {
	if err := c.refresh(ticker, from, to); err != nil {
		return nil, err
	}
	return c.store.Dividends(ticker, from, to)
}

func (c *Cached) Splits(ticker string, from, to divsim.Date) ([]divsim.RawSplitRow, error) {
	if err := c.refresh(ticker, from, to); err != nil {
		return nil, err
	}
	return c.store.Splits(ticker, from, to)
}

var _ divsim.Supplier = (*Cached)(nil)
