// Package store persists market history in a local SQLite database so
// repeated simulations replay from disk instead of hammering the data source.
// Rows are keyed by (ticker, date); refetching a range upserts in place.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/hanjk/divsim"
)

// Store is a SQLite-backed market archive. It is safe for concurrent use;
// writes are serialized on a mutex because SQLite allows one writer at a time.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Logger
}

// Open opens (or creates) the database at path and runs migrations. WAL mode
// keeps reads open while a fetch is writing.
func Open(path string, log *logrus.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if log != nil {
		log.WithField("path", path).Debug("store opened")
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stocks (
			ticker     TEXT NOT NULL,
			date       TEXT NOT NULL,
			open       REAL,
			high       REAL,
			low        REAL,
			close      REAL NOT NULL,
			volume     INTEGER,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE TABLE IF NOT EXISTS dividends (
			ticker     TEXT NOT NULL,
			date       TEXT NOT NULL,
			amount     REAL NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE TABLE IF NOT EXISTS splits (
			ticker     TEXT NOT NULL,
			date       TEXT NOT NULL,
			ratio      REAL NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stocks_ticker_date ON stocks(ticker, date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// dateOf collapses a source timestamp to its stored calendar date, observed
// in the default exchange time reference.
func dateOf(t time.Time) divsim.Date {
	return divsim.DateOf(t.In(divsim.DefaultLocation()))
}

// timeOf turns a stored date back into a timestamp. Noon UTC maps to the same
// calendar date in every plausible observer location, so a round trip through
// the store never drifts a row across midnight.
func timeOf(d divsim.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}

// UpsertPrices writes price rows, replacing any existing (ticker, date) row.
func (s *Store) UpsertPrices(rows []divsim.RawPriceRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO stocks (ticker, date, open, high, low, close, volume, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume, updated_at=excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range rows {
		if _, err := stmt.Exec(r.Ticker, dateOf(r.Time).String(), r.Open, r.High, r.Low, r.Close, r.Volume, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpsertDividends writes dividend rows, replacing any existing (ticker, date) row.
func (s *Store) UpsertDividends(rows []divsim.RawDividendRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO dividends (ticker, date, amount, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker, date) DO UPDATE SET amount=excluded.amount, updated_at=excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range rows {
		if _, err := stmt.Exec(r.Ticker, dateOf(r.Time).String(), r.Amount, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpsertSplits writes split rows, replacing any existing (ticker, date) row.
func (s *Store) UpsertSplits(rows []divsim.RawSplitRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO splits (ticker, date, ratio, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker, date) DO UPDATE SET ratio=excluded.ratio, updated_at=excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range rows {
		if _, err := stmt.Exec(r.Ticker, dateOf(r.Time).String(), r.Ratio, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Prices reads stored bars for the inclusive date range, in date order.
func (s *Store) Prices(ticker string, from, to divsim.Date) ([]divsim.RawPriceRow, error) {
	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume FROM stocks
		WHERE ticker = ? AND date >= ? AND date <= ? ORDER BY date`,
		ticker, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []divsim.RawPriceRow
	for rows.Next() {
		var day string
		r := divsim.RawPriceRow{Ticker: ticker}
		if err := rows.Scan(&day, &r.Open, &r.High, &r.Low, &r.Close, &r.Volume); err != nil {
			return nil, err
		}
		d, err := divsim.ParseDate(day)
		if err != nil {
			return nil, err
		}
		r.Time = timeOf(d)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Dividends reads stored dividend events for the inclusive date range.
func (s *Store) Dividends(ticker string, from, to divsim.Date) ([]divsim.RawDividendRow, error) {
	rows, err := s.db.Query(`SELECT date, amount FROM dividends
		WHERE ticker = ? AND date >= ? AND date <= ? ORDER BY date`,
		ticker, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []divsim.RawDividendRow
	for rows.Next() {
		var day string
		r := divsim.RawDividendRow{Ticker: ticker}
		if err := rows.Scan(&day, &r.Amount); err != nil {
			return nil, err
		}
		d, err := divsim.ParseDate(day)
		if err != nil {
			return nil, err
		}
		r.Time = timeOf(d)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Splits reads stored split events for the inclusive date range.
func (s *Store) Splits(ticker string, from, to divsim.Date) ([]divsim.RawSplitRow, error) {
	rows, err := s.db.Query(`SELECT date, ratio FROM splits
		WHERE ticker = ? AND date >= ? AND date <= ? ORDER BY date`,
		ticker, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []divsim.RawSplitRow
	for rows.Next() {
		var day string
		r := divsim.RawSplitRow{Ticker: ticker}
		if err := rows.Scan(&day, &r.Ratio); err != nil {
			return nil, err
		}
		d, err := divsim.ParseDate(day)
		if err != nil {
			return nil, err
		}
		r.Time = timeOf(d)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Fresh reports whether the ticker's price rows were written within maxAge.
// An empty ticker is never fresh.
func (s *Store) Fresh(ticker string, maxAge time.Duration) (bool, error) {
	var latest sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(updated_at) FROM stocks WHERE ticker = ?`, ticker).Scan(&latest)
	if err != nil {
		return false, err
	}
	if !latest.Valid {
		return false, nil
	}
	return time.Since(time.Unix(latest.Int64, 0)) <= maxAge, nil
}

// LastPriceDay returns the most recent stored trading day for the ticker.
func (s *Store) LastPriceDay(ticker string) (divsim.Date, bool, error) {
	var day sql.NullString
	err := s.db.QueryRow(`SELECT MAX(date) FROM stocks WHERE ticker = ?`, ticker).Scan(&day)
	if err != nil {
		return divsim.Date{}, false, err
	}
	if !day.Valid {
		return divsim.Date{}, false, nil
	}
	d, err := divsim.ParseDate(day.String)
	if err != nil {
		return divsim.Date{}, false, err
	}
	return d, true, nil
}

var _ divsim.Supplier = (*Store)(nil)
