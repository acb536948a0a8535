package divsim

import "time"

// PriceBar is one daily bar for a ticker. Bars are immutable facts supplied
// by the data layer; there is exactly one per (ticker, date).
type PriceBar struct {
	Ticker string  `json:"ticker"`
	Day    Date    `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// DividendEvent is a cash dividend, expressed per share. ExDate is the
// attribution anchor: a buyer on or after the ex-date is not owed the payment.
type DividendEvent struct {
	Ticker string  `json:"ticker"`
	ExDate Date    `json:"date"`
	Amount float64 `json:"amount"` // cash per share
}

// SplitEvent is a stock split. Ratio > 1 is a forward split, ratio < 1 a
// reverse split. Prices strictly before Day are quoted in the pre-split basis.
type SplitEvent struct {
	Ticker string  `json:"ticker"`
	Day    Date    `json:"date"`
	Ratio  float64 `json:"ratio"`
}

// Raw rows are what the data-supply layer hands over: deduplicated per
// (ticker, date) at the storage layer, but carrying source timestamps that are
// not guaranteed to share one time reference. The normalizer collapses them
// onto canonical calendar dates.

type RawPriceRow struct {
	Ticker string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

type RawDividendRow struct {
	Ticker string
	Time   time.Time
	Amount float64
}

type RawSplitRow struct {
	Ticker string
	Time   time.Time
	Ratio  float64
}
