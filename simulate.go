package divsim

import "sort"

// Options tunes the simulator's behavior.
type Options struct {
	// Reinvest converts each period's dividend cash into additional shares at
	// the period's reference price instead of holding it as cash.
	Reinvest bool

	// SameDayContributionEarns credits a dividend on shares bought by a
	// contribution dated exactly on the ex-date. The default (false) pays
	// dividends only on shares held strictly before the ex-date.
	SameDayContributionEarns bool

	// MinReinvest keeps a period's dividend cash uninvested when it does not
	// exceed this threshold. Zero reinvests everything.
	MinReinvest Money
}

// Journal actions.
const (
	ActionBuy      = "BUY"
	ActionReinvest = "REINVEST"
)

// JournalEntry is one executed trade.
type JournalEntry struct {
	Day    Date     `json:"date"`
	Action string   `json:"action"`
	Shares Quantity `json:"shares"`
	Price  float64  `json:"price"` // split-adjusted
	Amount Money    `json:"amount"`
}

// LedgerRow is the per-period state of the position, sufficient to drive a
// time-series chart: reference date and price, cash in, shares bought,
// dividends credited, and the cumulative position.
type LedgerRow struct {
	Period       Range    `json:"period"`
	Day          Date     `json:"date"`  // period reference trading day
	Price        float64  `json:"price"` // split-adjusted reference price
	Contributed  Money    `json:"contributed"`
	SharesBought Quantity `json:"sharesBought"`
	Dividends    Money    `json:"dividends"`
	Shares       Quantity `json:"shares"` // cumulative, split-adjusted basis
	Value        Money    `json:"value"`  // shares at reference price, plus cash
}

// SimulationResult is the outcome of one pipeline run. It is constructed
// fresh per request and never persisted.
type SimulationResult struct {
	Ticker    string    `json:"ticker"`
	Window    Range     `json:"window"`
	Mode      Mode      `json:"-"`
	Options   Options   `json:"-"`
	Currency  string    `json:"currency"`
	Frequency Frequency `json:"-"`

	Invested  Money    `json:"invested"`
	Dividends Money    `json:"dividends"` // credited over the run, cash or reinvested
	Cash      Money    `json:"cash"`      // dividend cash still held
	Shares    Quantity `json:"shares"`    // final count, split-adjusted basis
	Bought    Quantity `json:"bought"`    // shares from contributed cash only

	EndDay   Date    `json:"endDate"`
	EndPrice float64 `json:"endPrice"` // split-adjusted

	Contribs []Contribution `json:"contributions"`
	Rows     []LedgerRow    `json:"ledger"`
	Journal  []JournalEntry `json:"journal"`
}

// MarketValue is the final value of the share position.
func (r *SimulationResult) MarketValue() Money {
	return M(r.EndPrice, r.Currency).Mul(r.Shares)
}

// TotalValue is the final value of the whole position, dividend cash included.
func (r *SimulationResult) TotalValue() Money {
	return r.MarketValue().Add(r.Cash)
}

// simEvent interleaves contributions and dividend ex-dates within a period.
type simEvent struct {
	day     Date
	div     *DividendEvent
	owner   int // ledger row the dividend cash reports under
	contrib *Contribution
}

// Simulate walks the schedule once, in date order, over the split-adjusted
// series. Each contribution buys shares at the adjusted price of its date (or
// the nearest preceding trading day); each dividend pays cash at its actual
// ex-date, on the shares held strictly before it, so a contribution made
// between the owning period's boundary and the ex-date still earns the
// payment; each period's dividend cash is then either reinvested at the
// period's reference price or held.
//
// The owning period from the matcher (calendar-month attribution for monthly
// payers) decides only which ledger row reports the cash, never when the
// payment settles.
//
// The simulator works in the split-adjusted basis throughout, so split ratios
// are never applied to the running share count a second time; unadjusted
// values are recovered only at reporting time via AdjustedSeries.Unadjust.
//
// It fails with InsufficientDataError when a contribution has no trading
// price on or before its date inside the window.
func Simulate(t *Timeline, adj *AdjustedSeries, sched *Schedule, matched []PeriodDividends, freq Frequency, opts Options) (*SimulationResult, error) {
	currency := sched.Amount.Currency()
	if currency == "" {
		currency = "USD"
	}
	zero := M(0, currency)

	res := &SimulationResult{
		Ticker:    t.Ticker,
		Window:    t.Window,
		Mode:      sched.Mode,
		Options:   opts,
		Currency:  currency,
		Frequency: freq,
		Invested:  zero,
		Dividends: zero,
		Cash:      zero,
	}

	shares, bought := Q(0), Q(0)
	invested, divTotal, cashHeld := zero, zero, zero

	// Re-index dividends by the period whose range holds the ex-date; for
	// monthly payers that can differ from the owning (reporting) period when
	// the grid is anchored mid-month.
	type ownedDividend struct {
		ev    DividendEvent
		owner int
	}
	settle := make([][]ownedDividend, len(sched.Periods))
	for owner := range matched {
		for _, ev := range matched[owner].Events {
			si := periodIndexOf(sched.Periods, ev.ExDate)
			settle[si] = append(settle[si], ownedDividend{ev: ev, owner: owner})
		}
	}
	ownerCash := make([]Money, len(sched.Periods))
	for i := range ownerCash {
		ownerCash[i] = zero
	}

	ci := 0 // next contribution
	for pi, period := range sched.Periods {
		events := make([]simEvent, 0, 4)
		for ci < len(sched.Contribs) && period.Contains(sched.Contribs[ci].Day) {
			c := sched.Contribs[ci]
			events = append(events, simEvent{day: c.Day, contrib: &c})
			ci++
		}
		for i := range settle[pi] {
			od := &settle[pi][i]
			events = append(events, simEvent{day: od.ev.ExDate, div: &od.ev, owner: od.owner})
		}
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].day != events[j].day {
				return events[i].day.Before(events[j].day)
			}
			// same-day tie break: dividends settle on the pre-contribution
			// share count unless configured otherwise.
			if opts.SameDayContributionEarns {
				return events[i].contrib != nil && events[j].contrib == nil
			}
			return events[i].div != nil && events[j].div == nil
		})

		periodCash := zero
		contributed := zero
		boughtNow := Q(0)

		for _, ev := range events {
			switch {
			case ev.contrib != nil:
				c := ev.contrib
				traded, price, ok := adj.EntryAsOf(c.Day)
				if !ok {
					return nil, &InsufficientDataError{Ticker: t.Ticker, Day: c.Day}
				}
				q := c.Amount.DivPrice(M(price, currency))
				c.Traded, c.Price, c.Shares = traded, price, q
				shares = shares.Add(q)
				bought = bought.Add(q)
				boughtNow = boughtNow.Add(q)
				invested = invested.Add(c.Amount)
				contributed = contributed.Add(c.Amount)
				res.Contribs = append(res.Contribs, *c)
				res.Journal = append(res.Journal, JournalEntry{
					Day: traded, Action: ActionBuy, Shares: q, Price: price, Amount: c.Amount,
				})
			case ev.div != nil:
				if shares.IsZero() {
					continue
				}
				paid := M(ev.div.Amount, currency).Mul(shares)
				periodCash = periodCash.Add(paid)
				ownerCash[ev.owner] = ownerCash[ev.owner].Add(paid)
				divTotal = divTotal.Add(paid)
			}
		}

		refDay, refPrice, ok := adj.Prices.EntryOnOrAfter(period.From)
		if !ok || refDay.After(period.To) {
			refDay, refPrice, ok = adj.Prices.EntryAsOf(period.To)
		}

		if periodCash.IsPositive() {
			if opts.Reinvest && ok && periodCash.GreaterThan(opts.MinReinvest) {
				q := periodCash.DivPrice(M(refPrice, currency))
				shares = shares.Add(q)
				res.Journal = append(res.Journal, JournalEntry{
					Day: refDay, Action: ActionReinvest, Shares: q, Price: refPrice, Amount: periodCash,
				})
			} else {
				cashHeld = cashHeld.Add(periodCash)
			}
		}

		row := LedgerRow{
			Period:       period,
			Day:          refDay,
			Price:        refPrice,
			Contributed:  contributed,
			SharesBought: boughtNow,
			Shares:       shares,
		}
		row.Value = M(refPrice, currency).Mul(shares).Add(cashHeld)
		res.Rows = append(res.Rows, row)
	}

	// Ledger rows report dividends under their owning period.
	for i := range res.Rows {
		res.Rows[i].Dividends = ownerCash[i]
	}

	res.Shares = shares
	res.Bought = bought
	res.Invested = invested
	res.Dividends = divTotal
	res.Cash = cashHeld
	res.EndDay, res.EndPrice = adj.Prices.Latest()
	return res, nil
}
