package divsim

import (
	"fmt"
	"strings"
)

// Mode selects how contributions are laid out over the window.
type Mode int

const (
	// LumpSum invests the whole amount on the first day of the window.
	LumpSum Mode = iota
	// Periodic invests the amount once per cadence boundary.
	Periodic
)

func (m Mode) String() string {
	if m == Periodic {
		return "periodic"
	}
	return "lump_sum"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lump_sum", "lump", "lumpsum":
		return LumpSum, nil
	case "periodic", "dca":
		return Periodic, nil
	default:
		return LumpSum, fmt.Errorf("unknown mode %q", s)
	}
}

// Contribution is one scheduled cash inflow. Amount is fixed by the
// scheduler; Traded, Price and Shares are filled by the simulator once the
// purchase is executed.
type Contribution struct {
	Day    Date     `json:"date"`
	Amount Money    `json:"amount"`
	Traded Date     `json:"traded,omitzero"`
	Price  float64  `json:"price,omitempty"` // split-adjusted purchase price
	Shares Quantity `json:"shares,omitzero"`
}

// Schedule is the contribution plan plus the holding-period grid dividends
// are accrued against. Periods are contiguous, anchored at the window start
// and cover the whole window.
type Schedule struct {
	Mode     Mode
	Cadence  Period
	Window   Range
	Amount   Money // per contribution
	Contribs []Contribution
	Periods  []Range
}

// NewSchedule lays out contributions and the accrual period grid for the
// window. The grid is anchored at the window start, one period per cadence;
// an anchor on the 29th-31st lands on the last valid day of shorter months
// rather than overflowing into the next one.
//
// It fails with InvalidScheduleError when the amount is not positive, the
// window is inverted, or the cadence is not a whole number of months.
func NewSchedule(mode Mode, cadence Period, amount Money, window Range) (*Schedule, error) {
	if !amount.IsPositive() {
		return nil, &InvalidScheduleError{Reason: fmt.Sprintf("amount %s must be positive", amount)}
	}
	if window.From.After(window.To) {
		return nil, &InvalidScheduleError{Reason: fmt.Sprintf("start %s is after end %s", window.From, window.To)}
	}
	months, ok := cadence.Months()
	if !ok {
		return nil, &InvalidScheduleError{Reason: fmt.Sprintf("unsupported cadence %s", cadence)}
	}

	s := &Schedule{Mode: mode, Cadence: cadence, Window: window, Amount: amount}

	// Anchored period grid: [anchor(i), anchor(i+1)-1] clipped to the window.
	for i := 0; ; i++ {
		from := window.From.AddMonths(i * months)
		if from.After(window.To) {
			break
		}
		to := window.From.AddMonths((i + 1) * months).Add(-1)
		if to.After(window.To) {
			to = window.To
		}
		s.Periods = append(s.Periods, Range{From: from, To: to})

		switch mode {
		case LumpSum:
			if i == 0 {
				s.Contribs = append(s.Contribs, Contribution{Day: from, Amount: amount})
			}
		case Periodic:
			s.Contribs = append(s.Contribs, Contribution{Day: from, Amount: amount})
		}
	}
	return s, nil
}

// TotalPlanned returns the cash the schedule will invest over the window.
func (s *Schedule) TotalPlanned() Money {
	total := M(0, s.Amount.Currency())
	for _, c := range s.Contribs {
		total = total.Add(c.Amount)
	}
	return total
}
