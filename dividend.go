package divsim

// Frequency is the payout cadence of an instrument, inferred from the density
// of its dividend events rather than declared metadata.
type Frequency int

const (
	// FrequencyRegular covers quarterly, semi-annual and annual payers.
	FrequencyRegular Frequency = iota
	// FrequencyMonthly marks monthly-paying instruments (option-income ETFs
	// and the like), which need calendar-month bucketing.
	FrequencyMonthly
)

func (f Frequency) String() string {
	if f == FrequencyMonthly {
		return "monthly"
	}
	return "regular"
}

// InferFrequency classifies an instrument as a monthly payer when any
// trailing 13-month span holds at least 10 distinct ex-dates. The 13-month
// span and the 10-event floor tolerate a skipped month and irregular first
// payments without misreading a quarterly payer.
func InferFrequency(divs []DividendEvent) Frequency {
	const (
		spanMonths = 13
		minEvents  = 10
	)
	for i := range divs {
		spanStart := divs[i].ExDate.AddMonths(-spanMonths)
		count := 0
		for j := i; j >= 0 && divs[j].ExDate.After(spanStart); j-- {
			count++
		}
		if count >= minEvents {
			return FrequencyMonthly
		}
	}
	return FrequencyRegular
}

// PeriodDividends is the set of dividend events attributed to one holding
// period, with their summed per-share cash.
type PeriodDividends struct {
	Period   Range
	Events   []DividendEvent
	PerShare float64
}

// MatchDividends attributes every dividend event to exactly one holding
// period from the contiguous, ordered period grid.
//
// Regular payers match by containment: the single period whose range holds
// the ex-date. An ex-date falling exactly on a period boundary belongs to the
// period that starts on that date, never the one ending on it.
//
// Monthly payers are bucketed by the ex-date's calendar month first,
// independently of the coarser period grid, and the buckets are then
// re-aggregated into periods by the period containing the month's start.
// Matching monthly payments directly against a period grid anchored mid-month
// undercounts them badly (a payment stream can collapse into a handful of
// periods); the month bucket keeps one payment per calendar month visible.
func MatchDividends(divs []DividendEvent, periods []Range, freq Frequency) []PeriodDividends {
	matched := make([]PeriodDividends, len(periods))
	for i, p := range periods {
		matched[i] = PeriodDividends{Period: p}
	}
	if len(periods) == 0 {
		return matched
	}

	for _, ev := range divs {
		anchor := ev.ExDate
		if freq == FrequencyMonthly {
			anchor = ev.ExDate.StartOf(Monthly)
		}
		i := periodIndexOf(periods, anchor)
		matched[i].Events = append(matched[i].Events, ev)
		matched[i].PerShare += ev.Amount
	}
	return matched
}

// periodIndexOf locates the single period owning a date. A date on a period's
// start belongs to that period; dates outside the grid clamp to the nearest
// end, so every event keeps exactly one home.
func periodIndexOf(periods []Range, day Date) int {
	for i, p := range periods {
		if day == p.From {
			return i
		}
	}
	for i, p := range periods {
		if p.Contains(day) {
			return i
		}
	}
	if day.Before(periods[0].From) {
		return 0
	}
	return len(periods) - 1
}
