package cmd

import (
	"flag"
	"fmt"

	"github.com/hanjk/divsim"
)

// requestFlags are the flags shared by every command that runs a simulation.
type requestFlags struct {
	start       string
	end         string
	amount      float64
	currency    string
	mode        string
	cadence     string
	reinvest    bool
	sameDay     bool
	minReinvest float64
}

func (r *requestFlags) register(f *flag.FlagSet, cfg *Config) {
	f.StringVar(&r.start, "s", "", "Start date of the simulation window (e.g. 2020-01-01). Defaults to one year ago.")
	f.StringVar(&r.end, "d", divsim.Today().String(), "End date of the simulation window.")
	f.Float64Var(&r.amount, "amount", cfg.Defaults.Amount, "Cash per contribution.")
	f.StringVar(&r.currency, "currency", cfg.Defaults.Currency, "Contribution currency.")
	f.StringVar(&r.mode, "mode", "lump_sum", "Contribution mode: lump_sum or periodic.")
	f.StringVar(&r.cadence, "cadence", cfg.Defaults.Cadence, "Contribution cadence: month, quarter or year.")
	f.BoolVar(&r.reinvest, "reinvest", cfg.Defaults.Reinvest, "Reinvest each period's dividends.")
	f.BoolVar(&r.sameDay, "same-day-earns", false, "Credit dividends on shares bought the same day as the ex-date.")
	f.Float64Var(&r.minReinvest, "min-reinvest", cfg.Defaults.MinReinvest, "Hold dividend cash below this amount instead of reinvesting.")
}

// request builds the simulation request for one ticker.
func (r *requestFlags) request(ticker string) (divsim.Request, error) {
	var req divsim.Request

	end, err := divsim.ParseDate(r.end)
	if err != nil {
		return req, fmt.Errorf("parsing end date: %w", err)
	}
	start := end.AddMonths(-12)
	if r.start != "" {
		start, err = divsim.ParseDate(r.start)
		if err != nil {
			return req, fmt.Errorf("parsing start date: %w", err)
		}
	}

	mode, err := divsim.ParseMode(r.mode)
	if err != nil {
		return req, err
	}
	cadence, err := divsim.ParsePeriod(r.cadence)
	if err != nil {
		return req, err
	}

	return divsim.Request{
		Ticker:  ticker,
		Window:  divsim.NewRange(start, end),
		Mode:    mode,
		Cadence: cadence,
		Amount:  divsim.M(r.amount, r.currency),
		Options: divsim.Options{
			Reinvest:                 r.reinvest,
			SameDayContributionEarns: r.sameDay,
			MinReinvest:              divsim.M(r.minReinvest, r.currency),
		},
	}, nil
}
