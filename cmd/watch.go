package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/hanjk/divsim"
)

// watchCmd keeps the local database fresh and logs simulation headlines on a
// cron schedule. It is meant to run under a supervisor on a small server.
type watchCmd struct {
	req  requestFlags
	cron string
	now  bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "periodically refresh data and log strategy returns" }
func (*watchCmd) Usage() string {
	return `dsim watch [-cron <spec>] [-now] [simulate flags] [<ticker>...]

  Runs until interrupted. On each tick it refetches market data for the
  watched tickers and logs the headline return of the configured strategy.
  Tickers default to the watch list in the config file.

Usage Examples:
$ dsim watch -cron "0 23 * * 1-5" -reinvest TSLY MSTY
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		cfg = &Config{}
	}
	c.req.register(f, cfg)
	f.StringVar(&c.cron, "cron", cfg.Watch.Cron, "Cron spec for the refresh tick.")
	f.BoolVar(&c.now, "now", false, "Run one tick immediately on start.")
}

func (c *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return fail(err)
	}
	tickers := f.Args()
	if len(tickers) == 0 {
		tickers = cfg.Watch.Tickers
	}
	if len(tickers) == 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	st, supplier, err := openSupplier()
	if err != nil {
		return fail(err)
	}
	defer st.Close()

	log := logger()
	tick := func() {
		for _, ticker := range tickers {
			req, err := c.req.request(ticker)
			if err != nil {
				log.WithError(err).WithField("ticker", ticker).Error("bad request")
				continue
			}
			// the window end moves with the clock
			req.Window.To = divsim.Today()

			result, err := divsim.Run(supplier, req)
			if err != nil {
				log.WithError(err).WithField("ticker", ticker).Error("simulation failed")
				continue
			}
			m := result.Metrics()
			log.WithFields(logrus.Fields{
				"ticker":    ticker,
				"invested":  m.Invested.String(),
				"value":     m.EndValue.String(),
				"dividends": m.Dividends.String(),
				"return":    m.ReturnPct.String(),
			}).Info("strategy tick")
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(c.cron, tick); err != nil {
		return fail(fmt.Errorf("bad cron spec %q: %w", c.cron, err))
	}
	if c.now {
		tick()
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.WithField("cron", c.cron).Info("watch started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("watch stopped")
	return subcommands.ExitSuccess
}
