// Package cmd implements the dsim CLI.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/hanjk/divsim"
	"github.com/hanjk/divsim/store"
	"github.com/hanjk/divsim/yahoo"
)

// Commands returns every dsim subcommand. A main package registers them on a
// commander and executes the user-selected one.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&fetchCmd{},
		&simulateCmd{},
		&compareCmd{},
		&dividendsCmd{},
		&exportCmd{},
		&watchCmd{},
		&assistCmd{},
		&searchCmd{},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", "", "Path to the YAML config file (default \"dsim.yaml\" if present)")
var dbPath = flag.String("db", "", "Path to the SQLite market database (overrides the config)")
var verbose = flag.Bool("v", false, "Enable debug logging")

var appLog *logrus.Logger

// logger returns the process-wide logger. Reports go to stdout; logs go to
// stderr so the output stays pipeable.
func logger() *logrus.Logger {
	if appLog == nil {
		appLog = logrus.New()
		appLog.SetOutput(os.Stderr)
		appLog.SetLevel(logrus.InfoLevel)
		if *verbose {
			appLog.SetLevel(logrus.DebugLevel)
		}
	}
	return appLog
}

// openSupplier opens the configured store with the Yahoo client behind it.
// The caller must Close the returned store.
func openSupplier() (*store.Store, divsim.Supplier, error) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.Database.SQLitePath
	if *dbPath != "" {
		path = *dbPath
	}

	st, err := store.Open(path, logger())
	if err != nil {
		return nil, nil, fmt.Errorf("opening store %q: %w", path, err)
	}

	client := yahoo.New(logger())
	if cfg.Yahoo.BaseURL != "" {
		client = client.WithBase(cfg.Yahoo.BaseURL)
	}
	return st, store.NewCached(st, client, logger()), nil
}

// fail prints the error and returns the failure status, the common tail of
// every Execute.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// discard silences a logger for tests.
func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
