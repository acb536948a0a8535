package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("an explicit missing config file must error")
	}

	// implicit default path missing is fine
	t.Chdir(t.TempDir())

	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.SQLitePath != "dsim.db" {
		t.Errorf("db path = %q, want dsim.db", cfg.Database.SQLitePath)
	}
	if cfg.Defaults.Amount != 1000 || cfg.Defaults.Currency != "USD" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if cfg.Watch.Cron == "" {
		t.Error("watch cron default missing")
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dsim.yaml")
	content := `
database:
  sqlite_path: /data/markets.db
defaults:
  amount: 250
  currency: EUR
  reinvest: true
watch:
  cron: "0 8 * * *"
  tickers: [TSLY, SPY]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.SQLitePath != "/data/markets.db" {
		t.Errorf("db path = %q", cfg.Database.SQLitePath)
	}
	if cfg.Defaults.Amount != 250 || cfg.Defaults.Currency != "EUR" || !cfg.Defaults.Reinvest {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if len(cfg.Watch.Tickers) != 2 || cfg.Watch.Tickers[0] != "TSLY" {
		t.Errorf("watch tickers = %v", cfg.Watch.Tickers)
	}

	// the environment wins over the file
	t.Setenv("DSIM_DB", "/tmp/override.db")
	t.Setenv("GEMINI_API_KEY", "k-123")
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.SQLitePath != "/tmp/override.db" {
		t.Errorf("db path = %q, want the env override", cfg.Database.SQLitePath)
	}
	if cfg.GeminiAPIKey != "k-123" {
		t.Errorf("api key = %q, want the env value", cfg.GeminiAPIKey)
	}
}
