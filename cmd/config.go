package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Yahoo struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"yahoo"`
	Defaults struct {
		Amount      float64 `yaml:"amount"`
		Currency    string  `yaml:"currency"`
		Cadence     string  `yaml:"cadence"`
		Reinvest    bool    `yaml:"reinvest"`
		MinReinvest float64 `yaml:"min_reinvest"`
	} `yaml:"defaults"`
	Watch struct {
		Cron    string   `yaml:"cron"`
		Tickers []string `yaml:"tickers"`
	} `yaml:"watch"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
}

// LoadConfig reads the YAML config file, then applies environment variable
// overrides and defaults. A missing file is fine; overrides and defaults
// still apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if path == "" {
		path = "dsim.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DSIM_DB"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DSIM_YAHOO_URL"); v != "" {
		cfg.Yahoo.BaseURL = v
	}
	if v := os.Getenv("DSIM_WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "dsim.db"
	}
	if cfg.Defaults.Amount == 0 {
		cfg.Defaults.Amount = 1000
	}
	if cfg.Defaults.Currency == "" {
		cfg.Defaults.Currency = "USD"
	}
	if cfg.Defaults.Cadence == "" {
		cfg.Defaults.Cadence = "month"
	}
	if cfg.Watch.Cron == "" {
		// weekdays after the US close
		cfg.Watch.Cron = "0 23 * * 1-5"
	}
	return cfg, nil
}
