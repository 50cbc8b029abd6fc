// Package config loads backtest run configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents a complete backtest run configuration
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Rule     RuleConfig     `json:"rule" yaml:"rule"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// DataConfig selects the OHLCV source: a CSV file, or a seeded synthetic
// series when CSV is empty.
type DataConfig struct {
	CSV           string `json:"csv,omitempty" yaml:"csv,omitempty"`
	SyntheticBars int    `json:"synthetic_bars,omitempty" yaml:"synthetic_bars,omitempty"`
	Seed          int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// RuleConfig carries the rule program, inline or from a file.
type RuleConfig struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// BacktestConfig contains simulation parameters
type BacktestConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// RuleText resolves the rule program, reading Rule.File if needed.
func (c *Config) RuleText() (string, error) {
	if c.Rule.Text != "" {
		return c.Rule.Text, nil
	}
	data, err := os.ReadFile(c.Rule.File)
	if err != nil {
		return "", fmt.Errorf("read rule file: %w", err)
	}
	return string(data), nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Data.CSV == "" && c.Data.SyntheticBars <= 0 {
		return fmt.Errorf("data.csv or data.synthetic_bars is required")
	}
	if c.Data.CSV != "" && c.Data.SyntheticBars > 0 {
		return fmt.Errorf("data.csv and data.synthetic_bars are mutually exclusive")
	}
	if strings.TrimSpace(c.Rule.Text) == "" && c.Rule.File == "" {
		return fmt.Errorf("rule.text or rule.file is required")
	}
	if c.Rule.Text != "" && c.Rule.File != "" {
		return fmt.Errorf("rule.text and rule.file are mutually exclusive")
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal runs_file, trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Data: DataConfig{
			SyntheticBars: 250,
			Seed:          42,
		},
		Rule: RuleConfig{
			Text: "ENTRY: close > SMA(close,20)\nEXIT: close < SMA(close,20)",
		},
		Backtest: BacktestConfig{
			InitialCapital: 100000,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
