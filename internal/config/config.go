package config

import (
	"fmt"
	"os"
	"strings"
)

// Mode selects which report the analyzer produces
type Mode string

const (
	ModeMonthly   Mode = "monthly"
	ModeAggregate Mode = "aggregate"
	ModeAudit     Mode = "audit"
)

// Config holds application configuration
type Config struct {
	// Directories
	StatementsDirectory string `json:"statements_directory"`
	ChartDirectory      string `json:"chart_directory"`

	// Optional YAML category table; the built-in table is used when empty
	CategoriesFile string `json:"categories_file"`

	Mode  Mode `json:"mode"`
	Debug bool `json:"debug"`

	// Passphrase unlocks an encrypted statements folder. Never serialized.
	Passphrase string `json:"-"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		StatementsDirectory: "statements",
		ChartDirectory:      ".",
		Mode:                ModeMonthly,
	}
}

// Load loads configuration from the environment
func Load() *Config {
	cfg := DefaultConfig()

	if dir := os.Getenv("EXPENSES_STATEMENTS_DIR"); dir != "" {
		cfg.StatementsDirectory = dir
	}
	if dir := os.Getenv("EXPENSES_CHART_DIR"); dir != "" {
		cfg.ChartDirectory = dir
	}
	if file := os.Getenv("EXPENSES_CATEGORIES_FILE"); file != "" {
		cfg.CategoriesFile = file
	}
	if debug := os.Getenv("EXPENSES_DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}
	cfg.Passphrase = os.Getenv("EXPENSES_PASSPHRASE")

	return cfg
}

// Validate checks the configuration and reports every problem at once
func (c *Config) Validate() error {
	var errs []string

	if c.StatementsDirectory == "" {
		errs = append(errs, "statements directory cannot be empty")
	} else if info, err := os.Stat(c.StatementsDirectory); err != nil {
		errs = append(errs, fmt.Sprintf("statements directory '%s' is not accessible: %v", c.StatementsDirectory, err))
	} else if !info.IsDir() {
		errs = append(errs, fmt.Sprintf("statements directory '%s' is not a directory", c.StatementsDirectory))
	}

	switch c.Mode {
	case ModeMonthly, ModeAggregate, ModeAudit:
	default:
		errs = append(errs, fmt.Sprintf("invalid mode '%s': must be one of monthly, aggregate, audit", c.Mode))
	}

	// charts are only written outside audit mode
	if c.Mode != ModeAudit {
		if info, err := os.Stat(c.ChartDirectory); err != nil {
			if err := os.MkdirAll(c.ChartDirectory, 0755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create chart directory '%s': %v", c.ChartDirectory, err))
			}
		} else if !info.IsDir() {
			errs = append(errs, fmt.Sprintf("chart directory '%s' is not a directory", c.ChartDirectory))
		}
	}

	if c.CategoriesFile != "" {
		if _, err := os.Stat(c.CategoriesFile); err != nil {
			errs = append(errs, fmt.Sprintf("categories file '%s' is not accessible: %v", c.CategoriesFile, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
