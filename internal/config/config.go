// Package config loads tool settings from a YAML file. A manually invoked
// batch tool wants a file the operator edits once, not an environment to
// assemble per run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the ingest, checkform, and report tools.
type Config struct {
	// DatabasePath is the SQLite report database.
	DatabasePath string `yaml:"database_path"`
	// RosterPath is the station listing: header line(s), then
	// call,latitude,longitude per line.
	RosterPath string `yaml:"roster_path"`
	// FormExportPath is the CSV download of the response sheet.
	FormExportPath string `yaml:"form_export_path"`
	// ReportDir receives the generated index page and projection files.
	ReportDir string `yaml:"report_dir"`

	// Frequencies lists the net frequencies (MHz) to generate reports for.
	Frequencies []float64 `yaml:"frequencies"`

	// PortableThresholdMeters is the great-circle distance beyond which a
	// self-reported location is trusted over the roster ("portable
	// operation"). Calibration parameter: the inherited default of 100 is
	// meter-scale and suspiciously tight; revisit with the net operators
	// before trusting it.
	PortableThresholdMeters float64 `yaml:"portable_threshold_meters"`

	// MetricsAddr, when non-empty, serves /metrics and /healthz during the
	// run, e.g. ":9190".
	MetricsAddr string `yaml:"metrics_addr"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load reads and validates a config file, applying defaults for anything
// unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, used when no config file is
// given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		DatabasePath:            "reports.db",
		ReportDir:               "public",
		Frequencies:             []float64{146.58, 446.25},
		PortableThresholdMeters: 100,
		Logging:                 LoggingConfig{Level: "info", Format: "text"},
	}
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.PortableThresholdMeters <= 0 {
		return fmt.Errorf("portable_threshold_meters must be positive, got %v", c.PortableThresholdMeters)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not text or json", c.Logging.Format)
	}
	return nil
}
