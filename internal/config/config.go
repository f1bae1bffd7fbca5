// Package config defines the tempo CLI configuration and its loading from
// files, environment variables and command-line flags.
package config

import "fmt"

// Config represents the complete configuration for the tempo CLI.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Report rendering
	Report ReportConfig `mapstructure:"report" yaml:"report" json:"report"`

	// Output selection
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// ReportConfig controls how timed runs are rendered in text form.
type ReportConfig struct {
	Begin       string `mapstructure:"begin" yaml:"begin" json:"begin"`
	Close       string `mapstructure:"close" yaml:"close" json:"close"`
	Format      string `mapstructure:"format" yaml:"format" json:"format"`
	Precision   int    `mapstructure:"precision" yaml:"precision" json:"precision"`
	StaticWidth bool   `mapstructure:"static_width" yaml:"static_width" json:"static_width"`
}

// OutputConfig selects the report output form.
type OutputConfig struct {
	// Format is one of "text", "table", "json" or "yaml".
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Report: ReportConfig{
			Begin:       "[ ",
			Close:       " ]",
			Format:      "",
			Precision:   3,
			StaticWidth: true,
		},
		Output: OutputConfig{Format: "text"},
	}
}

// Validate checks the configuration for values that cannot be used.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (expected debug, info, warn or error)", c.LogLevel)
	}

	if c.Report.Precision < 0 {
		return fmt.Errorf("report.precision must be non-negative, got %d", c.Report.Precision)
	}

	switch c.Output.Format {
	case "text", "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output.format %q (expected text, table, json or yaml)", c.Output.Format)
	}

	return nil
}
