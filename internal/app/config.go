package app

import (
	"errors"
	"fmt"
)

// Engine configuration formats.
const (
	FormatAuto = "auto"
	FormatHCL  = "hcl"
	FormatYAML = "yaml"
)

// Report formats.
const (
	ReportText = "text"
	ReportNone = "none"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // engine description, .hcl or .yaml
	Format     string

	LogFormat    string
	LogLevel     string
	ReportFormat string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}

	if cfg.Format == "" {
		cfg.Format = FormatAuto
	}
	switch cfg.Format {
	case FormatAuto, FormatHCL, FormatYAML:
	default:
		return nil, fmt.Errorf("invalid format %q: must be 'auto', 'hcl' or 'yaml'", cfg.Format)
	}

	if cfg.ReportFormat == "" {
		cfg.ReportFormat = ReportText
	}
	if cfg.ReportFormat != ReportText && cfg.ReportFormat != ReportNone {
		return nil, fmt.Errorf("invalid report format %q: must be 'text' or 'none'", cfg.ReportFormat)
	}

	return &cfg, nil
}
