package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/hgpcircuit/internal/output"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // .hcl and .toml files or directories
	OutputDir   string   // empty streams programs to the output writer
	Format      string
	// Experiments limits the run to the named experiments. Empty runs all.
	Experiments []string

	LogFormat string
	LogLevel  string
	Workers   int
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ConfigPaths) == 0 {
		return nil, errors.New("at least one configuration path is required")
	}
	if cfg.Format == "" {
		cfg.Format = string(output.FormatText)
	}
	if _, err := output.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return &cfg, nil
}
