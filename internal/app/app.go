package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/hgpcircuit/internal/config"
	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
	"github.com/specialistvlad/hgpcircuit/internal/hcl"
	"github.com/specialistvlad/hgpcircuit/internal/tomlconf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders []config.Loader
}

// NewApp is the constructor for the main application. Programs that are not
// written to files go to outW; logs go to logW. Without explicit loaders the
// HCL and TOML loaders are used.
func NewApp(outW, logW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = []config.Loader{hcl.NewLoader(), tomlconf.NewLoader()}
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: loaders,
	}
}

// Load runs every loader over the configured paths and merges the results.
func (a *App) Load(ctx context.Context) (*config.Model, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	model := config.NewModel()
	for _, loader := range a.loaders {
		m, err := loader.Load(ctx, a.config.ConfigPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := model.Merge(m); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	a.logger.Debug("Configuration loaded and translated into unified model.",
		"embeddings", len(model.Embeddings),
		"experiments", len(model.Experiments),
	)
	return model, nil
}
