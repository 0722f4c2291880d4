package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/atomsim/lammpsflow/internal/config"
	"github.com/atomsim/lammpsflow/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *config.Model
}

// NewApp is the constructor for the main application. It configures an
// isolated logger and loads the specification through the given loader.
// A failure to load the specification is a fatal startup error.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.SpecPath)
	if err != nil {
		panic(fmt.Errorf("failed to load specification: %w", err))
	}
	logger.Debug("Specification loaded and translated into unified model.",
		"simulations", len(model.Simulations), "packed", len(model.Packed))

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		model:  model,
	}
}

// Model returns the loaded specification model. This is primarily for
// testing.
func (a *App) Model() *config.Model {
	return a.model
}
