// Package app composes the model loader, the analyses, and the runner into
// a configured application instance.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/fluxgap/internal/analysis"
	"github.com/vk/fluxgap/internal/ctxlog"
	"github.com/vk/fluxgap/internal/hclmodel"
	"github.com/vk/fluxgap/internal/model"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	model  *model.Model
	runner *analysis.Runner
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded model.
// A failure to load the model is a fatal startup error and panics; the CLI
// entrypoint recovers it into a clean exit.
func NewApp(outW io.Writer, cfg *Config, loader *hclmodel.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	m, err := loader.Load(ctx, cfg.ModelPath)
	if err != nil {
		panic(fmt.Errorf("failed to load model: %w", err))
	}
	logger.Debug("Model loaded and translated.", "model", m.ID)

	runner := &analysis.Runner{
		Model:   m,
		OutPath: cfg.OutPath,
		Analyses: []analysis.Analysis{
			analysis.NewFBA(analysis.FBAOptions{
				ExtracellularCompartment: cfg.ExtracellularCompartment,
				MinNonFiniteUB:           cfg.MinNonFiniteUB,
				Workers:                  cfg.Workers,
			}),
		},
	}

	return &App{
		outW:   outW,
		logger: logger,
		model:  m,
		runner: runner,
	}
}

// Model returns the loaded model. This is primarily for testing.
func (a *App) Model() *model.Model {
	return a.model
}
