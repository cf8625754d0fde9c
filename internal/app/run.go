package app

import (
	"context"
	"fmt"

	"github.com/vk/fluxgap/internal/ctxlog"
)

// Run executes every configured analysis against the loaded model.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.logger.Info("Starting analyses.",
		"model", a.model.ID,
		"submodels", len(a.model.Submodels),
		"analyses", len(a.runner.Analyses))

	if err := a.runner.Run(ctx); err != nil {
		return fmt.Errorf("analysis run failed: %w", err)
	}

	a.logger.Info("All analyses finished.")
	return nil
}
