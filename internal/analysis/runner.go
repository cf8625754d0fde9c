package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/fluxgap/internal/ctxlog"
	"github.com/vk/fluxgap/internal/model"
)

// Runner runs a sequence of analyses against shared inputs, giving each one
// its own output directory under OutPath.
type Runner struct {
	Model             *model.Model
	KnowledgeBasePath string
	SimResultsPath    string
	OutPath           string
	Analyses          []Analysis
}

// Run dispatches every analysis by its category tag. An analysis whose
// category is unknown, or whose required input is missing, fails the run.
func (r *Runner) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, a := range r.Analyses {
		target := &Target{
			Model:             r.Model,
			KnowledgeBasePath: r.KnowledgeBasePath,
			SimResultsPath:    r.SimResultsPath,
		}

		switch a.Category() {
		case CategoryKnowledgeBase:
			if r.KnowledgeBasePath == "" {
				return fmt.Errorf("analysis %q requires a knowledge base", a.Name())
			}
		case CategoryModel:
			if r.Model == nil {
				return fmt.Errorf("analysis %q requires a model", a.Name())
			}
		case CategorySimulation:
			if r.SimResultsPath == "" {
				return fmt.Errorf("analysis %q requires simulation results", a.Name())
			}
		default:
			return fmt.Errorf("unsupported analysis category %s for %q", a.Category(), a.Name())
		}

		if r.OutPath != "" {
			target.OutPath = filepath.Join(r.OutPath, a.Name())
			if err := os.MkdirAll(target.OutPath, 0o755); err != nil {
				return fmt.Errorf("creating output directory for %q: %w", a.Name(), err)
			}
		}

		logger.Info("Running analysis.", "analysis", a.Name(), "category", a.Category().String())
		if err := a.Run(ctx, target); err != nil {
			return fmt.Errorf("analysis %q: %w", a.Name(), err)
		}
	}

	return nil
}
