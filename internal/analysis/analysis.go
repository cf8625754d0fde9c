// Package analysis defines the analysis framework (category-tagged analyses
// dispatched by a runner) and the static FBA analysis of dFBA submodels.
package analysis

import (
	"context"
	"fmt"

	"github.com/vk/fluxgap/internal/model"
)

// Category tags an analysis by the kind of input it consumes. The runner
// dispatches on this tag directly; there is no inheritance or reflection.
type Category int

const (
	// CategoryKnowledgeBase analyses consume a knowledge base.
	CategoryKnowledgeBase Category = iota
	// CategoryModel analyses consume a loaded model.
	CategoryModel
	// CategorySimulation analyses consume simulation results.
	CategorySimulation
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryKnowledgeBase:
		return "knowledge_base"
	case CategoryModel:
		return "model"
	case CategorySimulation:
		return "simulation"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Target bundles the inputs an analysis may consume, plus the directory the
// analysis may write results under. OutPath is empty when results should not
// be persisted.
type Target struct {
	Model             *model.Model
	KnowledgeBasePath string
	SimResultsPath    string
	OutPath           string
}

// Analysis is one named analysis. Run receives only the target; any options
// belong to the concrete analysis value.
type Analysis interface {
	Name() string
	Category() Category
	Run(ctx context.Context, target *Target) error
}
