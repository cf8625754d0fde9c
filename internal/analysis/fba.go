package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/fluxgap/internal/ctxlog"
	"github.com/vk/fluxgap/internal/model"
	"github.com/vk/fluxgap/internal/network"
)

// DefaultMinNonFiniteUB is the flux upper bound below which a reaction is
// considered finitely bounded. The comparison is a strict less-than against
// this threshold, not a true finiteness check, so a finite but very large
// bound still leaves a path unbounded.
const DefaultMinNonFiniteUB = 1000.0

// DefaultExtracellularCompartment is the conventional ID of the compartment
// outside the cell.
const DefaultExtracellularCompartment = "e"

// FBAOptions configure the static FBA analysis.
type FBAOptions struct {
	// ExtracellularCompartment is the compartment ID whose species are the
	// nutrient sources for path-bounds analysis.
	ExtracellularCompartment string
	// MinNonFiniteUB is the boundedness threshold for path classification.
	MinNonFiniteUB float64
	// Workers bounds the fan-out across extracellular species.
	Workers int
}

// FBA statically analyzes the dFBA submodels of a model: it finds reaction
// gaps (dead-end species and the reactions they inactivate) and paths from
// extracellular species to the growth objective that lack a finite flux
// upper bound.
type FBA struct {
	opts FBAOptions
}

// NewFBA creates the analysis, applying option defaults.
func NewFBA(opts FBAOptions) *FBA {
	if opts.ExtracellularCompartment == "" {
		opts.ExtracellularCompartment = DefaultExtracellularCompartment
	}
	if opts.MinNonFiniteUB == 0 {
		opts.MinNonFiniteUB = DefaultMinNonFiniteUB
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &FBA{opts: opts}
}

// Name implements Analysis.
func (a *FBA) Name() string { return "fba" }

// Category implements Analysis.
func (a *FBA) Category() Category { return CategoryModel }

// Run analyzes every submodel not already governed by the dynamic-FBA
// framework tag and, when the target has an output path, writes one JSON
// report per submodel.
func (a *FBA) Run(ctx context.Context, target *Target) error {
	logger := ctxlog.FromContext(ctx)

	for _, submodel := range target.Model.Submodels {
		if submodel.Framework == model.FrameworkDFBA {
			continue
		}

		deadEnd, inactive := a.ReactionGaps(submodel)
		logger.Info("Reaction gap analysis complete.",
			"submodel", submodel.ID,
			"species_not_consumed", len(deadEnd.NotConsumed),
			"species_not_produced", len(deadEnd.NotProduced),
			"inactive_reactions", len(inactive))

		unbounded, err := a.PathBounds(ctx, submodel)
		if err != nil {
			return fmt.Errorf("path bounds analysis of submodel %q: %w", submodel.ID, err)
		}
		logger.Info("Path bounds analysis complete.",
			"submodel", submodel.ID,
			"extracellular_species", len(unbounded))

		if target.OutPath != "" {
			report := newReport(submodel, deadEnd, inactive, unbounded)
			if err := report.write(target.OutPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// DeadEndSpecies pairs the species no active reaction consumes with the
// species no active reaction produces.
type DeadEndSpecies struct {
	NotConsumed map[*model.Species]bool
	NotProduced map[*model.Species]bool
}

// grewFrom reports whether either side gained a species relative to prev.
func (d DeadEndSpecies) grewFrom(prev DeadEndSpecies) bool {
	for sp := range d.NotConsumed {
		if !prev.NotConsumed[sp] {
			return true
		}
	}
	for sp := range d.NotProduced {
		if !prev.NotProduced[sp] {
			return true
		}
	}
	return false
}

// DeadEndSpecies finds the dead-end species of a submodel, treating the
// given reactions as already inactive. Both sets start as the full species
// set; every active reversible reaction discharges both roles for each of
// its participants, while an active irreversible reaction discharges only
// the role its coefficient sign implies. Pure and order-independent; costs
// O(reactions x participants).
func (a *FBA) DeadEndSpecies(submodel *model.Submodel, inactive map[*model.Reaction]bool) DeadEndSpecies {
	deadEnd := DeadEndSpecies{
		NotConsumed: make(map[*model.Species]bool),
		NotProduced: make(map[*model.Species]bool),
	}
	for _, sp := range submodel.Species() {
		deadEnd.NotConsumed[sp] = true
		deadEnd.NotProduced[sp] = true
	}

	for _, rxn := range submodel.Reactions {
		if inactive[rxn] {
			continue
		}
		if rxn.Reversible {
			for _, part := range rxn.Participants {
				delete(deadEnd.NotConsumed, part.Species)
				delete(deadEnd.NotProduced, part.Species)
			}
		} else {
			for _, part := range rxn.Participants {
				if part.Coefficient < 0 {
					delete(deadEnd.NotConsumed, part.Species)
				} else if part.Coefficient > 0 {
					delete(deadEnd.NotProduced, part.Species)
				}
			}
		}
	}

	return deadEnd
}

// InactiveReactions finds the reactions that must carry zero flux given the
// dead-end species: any reaction touching a dead-end species in either
// direction. Returned in submodel reaction order with no duplicates.
func (a *FBA) InactiveReactions(submodel *model.Submodel, deadEnd DeadEndSpecies) []*model.Reaction {
	var inactive []*model.Reaction
	for _, rxn := range submodel.Reactions {
		for _, part := range rxn.Participants {
			if deadEnd.NotConsumed[part.Species] || deadEnd.NotProduced[part.Species] {
				inactive = append(inactive, rxn)
				break
			}
		}
	}
	return inactive
}

// ReactionGaps iterates DeadEndSpecies and InactiveReactions to a fixed
// point: a reaction inactivated by one round may strand further species in
// the next. Both sets only grow and are bounded by the submodel size, so the
// loop terminates within |species| iterations.
func (a *FBA) ReactionGaps(submodel *model.Submodel) (DeadEndSpecies, []*model.Reaction) {
	allDeadEnd := a.DeadEndSpecies(submodel, nil)
	var inactive []*model.Reaction

	grew := len(allDeadEnd.NotConsumed) > 0 || len(allDeadEnd.NotProduced) > 0
	for grew {
		inactive = a.InactiveReactions(submodel, allDeadEnd)

		inactiveSet := make(map[*model.Reaction]bool, len(inactive))
		for _, rxn := range inactive {
			inactiveSet[rxn] = true
		}

		next := a.DeadEndSpecies(submodel, inactiveSet)
		grew = next.grewFrom(allDeadEnd)
		allDeadEnd = next
	}

	return allDeadEnd, inactive
}

// UnboundedPaths finds every simple path from source to each target that
// lacks a finite flux upper bound. Source and all targets must be species
// nodes of g; any other node type fails immediately, before enumeration,
// naming the received type. A path is bounded iff some reaction on it has
// defined bounds with Max strictly below minNonFiniteUB.
func (a *FBA) UnboundedPaths(g *network.Graph, source network.Node, targets []network.Node, minNonFiniteUB float64) ([]network.Path, error) {
	if _, ok := source.(*network.SpeciesNode); !ok {
		return nil, fmt.Errorf("source should be a species node, but it is a %T", source)
	}
	for _, target := range targets {
		if _, ok := target.(*network.SpeciesNode); !ok {
			return nil, fmt.Errorf("targets should be species nodes, but one is a %T", target)
		}
	}

	var unbounded []network.Path
	for _, target := range targets {
		for _, path := range g.AllSimplePaths(source, target) {
			if !pathBounded(path, minNonFiniteUB) {
				unbounded = append(unbounded, path)
			}
		}
	}
	return unbounded, nil
}

// pathBounded reports whether any reaction along the path, at the odd
// positions of the alternating sequence, carries a bound below the
// threshold. Species nodes never affect the classification.
func pathBounded(path network.Path, minNonFiniteUB float64) bool {
	for i := 1; i < len(path); i += 2 {
		rn, ok := path[i].(*network.ReactionNode)
		if !ok {
			continue
		}
		if b := rn.Reaction.Bounds; b != nil && b.Max < minNonFiniteUB {
			return true
		}
	}
	return false
}

// PathBounds builds the submodel's reaction network and, for every
// extracellular species, records the unbounded paths to the objective
// products, keyed by species ID. Species with no unbounded paths get an
// empty entry. The fan-out across extracellular species runs on a bounded
// worker pool; the graph is immutable during the fan-out and each species
// writes a disjoint result.
func (a *FBA) PathBounds(ctx context.Context, submodel *model.Submodel) (map[string][]network.Path, error) {
	g := network.Build(submodel)

	var targets []network.Node
	for _, sp := range submodel.ObjectiveProducts() {
		if n, ok := g.SpeciesNode(sp); ok {
			targets = append(targets, n)
		}
	}

	var sources []*network.SpeciesNode
	for _, sp := range submodel.Species() {
		if sp.Compartment != nil && sp.Compartment.ID == a.opts.ExtracellularCompartment {
			n, _ := g.SpeciesNode(sp)
			sources = append(sources, n)
		}
	}

	type result struct {
		id    string
		paths []network.Path
		err   error
	}

	workers := a.opts.Workers
	if workers > len(sources) {
		workers = len(sources)
	}

	jobs := make(chan *network.SpeciesNode)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for source := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{id: source.ID(), err: err}
					continue
				}
				paths, err := a.UnboundedPaths(g, source, targets, a.opts.MinNonFiniteUB)
				results <- result{id: source.ID(), paths: paths, err: err}
			}
		}()
	}

	go func() {
		for _, source := range sources {
			jobs <- source
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	unbounded := make(map[string][]network.Path, len(sources))
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		unbounded[r.id] = r.paths
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return unbounded, nil
}
