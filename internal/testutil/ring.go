// Package testutil provides shared model fixtures for tests.
package testutil

import (
	"fmt"

	"github.com/vk/fluxgap/internal/model"
)

// DefaultMaxFlux is the flux upper bound rings carry unless overridden.
const DefaultMaxFlux = 10000.0

// RingOptions configure a ring fixture.
type RingOptions struct {
	NumReactions int
	Reversible   bool
	// MaxFlux is the upper bound of every reaction; zero selects
	// DefaultMaxFlux. Use math.Inf(1) for an unconstrained ring.
	MaxFlux float64
}

// Ring builds a submodel whose reactions form a cycle: reaction i consumes
// species i and produces species (i mod n)+1, each with unit stoichiometry.
// Species are named spec_1..spec_n and reactions rxn_1..rxn_n, all in one
// cytosol compartment.
func Ring(opts RingOptions) *model.Submodel {
	if opts.MaxFlux == 0 {
		opts.MaxFlux = DefaultMaxFlux
	}

	comp := &model.Compartment{ID: "c", Name: "cytosol"}
	species := make([]*model.Species, opts.NumReactions)
	for i := range species {
		species[i] = &model.Species{
			ID:          fmt.Sprintf("spec_%d", i+1),
			Compartment: comp,
		}
	}

	sub := &model.Submodel{ID: "metabolism"}
	for i := 0; i < opts.NumReactions; i++ {
		reactant := species[i]
		product := species[(i+1)%opts.NumReactions]
		sub.Reactions = append(sub.Reactions, &model.Reaction{
			ID:         fmt.Sprintf("rxn_%d", i+1),
			Reversible: opts.Reversible,
			Bounds:     &model.FluxBounds{Max: opts.MaxFlux},
			Participants: []*model.Participant{
				{Species: reactant, Coefficient: -1},
				{Species: product, Coefficient: 1},
			},
		})
	}
	return sub
}
