package network

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fluxgap/internal/model"
	"github.com/vk/fluxgap/internal/testutil"
)

func TestBuildEmptySubmodel(t *testing.T) {
	g := Build(&model.Submodel{ID: "empty"})
	require.NotNil(t, g)
	assert.Zero(t, g.NumNodes())
	assert.Zero(t, g.NumEdges())
	assert.Empty(t, g.Nodes())
}

func TestBuildIrreversibleRing(t *testing.T) {
	const n = 5
	sub := testutil.Ring(testutil.RingOptions{NumReactions: n})
	species := sub.Species()
	g := Build(sub)

	// One node per species plus one per reaction.
	assert.Equal(t, 2*n, g.NumNodes())
	// One species->reaction edge per reactant, one reaction->species per product.
	assert.Equal(t, 2*n, g.NumEdges())

	for i, rxn := range sub.Reactions {
		rn, ok := g.ReactionNode(rxn)
		require.True(t, ok)
		reactant, ok := g.SpeciesNode(species[i])
		require.True(t, ok)
		product, ok := g.SpeciesNode(species[(i+1)%n])
		require.True(t, ok)

		assert.True(t, g.HasEdge(reactant, rn), "expected edge %s -> %s", reactant.ID(), rn.ID())
		assert.True(t, g.HasEdge(rn, product), "expected edge %s -> %s", rn.ID(), product.ID())
		assert.False(t, g.HasEdge(rn, reactant), "unexpected mirror edge %s -> %s", rn.ID(), reactant.ID())
		assert.False(t, g.HasEdge(product, rn), "unexpected mirror edge %s -> %s", product.ID(), rn.ID())
	}
}

func TestBuildReversibleRing(t *testing.T) {
	const n = 5
	sub := testutil.Ring(testutil.RingOptions{NumReactions: n, Reversible: true})
	species := sub.Species()
	g := Build(sub)

	assert.Equal(t, 2*n, g.NumNodes())
	// Every forward edge gains a mirror.
	assert.Equal(t, 4*n, g.NumEdges())

	for i, rxn := range sub.Reactions {
		rn, ok := g.ReactionNode(rxn)
		require.True(t, ok)
		reactant, ok := g.SpeciesNode(species[i])
		require.True(t, ok)
		product, ok := g.SpeciesNode(species[(i+1)%n])
		require.True(t, ok)

		assert.True(t, g.HasEdge(reactant, rn))
		assert.True(t, g.HasEdge(rn, product))
		assert.True(t, g.HasEdge(rn, reactant))
		assert.True(t, g.HasEdge(product, rn))
	}
}

func TestBuildCollapsesDuplicateEdges(t *testing.T) {
	// A species appearing as two reactant participants of the same reaction
	// yields a single edge.
	comp := &model.Compartment{ID: "c"}
	a := &model.Species{ID: "a", Compartment: comp}
	b := &model.Species{ID: "b", Compartment: comp}
	sub := &model.Submodel{
		ID: "dup",
		Reactions: []*model.Reaction{{
			ID: "r",
			Participants: []*model.Participant{
				{Species: a, Coefficient: -1},
				{Species: a, Coefficient: -2},
				{Species: b, Coefficient: 1},
			},
		}},
	}

	g := Build(sub)
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 2, g.NumEdges())
}

func TestBuildIgnoresZeroCoefficient(t *testing.T) {
	comp := &model.Compartment{ID: "c"}
	a := &model.Species{ID: "a", Compartment: comp}
	b := &model.Species{ID: "b", Compartment: comp}
	sub := &model.Submodel{
		ID: "zero",
		Reactions: []*model.Reaction{{
			ID: "r",
			Participants: []*model.Participant{
				{Species: a, Coefficient: 0},
				{Species: b, Coefficient: 1},
			},
		}},
	}

	g := Build(sub)
	// The zero-coefficient participant still contributes its node, but no edge.
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 1, g.NumEdges())
}

func TestAllSimplePathsIrreversibleRing(t *testing.T) {
	const n = 8
	sub := testutil.Ring(testutil.RingOptions{NumReactions: n})
	species := sub.Species()
	g := Build(sub)

	source, _ := g.SpeciesNode(species[0])
	target, _ := g.SpeciesNode(species[n-1])

	paths := g.AllSimplePaths(source, target)
	require.Len(t, paths, 1)
	// Alternating species/reaction sequence through n-1 reactions.
	assert.Len(t, paths[0], 2*n-1)
	assert.Equal(t, source, paths[0][0])
	assert.Equal(t, target, paths[0][len(paths[0])-1])

	// Odd positions are reactions, even positions species.
	for i, node := range paths[0] {
		if i%2 == 1 {
			assert.IsType(t, &ReactionNode{}, node, "position %d", i)
		} else {
			assert.IsType(t, &SpeciesNode{}, node, "position %d", i)
		}
	}
}

func TestAllSimplePathsReversibleRing(t *testing.T) {
	const n = 8
	sub := testutil.Ring(testutil.RingOptions{NumReactions: n, Reversible: true})
	species := sub.Species()
	g := Build(sub)

	source, _ := g.SpeciesNode(species[0])
	target, _ := g.SpeciesNode(species[n/2])

	// The ring can be walked both ways to the opposite side.
	paths := g.AllSimplePaths(source, target)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Len(t, p, n+1)
		assert.Equal(t, source, p[0])
		assert.Equal(t, target, p[len(p)-1])
	}
}

func TestAllSimplePathsDegenerateInputs(t *testing.T) {
	sub := testutil.Ring(testutil.RingOptions{NumReactions: 3})
	species := sub.Species()
	g := Build(sub)

	source, _ := g.SpeciesNode(species[0])

	t.Run("source equals target", func(t *testing.T) {
		assert.Empty(t, g.AllSimplePaths(source, source))
	})

	t.Run("node not in graph", func(t *testing.T) {
		stranger := &SpeciesNode{Species: &model.Species{ID: "stranger"}}
		assert.Empty(t, g.AllSimplePaths(source, stranger))
		assert.Empty(t, g.AllSimplePaths(stranger, source))
	})
}

func TestPathIDs(t *testing.T) {
	sub := testutil.Ring(testutil.RingOptions{NumReactions: 3})
	species := sub.Species()
	g := Build(sub)

	source, _ := g.SpeciesNode(species[0])
	target, _ := g.SpeciesNode(species[2])

	paths := g.AllSimplePaths(source, target)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"spec_1", "rxn_1", "spec_2", "rxn_2", "spec_3"}, paths[0].IDs())
}

func TestSuccessorsDeterministic(t *testing.T) {
	// Successor order follows submodel declaration order, run after run.
	sub := testutil.Ring(testutil.RingOptions{NumReactions: 4, Reversible: true})
	species := sub.Species()

	var prev []string
	for run := 0; run < 3; run++ {
		g := Build(sub)
		n, ok := g.SpeciesNode(species[1])
		require.True(t, ok)

		var succ []string
		for _, s := range g.Successors(n) {
			succ = append(succ, s.ID())
		}
		if prev != nil {
			require.Equal(t, prev, succ, fmt.Sprintf("run %d diverged", run))
		}
		prev = succ
	}
}
