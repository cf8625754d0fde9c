// Package network converts a submodel's reactions into a directed bipartite
// graph of species and reaction nodes and provides path queries over it.
//
// Edge direction encodes stoichiometry: a reactant species points at its
// reaction, a reaction points at its product species. A reversible reaction
// additionally carries the mirrored edges for the same participants, so every
// participant of a reversible reaction is bidirectionally reachable.
package network

import (
	"github.com/vk/fluxgap/internal/model"
)

// Node is a vertex of the reaction network: either a species or a reaction.
type Node interface {
	ID() string
	node()
}

// SpeciesNode wraps a species as a graph vertex.
type SpeciesNode struct {
	Species *model.Species
}

// ID returns the species ID.
func (n *SpeciesNode) ID() string { return n.Species.ID }

func (n *SpeciesNode) node() {}

// ReactionNode wraps a reaction as a graph vertex.
type ReactionNode struct {
	Reaction *model.Reaction
}

// ID returns the reaction ID.
func (n *ReactionNode) ID() string { return n.Reaction.ID }

func (n *ReactionNode) node() {}

// edge is a directed (from, to) pair, used to collapse duplicates.
type edge struct {
	from, to Node
}

// Graph is a directed bipartite reaction network. It is built once and then
// read-only; all traversal order is the deterministic insertion order.
type Graph struct {
	order     []Node
	members   map[Node]bool
	succ      map[Node][]Node
	edges     map[edge]bool
	species   map[*model.Species]*SpeciesNode
	reactions map[*model.Reaction]*ReactionNode
}

func newGraph() *Graph {
	return &Graph{
		members:   make(map[Node]bool),
		succ:      make(map[Node][]Node),
		edges:     make(map[edge]bool),
		species:   make(map[*model.Species]*SpeciesNode),
		reactions: make(map[*model.Reaction]*ReactionNode),
	}
}

// Build constructs the bipartite graph for a submodel. An empty submodel
// yields an empty graph; Build never fails.
func Build(submodel *model.Submodel) *Graph {
	g := newGraph()

	// First pass: one node per species, one per reaction.
	for _, sp := range submodel.Species() {
		g.addSpecies(sp)
	}
	for _, rxn := range submodel.Reactions {
		g.addReaction(rxn)
	}

	// Second pass: edges by coefficient sign, mirrored when reversible.
	for _, rxn := range submodel.Reactions {
		rn := g.reactions[rxn]
		for _, part := range rxn.Participants {
			sn := g.species[part.Species]
			switch {
			case part.Coefficient < 0:
				g.addEdge(sn, rn)
			case part.Coefficient > 0:
				g.addEdge(rn, sn)
			}
		}
		if rxn.Reversible {
			for _, part := range rxn.Participants {
				sn := g.species[part.Species]
				switch {
				case part.Coefficient < 0:
					g.addEdge(rn, sn)
				case part.Coefficient > 0:
					g.addEdge(sn, rn)
				}
			}
		}
	}

	return g
}

func (g *Graph) addSpecies(sp *model.Species) *SpeciesNode {
	if n, ok := g.species[sp]; ok {
		return n
	}
	n := &SpeciesNode{Species: sp}
	g.species[sp] = n
	g.addNode(n)
	return n
}

func (g *Graph) addReaction(rxn *model.Reaction) *ReactionNode {
	if n, ok := g.reactions[rxn]; ok {
		return n
	}
	n := &ReactionNode{Reaction: rxn}
	g.reactions[rxn] = n
	g.addNode(n)
	return n
}

func (g *Graph) addNode(n Node) {
	if g.members[n] {
		return
	}
	g.members[n] = true
	g.order = append(g.order, n)
}

// addEdge inserts a directed edge, collapsing duplicates and rejecting
// self-loops. Self-loops cannot arise from a bipartite construction but the
// invariant is cheap to hold here.
func (g *Graph) addEdge(from, to Node) {
	if from == to {
		return
	}
	e := edge{from, to}
	if g.edges[e] {
		return
	}
	g.edges[e] = true
	g.succ[from] = append(g.succ[from], to)
}

// NumNodes returns the number of vertices in the graph.
func (g *Graph) NumNodes() int { return len(g.order) }

// NumEdges returns the number of distinct directed edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Nodes returns all vertices in insertion order. The returned slice is
// shared; callers must not modify it.
func (g *Graph) Nodes() []Node { return g.order }

// Successors returns the direct successors of n in insertion order.
func (g *Graph) Successors(n Node) []Node { return g.succ[n] }

// HasEdge reports whether the directed edge from -> to exists.
func (g *Graph) HasEdge(from, to Node) bool { return g.edges[edge{from, to}] }

// SpeciesNode returns the vertex for a species, if the species participates
// in the graph's submodel.
func (g *Graph) SpeciesNode(sp *model.Species) (*SpeciesNode, bool) {
	n, ok := g.species[sp]
	return n, ok
}

// ReactionNode returns the vertex for a reaction, if present.
func (g *Graph) ReactionNode(rxn *model.Reaction) (*ReactionNode, bool) {
	n, ok := g.reactions[rxn]
	return n, ok
}
