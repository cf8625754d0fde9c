// Package model defines the typed, read-only representation of a whole-cell
// model consumed by the analyses: compartments, species, reactions with
// signed stoichiometric participants, flux bounds, and dFBA submodels.
//
// The analyses never mutate a model. Loaders (such as hclmodel) construct it
// once; everything downstream treats it as immutable.
package model

// FrameworkDFBA is the algorithm tag of a submodel governed by dynamic
// flux balance analysis.
const FrameworkDFBA = "dfba"

// Model is the root of a loaded whole-cell model.
type Model struct {
	ID           string
	Compartments []*Compartment
	Submodels    []*Submodel
}

// Compartment returns the compartment with the given ID, or nil.
func (m *Model) Compartment(id string) *Compartment {
	for _, c := range m.Compartments {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Compartment is a physical location species belong to. The extracellular
// compartment is designated by ID through configuration, not by a flag here.
type Compartment struct {
	ID   string
	Name string
}

// Species is a chemical species located in a compartment.
type Species struct {
	ID          string
	Compartment *Compartment
}

// Participant attaches a species to a reaction with a signed stoichiometric
// coefficient: negative consumes (reactant), positive produces (product).
type Participant struct {
	Species     *Species
	Coefficient float64
}

// FluxBounds holds the permissible flux range of a reaction. Max may be
// +Inf; a reaction with a nil *FluxBounds is entirely unconstrained.
type FluxBounds struct {
	Min float64
	Max float64
}

// Reaction converts its reactant participants into its product participants.
type Reaction struct {
	ID           string
	Participants []*Participant
	Reversible   bool
	Bounds       *FluxBounds
}

// Objective designates the species whose production is the growth objective
// of a submodel.
type Objective struct {
	Products []*Species
}

// Submodel owns a set of reactions governed by one simulation framework.
type Submodel struct {
	ID        string
	Framework string
	Reactions []*Reaction
	Objective *Objective
}

// Species returns every species participating in the submodel's reactions,
// in first-appearance order, deduplicated.
func (s *Submodel) Species() []*Species {
	seen := make(map[*Species]bool)
	var species []*Species
	for _, rxn := range s.Reactions {
		for _, part := range rxn.Participants {
			if !seen[part.Species] {
				seen[part.Species] = true
				species = append(species, part.Species)
			}
		}
	}
	return species
}

// ObjectiveProducts returns the submodel's objective species, or nil when no
// objective is defined.
func (s *Submodel) ObjectiveProducts() []*Species {
	if s.Objective == nil {
		return nil
	}
	return s.Objective.Products
}
