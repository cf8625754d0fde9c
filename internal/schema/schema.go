// Package schema defines the HCL block structure of model definition files.
// These structs mirror the file format only; hclmodel translates them into
// the typed model package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File represents the top-level structure of a model definition file.
type File struct {
	Models []*Model `hcl:"model,block"`
	Body   hcl.Body `hcl:",remain"`
}

// Model represents a `model` block. A model may be split across several
// files; each file contributes one block and the loader merges them.
type Model struct {
	ID           string         `hcl:"id,label"`
	Compartments []*Compartment `hcl:"compartment,block"`
	Species      []*Species     `hcl:"species,block"`
	Submodels    []*Submodel    `hcl:"submodel,block"`
}

// Compartment represents a `compartment` block.
type Compartment struct {
	ID   string `hcl:"id,label"`
	Name string `hcl:"name,optional"`
}

// Species represents a `species` block. Compartment is referenced by ID.
type Species struct {
	ID          string `hcl:"id,label"`
	Compartment string `hcl:"compartment"`
}

// Submodel represents a `submodel` block.
type Submodel struct {
	ID        string      `hcl:"id,label"`
	Framework string      `hcl:"framework,optional"`
	Reactions []*Reaction `hcl:"reaction,block"`
	Objective *Objective  `hcl:"objective,block"`
}

// Reaction represents a `reaction` block inside a submodel.
type Reaction struct {
	ID           string         `hcl:"id,label"`
	Reversible   bool           `hcl:"reversible,optional"`
	FluxBounds   *FluxBounds    `hcl:"flux_bounds,block"`
	Participants []*Participant `hcl:"participant,block"`
}

// FluxBounds represents a `flux_bounds` block. Min and Max stay as raw
// expressions so the loader can accept both numbers and the string "inf".
type FluxBounds struct {
	Min hcl.Expression `hcl:"min,optional"`
	Max hcl.Expression `hcl:"max"`
}

// Participant represents a `participant` block: a species reference plus a
// signed stoichiometric coefficient (negative consumes, positive produces).
type Participant struct {
	Species     string         `hcl:"species"`
	Coefficient hcl.Expression `hcl:"coefficient"`
}

// Objective represents an `objective` block listing the growth-objective
// product species by ID.
type Objective struct {
	Products []string `hcl:"products"`
}
