package hclmodel

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/fluxgap/internal/model"
	"github.com/vk/fluxgap/internal/schema"
)

// translate merges the decoded model blocks and resolves every by-ID
// reference into a fully linked model.
func (l *Loader) translate(blocks []*schema.Model) (*model.Model, error) {
	m := &model.Model{ID: blocks[0].ID}

	compartments := make(map[string]*model.Compartment)
	species := make(map[string]*model.Species)
	submodels := make(map[string]bool)

	for _, block := range blocks {
		if block.ID != m.ID {
			return nil, fmt.Errorf("conflicting model blocks: %q and %q", m.ID, block.ID)
		}
		for _, c := range block.Compartments {
			if _, ok := compartments[c.ID]; ok {
				return nil, fmt.Errorf("duplicate compartment %q", c.ID)
			}
			comp := &model.Compartment{ID: c.ID, Name: c.Name}
			compartments[c.ID] = comp
			m.Compartments = append(m.Compartments, comp)
		}
	}

	// Species may reference compartments declared in a later file, so they
	// resolve only after all compartments are collected.
	for _, block := range blocks {
		for _, s := range block.Species {
			if _, ok := species[s.ID]; ok {
				return nil, fmt.Errorf("duplicate species %q", s.ID)
			}
			comp, ok := compartments[s.Compartment]
			if !ok {
				return nil, fmt.Errorf("species %q references unknown compartment %q", s.ID, s.Compartment)
			}
			species[s.ID] = &model.Species{ID: s.ID, Compartment: comp}
		}
	}

	for _, block := range blocks {
		for _, sub := range block.Submodels {
			if submodels[sub.ID] {
				return nil, fmt.Errorf("duplicate submodel %q", sub.ID)
			}
			submodels[sub.ID] = true

			translated, err := l.translateSubmodel(sub, species)
			if err != nil {
				return nil, err
			}
			m.Submodels = append(m.Submodels, translated)
		}
	}

	return m, nil
}

func (l *Loader) translateSubmodel(sub *schema.Submodel, species map[string]*model.Species) (*model.Submodel, error) {
	translated := &model.Submodel{ID: sub.ID, Framework: sub.Framework}

	reactions := make(map[string]bool)
	for _, rxn := range sub.Reactions {
		if reactions[rxn.ID] {
			return nil, fmt.Errorf("submodel %q: duplicate reaction %q", sub.ID, rxn.ID)
		}
		reactions[rxn.ID] = true

		r := &model.Reaction{ID: rxn.ID, Reversible: rxn.Reversible}
		for _, part := range rxn.Participants {
			sp, ok := species[part.Species]
			if !ok {
				return nil, fmt.Errorf("reaction %q references unknown species %q", rxn.ID, part.Species)
			}
			coeff, err := floatValue(part.Coefficient)
			if err != nil {
				return nil, fmt.Errorf("reaction %q: participant %q coefficient: %w", rxn.ID, part.Species, err)
			}
			r.Participants = append(r.Participants, &model.Participant{Species: sp, Coefficient: coeff})
		}

		if rxn.FluxBounds != nil {
			bounds, err := l.translateBounds(rxn)
			if err != nil {
				return nil, err
			}
			r.Bounds = bounds
		}
		translated.Reactions = append(translated.Reactions, r)
	}

	if sub.Objective != nil {
		obj := &model.Objective{}
		for _, id := range sub.Objective.Products {
			sp, ok := species[id]
			if !ok {
				return nil, fmt.Errorf("submodel %q: objective references unknown species %q", sub.ID, id)
			}
			obj.Products = append(obj.Products, sp)
		}
		translated.Objective = obj
	}

	return translated, nil
}

func (l *Loader) translateBounds(rxn *schema.Reaction) (*model.FluxBounds, error) {
	max, err := floatValue(rxn.FluxBounds.Max)
	if err != nil {
		return nil, fmt.Errorf("reaction %q: flux_bounds max: %w", rxn.ID, err)
	}
	bounds := &model.FluxBounds{Max: max}
	if rxn.FluxBounds.Min != nil {
		min, err := floatValue(rxn.FluxBounds.Min)
		if err != nil {
			return nil, fmt.Errorf("reaction %q: flux_bounds min: %w", rxn.ID, err)
		}
		bounds.Min = min
	}
	return bounds, nil
}

// floatValue evaluates a numeric HCL expression. The string "inf" is
// accepted as positive infinity since HCL number literals cannot express it.
func floatValue(expr hcl.Expression) (float64, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, diags
	}
	if val.IsNull() {
		return 0, fmt.Errorf("expression evaluates to null")
	}
	if val.Type() == cty.String {
		if strings.EqualFold(val.AsString(), "inf") {
			return math.Inf(1), nil
		}
		return 0, fmt.Errorf("expected a number or \"inf\", got %q", val.AsString())
	}
	var f float64
	if err := gocty.FromCtyValue(val, &f); err != nil {
		return 0, err
	}
	return f, nil
}
