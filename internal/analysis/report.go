package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vk/fluxgap/internal/model"
	"github.com/vk/fluxgap/internal/network"
)

// Report is the persisted result of analyzing one submodel. Species and
// reactions appear by ID; paths are their alternating node ID sequences.
type Report struct {
	Submodel          string                `json:"submodel"`
	NotConsumed       []string              `json:"species_not_consumed"`
	NotProduced       []string              `json:"species_not_produced"`
	InactiveReactions []string              `json:"inactive_reactions"`
	UnboundedPaths    map[string][][]string `json:"unbounded_paths"`
}

func newReport(submodel *model.Submodel, deadEnd DeadEndSpecies, inactive []*model.Reaction, unbounded map[string][]network.Path) *Report {
	r := &Report{
		Submodel:          submodel.ID,
		NotConsumed:       sortedSpeciesIDs(deadEnd.NotConsumed),
		NotProduced:       sortedSpeciesIDs(deadEnd.NotProduced),
		InactiveReactions: make([]string, 0, len(inactive)),
		UnboundedPaths:    make(map[string][][]string, len(unbounded)),
	}
	for _, rxn := range inactive {
		r.InactiveReactions = append(r.InactiveReactions, rxn.ID)
	}
	for id, paths := range unbounded {
		ids := make([][]string, 0, len(paths))
		for _, path := range paths {
			ids = append(ids, path.IDs())
		}
		r.UnboundedPaths[id] = ids
	}
	return r
}

func sortedSpeciesIDs(set map[*model.Species]bool) []string {
	ids := make([]string, 0, len(set))
	for sp := range set {
		ids = append(ids, sp.ID)
	}
	sort.Strings(ids)
	return ids
}

// write saves the report as <outPath>/<submodel>.json.
func (r *Report) write(outPath string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report for submodel %q: %w", r.Submodel, err)
	}
	file := filepath.Join(outPath, r.Submodel+".json")
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", file, err)
	}
	return nil
}
