// Package hclmodel loads whole-cell model definitions from HCL files and
// translates them into the typed model package.
package hclmodel

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/fluxgap/internal/ctxlog"
	"github.com/vk/fluxgap/internal/fsutil"
	"github.com/vk/fluxgap/internal/model"
	"github.com/vk/fluxgap/internal/schema"
)

// Loader reads model definition files and produces a *model.Model.
type Loader struct{}

// NewLoader creates a new HCL model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the model definition at path, which may be a single .hcl file
// or a directory of them, and returns the merged, resolved model.
func (l *Loader) Load(ctx context.Context, path string) (*model.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ModelFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered model files.", "count", len(files))

	parser := hclparse.NewParser()
	var blocks []*schema.Model
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse model file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode model file %s: %w", file, diags)
		}
		blocks = append(blocks, root.Models...)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("no model block found in %q", path)
	}

	m, err := l.translate(blocks)
	if err != nil {
		return nil, err
	}
	logger.Debug("Model loaded.",
		"model", m.ID,
		"compartments", len(m.Compartments),
		"submodels", len(m.Submodels))
	return m, nil
}
