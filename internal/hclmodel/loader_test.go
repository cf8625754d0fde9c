package hclmodel

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `
model "test_model" {
  compartment "e" {
    name = "extracellular space"
  }
  compartment "c" {
    name = "cytosol"
  }

  species "glc_e" {
    compartment = "e"
  }
  species "glc_c" {
    compartment = "c"
  }
  species "biomass_c" {
    compartment = "c"
  }

  submodel "metabolism" {
    framework = "ssa"

    reaction "glc_transport" {
      reversible = true
      flux_bounds {
        max = 1000
      }
      participant {
        species     = "glc_e"
        coefficient = -1
      }
      participant {
        species     = "glc_c"
        coefficient = 1
      }
    }

    reaction "growth" {
      flux_bounds {
        min = 0
        max = "inf"
      }
      participant {
        species     = "glc_c"
        coefficient = -2
      }
      participant {
        species     = "biomass_c"
        coefficient = 1
      }
    }

    objective {
      products = ["biomass_c"]
    }
  }
}
`

func writeModelFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	loader := NewLoader()
	path := writeModelFile(t, "model.hcl", testModel)

	m, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "test_model", m.ID)
	require.Len(t, m.Compartments, 2)
	assert.Equal(t, "extracellular space", m.Compartment("e").Name)

	require.Len(t, m.Submodels, 1)
	sub := m.Submodels[0]
	assert.Equal(t, "metabolism", sub.ID)
	assert.Equal(t, "ssa", sub.Framework)
	require.Len(t, sub.Reactions, 2)

	transport := sub.Reactions[0]
	assert.Equal(t, "glc_transport", transport.ID)
	assert.True(t, transport.Reversible)
	require.NotNil(t, transport.Bounds)
	assert.Equal(t, 1000.0, transport.Bounds.Max)
	require.Len(t, transport.Participants, 2)
	assert.Equal(t, -1.0, transport.Participants[0].Coefficient)
	assert.Equal(t, "glc_e", transport.Participants[0].Species.ID)
	assert.Equal(t, "e", transport.Participants[0].Species.Compartment.ID)

	growth := sub.Reactions[1]
	assert.False(t, growth.Reversible)
	require.NotNil(t, growth.Bounds)
	assert.True(t, math.IsInf(growth.Bounds.Max, 1))
	assert.Equal(t, -2.0, growth.Participants[0].Coefficient)

	require.NotNil(t, sub.Objective)
	require.Len(t, sub.Objective.Products, 1)
	assert.Equal(t, "biomass_c", sub.Objective.Products[0].ID)

	// Species dedupe across reactions.
	assert.Len(t, sub.Species(), 3)
}

func TestLoadDirectoryMergesFiles(t *testing.T) {
	loader := NewLoader()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "compartments.hcl"), []byte(`
model "split" {
  compartment "c" {}
  species "a" { compartment = "c" }
  species "b" { compartment = "c" }
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "submodel.hcl"), []byte(`
model "split" {
  submodel "s" {
    reaction "r" {
      participant {
        species     = "a"
        coefficient = -1
      }
      participant {
        species     = "b"
        coefficient = 1
      }
    }
  }
}
`), 0o644))

	m, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "split", m.ID)
	require.Len(t, m.Submodels, 1)
	assert.Len(t, m.Submodels[0].Reactions, 1)
	// No flux_bounds block means an unconstrained reaction.
	assert.Nil(t, m.Submodels[0].Reactions[0].Bounds)
}

func TestLoadErrors(t *testing.T) {
	loader := NewLoader()
	ctx := context.Background()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid syntax",
			content: `model "m" {`,
			wantErr: "failed to parse",
		},
		{
			name: "unknown compartment",
			content: `model "m" {
  species "a" { compartment = "nope" }
}`,
			wantErr: `unknown compartment "nope"`,
		},
		{
			name: "unknown species in reaction",
			content: `model "m" {
  compartment "c" {}
  submodel "s" {
    reaction "r" {
      participant {
        species     = "ghost"
        coefficient = -1
      }
    }
  }
}`,
			wantErr: `unknown species "ghost"`,
		},
		{
			name: "unknown species in objective",
			content: `model "m" {
  compartment "c" {}
  submodel "s" {
    objective { products = ["ghost"] }
  }
}`,
			wantErr: `objective references unknown species "ghost"`,
		},
		{
			name: "duplicate species",
			content: `model "m" {
  compartment "c" {}
  species "a" { compartment = "c" }
  species "a" { compartment = "c" }
}`,
			wantErr: `duplicate species "a"`,
		},
		{
			name: "conflicting model blocks",
			content: `model "m" {}
model "other" {}`,
			wantErr: "conflicting model blocks",
		},
		{
			name: "non-numeric flux bound",
			content: `model "m" {
  compartment "c" {}
  species "a" { compartment = "c" }
  species "b" { compartment = "c" }
  submodel "s" {
    reaction "r" {
      flux_bounds { max = "huge" }
      participant {
        species     = "a"
        coefficient = -1
      }
    }
  }
}`,
			wantErr: `expected a number or "inf"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeModelFile(t, "model.hcl", tc.content)
			_, err := loader.Load(ctx, path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadMissingPath(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Load(context.Background(), "/does/not/exist")
	require.Error(t, err)
}
