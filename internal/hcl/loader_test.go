package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomsim/lammpsflow/internal/config"
)

// writeSpec drops spec files into a temp dir and returns the dir.
func writeSpec(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestLoad_SimulationBlock(t *testing.T) {
	t.Parallel()

	dir := writeSpec(t, map[string]string{"main.hcl": `
simulation "melt" {
  template   = "in.melt.template"
  input_file = "melt.in"
  command    = "lmp_serial"
  db_file    = "db.json"
  dump_files = ["dump.melt"]

  run {
    settings = { data_file = "a.data", temperature = 300 }
  }
  run {
    settings = { temperature = 600 }
  }
}
`})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Simulations, 1)
	assert.Empty(t, model.Packed)

	want := &config.TemplateSim{
		Name:          "melt",
		Template:      "in.melt.template",
		InputFilename: "melt.in",
		Command:       "lmp_serial",
		DBFile:        "db.json",
		DumpFiles:     []string{"dump.melt"},
		Runs: []config.Settings{
			{"data_file": "a.data", "temperature": float64(300)},
			{"temperature": float64(600)},
		},
	}
	assert.Empty(t, cmp.Diff(want, model.Simulations[0]))
}

func TestLoad_RunWithoutSettings(t *testing.T) {
	t.Parallel()

	dir := writeSpec(t, map[string]string{"main.hcl": `
simulation "bare" {
  template = "in.template"
  run {}
}
`})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Simulations, 1)
	require.Len(t, model.Simulations[0].Runs, 1)
	assert.Empty(t, model.Simulations[0].Runs[0])
	assert.NotNil(t, model.Simulations[0].Runs[0])
}

func TestLoad_SettingsFile(t *testing.T) {
	t.Parallel()

	dir := writeSpec(t, map[string]string{
		"main.hcl": `
simulation "sweep" {
  template      = "in.template"
  settings_file = "runs.yaml"
  run {
    settings = { temperature = 100 }
  }
}
`,
		"runs.yaml": `
- temperature: 300
  data_file: hot.data
- temperature: 600
`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Simulations, 1)

	runs := model.Simulations[0].Runs
	require.Len(t, runs, 3, "inline runs come first, YAML runs are appended in order")
	assert.Equal(t, float64(100), runs[0]["temperature"])
	assert.Equal(t, 300, runs[1]["temperature"])
	assert.Equal(t, "hot.data", runs[1]["data_file"])
	assert.Equal(t, 600, runs[2]["temperature"])
}

func TestLoad_PackedBlock(t *testing.T) {
	t.Parallel()

	dir := writeSpec(t, map[string]string{"main.hcl": `
packed "water" {
  input_file    = "in.water"
  force_field   = "ff.water.json"
  tolerance     = 1.5
  filetype      = "pdb"
  site_property = "charge"
  box_size      = [40, 40, 40]
  settings      = { temperature = 300 }
  control       = { maxit = 20 }

  molecule "h2o" {
    file   = "h2o.xyz"
    number = 20
  }
  molecule "na" {
    file        = "na.xyz"
    number      = 3
    constraints = { inside = "box" }
  }
}
`})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Packed, 1)

	want := &config.PackedSim{
		Name:         "water",
		InputFile:    "in.water",
		ForceField:   "ff.water.json",
		Tolerance:    1.5,
		Filetype:     "pdb",
		SiteProperty: "charge",
		BoxSize:      []float64{40, 40, 40},
		Settings:     config.Settings{"temperature": float64(300)},
		ControlParams: map[string]any{
			"maxit": float64(20),
		},
		Molecules: []config.Molecule{
			{Name: "h2o", File: "h2o.xyz"},
			{Name: "na", File: "na.xyz"},
		},
		Packing: []config.PackingDirective{
			{Number: 20},
			{Number: 3, Constraints: map[string]any{"inside": "box"}},
		},
	}
	assert.Empty(t, cmp.Diff(want, model.Packed[0]))
}

func TestLoad_MoleculeBlocksStayAligned(t *testing.T) {
	t.Parallel()

	dir := writeSpec(t, map[string]string{"main.hcl": `
packed "mix" {
  input_file  = "in.mix"
  force_field = "ff.json"

  molecule "a" {
    file   = "a.xyz"
    number = 1
  }
  molecule "b" {
    file   = "b.xyz"
    number = 2
  }
  molecule "c" {
    file   = "c.xyz"
    number = 3
  }
}
`})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	packed := model.Packed[0]
	require.Len(t, packed.Molecules, 3)
	require.Len(t, packed.Packing, 3)
	for i, mol := range packed.Molecules {
		assert.Equal(t, i+1, packed.Packing[i].Number, "directive for %q out of order", mol.Name)
	}
}

func TestLoad_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := writeSpec(t, map[string]string{
		"a.hcl": `
simulation "a" {
  template = "in.a"
}
`,
		"b.hcl": `
simulation "b" {
  template = "in.b"
}
`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, model.Simulations, 2)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("malformed HCL", func(t *testing.T) {
		dir := writeSpec(t, map[string]string{"main.hcl": `simulation "x" {`})
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("missing required attribute", func(t *testing.T) {
		dir := writeSpec(t, map[string]string{"main.hcl": `
simulation "x" {
}
`})
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to decode")
	})

	t.Run("non-mapping settings", func(t *testing.T) {
		dir := writeSpec(t, map[string]string{"main.hcl": `
simulation "x" {
  template = "in.x"
  run {
    settings = ["not", "a", "map"]
  }
}
`})
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.ErrorContains(t, err, "expected a mapping")
	})

	t.Run("missing settings file", func(t *testing.T) {
		dir := writeSpec(t, map[string]string{"main.hcl": `
simulation "x" {
  template      = "in.x"
  settings_file = "missing.yaml"
}
`})
		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to read settings file")
	})

	t.Run("no spec files", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.ErrorContains(t, err, "no .hcl specification files")
	})

	t.Run("nonexistent path", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "error accessing path")
	})
}
