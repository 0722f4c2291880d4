package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/atomsim/lammpsflow/internal/config"
	"github.com/atomsim/lammpsflow/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes all top-level blocks of a specification file.
type fileRoot struct {
	Simulations []*simulationBlock `hcl:"simulation,block"`
	Packed      []*packedBlock     `hcl:"packed,block"`
}

// simulationBlock is the raw shape of a `simulation` block.
type simulationBlock struct {
	Name         string      `hcl:"name,label"`
	Template     string      `hcl:"template"`
	InputFile    string      `hcl:"input_file,optional"`
	DataFile     string      `hcl:"data_file,optional"`
	ForceField   bool        `hcl:"force_field,optional"`
	Command      string      `hcl:"command,optional"`
	DBFile       string      `hcl:"db_file,optional"`
	DumpFiles    []string    `hcl:"dump_files,optional"`
	SettingsFile string      `hcl:"settings_file,optional"`
	Runs         []*runBlock `hcl:"run,block"`
}

// runBlock is one `run` block inside a simulation.
type runBlock struct {
	Settings hcl.Expression `hcl:"settings,optional"`
}

// packedBlock is the raw shape of a `packed` block.
type packedBlock struct {
	Name         string           `hcl:"name,label"`
	InputFile    string           `hcl:"input_file"`
	ForceField   string           `hcl:"force_field"`
	Tolerance    float64          `hcl:"tolerance,optional"`
	Filetype     string           `hcl:"filetype,optional"`
	SiteProperty string           `hcl:"site_property,optional"`
	BoxSize      []float64        `hcl:"box_size,optional"`
	Command      string           `hcl:"command,optional"`
	DBFile       string           `hcl:"db_file,optional"`
	DumpFiles    []string         `hcl:"dump_files,optional"`
	Settings     hcl.Expression   `hcl:"settings,optional"`
	Control      hcl.Expression   `hcl:"control,optional"`
	Molecules    []*moleculeBlock `hcl:"molecule,block"`
}

// moleculeBlock declares one species and how many copies to pack. Keeping
// the count on the species block guarantees the molecule list and the
// packing directive list stay positionally aligned.
type moleculeBlock struct {
	Name        string         `hcl:"name,label"`
	File        string         `hcl:"file"`
	Number      int            `hcl:"number"`
	Constraints hcl.Expression `hcl:"constraints,optional"`
}

// Load discovers all .hcl files under the given paths, decodes them, and
// merges the result into a single config model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl specification files found under %v", paths)
	}

	parser := hclparse.NewParser()
	seen := make(map[string]string)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		for _, block := range root.Simulations {
			if prev, dup := seen[block.Name]; dup {
				logger.Warn("Duplicate workflow name.", "name", block.Name, "first_seen", prev)
			}
			seen[block.Name] = file

			sim, err := l.translateSimulation(block, filepath.Dir(file))
			if err != nil {
				return nil, fmt.Errorf("%s: simulation %q: %w", file, block.Name, err)
			}
			model.Simulations = append(model.Simulations, sim)
		}
		for _, block := range root.Packed {
			if prev, dup := seen[block.Name]; dup {
				logger.Warn("Duplicate workflow name.", "name", block.Name, "first_seen", prev)
			}
			seen[block.Name] = file

			packed, err := l.translatePacked(block)
			if err != nil {
				return nil, fmt.Errorf("%s: packed %q: %w", file, block.Name, err)
			}
			model.Packed = append(model.Packed, packed)
		}
	}

	logger.Debug("HCL loading complete.",
		"simulations", len(model.Simulations), "packed", len(model.Packed))
	return model, nil
}

// translateSimulation converts a decoded simulation block into the model.
// baseDir anchors relative settings_file references.
func (l *Loader) translateSimulation(block *simulationBlock, baseDir string) (*config.TemplateSim, error) {
	var runs []config.Settings
	for i, run := range block.Runs {
		settings, err := mapFromExpr(run.Settings)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		runs = append(runs, config.Settings(settings).Clone())
	}

	if block.SettingsFile != "" {
		fromFile, err := loadSettingsFile(block.SettingsFile, baseDir)
		if err != nil {
			return nil, err
		}
		runs = append(runs, fromFile...)
	}

	return &config.TemplateSim{
		Name:          block.Name,
		Template:      block.Template,
		Runs:          runs,
		DataFile:      block.DataFile,
		InputFilename: block.InputFile,
		ForceField:    block.ForceField,
		Command:       block.Command,
		DumpFiles:     block.DumpFiles,
		DBFile:        block.DBFile,
	}, nil
}

// translatePacked converts a decoded packed block into the model. Each
// molecule block yields one molecule and one packing directive, so the two
// sequences are aligned by construction.
func (l *Loader) translatePacked(block *packedBlock) (*config.PackedSim, error) {
	settings, err := mapFromExpr(block.Settings)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	control, err := mapFromExpr(block.Control)
	if err != nil {
		return nil, fmt.Errorf("control: %w", err)
	}

	molecules := make([]config.Molecule, 0, len(block.Molecules))
	packing := make([]config.PackingDirective, 0, len(block.Molecules))
	for _, mol := range block.Molecules {
		constraints, err := mapFromExpr(mol.Constraints)
		if err != nil {
			return nil, fmt.Errorf("molecule %q: constraints: %w", mol.Name, err)
		}
		molecules = append(molecules, config.Molecule{Name: mol.Name, File: mol.File})
		packing = append(packing, config.PackingDirective{Number: mol.Number, Constraints: constraints})
	}

	return &config.PackedSim{
		Name:          block.Name,
		InputFile:     block.InputFile,
		Settings:      settings,
		Molecules:     molecules,
		Packing:       packing,
		ForceField:    block.ForceField,
		BoxSize:       block.BoxSize,
		SiteProperty:  block.SiteProperty,
		Tolerance:     block.Tolerance,
		Filetype:      block.Filetype,
		ControlParams: control,
		Command:       block.Command,
		DumpFiles:     block.DumpFiles,
		DBFile:        block.DBFile,
	}, nil
}

// loadSettingsFile reads an ordered YAML sequence of settings maps.
func loadSettingsFile(path, baseDir string) ([]config.Settings, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var runs []config.Settings
	if err := yaml.Unmarshal(raw, &runs); err != nil {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, err)
	}
	return runs, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all
// .hcl files found. A path to a plain file is accepted as-is.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					if _, wasSeen := seen[p]; !wasSeen {
						allFiles = append(allFiles, p)
						seen[p] = struct{}{}
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if _, wasSeen := seen[path]; !wasSeen {
			allFiles = append(allFiles, path)
			seen[path] = struct{}{}
		}
	}

	return allFiles, nil
}
