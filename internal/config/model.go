package config

import "maps"

// Settings is one run configuration: a mapping of simulation parameter
// names to values, scoped to a single LAMMPS run.
type Settings map[string]any

// Clone returns an independent copy of the settings map. A nil receiver
// yields an empty, non-nil map so callers can safely default into it.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	maps.Copy(out, s)
	return out
}

// Molecule identifies one molecular species to be packed into the
// simulation box.
type Molecule struct {
	Name string `json:"name"`
	// File is the path to the structure file (xyz, pdb, ...) describing
	// the species.
	File string `json:"file"`
}

// PackingDirective describes how many copies of the positionally matching
// molecule to pack, plus any extra per-species packing constraints.
type PackingDirective struct {
	Number int `json:"number"`
	// Constraints holds raw per-species packing options passed through to
	// the packing tool (e.g. "inside box" bounds).
	Constraints map[string]any `json:"constraints,omitempty"`
}

// TemplateSim is the format-agnostic representation of a `simulation`
// block: a template-driven LAMMPS workflow, fanning out over run settings.
type TemplateSim struct {
	Name          string
	Template      string
	Runs          []Settings
	DataFile      string
	InputFilename string
	ForceField    bool
	Command       string
	DumpFiles     []string
	DBFile        string
}

// PackedSim is the format-agnostic representation of a `packed` block: a
// packing step chained into a force-field LAMMPS run.
type PackedSim struct {
	Name          string
	InputFile     string
	Settings      Settings
	Molecules     []Molecule
	Packing       []PackingDirective
	ForceField    string
	BoxSize       []float64
	SiteProperty  string
	Tolerance     float64
	Filetype      string
	ControlParams map[string]any
	Command       string
	DumpFiles     []string
	DBFile        string
}

// Model is the unified representation of everything a specification file
// (or directory of files) declares.
type Model struct {
	Simulations []*TemplateSim
	Packed      []*PackedSim
}
