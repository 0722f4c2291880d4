package task

import (
	"github.com/atomsim/lammpsflow/internal/config"
)

// PackingConfig carries the inputs for a Packmol molecule-packing task.
type PackingConfig struct {
	Molecules     []config.Molecule
	Packing       []config.PackingDirective
	Tolerance     float64
	Filetype      string
	ControlParams map[string]any
	// CopyToCurrentOnExit requests that the packed structure be copied
	// into the run's working location when the job completes.
	CopyToCurrentOnExit bool
	OutputFile          string
	SiteProperty        string
	BoxSize             []float64
}

// NewPacking constructs a Packmol preprocessing task. It has no parents;
// chaining is the assembler's job.
func NewPacking(cfg PackingConfig) *Task {
	spec := map[string]any{
		"molecules":               cfg.Molecules,
		"packing_config":          cfg.Packing,
		"tolerance":               cfg.Tolerance,
		"filetype":                cfg.Filetype,
		"control_params":          cfg.ControlParams,
		"copy_to_current_on_exit": cfg.CopyToCurrentOnExit,
		"output_file":             cfg.OutputFile,
		"site_property":           cfg.SiteProperty,
		"box_size":                cfg.BoxSize,
	}
	return newTask(KindPacking, nil, spec)
}
