package task

import (
	"github.com/atomsim/lammpsflow/internal/config"
)

// ForceFieldConfig carries the inputs for a force-field LAMMPS task whose
// data file is generated from molecule definitions rather than preassembled.
type ForceFieldConfig struct {
	InputFile string
	// DataSource is the structure file the data file is generated from,
	// typically the output of a packing task.
	DataSource     string
	Molecules      []config.Molecule
	MoleculeCounts []int
	ForceField     string
	Settings       config.Settings
	SiteProperty   string
	InputFilename  string
	Command        string
	DBFile         string
	Parents        []*Task
	LogFilename    string
	DumpFilenames  []string
}

// NewForceField constructs a force-field LAMMPS simulation task.
func NewForceField(cfg ForceFieldConfig) *Task {
	spec := map[string]any{
		"input_file":      cfg.InputFile,
		"data_source":     cfg.DataSource,
		"molecules":       cfg.Molecules,
		"molecule_counts": cfg.MoleculeCounts,
		"force_field":     cfg.ForceField,
		"settings":        cfg.Settings,
		"site_property":   cfg.SiteProperty,
		"input_filename":  cfg.InputFilename,
		"command":         cfg.Command,
		"db_file":         cfg.DBFile,
		"log_filename":    cfg.LogFilename,
		"dump_filenames":  cfg.DumpFilenames,
	}
	return newTask(KindForceField, cfg.Parents, spec)
}
