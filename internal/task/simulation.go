package task

import (
	"github.com/atomsim/lammpsflow/internal/inputset"
)

// SimulationConfig carries the inputs for a plain LAMMPS simulation task.
type SimulationConfig struct {
	InputSet      *inputset.InputSet
	InputFilename string
	DataFilename  string
	Command       string
	DBFile        string
	LogFilename   string
	DumpFilenames []string
	Parents       []*Task
}

// NewSimulation constructs a plain LAMMPS simulation task: write the input
// set, run the LAMMPS binary, parse the run output into the database
// target if one is set.
func NewSimulation(cfg SimulationConfig) *Task {
	spec := map[string]any{
		"input_set":      cfg.InputSet,
		"input_filename": cfg.InputFilename,
		"data_filename":  cfg.DataFilename,
		"command":        cfg.Command,
		"db_file":        cfg.DBFile,
		"log_filename":   cfg.LogFilename,
		"dump_filenames": cfg.DumpFilenames,
	}
	return newTask(KindSimulation, cfg.Parents, spec)
}
