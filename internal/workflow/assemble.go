package workflow

import (
	"context"
	"fmt"

	"github.com/atomsim/lammpsflow/internal/config"
	"github.com/atomsim/lammpsflow/internal/ctxlog"
	"github.com/atomsim/lammpsflow/internal/inputset"
	"github.com/atomsim/lammpsflow/internal/task"
)

// Defaulted literals that are part of the observable contract.
const (
	DefaultDataFilename  = "lammps.data"
	DefaultLogFilename   = "log.lammps"
	DefaultInputFilename = "lammps.in"
	DefaultCommand       = "lammps"
	DefaultFiletype      = "xyz"
	DefaultTolerance     = 2.0

	// packedPrefix prefixes the packing task's output filename.
	packedPrefix = "packed."
	// chainLogFilename is the log filename of the force-field run in a
	// packing chain.
	chainLogFilename = "lammps.log"

	defaultTemplateName = "LAMMPS template Wflow"
	defaultPackedName   = "LAMMPS packmol Wflow"
)

// TemplateOptions configures FromTemplate. The zero value of every field
// selects the documented default.
type TemplateOptions struct {
	// Settings is a single run configuration or an ordered sequence of
	// them: config.Settings, map[string]any, []config.Settings,
	// []map[string]any or []any of mappings. nil means one default run.
	Settings any
	// Data is an optional preloaded data payload shared by every run.
	Data          string
	InputFilename string
	ForceField    bool
	Command       string
	DumpFilenames []string
	DBFile        string
	Name          string
}

// FromTemplate assembles a workflow where the LAMMPS input parameters of
// each run are set from the given plain-text template file. One
// independent task is produced per run configuration; the tasks share the
// dump filename list and have no edges among them.
//
// Per run, the data filename resolves from the "data_file" setting (else
// "lammps.data") and the log filename from "log_file" (else "log.lammps").
// Defaults are applied to a copy; the caller's settings maps are never
// mutated.
func FromTemplate(ctx context.Context, templateFile string, opts TemplateOptions) (*Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	name := opts.Name
	if name == "" {
		name = defaultTemplateName
	}
	inputFilename := opts.InputFilename
	if inputFilename == "" {
		inputFilename = DefaultInputFilename
	}
	command := opts.Command
	if command == "" {
		command = DefaultCommand
	}

	runs, err := normalizeRuns(opts.Settings)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("workflow %q has an empty run settings sequence", name)
	}

	tasks := make([]*task.Task, 0, len(runs))
	for i, settings := range runs {
		settings = settings.Clone()

		dataFilename := stringSetting(settings, "data_file", DefaultDataFilename)
		if _, ok := settings["log_file"]; !ok {
			settings["log_file"] = DefaultLogFilename
		}
		logFilename := stringSetting(settings, "log_file", DefaultLogFilename)

		in, err := inputset.FromFile(name, templateFile, inputset.Params{
			Settings:     settings,
			Data:         opts.Data,
			DataFilename: dataFilename,
			ForceField:   opts.ForceField,
		})
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}

		tasks = append(tasks, task.NewSimulation(task.SimulationConfig{
			InputSet:      in,
			InputFilename: inputFilename,
			DataFilename:  dataFilename,
			Command:       command,
			DBFile:        opts.DBFile,
			LogFilename:   logFilename,
			DumpFilenames: opts.DumpFilenames,
		}))
	}

	logger.Debug("Assembled template workflow.", "name", name, "task_count", len(tasks))
	return New(tasks, name)
}

// PackedOptions configures Packed.
type PackedOptions struct {
	InputFile     string
	Settings      config.Settings
	Molecules     []config.Molecule
	Packing       []config.PackingDirective
	ForceField    string
	BoxSize       []float64
	SiteProperty  string
	Tolerance     float64 // 0 selects the default of 2.0
	Filetype      string  // "" selects "xyz"
	ControlParams map[string]any
	Command       string
	DumpFilenames []string
	DBFile        string
	Name          string
}

// Packed assembles a two-task chain: a Packmol packing job whose packed
// structure feeds a force-field LAMMPS run. The molecule list and the
// packing directive list are positionally aligned; mismatched lengths are
// rejected here rather than surfacing later inside an executor.
func Packed(ctx context.Context, opts PackedOptions) (*Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	name := opts.Name
	if name == "" {
		name = defaultPackedName
	}
	if len(opts.Molecules) == 0 {
		return nil, fmt.Errorf("workflow %q has no molecules to pack", name)
	}
	if len(opts.Molecules) != len(opts.Packing) {
		return nil, fmt.Errorf("workflow %q has %d molecules but %d packing directives",
			name, len(opts.Molecules), len(opts.Packing))
	}

	tolerance := opts.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	filetype := opts.Filetype
	if filetype == "" {
		filetype = DefaultFiletype
	}
	command := opts.Command
	if command == "" {
		command = DefaultCommand
	}

	packedOutput := packedPrefix + filetype

	counts := make([]int, len(opts.Packing))
	for i, directive := range opts.Packing {
		counts[i] = directive.Number
	}

	packing := task.NewPacking(task.PackingConfig{
		Molecules:           opts.Molecules,
		Packing:             opts.Packing,
		Tolerance:           tolerance,
		Filetype:            filetype,
		ControlParams:       opts.ControlParams,
		CopyToCurrentOnExit: true,
		OutputFile:          packedOutput,
		SiteProperty:        opts.SiteProperty,
		BoxSize:             opts.BoxSize,
	})

	simulation := task.NewForceField(task.ForceFieldConfig{
		InputFile:      opts.InputFile,
		DataSource:     packedOutput,
		Molecules:      opts.Molecules,
		MoleculeCounts: counts,
		ForceField:     opts.ForceField,
		Settings:       opts.Settings.Clone(),
		SiteProperty:   opts.SiteProperty,
		InputFilename:  DefaultInputFilename,
		Command:        command,
		DBFile:         opts.DBFile,
		Parents:        []*task.Task{packing},
		LogFilename:    chainLogFilename,
		DumpFilenames:  opts.DumpFilenames,
	})

	logger.Debug("Assembled packing workflow.", "name", name, "packed_output", packedOutput)
	return New([]*task.Task{packing, simulation}, name)
}

// SingleOptions configures Single. Nothing is defaulted; every field is
// passed through verbatim.
type SingleOptions struct {
	Name          string
	InputSet      *inputset.InputSet
	InputFilename string
	DataFilename  string
	Command       string
	DBFile        string
	LogFilename   string
	DumpFilenames []string
}

// Single assembles a one-task workflow around a preassembled input set. It
// performs no defaulting and no transformation.
func Single(ctx context.Context, opts SingleOptions) (*Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	t := task.NewSimulation(task.SimulationConfig{
		InputSet:      opts.InputSet,
		InputFilename: opts.InputFilename,
		DataFilename:  opts.DataFilename,
		Command:       opts.Command,
		DBFile:        opts.DBFile,
		LogFilename:   opts.LogFilename,
		DumpFilenames: opts.DumpFilenames,
	})

	logger.Debug("Assembled single-task workflow.", "name", opts.Name)
	return New([]*task.Task{t}, opts.Name)
}

// normalizeRuns coerces the accepted run settings shapes into an ordered
// sequence. A single mapping becomes a one-element sequence; nil means one
// default (empty) run configuration.
func normalizeRuns(v any) ([]config.Settings, error) {
	switch s := v.(type) {
	case nil:
		return []config.Settings{{}}, nil
	case config.Settings:
		return []config.Settings{s}, nil
	case map[string]any:
		return []config.Settings{s}, nil
	case []config.Settings:
		return s, nil
	case []map[string]any:
		out := make([]config.Settings, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, nil
	case []any:
		out := make([]config.Settings, len(s))
		for i, e := range s {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("run settings %d: expected a mapping, got %T", i, e)
			}
			out[i] = m
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported run settings type %T", v)
	}
}

// stringSetting reads a string-valued setting, stringifying non-string
// values, and falls back to def when the key is absent.
func stringSetting(s config.Settings, key, def string) string {
	v, ok := s[key]
	if !ok {
		return def
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}
