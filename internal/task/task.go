package task

// Kind identifies which executor the external engine should dispatch a
// task to.
type Kind string

const (
	// KindSimulation is a plain LAMMPS run driven by an input set.
	KindSimulation Kind = "lammps"
	// KindPacking is a Packmol molecule-packing preprocessing job.
	KindPacking Kind = "packmol"
	// KindForceField is a LAMMPS run whose data file is generated from
	// molecule definitions and a force field.
	KindForceField Kind = "lammps_forcefield"
)

// Task is one unit of work with declared dependencies. It is immutable
// after construction.
type Task struct {
	kind    Kind
	parents []*Task
	spec    map[string]any
}

// Kind returns the task's dispatch kind.
func (t *Task) Kind() Kind { return t.kind }

// Parents returns the tasks this task must run after. The returned slice
// must not be modified.
func (t *Task) Parents() []*Task { return t.parents }

// Spec returns the payload handed to the engine verbatim. The returned map
// must not be modified.
func (t *Task) Spec() map[string]any { return t.spec }

func newTask(kind Kind, parents []*Task, spec map[string]any) *Task {
	// Copy the parent slice so later caller-side appends cannot reach in.
	ps := make([]*Task, len(parents))
	copy(ps, parents)
	return &Task{kind: kind, parents: ps, spec: spec}
}
