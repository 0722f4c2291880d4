package workflow

import (
	"fmt"

	"github.com/atomsim/lammpsflow/internal/task"
)

// Workflow is a named set of tasks forming a directed acyclic graph.
// Dependencies are embedded in the tasks themselves as parent references.
type Workflow struct {
	name  string
	tasks []*task.Task
}

// New builds a workflow from the given tasks and validates it: every
// parent reference must resolve to a task in the same set, and the graph
// must be acyclic.
func New(tasks []*task.Task, name string) (*Workflow, error) {
	if err := validate(tasks); err != nil {
		return nil, fmt.Errorf("invalid workflow %q: %w", name, err)
	}
	ts := make([]*task.Task, len(tasks))
	copy(ts, tasks)
	return &Workflow{name: name, tasks: ts}, nil
}

// Name returns the workflow name.
func (w *Workflow) Name() string { return w.name }

// Tasks returns the workflow's tasks in assembly order. The returned slice
// must not be modified.
func (w *Workflow) Tasks() []*task.Task { return w.tasks }

// validate checks referential integrity and then runs cycle detection via
// depth-first search over parent edges.
func validate(tasks []*task.Task) error {
	index := make(map[*task.Task]int, len(tasks))
	for i, t := range tasks {
		if t == nil {
			return fmt.Errorf("task %d is nil", i)
		}
		if _, dup := index[t]; dup {
			return fmt.Errorf("task %d (%s) appears more than once", i, t.Kind())
		}
		index[t] = i
	}

	for i, t := range tasks {
		for _, p := range t.Parents() {
			if _, ok := index[p]; !ok {
				return fmt.Errorf("task %d (%s) declares a parent that is not part of the workflow", i, t.Kind())
			}
		}
	}

	visiting := make(map[*task.Task]bool)
	visited := make(map[*task.Task]bool)

	var visit func(t *task.Task) error
	visit = func(t *task.Task) error {
		visiting[t] = true
		for _, p := range t.Parents() {
			if visiting[p] {
				return fmt.Errorf("cycle detected involving task %d (%s)", index[p], p.Kind())
			}
			if !visited[p] {
				if err := visit(p); err != nil {
					return err
				}
			}
		}
		delete(visiting, t)
		visited[t] = true
		return nil
	}

	for _, t := range tasks {
		if !visited[t] {
			if err := visit(t); err != nil {
				return err
			}
		}
	}
	return nil
}
