package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/atomsim/lammpsflow/internal/task"
)

// taskDocument is the wire shape of one task in the engine hand-off
// document. Dependencies are embedded per task as parent ids.
type taskDocument struct {
	ID      string         `json:"id"`
	Type    task.Kind      `json:"type"`
	Parents []string       `json:"parents"`
	Spec    map[string]any `json:"spec"`
}

// workflowDocument is the wire shape of a full workflow.
type workflowDocument struct {
	Name  string         `json:"name"`
	Tasks []taskDocument `json:"tasks"`
}

// MarshalJSON serializes the workflow as the document consumed by the
// external engine. Task ids are positional ("task-0", "task-1", ...),
// following assembly order.
func (w *Workflow) MarshalJSON() ([]byte, error) {
	ids := make(map[*task.Task]string, len(w.tasks))
	for i, t := range w.tasks {
		ids[t] = fmt.Sprintf("task-%d", i)
	}

	doc := workflowDocument{
		Name:  w.name,
		Tasks: make([]taskDocument, 0, len(w.tasks)),
	}
	for _, t := range w.tasks {
		parents := make([]string, 0, len(t.Parents()))
		for _, p := range t.Parents() {
			// Validation in New guarantees every parent resolves.
			parents = append(parents, ids[p])
		}
		doc.Tasks = append(doc.Tasks, taskDocument{
			ID:      ids[t],
			Type:    t.Kind(),
			Parents: parents,
			Spec:    t.Spec(),
		})
	}
	return json.Marshal(doc)
}
