package workflow

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomsim/lammpsflow/internal/task"
)

func TestMarshalJSON_PackedChain(t *testing.T) {
	t.Parallel()

	wf, err := Packed(context.Background(), packedOptions())
	require.NoError(t, err)

	raw, err := json.Marshal(wf)
	require.NoError(t, err)

	var doc struct {
		Name  string `json:"name"`
		Tasks []struct {
			ID      string         `json:"id"`
			Type    string         `json:"type"`
			Parents []string       `json:"parents"`
			Spec    map[string]any `json:"spec"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "LAMMPS packmol Wflow", doc.Name)
	require.Len(t, doc.Tasks, 2)

	packing, simulation := doc.Tasks[0], doc.Tasks[1]
	assert.Equal(t, "task-0", packing.ID)
	assert.Equal(t, "packmol", packing.Type)
	assert.Empty(t, cmp.Diff([]string{}, packing.Parents))

	assert.Equal(t, "task-1", simulation.ID)
	assert.Equal(t, "lammps_forcefield", simulation.Type)
	assert.Equal(t, []string{"task-0"}, simulation.Parents)
	assert.Equal(t, "packed.xyz", simulation.Spec["data_source"])
}

func TestMarshalJSON_ParentsNeverNull(t *testing.T) {
	t.Parallel()

	wf, err := New(nil, "empty")
	require.NoError(t, err)
	raw, err := json.Marshal(wf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"empty","tasks":[]}`, string(raw))
}

func TestMarshalJSON_FanOutHasNoEdges(t *testing.T) {
	t.Parallel()

	wf, err := New([]*task.Task{newTestTask(), newTestTask()}, "fan-out")
	require.NoError(t, err)

	raw, err := json.Marshal(wf)
	require.NoError(t, err)

	var doc struct {
		Tasks []struct {
			ID      string   `json:"id"`
			Parents []string `json:"parents"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Tasks, 2)
	assert.Equal(t, "task-0", doc.Tasks[0].ID)
	assert.Equal(t, "task-1", doc.Tasks[1].ID)
	for _, tk := range doc.Tasks {
		assert.Empty(t, tk.Parents)
	}
}
