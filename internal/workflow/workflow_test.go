package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomsim/lammpsflow/internal/task"
)

func newTestTask(parents ...*task.Task) *task.Task {
	return task.NewSimulation(task.SimulationConfig{Parents: parents})
}

func TestNew_ValidGraphs(t *testing.T) {
	t.Parallel()

	t.Run("empty workflow is allowed", func(t *testing.T) {
		wf, err := New(nil, "empty")
		require.NoError(t, err)
		assert.Empty(t, wf.Tasks())
		assert.Equal(t, "empty", wf.Name())
	})

	t.Run("independent siblings", func(t *testing.T) {
		wf, err := New([]*task.Task{newTestTask(), newTestTask(), newTestTask()}, "siblings")
		require.NoError(t, err)
		assert.Len(t, wf.Tasks(), 3)
	})

	t.Run("diamond", func(t *testing.T) {
		root := newTestTask()
		left := newTestTask(root)
		right := newTestTask(root)
		sink := newTestTask(left, right)

		_, err := New([]*task.Task{root, left, right, sink}, "diamond")
		require.NoError(t, err)
	})
}

func TestNew_RejectsForeignParent(t *testing.T) {
	t.Parallel()

	outside := newTestTask()
	child := newTestTask(outside)

	_, err := New([]*task.Task{child}, "broken")
	require.Error(t, err)
	assert.ErrorContains(t, err, "parent that is not part of the workflow")
	assert.ErrorContains(t, err, `invalid workflow "broken"`)
}

func TestNew_RejectsDuplicateTask(t *testing.T) {
	t.Parallel()

	tk := newTestTask()
	_, err := New([]*task.Task{tk, tk}, "dup")
	require.Error(t, err)
	assert.ErrorContains(t, err, "appears more than once")
}

func TestNew_RejectsNilTask(t *testing.T) {
	t.Parallel()

	_, err := New([]*task.Task{newTestTask(), nil}, "nil")
	require.Error(t, err)
	assert.ErrorContains(t, err, "task 1 is nil")
}

func TestTasks_OrderIsAssemblyOrder(t *testing.T) {
	t.Parallel()

	first := newTestTask()
	second := newTestTask(first)
	wf, err := New([]*task.Task{first, second}, "ordered")
	require.NoError(t, err)

	require.Len(t, wf.Tasks(), 2)
	assert.Same(t, first, wf.Tasks()[0])
	assert.Same(t, second, wf.Tasks()[1])
}
