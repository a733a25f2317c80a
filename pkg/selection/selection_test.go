package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
)

func seededEngine(t *testing.T, ids ...int64) *app.Engine {
	t.Helper()
	tasks := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, task.Task{ID: id, Title: "t", CreatedAt: id})
	}
	return app.New(store.NewMemory(), tasks, app.WithLogger(logging.Discard()))
}

func TestToggleRequiresBatchMode(t *testing.T) {
	m := New()
	m.Toggle(1)
	m.SelectAll([]int64{1, 2})
	assert.Equal(t, 0, m.Len())

	m.Enter()
	assert.True(t, m.Active())
	m.Toggle(1)
	m.Toggle(2)
	m.Toggle(1)
	assert.Equal(t, []int64{2}, m.IDs())
	assert.True(t, m.IsSelected(2))
	assert.False(t, m.IsSelected(1))
}

func TestExitClears(t *testing.T) {
	m := New()
	m.Enter()
	m.SelectAll([]int64{3, 1, 2})
	assert.Equal(t, []int64{1, 2, 3}, m.IDs())

	m.Exit()
	assert.False(t, m.Active())
	assert.Equal(t, 0, m.Len())

	m.Enter()
	assert.Empty(t, m.IDs())
}

func TestSelectAllReplaces(t *testing.T) {
	m := New()
	m.Enter()
	m.Toggle(9)
	m.SelectAll([]int64{1, 2})
	assert.Equal(t, []int64{1, 2}, m.IDs())

	m.Clear()
	assert.True(t, m.Active())
	assert.Equal(t, 0, m.Len())
}

func TestPrune(t *testing.T) {
	m := New()
	m.Enter()
	m.SelectAll([]int64{1, 2, 3})
	m.Prune([]task.Task{{ID: 2}, {ID: 4}})
	assert.Equal(t, []int64{2}, m.IDs())
}

func TestAttachPrunesOnEngineRemoval(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t, 1, 2, 3)
	m := New()
	detach := m.Attach(e)
	defer detach()

	m.Enter()
	m.SelectAll([]int64{1, 2, 3})

	_, err := e.Remove(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, m.IDs())

	_, err = e.BatchRemove(ctx, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, m.IDs())
}

func TestAttachPrunesStaleIDs(t *testing.T) {
	e := seededEngine(t, 1)
	m := New()
	m.Enter()
	m.SelectAll([]int64{1, 5})
	m.Attach(e)
	assert.Equal(t, []int64{1}, m.IDs())
}

func TestDeleteSelected(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t, 1, 2, 3)
	m := New()
	m.Attach(e)
	m.Enter()
	m.Toggle(1)
	m.Toggle(3)

	got, err := m.DeleteSelected(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, task.IDs(got))
	assert.Equal(t, 0, m.Len())
	assert.True(t, m.Active())
}

type failingRemover struct{ err error }

func (f failingRemover) BatchRemove(context.Context, []int64) ([]task.Task, error) {
	return nil, f.err
}

func TestDeleteSelectedKeepsSelectionOnError(t *testing.T) {
	boom := errors.New("boom")
	m := New()
	m.Enter()
	m.Toggle(7)

	_, err := m.DeleteSelected(context.Background(), failingRemover{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int64{7}, m.IDs())
}
