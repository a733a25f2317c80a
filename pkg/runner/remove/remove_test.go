package remove

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
)

func engine(t *testing.T) *app.Engine {
	t.Helper()
	return app.New(store.NewMemory(), []task.Task{
		{ID: 1, Title: "a", CreatedAt: 1},
		{ID: 2, Title: "b", CreatedAt: 2},
		{ID: 3, Title: "c", CreatedAt: 3},
	}, app.WithLogger(logging.Discard()))
}

func TestRemoveBatch(t *testing.T) {
	e := engine(t)
	var asked int
	var buf bytes.Buffer
	r := Remove{
		Engine:  e,
		IDs:     []int64{1, 3, 42},
		Confirm: func(n int) (bool, error) { asked = n; return true, nil },
		Out:     &buf,
	}
	require.NoError(t, r.Do(context.Background()))
	assert.Equal(t, 2, asked, "confirmation covers only existing tasks")
	assert.Equal(t, []int64{2}, task.IDs(e.Tasks()))
	assert.Contains(t, buf.String(), "no such task 42")
}

func TestRemoveDeclined(t *testing.T) {
	e := engine(t)
	var buf bytes.Buffer
	r := Remove{
		Engine:  e,
		IDs:     []int64{1},
		Confirm: func(int) (bool, error) { return false, nil },
		Out:     &buf,
	}
	require.NoError(t, r.Do(context.Background()))
	assert.Len(t, e.Tasks(), 3, "nothing should have been deleted")
}
