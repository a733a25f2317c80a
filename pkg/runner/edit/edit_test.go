package edit

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

func ptr[T any](v T) *T { return &v }

func TestChangesApply(t *testing.T) {
	base := task.Task{ID: 1, Title: "old", CreatedAt: 5, Steps: []task.Step{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}}
	c := Changes{
		Title:       ptr("new"),
		Important:   ptr(true),
		RenameSteps: map[int64]string{1: "A"},
		ToggleSteps: []int64{1},
		RemoveSteps: []int64{2},
		AddSteps:    []string{"c"},
	}
	got, err := c.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, "new", got.Title)
	assert.True(t, got.Important)
	assert.False(t, got.Completed)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, "A", got.Steps[0].Title)
	assert.True(t, got.Steps[0].Completed)
	assert.Equal(t, "c", got.Steps[1].Title)
	assert.Equal(t, "a", base.Steps[0].Title, "base task was mutated")
}

func TestParseRenames(t *testing.T) {
	got, err := ParseRenames([]string{"2=call back", "3=x=y"})
	require.NoError(t, err)
	assert.Equal(t, "call back", got[2])
	assert.Equal(t, "x=y", got[3])

	_, err = ParseRenames([]string{"nope"})
	assert.Error(t, err)
}

func TestEditDo(t *testing.T) {
	ctx := context.Background()
	e := app.New(store.NewMemory(), []task.Task{{ID: 7, Title: "x", CreatedAt: 1}}, app.WithLogger(logging.Discard()))

	var buf bytes.Buffer
	r := Edit{Engine: e, ID: 7, Changes: Changes{Description: ptr(" details ")}, Out: &buf}
	require.NoError(t, r.Do(ctx))
	got, _ := e.Get(7)
	assert.Equal(t, "details", got.Description)

	r = Edit{Engine: e, ID: 7, Changes: Changes{Title: ptr("  ")}, Out: &buf}
	assert.Error(t, r.Do(ctx), "blank title must be rejected")

	buf.Reset()
	r = Edit{Engine: e, ID: 99, Changes: Changes{Title: ptr("y")}, Out: &buf}
	require.NoError(t, r.Do(ctx), "missing id should not fail")
	assert.Contains(t, buf.String(), "no such task 99")
}
