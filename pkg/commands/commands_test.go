package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/task"
)

func TestNewRegistersCommands(t *testing.T) {
	root := New()
	want := []string{"add", "list", "complete", "important", "edit", "delete", "stats", "info", "ui", "mcp", "version", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		require.NotNil(t, cmd, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("json"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestIDCompletions(t *testing.T) {
	tasks := []task.Task{
		{ID: 1700000000001, Title: "Buy milk"},
		{ID: 1700000000002, Title: "Call Bob"},
		{ID: 42, Title: "Answer"},
	}

	got := idCompletions(tasks, []string{"1700000000002"}, "17")
	assert.Equal(t, []string{"1700000000001\tBuy milk"}, got)

	got = idCompletions(tasks, nil, "")
	assert.Len(t, got, 3)
}

func TestSortCompletions(t *testing.T) {
	got := sortCompletions()
	require.Len(t, got, 3)
	assert.Equal(t, "createdAt", got[0])
	assert.Equal(t, "title", got[2])
}

func TestEditChangesOnlySetFlags(t *testing.T) {
	eo := &options.EditOptions{}
	cmd := &cobra.Command{Use: "edit"}
	options.AddEditArgs(cmd, eo)

	require.NoError(t, cmd.Flags().Parse([]string{"--important=false", "--rename-step", "2=outline", "--toggle-step", "1,3"}))

	c, err := editChanges(cmd, eo)
	require.NoError(t, err)
	assert.Nil(t, c.Title, "unset flags must not produce changes")
	assert.Nil(t, c.Description)
	assert.Nil(t, c.Completed)
	require.NotNil(t, c.Important)
	assert.False(t, *c.Important)
	assert.Equal(t, "outline", c.RenameSteps[2])
	assert.Equal(t, []int64{1, 3}, c.ToggleSteps)

	bad := &options.EditOptions{RenameSteps: []string{"nope"}}
	_, err = editChanges(&cobra.Command{}, bad)
	assert.Error(t, err, "malformed rename")
}

func TestFlagChoicesAndArgs(t *testing.T) {
	root := New()

	list, _, _ := root.Find([]string{"list"})
	choices := flagChoices(list)
	last := choices[len(choices)-1]
	assert.Equal(t, doneChoice, last.Name)
	assert.Nil(t, last.flag)
	for _, c := range choices {
		assert.NotContains(t, []string{"json", "help"}, c.Name, "inherited or help flag offered")
	}
	assert.True(t, acceptsNoArgs(list), "list takes no arguments")

	add, _, _ := root.Find([]string{"add"})
	assert.False(t, acceptsNoArgs(add), "add needs a title")

	for _, sub := range runnable(root) {
		assert.NotEqual(t, "completion", sub.Name())
	}
}
