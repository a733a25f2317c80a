package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
	"tableflip.dev/todo/pkg/view"
)

func seedTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "Buy milk", CreatedAt: 1},
		{ID: 2, Title: "Call Bob", CreatedAt: 2, Completed: true},
		{ID: 3, Title: "milk the cow", CreatedAt: 3, Important: true},
	}
}

func newTestModel(t *testing.T, seed []task.Task) (Model, *app.Engine, *store.TaskStorage) {
	t.Helper()
	st := store.NewMemory()
	require.NoError(t, st.Save(context.Background(), seed))
	e, err := app.Open(context.Background(), st, app.WithLogger(logging.Discard()))
	require.NoError(t, err)
	m := New(context.Background(), e, Options{Debounce: DefaultDebounce, Logger: logging.Discard()})
	return m, e, st
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = send(t, m, msg)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func visibleIDs(m Model) []int64 {
	return task.IDs(m.Visible())
}

func TestViewHeaderAndEmptyStates(t *testing.T) {
	m, _, _ := newTestModel(t, seedTasks())
	out := m.View()
	assert.Contains(t, out, "Completed 1/3")
	assert.Contains(t, out, "created, ascending")

	empty, _, _ := newTestModel(t, nil)
	assert.Contains(t, empty.View(), "No tasks yet.")

	m = press(t, m, "/")
	m = typeText(t, m, "zzz")
	m = press(t, m, "enter")
	assert.Empty(t, m.Visible())
	assert.Contains(t, m.View(), "No tasks match your search.")
}

func TestSearchIsDebounced(t *testing.T) {
	m, _, _ := newTestModel(t, seedTasks())

	m = press(t, m, "/")
	require.Equal(t, modeSearch, m.mode)
	m = typeText(t, m, "m")
	stale := m.searchSeq
	m = typeText(t, m, "ilk")

	// Nothing is filtered until the input settles.
	assert.Equal(t, []int64{1, 2, 3}, visibleIDs(m))

	m = send(t, m, searchTickMsg{seq: stale})
	assert.Equal(t, []int64{1, 2, 3}, visibleIDs(m))

	m = send(t, m, searchTickMsg{seq: m.searchSeq})
	assert.Equal(t, []int64{1, 3}, visibleIDs(m))
	assert.Equal(t, "milk", m.Query().Keyword)

	m = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "", m.Query().Keyword)
	assert.Equal(t, []int64{1, 2, 3}, visibleIDs(m))
}

func TestSearchWithoutDebounceFiltersImmediately(t *testing.T) {
	m, _, _ := newTestModel(t, seedTasks())
	m.debounce = 0

	m = press(t, m, "/")
	m = typeText(t, m, "BOB")
	assert.Equal(t, []int64{2}, visibleIDs(m))
}

func TestSortCycleAndReverse(t *testing.T) {
	m, _, _ := newTestModel(t, seedTasks())

	m = press(t, m, "s")
	assert.Equal(t, view.SortImportant, m.Query().Field)
	assert.Equal(t, []int64{1, 2, 3}, visibleIDs(m))

	m = press(t, m, "r")
	assert.False(t, m.Query().Ascending)
	assert.Equal(t, int64(3), visibleIDs(m)[0])

	m = press(t, m, "s")
	assert.Equal(t, view.SortTitle, m.Query().Field)
	assert.Equal(t, []int64{3, 2, 1}, visibleIDs(m))

	m = press(t, m, "s")
	assert.Equal(t, view.SortCreatedAt, m.Query().Field)
}

func TestToggleCompletedAndImportant(t *testing.T) {
	m, e, _ := newTestModel(t, seedTasks())

	m = press(t, m, "x")
	got, _ := e.Get(1)
	assert.True(t, got.Completed)

	m = press(t, m, "down", "*")
	got, _ = e.Get(2)
	assert.True(t, got.Important)

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	got, _ = e.Get(2)
	assert.False(t, got.Completed)
	assert.Contains(t, m.View(), "Completed 1/3")
}

func TestAddFlow(t *testing.T) {
	m, e, _ := newTestModel(t, seedTasks())

	m = press(t, m, "a")
	require.Equal(t, modeAddTitle, m.mode)

	m = press(t, m, "enter")
	assert.Equal(t, modeAddTitle, m.mode)
	assert.Equal(t, "Title is required.", m.status)

	m = typeText(t, m, "Walk dog")
	m = press(t, m, "enter")
	require.Equal(t, modeAddDescription, m.mode)
	m = typeText(t, m, "before dark")
	m = press(t, m, "enter")

	assert.Equal(t, modeList, m.mode)
	all := e.Tasks()
	require.Len(t, all, 4)
	assert.Equal(t, "Walk dog", all[3].Title)
	assert.Equal(t, "before dark", all[3].Description)
	assert.Len(t, m.Visible(), 4)
}

func TestAddCancel(t *testing.T) {
	m, e, _ := newTestModel(t, seedTasks())
	m = press(t, m, "a")
	m = typeText(t, m, "nope")
	m = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, e.Tasks(), 3)
}

func TestEditTitle(t *testing.T) {
	m, e, _ := newTestModel(t, seedTasks())

	m = press(t, m, "e")
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "Buy milk", m.input.Value())

	m = typeText(t, m, " today")
	m = press(t, m, "enter")
	got, _ := e.Get(1)
	assert.Equal(t, "Buy milk today", got.Title)
	assert.Equal(t, int64(1), got.CreatedAt)
}

func TestDeleteConfirm(t *testing.T) {
	m, e, _ := newTestModel(t, seedTasks())

	m = press(t, m, "d")
	require.Equal(t, modeConfirm, m.mode)
	m = press(t, m, "n")
	assert.Len(t, e.Tasks(), 3)

	m = press(t, m, "d", "y")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []int64{2, 3}, task.IDs(e.Tasks()))
	assert.Equal(t, []int64{2, 3}, visibleIDs(m))
}

func TestBatchSelectAndDelete(t *testing.T) {
	m, e, _ := newTestModel(t, seedTasks())

	// Selection keys are ignored outside batch mode.
	m = press(t, m, "A")
	assert.Equal(t, 0, m.Selection().Len())

	m = press(t, m, "b")
	require.True(t, m.Selection().Active())
	m = press(t, m, "x")
	assert.True(t, m.Selection().IsSelected(1))
	got, _ := e.Get(1)
	assert.False(t, got.Completed, "space selects in batch mode")
	assert.Contains(t, m.View(), "BATCH 1 selected")

	m = press(t, m, "c")
	assert.Equal(t, 0, m.Selection().Len())

	m = press(t, m, "/")
	m = typeText(t, m, "milk")
	m = press(t, m, "enter")
	m = press(t, m, "A")
	assert.Equal(t, []int64{1, 3}, m.Selection().IDs())

	m = press(t, m, "D")
	require.Equal(t, modeConfirm, m.mode)
	m = press(t, m, "y")
	assert.Equal(t, []int64{2}, task.IDs(e.Tasks()))
	assert.Equal(t, 0, m.Selection().Len())
	assert.True(t, m.Selection().Active())

	m = press(t, m, "b")
	assert.False(t, m.Selection().Active())
}

func TestBatchDeleteCountsPrunedSelection(t *testing.T) {
	m, e, _ := newTestModel(t, seedTasks())
	m = press(t, m, "b", "A", "D")
	require.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), "Delete 3 task(s)?")

	_, err := e.Remove(context.Background(), 2)
	require.NoError(t, err)

	m = press(t, m, "y")
	assert.Empty(t, e.Tasks())
	assert.Equal(t, "Deleted 2 task(s)", m.status)
}

func TestSelectionPrunedWhenTaskRemovedElsewhere(t *testing.T) {
	m, e, _ := newTestModel(t, seedTasks())
	m = press(t, m, "b", "A")
	require.Equal(t, 3, m.Selection().Len())

	_, err := e.Remove(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, m.Selection().IDs())
}

func TestStoreChangedReloads(t *testing.T) {
	m, _, st := newTestModel(t, seedTasks())
	m = press(t, m, "b", "A")

	require.NoError(t, st.Save(context.Background(), []task.Task{{ID: 9, Title: "From elsewhere", CreatedAt: 9}}))
	m = send(t, m, StoreChangedMsg{})

	assert.Equal(t, []int64{9}, visibleIDs(m))
	assert.Equal(t, 0, m.Selection().Len())
	assert.Contains(t, m.View(), "Completed 0/1")
}

func TestQuitAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t, seedTasks())

	m = press(t, m, "?")
	assert.Equal(t, modeHelp, m.mode)
	m = press(t, m, "q")
	assert.Equal(t, modeList, m.mode)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModalDrawnOverSizedScreen(t *testing.T) {
	m, _, _ := newTestModel(t, seedTasks())
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m = press(t, m, "d")

	out := m.View()
	assert.Contains(t, out, "Delete 1 task(s)? [y/N]")
	assert.Len(t, strings.Split(out, "\n"), 20)
	assert.Contains(t, out, "Completed 1/3")
}
