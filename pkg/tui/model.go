// Package tui is the interactive Bubble Tea front end for the task list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/selection"
	"tableflip.dev/todo/pkg/task"
	"tableflip.dev/todo/pkg/tui/overlay"
	"tableflip.dev/todo/pkg/tui/theme"
	"tableflip.dev/todo/pkg/view"
)

// DefaultDebounce is how long search input must be idle before the list is
// filtered again.
const DefaultDebounce = 300 * time.Millisecond

type mode int

const (
	modeList mode = iota
	modeSearch
	modeAddTitle
	modeAddDescription
	modeEdit
	modeConfirm
	modeHelp
)

// Options configure a Model.
type Options struct {
	Projector view.Projector
	Debounce  time.Duration
	Logger    *log.Logger
}

// StoreChangedMsg tells the model that the task store changed on disk.
type StoreChangedMsg struct{}

type searchTickMsg struct{ seq int }

// Model is the Bubble Tea model for the task list.
type Model struct {
	ctx       context.Context
	engine    *app.Engine
	selection *selection.Manager
	detach    func()
	projector view.Projector
	debounce  time.Duration
	logger    *log.Logger

	query   view.Query
	all     []task.Task
	visible []task.Task
	cursor  int

	mode         mode
	input        textinput.Model
	searchSeq    int
	pendingTitle string
	editID       int64
	confirmIDs   []int64
	confirmBatch bool

	keys   keyMap
	help   help.Model
	theme  theme.Theme
	status string
	err    error

	width  int
	height int
}

// New builds a model over engine. The selection manager is attached to the
// engine so removed tasks never stay selected.
func New(ctx context.Context, engine *app.Engine, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	debounce := opts.Debounce
	if debounce < 0 {
		debounce = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "> "

	sel := selection.New()
	detach := sel.Attach(engine)

	m := Model{
		ctx:       ctx,
		engine:    engine,
		selection: sel,
		detach:    detach,
		projector: opts.Projector,
		debounce:  debounce,
		logger:    logger,
		query:     view.DefaultQuery(),
		input:     ti,
		keys:      defaultKeys(),
		help:      help.New(),
		theme:     theme.Default(),
	}
	m.refresh()
	return m
}

// Init has nothing to load; the list is read in New.
func (m Model) Init() tea.Cmd {
	return nil
}

// Close stops tracking engine changes.
func (m Model) Close() {
	if m.detach != nil {
		m.detach()
	}
}

// Selection exposes the batch selection state.
func (m Model) Selection() *selection.Manager { return m.selection }

// Visible returns the tasks currently shown.
func (m Model) Visible() []task.Task { return m.visible }

// Query returns the active search and sort state.
func (m Model) Query() view.Query { return m.query }

func (m *Model) refresh() {
	m.all = m.engine.Tasks()
	m.visible = m.projector.Project(m.all, m.query)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) current() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) fail(err error) {
	m.err = err
	if errors.Is(err, app.ErrEmptyTitle) {
		m.status = "Title is required."
		return
	}
	m.logger.Error("task update failed", "err", err)
	m.status = ""
}

func (m *Model) ok(status string) {
	m.err = nil
	m.status = status
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case searchTickMsg:
		if msg.seq == m.searchSeq {
			m.query.Keyword = m.input.Value()
			m.refresh()
		}
		return m, nil

	case StoreChangedMsg:
		if _, err := m.engine.Reload(m.ctx); err != nil {
			m.fail(err)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeAddTitle, modeAddDescription, modeEdit:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.Placeholder = "search titles and descriptions"
		m.input.SetValue(m.query.Keyword)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Sort):
		m.query.Field = m.query.Field.Next()
		m.refresh()
		m.ok("Sorted by " + view.Label(m.query))
	case key.Matches(msg, m.keys.Reverse):
		m.query.Ascending = !m.query.Ascending
		m.refresh()
		m.ok("Sorted by " + view.Label(m.query))
	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.current()
		if !ok {
			break
		}
		if m.selection.Active() {
			m.selection.Toggle(t.ID)
			break
		}
		if _, err := m.engine.ToggleCompleted(m.ctx, t.ID); err != nil {
			m.fail(err)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Important):
		t, ok := m.current()
		if !ok {
			break
		}
		if _, err := m.engine.ToggleImportant(m.ctx, t.ID); err != nil {
			m.fail(err)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAddTitle
		m.pendingTitle = ""
		m.input.Placeholder = "title"
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.current()
		if !ok {
			break
		}
		m.mode = modeEdit
		m.editID = t.ID
		m.input.Placeholder = "title"
		m.input.SetValue(t.Title)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.current()
		if !ok {
			break
		}
		m.mode = modeConfirm
		m.confirmIDs = []int64{t.ID}
		m.confirmBatch = false
	case key.Matches(msg, m.keys.Batch):
		if m.selection.Active() {
			m.selection.Exit()
			m.ok("Batch mode off")
		} else {
			m.selection.Enter()
			m.ok("Batch mode on")
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.selection.SelectAll(task.IDs(m.visible))
	case key.Matches(msg, m.keys.Clear):
		m.selection.Clear()
	case key.Matches(msg, m.keys.DeleteSel):
		if !m.selection.Active() || m.selection.Len() == 0 {
			break
		}
		m.mode = modeConfirm
		m.confirmIDs = m.selection.IDs()
		m.confirmBatch = true
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.input.Blur()
		m.searchSeq++
		m.query.Keyword = m.input.Value()
		m.refresh()
		return m, nil
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.searchSeq++
		m.query.Keyword = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.searchSeq++
	if m.debounce == 0 {
		m.query.Keyword = m.input.Value()
		m.refresh()
		return m, cmd
	}
	seq := m.searchSeq
	tick := tea.Tick(m.debounce, func(time.Time) tea.Msg { return searchTickMsg{seq: seq} })
	return m, tea.Batch(cmd, tick)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.ok("")
		return m, nil
	case "enter":
		value := m.input.Value()
		switch m.mode {
		case modeAddTitle:
			if strings.TrimSpace(value) == "" {
				m.fail(app.ErrEmptyTitle)
				return m, nil
			}
			m.pendingTitle = value
			m.mode = modeAddDescription
			m.input.Placeholder = "description (optional)"
			m.input.SetValue("")
			return m, nil
		case modeAddDescription:
			t, err := m.engine.Add(m.ctx, m.pendingTitle, value)
			if err != nil {
				m.fail(err)
				return m, nil
			}
			m.ok(fmt.Sprintf("Added %q", t.Title))
		case modeEdit:
			t, ok := m.engine.Get(m.editID)
			if !ok {
				m.ok("Task no longer exists")
				break
			}
			t.Title = value
			if _, err := m.engine.Update(m.ctx, t); err != nil {
				m.fail(err)
				return m, nil
			}
			m.ok("Saved")
		}
		m.mode = modeList
		m.input.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		// The selection can shrink while the prompt is open.
		before := len(m.engine.Tasks())
		var (
			left []task.Task
			err  error
		)
		if m.confirmBatch {
			left, err = m.selection.DeleteSelected(m.ctx, m.engine)
		} else {
			left, err = m.engine.BatchRemove(m.ctx, m.confirmIDs)
		}
		if err != nil {
			m.fail(err)
		} else {
			m.ok(fmt.Sprintf("Deleted %d task(s)", before-len(left)))
		}
		m.refresh()
	default:
		m.ok("Nothing deleted")
	}
	m.mode = modeList
	m.confirmIDs = nil
	return m, nil
}

// View renders the header, the list and the footer, with any open prompt
// drawn over them.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.footerView())

	modal := m.modalView()
	if modal == "" {
		return b.String()
	}
	if m.width > 0 && m.height > 0 {
		return overlay.Compose(b.String(), m.width, m.height, modal, overlay.Centered)
	}
	return b.String() + "\n" + modal
}

func (m Model) modalView() string {
	md := m.theme.Modal
	switch m.mode {
	case modeSearch, modeAddTitle, modeAddDescription, modeEdit:
		return md.Frame.Render(md.Title.Render(m.promptTitle()) + "\n" + m.input.View())
	case modeConfirm:
		q := fmt.Sprintf("Delete %d task(s)? [y/N]", len(m.confirmIDs))
		return md.Frame.Render(md.Body.Render(q))
	}
	return ""
}

func (m Model) promptTitle() string {
	switch m.mode {
	case modeSearch:
		return "Search"
	case modeAddTitle:
		return "New task"
	case modeAddDescription:
		return "Description for " + m.pendingTitle
	case modeEdit:
		return "Edit title"
	}
	return ""
}

func (m Model) headerView() string {
	h := m.theme.Header
	s := app.Summarize(m.all)
	parts := []string{
		h.Title.Render("Todo"),
		h.Progress.Render(fmt.Sprintf("Completed %d/%d", s.Completed, s.Total)),
		h.Sort.Render(view.Label(m.query)),
	}
	if k := strings.TrimSpace(m.query.Keyword); k != "" {
		parts = append(parts, h.Search.Render("/"+k))
	}
	if m.selection.Active() {
		parts = append(parts, h.Batch.Render(fmt.Sprintf("BATCH %d selected", m.selection.Len())))
	}
	return strings.Join(parts, "  ")
}

func (m Model) listView() string {
	l := m.theme.List
	if len(m.visible) == 0 {
		return l.Empty.Render(view.Empty(m.all, m.visible).Message()) + "\n"
	}

	start, end := m.window()
	batch := m.selection.Active()
	width := m.width
	if width <= 0 {
		width = 100
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		t := m.visible[i]
		cursor := "  "
		if i == m.cursor {
			cursor = l.Cursor.Render("> ")
		}
		mark := "☐"
		if t.Completed {
			mark = "✔"
		}
		if batch {
			box := "[ ]"
			if m.selection.IsSelected(t.ID) {
				box = l.Selected.Render("[x]")
			}
			mark = box + " " + mark
		}
		star := " "
		if t.Important {
			star = l.Star.Render("★")
		}
		title := l.Title.Render(t.Title)
		if t.Completed {
			title = l.Done.Render(t.Title)
		}
		row := fmt.Sprintf("%s%s %s %s", cursor, mark, star, title)
		if n := len(t.Steps); n > 0 {
			row += l.Description.Render(fmt.Sprintf(" (%d/%d)", t.StepsDone(), n))
		}
		if t.Description != "" {
			room := width - lipgloss.Width(row) - 3
			if room > 8 {
				row += "  " + l.Description.Render(truncate.StringWithTail(t.Description, uint(room), "…"))
			}
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the visible row range keeping the cursor on screen.
func (m Model) window() (int, int) {
	rows := len(m.visible)
	if m.height <= 0 {
		return 0, rows
	}
	avail := m.height - 8
	if avail < 3 {
		avail = 3
	}
	if rows <= avail {
		return 0, rows
	}
	start := m.cursor - avail/2
	if start < 0 {
		start = 0
	}
	if start+avail > rows {
		start = rows - avail
	}
	return start, start + avail
}

func (m Model) footerView() string {
	f := m.theme.Footer
	var b strings.Builder
	switch {
	case m.err != nil && m.status == "":
		b.WriteString(f.Error.Render("ERR: " + m.err.Error()))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(f.Error.Render(m.status))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(f.Status.Render(m.status))
		b.WriteString("\n")
	}
	if m.mode == modeHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(f.Help.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}
	return b.String()
}
