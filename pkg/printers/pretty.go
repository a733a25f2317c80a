package printers

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/task"
	"tableflip.dev/todo/pkg/view"
)

const descriptionWidth = 48

// PrettyPrint renders tasks as coloured tables.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

// UseColor turns colour off when f is not a terminal.
func UseColor(f *os.File) {
	fd := f.Fd()
	color.NoColor = !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// Header prints the progress line and the active ordering.
func (pp *PrettyPrint) Header(s app.Stats, q view.Query) {
	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	_, _ = t.Fprintf(pp.out(), "Completed %d/%d", s.Completed, s.Total)
	_, _ = f.Fprintf(pp.out(), "  sorted by %s", view.Label(q))
	if k := strings.TrimSpace(q.Keyword); k != "" {
		_, _ = f.Fprintf(pp.out(), ", matching %q", k)
	}
	_, _ = fmt.Fprintln(pp.out())
}

// Tasks prints one row per task, or the empty-state message.
func (pp *PrettyPrint) Tasks(tasks []task.Task, empty view.EmptyState) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(pp.out(), " %s\n\n", empty.Message())
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)
	desc := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		title := t.Title
		if t.Completed {
			title = done.Sprint(title)
		}
		if total := len(t.Steps); total > 0 {
			title += desc.Sprintf(" (%d/%d)", t.StepsDone(), total)
		}
		row := []interface{}{Check(t.Completed), Star(t.Important), title, desc.Sprint(wrap(t.Description))}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Task prints every field of t, steps included.
func (pp *PrettyPrint) Task(t task.Task) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), strconv.FormatInt(t.ID, 10))
	tbl.AddRow(bold.Sprint("Title"), t.Title)
	if t.Description != "" {
		tbl.AddRow(bold.Sprint("Description"), wrap(t.Description))
	}
	tbl.AddRow(bold.Sprint("Completed"), Check(t.Completed))
	tbl.AddRow(bold.Sprint("Important"), Star(t.Important))
	tbl.AddRow(bold.Sprint("Created"), t.Created().Local().Format(time.DateTime))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if len(t.Steps) == 0 {
		return
	}
	_, _ = bold.Fprintf(pp.out(), "\nSteps %d/%d\n", t.StepsDone(), len(t.Steps))
	for _, s := range t.Steps {
		_, _ = faint.Fprintf(pp.out(), "%4d ", s.ID)
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", Check(s.Completed), s.Title)
	}
}

// Stats prints the counts from s.
func (pp *PrettyPrint) Stats(s app.Stats) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total"), s.Total)
	tbl.AddRow(bold.Sprint("Open"), s.Open())
	tbl.AddRow(bold.Sprint("Completed"), s.Completed)
	tbl.AddRow(bold.Sprint("Important"), s.Important)
	if s.Steps > 0 {
		tbl.AddRow(bold.Sprint("Steps"), fmt.Sprintf("%d/%d", s.StepsDone, s.Steps))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Check is the completion marker.
func Check(done bool) string {
	if done {
		return color.GreenString("✔")
	}
	return "☐"
}

// Star is the importance marker.
func Star(important bool) string {
	if important {
		return color.HiYellowString("★")
	}
	return " "
}

func wrap(s string) string {
	if s == "" {
		return ""
	}
	return wordwrap.String(s, descriptionWidth)
}
