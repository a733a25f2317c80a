// Package edit provides the runner that rewrites one task through
// Engine.Update.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/task"
)

// Changes lists the field updates to apply. Nil pointers leave a field as
// it is.
type Changes struct {
	Title       *string
	Description *string
	Completed   *bool
	Important   *bool

	AddSteps    []string
	RenameSteps map[int64]string
	ToggleSteps []int64
	RemoveSteps []int64
}

// Empty reports whether c changes nothing.
func (c Changes) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Completed == nil && c.Important == nil &&
		len(c.AddSteps) == 0 && len(c.RenameSteps) == 0 && len(c.ToggleSteps) == 0 && len(c.RemoveSteps) == 0
}

// Apply returns t with c applied. Step edits run in the order rename,
// toggle, remove, add.
func (c Changes) Apply(t task.Task) (task.Task, error) {
	t = t.Clone()
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Completed != nil {
		t.Completed = *c.Completed
	}
	if c.Important != nil {
		t.Important = *c.Important
	}
	var err error
	for id, title := range c.RenameSteps {
		if t, err = t.RenameStep(id, title); err != nil {
			return task.Task{}, err
		}
	}
	for _, id := range c.ToggleSteps {
		t = t.ToggleStep(id)
	}
	for _, id := range c.RemoveSteps {
		t = t.RemoveStep(id)
	}
	for _, title := range c.AddSteps {
		if t, err = t.AddStep(title); err != nil {
			return task.Task{}, err
		}
	}
	return t, nil
}

// ParseRenames reads "<step id>=<title>" pairs.
func ParseRenames(pairs []string) (map[int64]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[int64]string, len(pairs))
	for _, p := range pairs {
		idPart, title, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid step rename %q, want <step id>=<title>", p)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid step id %q", idPart)
		}
		out[id] = title
	}
	return out, nil
}

// Edit updates the task ID with Changes.
type Edit struct {
	Engine  *app.Engine
	ID      int64
	Changes Changes
	JSON    bool
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not edit, no engine")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	current, ok := n.Engine.Get(n.ID)
	if !ok {
		_, _ = fmt.Fprintf(out, "no such task %d\n", n.ID)
		return nil
	}

	next, err := n.Changes.Apply(current)
	if err != nil {
		return err
	}
	if _, err := n.Engine.Update(ctx, next); err != nil {
		return err
	}

	updated, _ := n.Engine.Get(n.ID)
	if n.JSON {
		return printers.JSON(out, updated)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Task(updated)
	return nil
}
