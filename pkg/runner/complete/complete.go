// Package complete provides the runner logic for toggling task completion.
package complete

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/task"
	"tableflip.dev/todo/pkg/view"
)

// Complete flips the completed flag of each task in IDs.
type Complete struct {
	Engine *app.Engine
	IDs    []int64
	JSON   bool
	Out    io.Writer
}

// Do toggles every id and prints the resulting list. Unknown ids are
// reported and skipped.
func (n *Complete) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not complete, no engine")
	}
	return Toggle(ctx, n.Engine, n.IDs, n.Engine.ToggleCompleted, n.JSON, n.Out)
}

// Toggle applies fn to each id and prints the result the same way for
// every flag toggling verb.
func Toggle(ctx context.Context, e *app.Engine, ids []int64, fn func(context.Context, int64) ([]task.Task, error), asJSON bool, out io.Writer) error {
	if out == nil {
		out = color.Output
	}
	var tasks []task.Task
	for _, id := range ids {
		if _, ok := e.Get(id); !ok {
			if !asJSON {
				_, _ = fmt.Fprintf(out, "no such task %d\n", id)
			}
			continue
		}
		var err error
		if tasks, err = fn(ctx, id); err != nil {
			return err
		}
	}
	if tasks == nil {
		tasks = e.Tasks()
	}

	if asJSON {
		return printers.JSON(out, tasks)
	}
	shown := view.Project(tasks, view.DefaultQuery())
	pp := printers.PrettyPrint{Out: out, ShowID: true}
	pp.Header(app.Summarize(tasks), view.DefaultQuery())
	pp.Tasks(shown, view.Empty(tasks, shown))
	return nil
}
