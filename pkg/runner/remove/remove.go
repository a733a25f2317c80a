// Package remove provides the runner that deletes tasks in one batch.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/selection"
	"tableflip.dev/todo/pkg/view"
)

// Remove deletes the tasks in IDs. When Confirm is set it is asked first
// with the number of tasks about to go.
type Remove struct {
	Engine  *app.Engine
	IDs     []int64
	Confirm func(n int) (bool, error)
	JSON    bool
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not delete, no engine")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	sel := selection.New()
	defer sel.Attach(n.Engine)()
	sel.Enter()

	found := []int64{}
	for _, id := range n.IDs {
		if _, ok := n.Engine.Get(id); ok {
			found = append(found, id)
		} else if !n.JSON {
			_, _ = fmt.Fprintf(out, "no such task %d\n", id)
		}
	}
	sel.SelectAll(found)

	if sel.Len() > 0 && n.Confirm != nil {
		ok, err := n.Confirm(sel.Len())
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "nothing deleted")
			return nil
		}
	}

	tasks, err := sel.DeleteSelected(ctx, n.Engine)
	if err != nil {
		return err
	}

	if n.JSON {
		return printers.JSON(out, map[string]interface{}{"deleted": found, "tasks": tasks})
	}
	shown := view.Project(tasks, view.DefaultQuery())
	pp := printers.PrettyPrint{Out: out, ShowID: true}
	pp.Header(app.Summarize(tasks), view.DefaultQuery())
	pp.Tasks(shown, view.Empty(tasks, shown))
	return nil
}
