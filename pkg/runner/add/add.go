// Package add provides the runner that appends a task.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
)

// Add creates one task.
type Add struct {
	Engine      *app.Engine
	Title       string
	Description string
	JSON        bool
	Out         io.Writer
}

// Do adds the task and prints it.
func (n *Add) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not add, no engine")
	}

	t, err := n.Engine.Add(ctx, n.Title, n.Description)
	if err != nil {
		return err
	}

	if n.JSON {
		return printers.JSON(n.Out, t)
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: true}
	pp.Task(t)
	return nil
}
