// Package list provides the runner that prints the projected task list.
package list

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/view"
)

// List prints the tasks matching Query.
type List struct {
	Engine    *app.Engine
	Projector view.Projector
	Query     view.Query
	ShowID    bool
	JSON      bool
	Out       io.Writer
}

func (n *List) Do(_ context.Context) error {
	if n.Engine == nil {
		return errors.New("can not list, no engine")
	}

	all := n.Engine.Tasks()
	shown := n.Projector.Project(all, n.Query)

	if n.JSON {
		return printers.JSON(n.Out, shown)
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.Header(app.Summarize(all), n.Query)
	pp.Tasks(shown, view.Empty(all, shown))
	return nil
}
