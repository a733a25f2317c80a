// Package stats provides the runner that prints progress counts.
package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/timeutil"
)

// Stats prints app.Stats for the current list, or for the tasks created
// within Window when it is set.
type Stats struct {
	Engine *app.Engine
	Window timeutil.Window
	Now    func() time.Time
	JSON   bool
	Out    io.Writer
}

func (n *Stats) Do(_ context.Context) error {
	if n.Engine == nil {
		return errors.New("can not summarise, no engine")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	s := n.Engine.Stats()
	if n.Window > 0 {
		now := time.Now()
		if n.Now != nil {
			now = n.Now()
		}
		s = app.Summarize(n.Engine.CreatedBetween(n.Window.Since(now), now))
	}

	if n.JSON {
		if n.Window > 0 {
			return printers.JSON(out, map[string]interface{}{"window": n.Window.String(), "stats": s})
		}
		return printers.JSON(out, s)
	}
	if n.Window > 0 {
		_, _ = fmt.Fprintf(out, "Created in the last %s\n", n.Window)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Stats(s)
	return nil
}
