// Package info prints where tasks are stored and how todo is configured.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
)

type Info struct {
	Config store.Config
	Engine *app.Engine
	Out    io.Writer
}

func (n *Info) Do(_ context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("TODO_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "TODO_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "TODO_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.key:", n.Config.Key())
	_, _ = fmt.Fprintln(out, "Config.locale:", n.Config.Locale())
	_, _ = fmt.Fprintln(out, "Config.search.debounce:", n.Config.SearchDebounce())
	_, _ = fmt.Fprintf(out, "Config.log: %s (%s)\n", n.Config.LogLevel(), n.Config.LogFormat())

	if n.Engine == nil {
		return fmt.Errorf("failed to open the task store")
	}
	s := n.Engine.Stats()
	_, _ = fmt.Fprintf(out, "Tasks: %d (%d completed, %d important)\n", s.Total, s.Completed, s.Important)
	return nil
}
