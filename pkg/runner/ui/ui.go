// Package ui opens the full-screen task list.
package ui

import (
	"context"

	"github.com/charmbracelet/log"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/tui"
	"tableflip.dev/todo/pkg/view"
)

type UI struct {
	Engine    *app.Engine
	Config    store.Config
	Projector view.Projector
	Logger    *log.Logger
	// Watch reloads the list when another process changes the store.
	Watch bool
}

func (u *UI) Do(ctx context.Context) error {
	opts := tui.Options{
		Projector: u.Projector,
		Debounce:  tui.DefaultDebounce,
		Logger:    u.Logger,
	}
	basePath := ""
	if u.Config != nil {
		opts.Debounce = u.Config.SearchDebounce()
		if u.Watch {
			basePath = u.Config.BasePath()
		}
	}
	return tui.Run(ctx, u.Engine, opts, basePath)
}
