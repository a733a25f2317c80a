package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
)

// Run starts the full-screen UI and blocks until the user quits or ctx is
// cancelled. When basePath is set, changes made to the store by other
// processes are picked up while the UI is open.
func Run(ctx context.Context, engine *app.Engine, opts Options, basePath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, engine, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if basePath != "" {
		events, err := store.Watch(ctx, basePath, m.logger)
		if err != nil {
			m.logger.Warn("store watch disabled", "err", err)
		} else {
			go func() {
				for range events {
					p.Send(StoreChangedMsg{})
				}
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
