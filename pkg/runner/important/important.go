// Package important provides the runner that toggles the important flag.
package important

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/runner/complete"
)

// Important flips the important flag of each task in IDs.
type Important struct {
	Engine *app.Engine
	IDs    []int64
	JSON   bool
	Out    io.Writer
}

func (n *Important) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not mark important, no engine")
	}
	return complete.Toggle(ctx, n.Engine, n.IDs, n.Engine.ToggleImportant, n.JSON, n.Out)
}
