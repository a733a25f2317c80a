package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/task"
)

func TestWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	s, err := Open(StaticConfig{Path: base})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, base, nil)
	require.NoError(t, err)

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, s.Save(ctx, []task.Task{{ID: 1, Title: "hello", CreatedAt: 1}}))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == "" || evt.Key == DefaultKey {
				return
			}
		case <-deadline:
			require.FailNow(t, "timed out waiting for change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, t.TempDir(), nil)
	require.NoError(t, err)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			require.FailNow(t, "channel not closed after cancel")
		}
	}
}

func TestKeyForPath(t *testing.T) {
	base := "/data/todo"
	tests := []struct {
		path string
		key  string
		ok   bool
	}{
		{path: "/data/todo/tasks", key: "tasks", ok: true},
		{path: "/data/todo", ok: false},
		{path: "/data/todo/.tmp/123", ok: false},
		{path: "/data/todo/.tmp", ok: false},
	}
	for _, tc := range tests {
		key, ok := keyForPath(base, tc.path)
		assert.Equal(t, tc.ok, ok, "keyForPath(%q)", tc.path)
		assert.Equal(t, tc.key, key, "keyForPath(%q)", tc.path)
	}
}
