package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Watch when a stored key changes on disk.
type Event struct {
	// Key is the changed key, or empty when the watcher could not tell and
	// callers should reload everything.
	Key string
}

// Watch streams change events for the store rooted at basePath until ctx is
// cancelled. Bursts of writes are coalesced. Callers should drain the
// returned channel; the channel is closed once ctx is done or the watcher
// fails.
func Watch(ctx context.Context, basePath string, logger *log.Logger) (<-chan Event, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		var (
			sendMu sync.Mutex
			closed bool
		)
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("watcher close", "err", err)
			}
		}()

		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// Consumer is behind; the next event triggers the same reload.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("watcher error", "err", err)
				throttle.Enqueue(Event{}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				key, ok := keyForPath(basePath, evt.Name)
				if !ok {
					continue
				}
				throttle.Enqueue(Event{Key: key}, send)
			}
		}
	}()

	return events, nil
}

// keyForPath maps a file in the store directory back to its key. Temp files
// written during atomic saves are ignored.
func keyForPath(basePath, path string) (string, bool) {
	rel, err := filepath.Rel(basePath, path)
	if err != nil || rel == "." {
		return "", false
	}
	if strings.HasPrefix(rel, tempDirName) || strings.Contains(rel, string(os.PathSeparator)) {
		return "", false
	}
	return rel, true
}

// eventThrottle coalesces rapid change notifications so readers reload once
// per burst of writes instead of on every single file event.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Key] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	if _, all := pending[""]; all {
		send(Event{})
		return
	}
	for key := range pending {
		send(Event{Key: key})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
