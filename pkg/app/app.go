// Package app owns the authoritative task list and its mutations.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
)

// ErrEmptyTitle is returned by Add and Update when the title is blank.
var ErrEmptyTitle = task.ErrEmptyTitle

// ErrNoStorage is returned when an engine has nothing to persist to.
var ErrNoStorage = errors.New("app: no storage configured")

// Change describes one committed mutation.
type Change struct {
	// Tasks is the new authoritative list.
	Tasks []task.Task
	// Removed holds the ids that are no longer present.
	Removed []int64
}

// Engine holds the task list and persists it after every mutation. All
// methods are safe for concurrent use; writers are serialised.
type Engine struct {
	mu      sync.Mutex
	storage store.Storage
	tasks   []task.Task
	ids     *task.IDSource
	now     func() time.Time
	logger  *log.Logger

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for mutation diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDSource overrides the id allocator.
func WithIDSource(ids *task.IDSource) Option {
	return func(e *Engine) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// New returns an engine starting from tasks, persisting to storage.
func New(storage store.Storage, tasks []task.Task, opts ...Option) *Engine {
	e := &Engine{
		storage: storage,
		tasks:   task.CloneAll(tasks),
		ids:     task.DefaultIDSource(),
		now:     time.Now,
		logger:  log.Default(),
		subs:    make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, t := range e.tasks {
		e.ids.Observe(t.ID)
	}
	return e
}

// Open loads the task list from storage and returns an engine over it.
func Open(ctx context.Context, storage store.Storage, opts ...Option) (*Engine, error) {
	if storage == nil {
		return nil, ErrNoStorage
	}
	tasks, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: load tasks: %w", err)
	}
	return New(storage, tasks, opts...), nil
}

// Reload replaces the in-memory list with what storage holds now. Used when
// another process changed the store.
func (e *Engine) Reload(ctx context.Context) ([]task.Task, error) {
	if e.storage == nil {
		return nil, ErrNoStorage
	}
	tasks, err := e.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: reload tasks: %w", err)
	}
	e.mu.Lock()
	prev := e.tasks
	e.tasks = task.CloneAll(tasks)
	for _, t := range e.tasks {
		e.ids.Observe(t.ID)
	}
	change := Change{Tasks: task.CloneAll(e.tasks), Removed: missing(prev, e.tasks)}
	e.mu.Unlock()

	e.notify(change)
	return change.Tasks, nil
}

// Tasks returns a snapshot of the authoritative list.
func (e *Engine) Tasks() []task.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return task.CloneAll(e.tasks)
}

// Get returns the task with id.
func (e *Engine) Get(id int64) (task.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := indexOf(e.tasks, id); i >= 0 {
		return e.tasks[i].Clone(), true
	}
	return task.Task{}, false
}

// Add appends a new task. A blank title is rejected with ErrEmptyTitle and
// leaves the list unchanged.
func (e *Engine) Add(ctx context.Context, title, description string) (task.Task, error) {
	if strings.TrimSpace(title) == "" {
		return task.Task{}, ErrEmptyTitle
	}
	e.mu.Lock()
	t := task.New(e.ids.Next(), title, description, e.now())
	next := append(task.CloneAll(e.tasks), t)
	change, err := e.commitLocked(ctx, next, nil)
	e.mu.Unlock()
	if err != nil {
		return task.Task{}, err
	}
	e.logger.Debug("task added", "id", t.ID, "title", t.Title)
	e.notify(change)
	return t.Clone(), nil
}

// Remove deletes the task with id. A missing id is a no-op.
func (e *Engine) Remove(ctx context.Context, id int64) ([]task.Task, error) {
	return e.BatchRemove(ctx, []int64{id})
}

// BatchRemove deletes every task whose id is in ids and persists once.
func (e *Engine) BatchRemove(ctx context.Context, ids []int64) ([]task.Task, error) {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	e.mu.Lock()
	next := make([]task.Task, 0, len(e.tasks))
	var removed []int64
	for _, t := range e.tasks {
		if _, ok := drop[t.ID]; ok {
			removed = append(removed, t.ID)
			continue
		}
		next = append(next, t.Clone())
	}
	if len(removed) == 0 {
		out := task.CloneAll(e.tasks)
		e.mu.Unlock()
		return out, nil
	}
	change, err := e.commitLocked(ctx, next, removed)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("tasks removed", "ids", removed)
	e.notify(change)
	return task.CloneAll(change.Tasks), nil
}

// ToggleCompleted flips the completed flag of the task with id.
func (e *Engine) ToggleCompleted(ctx context.Context, id int64) ([]task.Task, error) {
	return e.modify(ctx, id, func(t *task.Task) { t.Completed = !t.Completed })
}

// ToggleImportant flips the important flag of the task with id.
func (e *Engine) ToggleImportant(ctx context.Context, id int64) ([]task.Task, error) {
	return e.modify(ctx, id, func(t *task.Task) { t.Important = !t.Important })
}

// Update replaces the stored record with the same id by t, after trimming.
// The stored id and creation time are kept. Invalid records are rejected
// and a missing id is a no-op. This is the only way steps change.
func (e *Engine) Update(ctx context.Context, t task.Task) ([]task.Task, error) {
	t = task.Normalize(t)
	if err := task.Validate(t); err != nil {
		return nil, err
	}
	return e.modify(ctx, t.ID, func(stored *task.Task) {
		createdAt := stored.CreatedAt
		*stored = t
		stored.CreatedAt = createdAt
	})
}

func (e *Engine) modify(ctx context.Context, id int64, fn func(*task.Task)) ([]task.Task, error) {
	e.mu.Lock()
	i := indexOf(e.tasks, id)
	if i < 0 {
		out := task.CloneAll(e.tasks)
		e.mu.Unlock()
		return out, nil
	}
	next := task.CloneAll(e.tasks)
	fn(&next[i])
	next[i].ID = id
	change, err := e.commitLocked(ctx, next, nil)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("task updated", "id", id)
	e.notify(change)
	return task.CloneAll(change.Tasks), nil
}

// commitLocked persists next and, only once that succeeded, makes it the
// authoritative list. Callers hold e.mu.
func (e *Engine) commitLocked(ctx context.Context, next []task.Task, removed []int64) (Change, error) {
	if e.storage == nil {
		return Change{}, ErrNoStorage
	}
	if err := e.storage.Save(ctx, next); err != nil {
		e.logger.Error("saving tasks failed", "err", err)
		return Change{}, fmt.Errorf("app: save tasks: %w", err)
	}
	e.tasks = next
	return Change{Tasks: task.CloneAll(next), Removed: removed}, nil
}

// Subscribe registers fn to run after every committed change. The returned
// func unregisters it.
func (e *Engine) Subscribe(fn func(Change)) (cancel func()) {
	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.subMu.Unlock()
	return func() {
		e.subMu.Lock()
		delete(e.subs, id)
		e.subMu.Unlock()
	}
}

func (e *Engine) notify(c Change) {
	e.subMu.Lock()
	fns := make([]func(Change), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

func indexOf(tasks []task.Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func missing(prev, next []task.Task) []int64 {
	present := make(map[int64]struct{}, len(next))
	for _, t := range next {
		present[t.ID] = struct{}{}
	}
	var gone []int64
	for _, t := range prev {
		if _, ok := present[t.ID]; !ok {
			gone = append(gone, t.ID)
		}
	}
	return gone
}
