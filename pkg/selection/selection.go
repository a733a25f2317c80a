// Package selection tracks the tasks marked for batch deletion.
package selection

import (
	"context"
	"sort"
	"sync"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/task"
)

// Remover deletes a set of tasks in one operation.
type Remover interface {
	BatchRemove(ctx context.Context, ids []int64) ([]task.Task, error)
}

// Manager holds batch mode state and the selected ids. The zero value is
// ready to use.
type Manager struct {
	mu       sync.Mutex
	active   bool
	selected map[int64]struct{}
}

// New returns an inactive manager with nothing selected.
func New() *Manager {
	return &Manager{}
}

// Enter turns batch mode on.
func (m *Manager) Enter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = true
}

// Exit turns batch mode off and clears the selection.
func (m *Manager) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
	m.selected = nil
}

// Active reports whether batch mode is on.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Toggle adds id to the selection or removes it if already present.
func (m *Manager) Toggle(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
		return
	}
	if m.selected == nil {
		m.selected = make(map[int64]struct{})
	}
	m.selected[id] = struct{}{}
}

// SelectAll replaces the selection with exactly the visible ids.
func (m *Manager) SelectAll(visible []int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	m.selected = make(map[int64]struct{}, len(visible))
	for _, id := range visible {
		m.selected[id] = struct{}{}
	}
}

// Clear empties the selection without leaving batch mode.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = nil
}

// IsSelected reports whether id is selected.
func (m *Manager) IsSelected(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.selected[id]
	return ok
}

// IDs returns the selected ids in ascending order.
func (m *Manager) IDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len is the number of selected ids.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.selected)
}

// Prune drops every selected id that is not in tasks.
func (m *Manager) Prune(tasks []task.Task) {
	present := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		present[t.ID] = struct{}{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.selected {
		if _, ok := present[id]; !ok {
			delete(m.selected, id)
		}
	}
}

// Attach keeps the selection consistent with engine: every committed change
// prunes ids that no longer exist. The returned func detaches.
func (m *Manager) Attach(engine *app.Engine) (detach func()) {
	m.Prune(engine.Tasks())
	return engine.Subscribe(func(c app.Change) {
		m.Prune(c.Tasks)
	})
}

// DeleteSelected removes the selected tasks through r and clears the
// selection. Nothing is cleared if r fails.
func (m *Manager) DeleteSelected(ctx context.Context, r Remover) ([]task.Task, error) {
	tasks, err := r.BatchRemove(ctx, m.IDs())
	if err != nil {
		return nil, err
	}
	m.Clear()
	return tasks, nil
}
