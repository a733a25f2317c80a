// Package task defines the task and step records owned by the engine.
package task

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrEmptyTitle is returned when a task title is empty after trimming.
	ErrEmptyTitle = errors.New("task: title required")
	// ErrEmptyStepTitle is returned when a step title is empty after trimming.
	ErrEmptyStepTitle = errors.New("task: step title required")
	// ErrDuplicateStepID is returned when two steps of one task share an id.
	ErrDuplicateStepID = errors.New("task: duplicate step id")
)

// Task is a single to-do item.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Important   bool   `json:"important,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
	Steps       []Step `json:"steps"`
}

// Step is a sub-checklist item. Ids are unique within the parent task only.
type Step struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// New builds a fresh, incomplete and unflagged task created at now.
func New(id int64, title, description string, now time.Time) Task {
	return Task{
		ID:          id,
		Title:       cleanText(title),
		Description: cleanText(description),
		CreatedAt:   now.UnixMilli(),
	}
}

// Created returns CreatedAt as a time.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.Steps != nil {
		t.Steps = append([]Step(nil), t.Steps...)
	}
	return t
}

// Normalize trims the title, description and step titles. Invalid UTF-8 is
// replaced with U+FFFD so the stored text is what JSON encoding writes.
func Normalize(t Task) Task {
	t = t.Clone()
	t.Title = cleanText(t.Title)
	t.Description = cleanText(t.Description)
	for i := range t.Steps {
		t.Steps[i].Title = cleanText(t.Steps[i].Title)
	}
	return t
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}

// Validate reports whether t may be stored. Callers normalize first.
func Validate(t Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	seen := make(map[int64]struct{}, len(t.Steps))
	for _, s := range t.Steps {
		if strings.TrimSpace(s.Title) == "" {
			return ErrEmptyStepTitle
		}
		if _, dup := seen[s.ID]; dup {
			return ErrDuplicateStepID
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// CloneAll deep-copies a task list.
func CloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// IDs returns the ids of tasks in order.
func IDs(tasks []Task) []int64 {
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
