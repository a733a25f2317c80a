// Package view projects the task list into what the user currently sees.
package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/todo/pkg/task"
)

// SortField names the attribute a projection is ordered by.
type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortImportant SortField = "important"
	SortTitle     SortField = "title"
)

// SortFields lists the fields in the order the UI cycles through them.
var SortFields = []SortField{SortCreatedAt, SortImportant, SortTitle}

// ParseSortField maps a user supplied name to a SortField. An empty name
// yields SortCreatedAt.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "createdat", "created", "created_at":
		return SortCreatedAt, nil
	case "important", "importance":
		return SortImportant, nil
	case "title":
		return SortTitle, nil
	}
	return SortCreatedAt, fmt.Errorf("view: unknown sort field %q", s)
}

// Next returns the field after f in SortFields, wrapping around.
func (f SortField) Next() SortField {
	for i, candidate := range SortFields {
		if candidate == f {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortCreatedAt
}

func (f SortField) String() string { return string(f) }

// Query is the user's current search and sort state.
type Query struct {
	Keyword   string
	Field     SortField
	Ascending bool
}

// DefaultQuery orders by creation time, oldest first, without a filter.
func DefaultQuery() Query {
	return Query{Field: SortCreatedAt, Ascending: true}
}

// Projector filters and sorts task lists. Titles are compared with the
// collation rules of Locale.
type Projector struct {
	Locale language.Tag
}

var defaultProjector = Projector{Locale: language.Und}

// Project applies q to tasks using the default projector.
func Project(tasks []task.Task, q Query) []task.Task {
	return defaultProjector.Project(tasks, q)
}

// Project returns the tasks matching q.Keyword ordered by q.Field. The input
// is never modified and the result holds copies.
func (p Projector) Project(tasks []task.Task, q Query) []task.Task {
	out := filter(tasks, q.Keyword)
	cmp := p.comparator(q.Field)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if !q.Ascending {
			c = -c
		}
		return c < 0
	})
	return out
}

// Matches reports whether t contains keyword in its title or description,
// ignoring case. A blank keyword matches everything.
func Matches(t task.Task, keyword string) bool {
	if strings.TrimSpace(keyword) == "" {
		return true
	}
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(t.Title), k) ||
		strings.Contains(strings.ToLower(t.Description), k)
}

func filter(tasks []task.Task, keyword string) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, keyword) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (p Projector) comparator(field SortField) func(a, b task.Task) int {
	switch field {
	case SortImportant:
		return func(a, b task.Task) int { return boolInt(a.Important) - boolInt(b.Important) }
	case SortTitle:
		// Collators keep internal buffers, so each projection gets its own.
		c := collate.New(p.Locale)
		return func(a, b task.Task) int { return c.CompareString(a.Title, b.Title) }
	default:
		return func(a, b task.Task) int {
			switch {
			case a.CreatedAt < b.CreatedAt:
				return -1
			case a.CreatedAt > b.CreatedAt:
				return 1
			}
			return 0
		}
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// EmptyState tells the presentation layer why a projection is empty.
type EmptyState int

const (
	// EmptyNone means the projection has rows.
	EmptyNone EmptyState = iota
	// EmptyNoTasks means the collection itself is empty.
	EmptyNoTasks
	// EmptyNoMatches means tasks exist but none match the search.
	EmptyNoMatches
)

// Empty classifies a projection result against the full list.
func Empty(all, projected []task.Task) EmptyState {
	switch {
	case len(projected) > 0:
		return EmptyNone
	case len(all) == 0:
		return EmptyNoTasks
	default:
		return EmptyNoMatches
	}
}

// Message is the text shown in place of an empty list.
func (s EmptyState) Message() string {
	switch s {
	case EmptyNoTasks:
		return "No tasks yet."
	case EmptyNoMatches:
		return "No tasks match your search."
	}
	return ""
}

// Label describes the ordering of q, e.g. "created, ascending".
func Label(q Query) string {
	var name string
	switch q.Field {
	case SortImportant:
		name = "importance"
	case SortTitle:
		name = "title"
	default:
		name = "created"
	}
	if q.Ascending {
		return name + ", ascending"
	}
	return name + ", descending"
}
