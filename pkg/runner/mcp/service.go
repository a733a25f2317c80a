// Package mcp provides the Model Context Protocol server integration for todo.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/task"
	"tableflip.dev/todo/pkg/view"
)

// Service adapts the task engine for the MCP server.
type Service struct {
	Engine    *app.Engine
	Projector view.Projector
}

// ErrTaskNotFound is returned when a task id is not in the list.
var ErrTaskNotFound = errors.New("task not found")

var errNoEngine = errors.New("engine is not configured")

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Completed   bool        `json:"completed"`
	Important   bool        `json:"important"`
	CreatedAt   int64       `json:"createdAt"`
	CreatedISO  string      `json:"created"`
	Steps       []task.Step `json:"steps,omitempty"`
	StepsDone   int         `json:"stepsDone,omitempty"`
}

// UpdateTaskOptions lists the fields update_task may change. Nil fields are
// left alone.
type UpdateTaskOptions struct {
	ID          int64
	Title       *string
	Description *string
	Completed   *bool
	Important   *bool
	Steps       *[]task.Step
}

// NewService builds a service over e.
func NewService(e *app.Engine) *Service {
	return &Service{Engine: e}
}

// ListTasks projects the list with keyword, sort field and direction.
func (s *Service) ListTasks(_ context.Context, keyword, sortField string, ascending bool) ([]TaskDTO, app.Stats, error) {
	if s.Engine == nil {
		return nil, app.Stats{}, errNoEngine
	}
	field, err := view.ParseSortField(sortField)
	if err != nil {
		return nil, app.Stats{}, err
	}
	all := s.Engine.Tasks()
	shown := s.Projector.Project(all, view.Query{Keyword: keyword, Field: field, Ascending: ascending})
	return toDTOs(shown), app.Summarize(all), nil
}

// AddTask creates a task.
func (s *Service) AddTask(ctx context.Context, title, description string) (*TaskDTO, error) {
	if s.Engine == nil {
		return nil, errNoEngine
	}
	t, err := s.Engine.Add(ctx, title, description)
	if err != nil {
		return nil, err
	}
	dto := toDTO(t)
	return &dto, nil
}

// TaskByID returns one task.
func (s *Service) TaskByID(_ context.Context, id int64) (*TaskDTO, error) {
	t, err := s.find(id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(t)
	return &dto, nil
}

// ToggleCompleted flips the completed flag of id.
func (s *Service) ToggleCompleted(ctx context.Context, id int64) (*TaskDTO, error) {
	return s.toggle(ctx, id, s.Engine.ToggleCompleted)
}

// ToggleImportant flips the important flag of id.
func (s *Service) ToggleImportant(ctx context.Context, id int64) (*TaskDTO, error) {
	return s.toggle(ctx, id, s.Engine.ToggleImportant)
}

func (s *Service) toggle(ctx context.Context, id int64, fn func(context.Context, int64) ([]task.Task, error)) (*TaskDTO, error) {
	if _, err := s.find(id); err != nil {
		return nil, err
	}
	if _, err := fn(ctx, id); err != nil {
		return nil, err
	}
	return s.TaskByID(ctx, id)
}

// UpdateTask applies opts through Engine.Update.
func (s *Service) UpdateTask(ctx context.Context, opts UpdateTaskOptions) (*TaskDTO, error) {
	t, err := s.find(opts.ID)
	if err != nil {
		return nil, err
	}
	if opts.Title != nil {
		t.Title = *opts.Title
	}
	if opts.Description != nil {
		t.Description = *opts.Description
	}
	if opts.Completed != nil {
		t.Completed = *opts.Completed
	}
	if opts.Important != nil {
		t.Important = *opts.Important
	}
	if opts.Steps != nil {
		t.Steps = *opts.Steps
	}
	if _, err := s.Engine.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.TaskByID(ctx, opts.ID)
}

// DeleteTasks removes ids in one batch and reports which ones existed.
func (s *Service) DeleteTasks(ctx context.Context, ids []int64) ([]int64, error) {
	if s.Engine == nil {
		return nil, errNoEngine
	}
	if len(ids) == 0 {
		return nil, errors.New("ids are required")
	}
	deleted := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.Engine.Get(id); ok {
			deleted = append(deleted, id)
		}
	}
	if _, err := s.Engine.BatchRemove(ctx, ids); err != nil {
		return nil, err
	}
	return deleted, nil
}

// Stats returns progress counts.
func (s *Service) Stats(_ context.Context) (app.Stats, error) {
	if s.Engine == nil {
		return app.Stats{}, errNoEngine
	}
	return s.Engine.Stats(), nil
}

func (s *Service) find(id int64) (task.Task, error) {
	if s.Engine == nil {
		return task.Task{}, errNoEngine
	}
	t, ok := s.Engine.Get(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return t, nil
}

func toDTOs(tasks []task.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toDTO(t))
	}
	return out
}

func toDTO(t task.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Important:   t.Important,
		CreatedAt:   t.CreatedAt,
		CreatedISO:  t.Created().UTC().Format(time.RFC3339),
		Steps:       t.Steps,
		StepsDone:   t.StepsDone(),
	}
}

// ParseIDs reads ids given either as JSON numbers or numeric strings.
func ParseIDs(raw []any) ([]int64, error) {
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := parseID(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func parseID(v any) (int64, error) {
	switch x := v.(type) {
	case float64:
		return int64(x), nil
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case string:
		var id int64
		if _, err := fmt.Sscan(strings.TrimSpace(x), &id); err != nil {
			return 0, fmt.Errorf("invalid task id %q", x)
		}
		return id, nil
	}
	return 0, fmt.Errorf("invalid task id %v", v)
}
