package app

import (
	"time"

	"tableflip.dev/todo/pkg/task"
)

// Stats summarises the task list for progress displays.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Important int `json:"important"`
	Steps     int `json:"steps"`
	StepsDone int `json:"stepsDone"`
}

// Open is the number of tasks not yet completed.
func (s Stats) Open() int {
	return s.Total - s.Completed
}

// Stats computes counts over the current list.
func (e *Engine) Stats() Stats {
	return Summarize(e.Tasks())
}

// Summarize computes Stats for tasks.
func Summarize(tasks []task.Task) Stats {
	var s Stats
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
		if t.Important {
			s.Important++
		}
		s.Steps += len(t.Steps)
		s.StepsDone += t.StepsDone()
	}
	return s
}

// CreatedBetween returns the tasks created in [since, until], in list order.
func (e *Engine) CreatedBetween(since, until time.Time) []task.Task {
	if since.After(until) {
		since, until = until, since
	}
	lo, hi := since.UnixMilli(), until.UnixMilli()
	var out []task.Task
	for _, t := range e.Tasks() {
		if t.CreatedAt >= lo && t.CreatedAt <= hi {
			out = append(out, t)
		}
	}
	return out
}
