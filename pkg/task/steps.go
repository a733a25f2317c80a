package task

import "strings"

// AddStep returns a copy of t with a new incomplete step appended. An empty
// title leaves t unchanged and returns ErrEmptyStepTitle.
func (t Task) AddStep(title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return t, ErrEmptyStepTitle
	}
	out := t.Clone()
	out.Steps = append(out.Steps, Step{ID: nextStepID(t.Steps), Title: title})
	return out, nil
}

// ToggleStep flips the completion of the step with the given id.
func (t Task) ToggleStep(id int64) Task {
	out := t.Clone()
	for i := range out.Steps {
		if out.Steps[i].ID == id {
			out.Steps[i].Completed = !out.Steps[i].Completed
			break
		}
	}
	return out
}

// RenameStep sets the title of the step with the given id.
func (t Task) RenameStep(id int64, title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return t, ErrEmptyStepTitle
	}
	out := t.Clone()
	for i := range out.Steps {
		if out.Steps[i].ID == id {
			out.Steps[i].Title = title
			break
		}
	}
	return out, nil
}

// RemoveStep drops the step with the given id.
func (t Task) RemoveStep(id int64) Task {
	out := t.Clone()
	kept := out.Steps[:0]
	for _, s := range out.Steps {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	out.Steps = kept
	if len(out.Steps) == 0 {
		out.Steps = nil
	}
	return out
}

// StepsDone returns how many steps are completed.
func (t Task) StepsDone() int {
	n := 0
	for _, s := range t.Steps {
		if s.Completed {
			n++
		}
	}
	return n
}

func nextStepID(steps []Step) int64 {
	var max int64
	for _, s := range steps {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}
