package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks user-correctable input errors raised at the edit
// boundary. Handlers map it to a 400 response.
var ErrValidation = errors.New("validation error")

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority coerces a raw form value to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("%w: priority must be 'low', 'medium', or 'high'", ErrValidation)
}

// Status of a task; the three kanban columns.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

// ParseStatus coerces a raw form value to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: status must be 'todo', 'inprogress', or 'done'", ErrValidation)
}

// Subtask is a named checklist item owned by exactly one task. Order within
// the task is meaningful and preserved.
type Subtask struct {
	Text string `json:"text"`
	Done bool   `json:"completed"`
}

// Task is the sole persistent entity. JSON field names match the persisted
// record layout so existing collections round-trip unchanged.
type Task struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Priority Priority  `json:"priority"`
	Status   Status    `json:"status"`
	DueDate  Date      `json:"dueDate"`
	Subtasks []Subtask `json:"subtasks"`
}

// Validate checks the invariants every persisted task must hold.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if t.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrValidation)
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	return nil
}

// Clone returns a deep copy, so repository snapshots cannot be mutated by
// callers.
func (t Task) Clone() Task {
	c := t
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return c
}

// SubtaskProgress returns the completed-subtask percentage, rounded to the
// nearest whole percent. Tasks without subtasks report zero.
func (t Task) SubtaskProgress() int {
	if len(t.Subtasks) == 0 {
		return 0
	}
	done := 0
	for _, st := range t.Subtasks {
		if st.Done {
			done++
		}
	}
	return (done*100 + len(t.Subtasks)/2) / len(t.Subtasks)
}

// PruneSubtasks drops subtasks with blank text, preserving the order of the
// remaining ones. Blank rows are never persisted.
func (t *Task) PruneSubtasks() {
	kept := t.Subtasks[:0]
	for _, st := range t.Subtasks {
		if strings.TrimSpace(st.Text) != "" {
			kept = append(kept, st)
		}
	}
	t.Subtasks = kept
}
