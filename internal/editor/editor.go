// Package editor is the task form boundary. It turns raw form field values
// into a validated submission the repository can consume; nothing here
// touches the collection itself.
package editor

import (
	"fmt"
	"net/url"
	"strings"

	"taskboard/internal/models"
	"taskboard/internal/repo"
)

// Submission is a validated task form. The same form backs both the create
// and edit flows of the shared modal.
type Submission struct {
	Title    string
	Body     string
	Priority models.Priority
	Status   models.Status
	DueDate  models.Date
	Subtasks []models.Subtask
}

// ParseSubmission validates raw form values. Title and a well-formed due
// date are required; unknown priority or status values are rejected rather
// than coerced silently. Subtask rows arrive as parallel subtask_text /
// subtask_done fields in displayed order; rows with blank text are dropped.
func ParseSubmission(values url.Values) (Submission, error) {
	title := strings.TrimSpace(values.Get("title"))
	if title == "" {
		return Submission{}, fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	rawDate := strings.TrimSpace(values.Get("due_date"))
	if rawDate == "" {
		return Submission{}, fmt.Errorf("%w: due date is required", models.ErrValidation)
	}
	dueDate, err := models.ParseDate(rawDate)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	priority := models.PriorityMedium
	if raw := values.Get("priority"); raw != "" {
		priority, err = models.ParsePriority(raw)
		if err != nil {
			return Submission{}, err
		}
	}

	status := models.StatusTodo
	if raw := values.Get("status"); raw != "" {
		status, err = models.ParseStatus(raw)
		if err != nil {
			return Submission{}, err
		}
	}

	return Submission{
		Title:    title,
		Body:     strings.TrimSpace(values.Get("body")),
		Priority: priority,
		Status:   status,
		DueDate:  dueDate,
		Subtasks: parseSubtasks(values),
	}, nil
}

// parseSubtasks zips the subtask rows. The done field carries the row index
// of each checked box, since unchecked checkboxes are absent from form data.
func parseSubtasks(values url.Values) []models.Subtask {
	texts := values["subtask_text"]
	checked := make(map[string]bool, len(values["subtask_done"]))
	for _, idx := range values["subtask_done"] {
		checked[idx] = true
	}

	subtasks := make([]models.Subtask, 0, len(texts))
	for i, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		subtasks = append(subtasks, models.Subtask{
			Text: text,
			Done: checked[fmt.Sprint(i)],
		})
	}
	return subtasks
}

// NewTask returns the creation candidate for the repository.
func (s Submission) NewTask() models.Task {
	return models.Task{
		Title:    s.Title,
		Body:     s.Body,
		Priority: s.Priority,
		Status:   s.Status,
		DueDate:  s.DueDate,
		Subtasks: s.Subtasks,
	}
}

// Patch returns the partial update for an edit. Every form field is present
// on the modal, so all of them are set; the task's id is untouched.
func (s Submission) Patch() repo.Patch {
	title := s.Title
	body := s.Body
	priority := s.Priority
	status := s.Status
	dueDate := s.DueDate
	subtasks := s.Subtasks
	return repo.Patch{
		Title:    &title,
		Body:     &body,
		Priority: &priority,
		Status:   &status,
		DueDate:  &dueDate,
		Subtasks: &subtasks,
	}
}
