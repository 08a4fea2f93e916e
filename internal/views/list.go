// Package views turns repository snapshots into the presentation models the
// templates render. Builders are pure: same snapshot and UI state, same view.
package views

import (
	"taskboard/internal/models"
	"taskboard/internal/query"
)

// ListState is the list view's filter selection.
type ListState struct {
	Date     models.Date
	Priority string
	Status   string
}

// ListView is the flat list for a single date, narrowed by priority and
// status. Empty drives the placeholder row; the list never renders bare.
type ListView struct {
	Date     models.Date
	Priority string
	Status   string
	Tasks    []models.Task
	Empty    bool
}

// BuildListView intersects the date, priority, and status filters.
func BuildListView(tasks []models.Task, state ListState) ListView {
	matched := query.Apply(tasks,
		query.ByDate(state.Date),
		query.ByPriority(state.Priority),
		query.ByStatus(state.Status),
	)
	return ListView{
		Date:     state.Date,
		Priority: state.Priority,
		Status:   state.Status,
		Tasks:    matched,
		Empty:    len(matched) == 0,
	}
}
