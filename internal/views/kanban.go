package views

import (
	"taskboard/internal/models"
	"taskboard/internal/query"
)

// KanbanCard wraps a task with its subtask completion percentage for the
// card's progress bar.
type KanbanCard struct {
	Task     models.Task
	Progress int
}

// KanbanColumn is one status column of the board.
type KanbanColumn struct {
	Status models.Status
	Title  string
	Cards  []KanbanCard
}

// KanbanView is the three-column status board under a date-range filter.
type KanbanView struct {
	Range   query.BoardRange
	Columns []KanbanColumn
}

// BuildKanbanView groups the range-filtered tasks into the fixed
// todo/inprogress/done column order.
func BuildKanbanView(tasks []models.Task, mode query.BoardRange, today models.Date) KanbanView {
	matched := query.Apply(tasks, query.ByBoardRange(mode, today))

	columns := []KanbanColumn{
		{Status: models.StatusTodo, Title: "To Do", Cards: []KanbanCard{}},
		{Status: models.StatusInProgress, Title: "In Progress", Cards: []KanbanCard{}},
		{Status: models.StatusDone, Title: "Done", Cards: []KanbanCard{}},
	}
	index := map[models.Status]int{
		models.StatusTodo:       0,
		models.StatusInProgress: 1,
		models.StatusDone:       2,
	}

	for _, t := range matched {
		i, ok := index[t.Status]
		if !ok {
			continue
		}
		columns[i].Cards = append(columns[i].Cards, KanbanCard{
			Task:     t,
			Progress: t.SubtaskProgress(),
		})
	}

	return KanbanView{Range: mode, Columns: columns}
}
