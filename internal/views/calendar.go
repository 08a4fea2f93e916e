package views

import (
	"time"

	"taskboard/internal/models"
	"taskboard/internal/query"
)

// StatusCounts aggregates a day's tasks by status. The calendar shows these
// as indicators instead of enumerating tasks.
type StatusCounts struct {
	Todo       int
	InProgress int
	Done       int
}

// Total returns the number of tasks behind the indicators.
func (c StatusCounts) Total() int {
	return c.Todo + c.InProgress + c.Done
}

// CalendarCell is one rendered day.
type CalendarCell struct {
	Day     int
	Date    string
	InMonth bool
	Today   bool
	Counts  StatusCounts
}

// CalendarView is the monthly grid plus its navigation state.
type CalendarView struct {
	Year      int
	Month     time.Month
	Label     string
	PrevMonth string
	NextMonth string
	Weekdays  []string
	Cells     []CalendarCell
}

// BuildCalendarView lays out the month and attaches per-day status counts
// for the tasks due inside it.
func BuildCalendarView(tasks []models.Task, year int, month time.Month, today models.Date) CalendarView {
	inMonth := query.Apply(tasks, query.ByMonth(year, month))

	counts := make(map[models.Date]StatusCounts)
	for _, t := range inMonth {
		c := counts[t.DueDate]
		switch t.Status {
		case models.StatusTodo:
			c.Todo++
		case models.StatusInProgress:
			c.InProgress++
		case models.StatusDone:
			c.Done++
		}
		counts[t.DueDate] = c
	}

	grid := query.MonthGrid(year, month)
	cells := make([]CalendarCell, 0, len(grid))
	for _, g := range grid {
		cell := CalendarCell{
			Day:     g.Day,
			Date:    g.Date.String(),
			InMonth: g.InMonth,
			Today:   g.InMonth && g.Date.Equal(today),
		}
		if g.InMonth {
			cell.Counts = counts[g.Date]
		}
		cells = append(cells, cell)
	}

	anchor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return CalendarView{
		Year:      year,
		Month:     month,
		Label:     anchor.Format("January 2006"),
		PrevMonth: anchor.AddDate(0, -1, 0).Format("2006-01"),
		NextMonth: anchor.AddDate(0, 1, 0).Format("2006-01"),
		Weekdays:  []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Cells:     cells,
	}
}
