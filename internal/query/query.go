// Package query derives view-specific task subsets. Everything here is a
// pure function over a repository snapshot; nothing is mutated.
package query

import (
	"time"

	"taskboard/internal/models"
)

// Sentinel filter values that pass every task.
const (
	AnyPriority = "all"
	AnyStatus   = "all-status"
)

// BoardRange is the coarse date-range filter on the kanban board.
type BoardRange string

const (
	RangeToday BoardRange = "today"
	RangeWeek  BoardRange = "current_week"
	RangeMonth BoardRange = "current_month"
	RangeAll   BoardRange = "all"
)

// ParseBoardRange coerces a raw query value, defaulting to today.
func ParseBoardRange(s string) BoardRange {
	switch BoardRange(s) {
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
		return BoardRange(s)
	}
	return RangeToday
}

// Predicate reports whether a task belongs in a derived subset.
type Predicate func(models.Task) bool

// Apply returns the tasks matching all predicates, preserving order.
func Apply(tasks []models.Task, preds ...Predicate) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		keep := true
		for _, p := range preds {
			if !p(t) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}

// ByDate matches tasks due exactly on the given date.
func ByDate(date models.Date) Predicate {
	return func(t models.Task) bool {
		return t.DueDate.Equal(date)
	}
}

// ByWeek matches tasks due within the seven days starting at weekStart
// (a Monday), inclusive of the closing Sunday.
func ByWeek(weekStart models.Date) Predicate {
	weekEnd := weekStart.AddDays(6)
	return func(t models.Task) bool {
		if t.DueDate.IsZero() {
			return false
		}
		return !t.DueDate.Before(weekStart) && !t.DueDate.After(weekEnd)
	}
}

// ByMonth matches tasks due within the given calendar month.
func ByMonth(year int, month time.Month) Predicate {
	first := models.Date{Year: year, Month: month, Day: 1}
	last := models.Date{Year: year, Month: month, Day: models.DaysInMonth(year, month)}
	return func(t models.Task) bool {
		if t.DueDate.IsZero() {
			return false
		}
		return !t.DueDate.Before(first) && !t.DueDate.After(last)
	}
}

// ByPriority matches tasks with the given priority; AnyPriority passes all.
func ByPriority(priority string) Predicate {
	if priority == AnyPriority || priority == "" {
		return func(models.Task) bool { return true }
	}
	return func(t models.Task) bool {
		return string(t.Priority) == priority
	}
}

// ByStatus matches tasks with the given status; AnyStatus passes all.
func ByStatus(status string) Predicate {
	if status == AnyStatus || status == "" {
		return func(models.Task) bool { return true }
	}
	return func(t models.Task) bool {
		return string(t.Status) == status
	}
}

// ByBoardRange matches tasks for the kanban board's date-range filter.
// Undated tasks appear only under RangeAll.
func ByBoardRange(mode BoardRange, today models.Date) Predicate {
	switch mode {
	case RangeToday:
		return func(t models.Task) bool {
			return !t.DueDate.IsZero() && t.DueDate.Equal(today)
		}
	case RangeWeek:
		week := ByWeek(today.StartOfWeek())
		return func(t models.Task) bool {
			return !t.DueDate.IsZero() && week(t)
		}
	case RangeMonth:
		month := ByMonth(today.Year, today.Month)
		return func(t models.Task) bool {
			return !t.DueDate.IsZero() && month(t)
		}
	default:
		return func(models.Task) bool { return true }
	}
}
