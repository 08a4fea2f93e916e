package views

import (
	"sort"

	"taskboard/internal/models"
	"taskboard/internal/query"
)

// weekOptionCount is the rolling selector span: the current week plus three
// future weeks.
const weekOptionCount = 4

// WeekOption is one entry in the week selector.
type WeekOption struct {
	Start    string
	Label    string
	Selected bool
}

// DayView is one day of the selected week with its tasks and the quick-add
// target date.
type DayView struct {
	Name  string
	Date  string
	Label string
	Today bool
	Tasks []models.Task
	Empty bool
}

// DailyView is the weekly day-by-day breakdown.
type DailyView struct {
	Weeks []WeekOption
	Days  []DayView
}

// BuildDailyView renders the week starting at weekStart (a Monday). Each
// day's tasks are sorted incomplete before done; ties keep insertion order,
// which stands in for due time since tasks carry no time component.
func BuildDailyView(tasks []models.Task, weekStart, today models.Date) DailyView {
	currentStart := today.StartOfWeek()

	weeks := make([]WeekOption, 0, weekOptionCount)
	for i := 0; i < weekOptionCount; i++ {
		start := currentStart.AddDays(i * 7)
		end := start.AddDays(6)
		weeks = append(weeks, WeekOption{
			Start:    start.String(),
			Label:    displayDate(start) + " - " + displayDate(end),
			Selected: start.Equal(weekStart),
		})
	}

	days := make([]DayView, 0, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDays(i)
		dayTasks := query.Apply(tasks, query.ByDate(date))
		sort.SliceStable(dayTasks, func(a, b int) bool {
			return dayTasks[a].Status != models.StatusDone && dayTasks[b].Status == models.StatusDone
		})
		days = append(days, DayView{
			Name:  weekdayName(date),
			Date:  date.String(),
			Label: displayDate(date),
			Today: date.Equal(today),
			Tasks: dayTasks,
			Empty: len(dayTasks) == 0,
		})
	}

	return DailyView{Weeks: weeks, Days: days}
}
