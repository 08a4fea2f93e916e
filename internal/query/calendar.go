package query

import (
	"time"

	"taskboard/internal/models"
)

// GridCell is one day cell of the monthly calendar grid. Cells from the
// neighboring months carry their day number but InMonth false.
type GridCell struct {
	Date    models.Date
	Day     int
	InMonth bool
}

// MonthGrid lays out the given month as complete calendar weeks, Sunday
// first. The leading cells come from the prior month (their count equals the
// weekday index of day 1), the trailing cells from the next month, so the
// cell count is always a multiple of seven and at most 42 (six rows).
func MonthGrid(year int, month time.Month) []GridCell {
	first := models.Date{Year: year, Month: month, Day: 1}
	days := models.DaysInMonth(year, month)
	lead := first.Weekday()

	total := lead + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cells := make([]GridCell, 0, total)
	for i := 0; i < total; i++ {
		d := first.AddDays(i - lead)
		cells = append(cells, GridCell{
			Date:    d,
			Day:     d.Day,
			InMonth: d.Year == year && d.Month == month,
		})
	}
	return cells
}
