package views

import (
	"time"

	"taskboard/internal/models"
)

// displayDate formats a date for user-facing labels, e.g. "June 3, 2024".
func displayDate(d models.Date) string {
	return asTime(d).Format("January 2, 2006")
}

// weekdayName returns the full weekday name, e.g. "Monday".
func weekdayName(d models.Date) string {
	return asTime(d).Format("Monday")
}

// asTime builds a time.Time from the date's components for formatting only.
func asTime(d models.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
