package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/models"
)

const icsDateLayout = "20060102"

// ExportTaskICS serves a single task as an all-day iCalendar event, so a due
// date can be dropped into an external calendar.
func (h *Handlers) ExportTaskICS(w http.ResponseWriter, r *http.Request) {
	task, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	ics, err := buildTaskICS(task, h.now())
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="task.ics"`)
	w.Write([]byte(ics))
}

// buildTaskICS builds a one-event calendar for the task's due date. The
// event spans the whole day; DTEND is exclusive per RFC 5545.
func buildTaskICS(t models.Task, now time.Time) (string, error) {
	if t.DueDate.IsZero() {
		return "", fmt.Errorf("%w: task has no due date to export", models.ErrValidation)
	}

	start := time.Date(t.DueDate.Year, t.DueDate.Month, t.DueDate.Day, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//taskboard//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + escapeICSText(fmt.Sprintf("task-%s@taskboard", t.ID)),
		"DTSTAMP:" + now.UTC().Format("20060102T150405Z"),
		"SUMMARY:" + escapeICSText(t.Title),
		"DTSTART;VALUE=DATE:" + start.Format(icsDateLayout),
		"DTEND;VALUE=DATE:" + end.Format(icsDateLayout),
	}
	if body := strings.TrimSpace(t.Body); body != "" {
		lines = append(lines, "DESCRIPTION:"+escapeICSText(body))
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR", "")

	return strings.Join(lines, "\r\n"), nil
}

func escapeICSText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}
