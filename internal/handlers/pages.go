package handlers

import (
	"net/http"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/query"
	"taskboard/internal/views"
)

// ListPage renders the flat list view, filtered by the selected date plus
// the priority/status toggles.
func (h *Handlers) ListPage(w http.ResponseWriter, r *http.Request) {
	date := h.today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		if parsed, err := models.ParseDate(raw); err == nil {
			date = parsed
		}
	}

	priority := r.URL.Query().Get("priority")
	if priority == "" {
		priority = query.AnyPriority
	}
	status := r.URL.Query().Get("status")
	if status == "" {
		status = query.AnyStatus
	}

	view := views.BuildListView(h.repo.All(), views.ListState{
		Date:     date,
		Priority: priority,
		Status:   status,
	})
	h.render(w, "list.html", view)
}

// CalendarPage renders the monthly grid with per-day status indicators.
func (h *Handlers) CalendarPage(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	year, month := today.Year, today.Month
	if raw := r.URL.Query().Get("month"); raw != "" {
		if parsed, err := time.Parse("2006-01", raw); err == nil {
			year, month = parsed.Year(), parsed.Month()
		}
	}

	view := views.BuildCalendarView(h.repo.All(), year, month, today)
	h.render(w, "calendar.html", view)
}

// DailyPage renders a week of per-day task lists with quick-add slots. The
// week query parameter is any date within the wanted week; it is normalized
// to that week's Monday.
func (h *Handlers) DailyPage(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	weekStart := today.StartOfWeek()
	if raw := r.URL.Query().Get("week"); raw != "" {
		if parsed, err := models.ParseDate(raw); err == nil {
			weekStart = parsed.StartOfWeek()
		}
	}

	view := views.BuildDailyView(h.repo.All(), weekStart, today)
	h.render(w, "daily.html", view)
}

// KanbanPage renders the status board under the selected date-range filter.
func (h *Handlers) KanbanPage(w http.ResponseWriter, r *http.Request) {
	mode := query.ParseBoardRange(r.URL.Query().Get("range"))
	view := views.BuildKanbanView(h.repo.All(), mode, h.today())
	h.render(w, "kanban.html", view)
}
