package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/models"
	"taskboard/internal/repo"
)

// Handlers holds the HTTP handlers and their dependencies. Mutations all
// route through the repository; handlers never touch storage directly.
type Handlers struct {
	repo      *repo.Repository
	templates *template.Template
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a new Handlers instance.
func New(r *repo.Repository, tmpl *template.Template, logger *zap.Logger) *Handlers {
	return &Handlers{
		repo:      r,
		templates: tmpl,
		logger:    logger,
		now:       time.Now,
	}
}

// today is the local calendar date all "current" derivations hang off.
func (h *Handlers) today() models.Date {
	return models.Today(h.now())
}

func (h *Handlers) render(w http.ResponseWriter, name string, data interface{}) {
	if h.templates == nil {
		// For testing without templates
		w.WriteHeader(http.StatusOK)
		return
	}
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
	}
}

func respondJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// handleError maps domain errors onto status codes. Validation and bad
// subtask indices are the caller's to fix; anything unexpected is logged.
func (h *Handlers) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrNotFound):
		respondError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, repo.ErrSubtaskIndex):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
