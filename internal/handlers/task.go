package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/editor"
	"taskboard/internal/models"
	"taskboard/internal/query"
)

// ListTasks returns the tasks matching the intersected query filters as JSON.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	preds := []query.Predicate{}

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		preds = append(preds, query.ByDate(date))
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		preds = append(preds, query.ByPriority(raw))
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		preds = append(preds, query.ByStatus(raw))
	}
	if raw := r.URL.Query().Get("range"); raw != "" {
		preds = append(preds, query.ByBoardRange(query.ParseBoardRange(raw), h.today()))
	}

	respondJSON(w, http.StatusOK, query.Apply(h.repo.All(), preds...))
}

// GetTask returns one task as JSON; the modal editor uses it to prefill.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// CreateTask creates a task from the modal editor form.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	submission, err := editor.ParseSubmission(r.PostForm)
	if err != nil {
		h.handleError(w, err)
		return
	}

	task, err := h.repo.Create(submission.NewTask())
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask merges the modal editor form into an existing task. The id
// never changes; unnamed fields keep their values.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	submission, err := editor.ParseSubmission(r.PostForm)
	if err != nil {
		h.handleError(w, err)
		return
	}

	task, err := h.repo.Update(id, submission.Patch())
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task from every view's next derivation.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveTask handles a kanban drag-drop. Dropping a card on the column it is
// already in is a no-op and must not re-persist, so the current status is
// checked before the repository is asked to move anything.
func (h *Handlers) MoveTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	status, err := models.ParseStatus(r.PostForm.Get("status"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	current, err := h.repo.Get(id)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if current.Status == status {
		respondJSON(w, http.StatusOK, current)
		return
	}

	task, err := h.repo.SetStatus(id, status)
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// ToggleTaskDone is the mark-complete affordance shared by the list and
// daily views. Completing an already-done task reopens it as inprogress.
func (h *Handlers) ToggleTaskDone(w http.ResponseWriter, r *http.Request) {
	task, err := h.repo.SetStatus(chi.URLParam(r, "id"), models.StatusDone)
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// ToggleSubtask flips one checklist item on a kanban card.
func (h *Handlers) ToggleSubtask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid subtask index")
		return
	}

	task, err := h.repo.ToggleSubtask(id, index)
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// QuickAdd creates a task from a day cell's abbreviated form: just a title
// and the cell's date, defaulting to medium priority and todo status.
func (h *Handlers) QuickAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	date, err := models.ParseDate(r.PostForm.Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.repo.Create(models.Task{
		Title:    r.PostForm.Get("title"),
		Priority: models.PriorityMedium,
		Status:   models.StatusTodo,
		DueDate:  date,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}
