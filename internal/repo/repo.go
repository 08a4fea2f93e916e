// Package repo holds the canonical in-memory task collection. It is the only
// component allowed to mutate or persist tasks; every other component works
// from read-only snapshots of All().
package repo

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/models"
	"taskboard/internal/store"
)

var (
	// ErrNotFound is returned for mutations referencing a stale or deleted id.
	ErrNotFound = errors.New("task not found")
	// ErrSubtaskIndex is returned when a subtask index is out of range.
	ErrSubtaskIndex = errors.New("subtask index out of range")
)

// Patch describes a partial task update. Nil fields are left unchanged.
type Patch struct {
	Title    *string
	Body     *string
	Priority *models.Priority
	Status   *models.Status
	DueDate  *models.Date
	Subtasks *[]models.Subtask
}

// Repository is the single source of truth for the task collection. Every
// successful mutation is persisted before it returns, so storage and memory
// never diverge within a session. Persistence failures are logged and the
// session continues in memory.
type Repository struct {
	mu     sync.RWMutex
	store  store.Store
	logger *zap.Logger
	tasks  []models.Task
}

// New loads the persisted collection into a new repository. A failing load
// degrades to an empty collection.
func New(s store.Store, logger *zap.Logger) *Repository {
	tasks, err := s.LoadTasks()
	if err != nil {
		logger.Error("failed to load task collection, starting empty", zap.Error(err))
		tasks = []models.Task{}
	}
	return &Repository{
		store:  s,
		logger: logger,
		tasks:  tasks,
	}
}

// All returns the collection in insertion order. The snapshot is deep-copied;
// callers must re-fetch after a mutation rather than hold onto it.
func (r *Repository) All() []models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Task, len(r.tasks))
	for i, t := range r.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the task with the given id.
func (r *Repository) Get(id string) (models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.tasks[i].Clone(), nil
}

// Create validates the candidate, assigns a fresh id, appends it to the
// collection, and persists. Blank subtask rows are discarded.
func (r *Repository) Create(candidate models.Task) (models.Task, error) {
	if candidate.Priority == "" {
		candidate.Priority = models.PriorityMedium
	}
	if candidate.Status == "" {
		candidate.Status = models.StatusTodo
	}
	if err := candidate.Validate(); err != nil {
		return models.Task{}, err
	}

	candidate.ID = uuid.NewString()
	candidate.PruneSubtasks()
	if candidate.Subtasks == nil {
		candidate.Subtasks = []models.Subtask{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append(r.tasks, candidate)
	r.persist()
	return candidate.Clone(), nil
}

// Update merges the patch into the task with the given id and persists.
// Unset patch fields leave the task unchanged.
func (r *Repository) Update(id string, patch Patch) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	merged := r.tasks[i].Clone()
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Body != nil {
		merged.Body = *patch.Body
	}
	if patch.Priority != nil {
		merged.Priority = *patch.Priority
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.DueDate != nil {
		merged.DueDate = *patch.DueDate
	}
	if patch.Subtasks != nil {
		merged.Subtasks = append([]models.Subtask{}, (*patch.Subtasks)...)
	}
	if err := merged.Validate(); err != nil {
		return models.Task{}, err
	}
	merged.PruneSubtasks()

	r.tasks[i] = merged
	r.persist()
	return merged.Clone(), nil
}

// Delete removes the task with the given id and persists.
func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.persist()
	return nil
}

// SetStatus moves a task to the given status. Marking an already-done task
// done again reopens it as inprogress rather than todo, so a completion
// toggle is reversible without losing the fact that work had started.
// Setting the status a task already has is otherwise a no-op and does not
// re-persist.
func (r *Repository) SetStatus(id string, status models.Status) (models.Task, error) {
	if _, err := models.ParseStatus(string(status)); err != nil {
		return models.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	current := r.tasks[i].Status
	switch {
	case status == models.StatusDone && current == models.StatusDone:
		r.tasks[i].Status = models.StatusInProgress
	case status == current:
		return r.tasks[i].Clone(), nil
	default:
		r.tasks[i].Status = status
	}

	r.persist()
	return r.tasks[i].Clone(), nil
}

// ToggleSubtask flips the completed flag of the subtask at the given
// position. Indices are positional within the task's current subtask
// sequence; an out-of-range index fails without mutating anything.
func (r *Repository) ToggleSubtask(id string, index int) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if index < 0 || index >= len(r.tasks[i].Subtasks) {
		return models.Task{}, fmt.Errorf("%w: %d", ErrSubtaskIndex, index)
	}

	r.tasks[i].Subtasks[index].Done = !r.tasks[i].Subtasks[index].Done
	r.persist()
	return r.tasks[i].Clone(), nil
}

// indexOf is called with the lock held.
func (r *Repository) indexOf(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist is called with the write lock held. A failed save is logged and
// the in-memory mutation stands; the collection keeps serving the session.
func (r *Repository) persist() {
	if err := r.store.SaveTasks(r.tasks); err != nil {
		r.logger.Error("failed to persist task collection", zap.Error(err))
	}
}
