package store

import "taskboard/internal/models"

// Store is the durable home of the task collection. The whole collection is
// loaded and saved as a unit; the repository owns the in-memory copy.
type Store interface {
	// LoadTasks returns the persisted collection in its saved order. A
	// missing or unreadable record degrades to an empty collection rather
	// than an error; only infrastructure failures are reported.
	LoadTasks() ([]models.Task, error)

	// SaveTasks replaces the persisted collection.
	SaveTasks(tasks []models.Task) error

	// Lifecycle
	Close() error
}
