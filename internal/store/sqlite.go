package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"taskboard/internal/models"
)

// snapshotKey is the single logical key the task collection lives under.
const snapshotKey = "tasks"

// SQLiteStore implements the Store interface using SQLite. The collection is
// persisted as one JSON document in a key/value snapshot table, so a save is
// a single atomic upsert and the record layout matches the serialized task
// sequence exactly.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given database path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadTasks reads the persisted collection. A missing or malformed record
// yields an empty collection: losing the snapshot must never take the app
// down with it. Legacy records get missing ids and subtask lists backfilled.
func (s *SQLiteStore) LoadTasks() ([]models.Task, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE key = ?`, snapshotKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		return []models.Task{}, nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	for i := range tasks {
		backfill(&tasks[i])
	}
	return tasks, nil
}

// SaveTasks replaces the persisted collection with the given one.
func (s *SQLiteStore) SaveTasks(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, snapshotKey, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// backfill repairs fields older records may be missing.
func backfill(t *models.Task) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Subtasks == nil {
		t.Subtasks = []models.Subtask{}
	}
}
