package repo

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/models"
	"taskboard/internal/store"
)

func setupTestRepo(t *testing.T) (*Repository, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, zap.NewNop()), s
}

func date(y int, m time.Month, d int) models.Date {
	return models.Date{Year: y, Month: m, Day: d}
}

func candidate(title string) models.Task {
	return models.Task{
		Title:    title,
		Priority: models.PriorityMedium,
		Status:   models.StatusTodo,
		DueDate:  date(2024, time.June, 5),
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	r, _ := setupTestRepo(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		task, err := r.Create(candidate("Task"))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if task.ID == "" {
			t.Fatal("expected a generated id")
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	r, _ := setupTestRepo(t)

	task, err := r.Create(models.Task{Title: "Minimal", DueDate: date(2024, time.June, 5)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("expected default priority medium, got %s", task.Priority)
	}
	if task.Status != models.StatusTodo {
		t.Errorf("expected default status todo, got %s", task.Status)
	}
	if task.Subtasks == nil {
		t.Error("expected an empty subtask list, got nil")
	}
}

func TestCreateRejectsInvalidCandidates(t *testing.T) {
	r, _ := setupTestRepo(t)

	if _, err := r.Create(models.Task{DueDate: date(2024, time.June, 5)}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation for missing title, got %v", err)
	}
	if _, err := r.Create(models.Task{Title: "No date"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation for missing date, got %v", err)
	}
	if len(r.All()) != 0 {
		t.Error("failed creations must not mutate the collection")
	}
}

func TestCreateDropsBlankSubtasks(t *testing.T) {
	r, _ := setupTestRepo(t)

	c := candidate("With subtasks")
	c.Subtasks = []models.Subtask{{Text: "keep"}, {Text: "  "}, {Text: "also keep"}}
	task, err := r.Create(c)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(task.Subtasks) != 2 {
		t.Errorf("expected 2 subtasks, got %d", len(task.Subtasks))
	}
}

func TestCreatePersistsBeforeReturning(t *testing.T) {
	r, s := setupTestRepo(t)

	task, err := r.Create(candidate("Durable"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	persisted, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != task.ID {
		t.Errorf("expected the created task to be persisted, got %+v", persisted)
	}
}

func TestUpdateMergesPartialPatch(t *testing.T) {
	r, _ := setupTestRepo(t)

	created, err := r.Create(candidate("Original"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newTitle := "Renamed"
	newDate := date(2024, time.June, 9)
	updated, err := r.Update(created.ID, Patch{Title: &newTitle, DueDate: &newDate})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "Renamed" {
		t.Errorf("expected title to change, got %s", updated.Title)
	}
	if !updated.DueDate.Equal(newDate) {
		t.Errorf("expected due date to change, got %v", updated.DueDate)
	}
	if updated.Priority != created.Priority || updated.Status != created.Status {
		t.Error("unset patch fields must keep their values")
	}
	if updated.ID != created.ID {
		t.Error("update must not change the id")
	}
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	r, _ := setupTestRepo(t)

	created, err := r.Create(candidate("Original"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	empty := ""
	if _, err := r.Update(created.ID, Patch{Title: &empty}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	current, err := r.Get(created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if current.Title != "Original" {
		t.Error("rejected update must leave the task unchanged")
	}
}

func TestUpdateUnknownID(t *testing.T) {
	r, _ := setupTestRepo(t)

	title := "Whatever"
	if _, err := r.Update("missing", Patch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesTask(t *testing.T) {
	r, s := setupTestRepo(t)

	first, _ := r.Create(candidate("First"))
	second, _ := r.Create(candidate("Second"))

	if err := r.Delete(first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	all := r.All()
	if len(all) != 1 || all[0].ID != second.ID {
		t.Errorf("expected only the second task to remain, got %+v", all)
	}

	persisted, _ := s.LoadTasks()
	if len(persisted) != 1 {
		t.Errorf("expected deletion to persist, got %d tasks", len(persisted))
	}

	if err := r.Delete(first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for repeated delete, got %v", err)
	}
}

func TestSetStatusDoneTwiceReopensAsInProgress(t *testing.T) {
	r, _ := setupTestRepo(t)

	created, _ := r.Create(candidate("Toggled"))

	task, err := r.SetStatus(created.ID, models.StatusDone)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if task.Status != models.StatusDone {
		t.Fatalf("expected done, got %s", task.Status)
	}

	task, err = r.SetStatus(created.ID, models.StatusDone)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if task.Status != models.StatusInProgress {
		t.Errorf("completing a done task must reopen it as inprogress, got %s", task.Status)
	}
}

func TestSetStatusSameStatusIsNoOp(t *testing.T) {
	rec := &recordingStore{}
	r := New(rec, zap.NewNop())

	created, _ := r.Create(candidate("Stationary"))
	savesAfterCreate := rec.saves

	task, err := r.SetStatus(created.ID, models.StatusTodo)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if task.Status != models.StatusTodo {
		t.Errorf("expected status to stay todo, got %s", task.Status)
	}
	if rec.saves != savesAfterCreate {
		t.Errorf("a no-op status change must not re-persist: %d saves before, %d after", savesAfterCreate, rec.saves)
	}

	if _, err := r.SetStatus(created.ID, models.StatusInProgress); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if rec.saves != savesAfterCreate+1 {
		t.Errorf("a real status change must persist once, got %d saves", rec.saves-savesAfterCreate)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	r, _ := setupTestRepo(t)

	created, _ := r.Create(candidate("Task"))
	if _, err := r.SetStatus(created.ID, "archived"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestToggleSubtask(t *testing.T) {
	r, _ := setupTestRepo(t)

	c := candidate("Checklist")
	c.Subtasks = []models.Subtask{{Text: "draft"}, {Text: "review"}}
	created, _ := r.Create(c)

	task, err := r.ToggleSubtask(created.ID, 1)
	if err != nil {
		t.Fatalf("ToggleSubtask failed: %v", err)
	}
	if !task.Subtasks[1].Done {
		t.Error("expected subtask 1 to be completed")
	}
	if task.Subtasks[0].Done {
		t.Error("expected subtask 0 to be untouched")
	}

	task, err = r.ToggleSubtask(created.ID, 1)
	if err != nil {
		t.Fatalf("ToggleSubtask failed: %v", err)
	}
	if task.Subtasks[1].Done {
		t.Error("expected the toggle to be reversible")
	}
}

func TestToggleSubtaskOutOfRange(t *testing.T) {
	r, _ := setupTestRepo(t)

	c := candidate("Checklist")
	c.Subtasks = []models.Subtask{{Text: "only"}}
	created, _ := r.Create(c)

	for _, index := range []int{-1, 1, 5} {
		if _, err := r.ToggleSubtask(created.ID, index); !errors.Is(err, ErrSubtaskIndex) {
			t.Errorf("expected ErrSubtaskIndex for index %d, got %v", index, err)
		}
	}

	current, _ := r.Get(created.ID)
	if current.Subtasks[0].Done {
		t.Error("failed toggles must not mutate existing subtasks")
	}
}

func TestAllReturnsIsolatedSnapshot(t *testing.T) {
	r, _ := setupTestRepo(t)

	c := candidate("Guarded")
	c.Subtasks = []models.Subtask{{Text: "draft"}}
	created, _ := r.Create(c)

	snapshot := r.All()
	snapshot[0].Title = "Tampered"
	snapshot[0].Subtasks[0].Done = true

	current, _ := r.Get(created.ID)
	if current.Title != "Guarded" {
		t.Error("mutating a snapshot changed the canonical title")
	}
	if current.Subtasks[0].Done {
		t.Error("mutating a snapshot changed the canonical subtasks")
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	r, _ := setupTestRepo(t)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := r.Create(candidate(title)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all := r.All()
	for i, title := range titles {
		if all[i].Title != title {
			t.Errorf("position %d: expected %s, got %s", i, title, all[i].Title)
		}
	}
}

func TestNewSurvivesFailingLoad(t *testing.T) {
	r := New(failingStore{}, zap.NewNop())
	if len(r.All()) != 0 {
		t.Error("expected an empty collection after a failing load")
	}

	// Mutations keep working in memory even when every save fails.
	task, err := r.Create(candidate("In memory only"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got, err := r.Get(task.ID); err != nil || got.Title != "In memory only" {
		t.Errorf("expected the task to be served from memory, got %+v (%v)", got, err)
	}
}

type recordingStore struct {
	saves int
}

func (r *recordingStore) LoadTasks() ([]models.Task, error) { return []models.Task{}, nil }

func (r *recordingStore) SaveTasks([]models.Task) error {
	r.saves++
	return nil
}

func (r *recordingStore) Close() error { return nil }

type failingStore struct{}

func (failingStore) LoadTasks() ([]models.Task, error) {
	return nil, errors.New("disk gone")
}

func (failingStore) SaveTasks([]models.Task) error {
	return errors.New("disk gone")
}

func (failingStore) Close() error { return nil }
