package planner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/storage/kv"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) (Service, *kv.InMemStore) {
	t.Helper()
	store := kv.NewInMemStore()
	return Load(context.Background(), store, nopLogger{}), store
}

func persistedTasks(t *testing.T, store *kv.InMemStore) []Task {
	t.Helper()
	raw, ok := store.Raw(core.KeyTasks)
	if !ok {
		t.Fatal("tasks not persisted")
	}
	var env struct {
		Data []Task `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("decoding persisted tasks: %v", err)
	}
	return env.Data
}

func TestAddTaskPersistsUncompleted(t *testing.T) {
	svc, store := setup(t)

	task, err := svc.AddTask(context.Background(), "revise chapter 2")
	if err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}
	if task.Completed {
		t.Error("new task is completed")
	}

	persisted := persistedTasks(t, store)
	if len(persisted) != 1 || persisted[0].ID != task.ID || persisted[0].Completed {
		t.Errorf("persisted tasks = %+v", persisted)
	}
}

func TestAddTaskRejectsBlank(t *testing.T) {
	svc, _ := setup(t)
	if _, err := svc.AddTask(context.Background(), "   "); !core.IsValidationError(err) {
		t.Errorf("AddTask(blank) error = %v, want validation error", err)
	}
}

func TestDoubleToggleIsIdempotent(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	task, _ := svc.AddTask(ctx, "revise chapter 2")

	first, err := svc.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask() failed: %v", err)
	}
	if !first.Completed {
		t.Error("first toggle did not complete the task")
	}
	second, err := svc.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask() failed: %v", err)
	}
	if second.Completed != task.Completed {
		t.Errorf("double toggle changed completed: got %v, want %v", second.Completed, task.Completed)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	svc, _ := setup(t)
	if _, err := svc.ToggleTask(context.Background(), "nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("ToggleTask(unknown) error = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	task, _ := svc.AddTask(ctx, "revise chapter 2")
	keep, _ := svc.AddTask(ctx, "lab report")

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask() failed: %v", err)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].ID != keep.ID {
		t.Errorf("tasks after delete = %+v", tasks)
	}
}

func TestAddScheduleItemDefaults(t *testing.T) {
	svc, _ := setup(t)

	nowFunc = func() time.Time { return time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC) } // a Wednesday
	defer func() { nowFunc = time.Now }()

	item, err := svc.AddScheduleItem(context.Background(), "Algorithms lecture", "")
	if err != nil {
		t.Fatalf("AddScheduleItem() failed: %v", err)
	}
	if item.Day != "Wednesday" {
		t.Errorf("Day = %q, want Wednesday", item.Day)
	}
	if item.Time != "TBD" {
		t.Errorf("Time = %q, want TBD", item.Time)
	}
}

func TestScheduleSurvivesReload(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	item, _ := svc.AddScheduleItem(ctx, "Algorithms lecture", "10am-12pm")

	reloaded := Load(ctx, store, nopLogger{})
	items := reloaded.Schedule()
	if len(items) != 1 || items[0].ID != item.ID || items[0].Time != "10am-12pm" {
		t.Errorf("reloaded schedule = %+v", items)
	}
}
