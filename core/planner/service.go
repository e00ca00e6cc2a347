package planner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/storage/mirror"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrTaskNotFound = errors.New("task not found")
	ErrItemNotFound = errors.New("schedule item not found")
	ErrEmptyTitle   = errors.New("a title is required")
)

type (
	Service interface {
		Tasks() []Task
		AddTask(ctx context.Context, text string) (Task, error)
		ToggleTask(ctx context.Context, id string) (Task, error)
		DeleteTask(ctx context.Context, id string) error

		Schedule() []ScheduleItem
		AddScheduleItem(ctx context.Context, title, timeSlot string) (ScheduleItem, error)
		DeleteScheduleItem(ctx context.Context, id string) error
	}

	service struct {
		tasks    *mirror.Collection[Task]
		schedule *mirror.Collection[ScheduleItem]
	}
)

func NewService(tasks *mirror.Collection[Task], schedule *mirror.Collection[ScheduleItem]) Service {
	return &service{tasks: tasks, schedule: schedule}
}

func Load(ctx context.Context, store core.KVStore, log core.Logger) Service {
	return NewService(
		mirror.LoadCollection[Task](ctx, store, core.KeyTasks, log),
		mirror.LoadCollection[ScheduleItem](ctx, store, core.KeySchedule, log),
	)
}

func (svc *service) Tasks() []Task { return svc.tasks.Items() }

func (svc *service) AddTask(ctx context.Context, text string) (Task, error) {
	text = core.CleanString(text)
	if text == "" {
		return Task{}, core.NewValidationError(ErrEmptyTitle, core.FieldError{Field: "text", Error: ErrEmptyTitle.Error()})
	}

	task := Task{ID: uuid.NewString(), Text: text, Completed: false}
	if err := svc.tasks.Replace(ctx, func(tasks []Task) []Task {
		return append(tasks, task)
	}); err != nil {
		return Task{}, err
	}
	return task, nil
}

// ToggleTask flips Completed in place; toggling twice restores the original value.
func (svc *service) ToggleTask(ctx context.Context, id string) (Task, error) {
	var toggled Task
	found := false
	err := svc.tasks.Replace(ctx, func(tasks []Task) []Task {
		for i, task := range tasks {
			if task.ID == id {
				tasks[i].Completed = !task.Completed
				toggled = tasks[i]
				found = true
				break
			}
		}
		return tasks
	})
	if err != nil {
		return Task{}, err
	}
	if !found {
		return Task{}, ErrTaskNotFound
	}
	return toggled, nil
}

func (svc *service) DeleteTask(ctx context.Context, id string) error {
	found := false
	err := svc.tasks.Replace(ctx, func(tasks []Task) []Task {
		next := tasks[:0]
		for _, task := range tasks {
			if task.ID == id {
				found = true
				continue
			}
			next = append(next, task)
		}
		return next
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrTaskNotFound
	}
	return nil
}

func (svc *service) Schedule() []ScheduleItem { return svc.schedule.Items() }

// AddScheduleItem records an entry for the current weekday; an empty time
// slot defaults to "TBD".
func (svc *service) AddScheduleItem(ctx context.Context, title, timeSlot string) (ScheduleItem, error) {
	title = core.CleanString(title)
	if title == "" {
		return ScheduleItem{}, core.NewValidationError(ErrEmptyTitle, core.FieldError{Field: "title", Error: ErrEmptyTitle.Error()})
	}
	timeSlot = core.CleanString(timeSlot)
	if timeSlot == "" {
		timeSlot = "TBD"
	}

	item := ScheduleItem{
		ID:    uuid.NewString(),
		Day:   nowFunc().Weekday().String(),
		Title: title,
		Time:  timeSlot,
	}
	if err := svc.schedule.Replace(ctx, func(items []ScheduleItem) []ScheduleItem {
		return append(items, item)
	}); err != nil {
		return ScheduleItem{}, err
	}
	return item, nil
}

func (svc *service) DeleteScheduleItem(ctx context.Context, id string) error {
	found := false
	err := svc.schedule.Replace(ctx, func(items []ScheduleItem) []ScheduleItem {
		next := items[:0]
		for _, item := range items {
			if item.ID == id {
				found = true
				continue
			}
			next = append(next, item)
		}
		return next
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrItemNotFound
	}
	return nil
}
