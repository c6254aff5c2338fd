package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateReminder(ctx context.Context, title, message string, at time.Time) (int64, error)
	GetReminder(ctx context.Context, id int64) (Reminder, error)
	ListReminders(ctx context.Context, filter ReminderFilter) ([]Reminder, error)
	SetReminderTriggered(ctx context.Context, id int64, triggered bool) error
	DeleteReminder(ctx context.Context, id int64) error

	CreateTodo(ctx context.Context, title string) (int64, error)
	ListTodos(ctx context.Context, filter TodoFilter) ([]Todo, error)
	SetTodoCompleted(ctx context.Context, id int64, completed bool) error
	DeleteTodo(ctx context.Context, id int64) error

	LogAppUsage(ctx context.Context, appName string, duration time.Duration) error
	UsageStats(ctx context.Context, since time.Time) ([]AppUsage, error)
}
