package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "kahya-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestReminderCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	at := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

	id, err := repo.CreateReminder(ctx, "toplantı", "hatırlat yarın 14:30 toplantı", at)
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	if id == 0 {
		t.Fatal("expected autoincrement id")
	}

	got, err := repo.GetReminder(ctx, id)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got.Title != "toplantı" || !got.ReminderTime.Equal(at) || got.Triggered {
		t.Fatalf("unexpected reminder: %#v", got)
	}

	if err := repo.SetReminderTriggered(ctx, id, true); err != nil {
		t.Fatalf("set triggered: %v", err)
	}
	triggered := true
	fired, err := repo.ListReminders(ctx, ReminderFilter{Triggered: &triggered})
	if err != nil {
		t.Fatalf("list reminders: %v", err)
	}
	if len(fired) != 1 || fired[0].ID != id {
		t.Fatalf("unexpected triggered list: %#v", fired)
	}

	if err := repo.DeleteReminder(ctx, id); err != nil {
		t.Fatalf("delete reminder: %v", err)
	}
	if _, err := repo.GetReminder(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestReminderTimeKeepsWallClock(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	ist := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2026, time.July, 11, 14, 30, 0, 0, ist)

	id, err := repo.CreateReminder(ctx, "toplantı", "", at)
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	got, err := repo.GetReminder(ctx, id)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if !got.ReminderTime.Equal(at) {
		t.Fatalf("instant changed: %v != %v", got.ReminderTime, at)
	}
	if clock := got.ReminderTime.Format("15:04"); clock != "14:30" {
		t.Fatalf("wall clock = %s, want 14:30", clock)
	}
	if day := got.ReminderTime.Format("02.01.2006"); day != "11.07.2026" {
		t.Fatalf("calendar day = %s, want 11.07.2026", day)
	}
}

func TestListRemindersOrderedByTime(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	later := time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC)
	sooner := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	if _, err := repo.CreateReminder(ctx, "later", "", later); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.CreateReminder(ctx, "sooner", "", sooner); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := repo.ListReminders(ctx, ReminderFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Title != "sooner" || all[1].Title != "later" {
		t.Fatalf("unexpected order: %#v", all)
	}
}

func TestTodoLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id, err := repo.CreateTodo(ctx, "alışveriş yap")
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}

	if err := repo.SetTodoCompleted(ctx, id, true); err != nil {
		t.Fatalf("complete todo: %v", err)
	}
	done := true
	completed, err := repo.ListTodos(ctx, TodoFilter{Completed: &done})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(completed) != 1 || completed[0].Title != "alışveriş yap" {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	if err := repo.DeleteTodo(ctx, id); err != nil {
		t.Fatalf("delete todo: %v", err)
	}
	if err := repo.DeleteTodo(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestAppUsageFoldsSessions(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.LogAppUsage(ctx, "firefox", 90*time.Second); err != nil {
		t.Fatalf("log usage: %v", err)
	}
	if err := repo.LogAppUsage(ctx, "firefox", 30*time.Second); err != nil {
		t.Fatalf("log usage: %v", err)
	}

	stats, err := repo.UsageStats(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("usage stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected one folded row, got %#v", stats)
	}
	if stats[0].SessionCount != 2 || stats[0].DurationSec != 120 {
		t.Fatalf("unexpected fold: %#v", stats[0])
	}
}

func TestMigrateDownRemovesTables(t *testing.T) {
	repo := setupRepo(t)
	if err := MigrateDown(repo.DB()); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if _, err := repo.ListReminders(context.Background(), ReminderFilter{}); err == nil {
		t.Fatal("expected query against dropped table to fail")
	}
}
