package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateReminder(ctx context.Context, title, message string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (title, message, reminder_time, created_at)
		VALUES (?, ?, ?, ?)`,
		title, message, mustTime(at), mustTime(time.Now()),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetReminder(ctx context.Context, id int64) (Reminder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, message, reminder_time, triggered, created_at
		FROM reminders WHERE id = ?`, id)
	item, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reminder{}, ErrNotFound
		}
		return Reminder{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) ListReminders(ctx context.Context, filter ReminderFilter) ([]Reminder, error) {
	query := `SELECT id, title, message, reminder_time, triggered, created_at FROM reminders`
	args := make([]any, 0, 3)
	if filter.Triggered != nil {
		query += ` WHERE triggered = ?`
		args = append(args, boolInt(*filter.Triggered))
	}
	query += ` ORDER BY reminder_time ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reminder, 0)
	for rows.Next() {
		item, scanErr := scanReminder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SetReminderTriggered(ctx context.Context, id int64, triggered bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET triggered = ? WHERE id = ?`, boolInt(triggered), id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteReminder(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, title string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO todos (title, created_at) VALUES (?, ?)`,
		title, mustTime(time.Now()))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListTodos(ctx context.Context, filter TodoFilter) ([]Todo, error) {
	query := `SELECT id, title, completed, created_at FROM todos`
	args := make([]any, 0, 3)
	if filter.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, boolInt(*filter.Completed))
	}
	query += ` ORDER BY created_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		item, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SetTodoCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE todos SET completed = ? WHERE id = ?`, boolInt(completed), id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// LogAppUsage folds repeated sessions of the same application within the
// last day into a single row, matching the usage tracker's behavior.
func (r *SQLiteRepository) LogAppUsage(ctx context.Context, appName string, duration time.Duration) error {
	now := time.Now()
	cutoff := mustTime(now.AddDate(0, 0, -1))

	row := r.db.QueryRowContext(ctx, `
		SELECT id, session_count, duration FROM app_usage
		WHERE app_name = ? AND last_used >= ?`, appName, cutoff)

	var id int64
	var sessions, durationSec int
	err := row.Scan(&id, &sessions, &durationSec)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO app_usage (app_name, session_count, duration, last_used)
			VALUES (?, 1, ?, ?)`, appName, int(duration.Seconds()), mustTime(now))
		return err
	case err != nil:
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE app_usage SET session_count = ?, duration = ?, last_used = ? WHERE id = ?`,
		sessions+1, durationSec+int(duration.Seconds()), mustTime(now), id)
	return err
}

func (r *SQLiteRepository) UsageStats(ctx context.Context, since time.Time) ([]AppUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, app_name, session_count, duration, last_used FROM app_usage
		WHERE last_used >= ? ORDER BY duration DESC`, mustTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AppUsage, 0)
	for rows.Next() {
		var item AppUsage
		var lastUsed string
		if err := rows.Scan(&item.ID, &item.AppName, &item.SessionCount, &item.DurationSec, &lastUsed); err != nil {
			return nil, err
		}
		t, err := parseRequiredTime(lastUsed)
		if err != nil {
			return nil, err
		}
		item.LastUsed = t
		out = append(out, item)
	}
	return out, rows.Err()
}

// mustTime keeps the value's own offset so the wall clock a reminder was
// created with survives the round trip through the database.
func mustTime(v time.Time) string {
	return v.Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(s scanner) (Reminder, error) {
	var out Reminder
	var reminderTime, created string
	var triggered int
	if err := s.Scan(&out.ID, &out.Title, &out.Message, &reminderTime, &triggered, &created); err != nil {
		return Reminder{}, err
	}
	at, err := parseRequiredTime(reminderTime)
	if err != nil {
		return Reminder{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Reminder{}, err
	}
	out.ReminderTime = at
	out.Triggered = triggered == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanTodo(s scanner) (Todo, error) {
	var out Todo
	var created string
	var completed int
	if err := s.Scan(&out.ID, &out.Title, &completed, &created); err != nil {
		return Todo{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Todo{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
