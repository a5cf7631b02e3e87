package task

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an operation references a task id that
// is not in the store.
var ErrNotFound = errors.New("task not found")

// Store provides SQLite-backed storage for tasks.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the SQLite database at dbPath and
// ensures the tasks table exists.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: dbPath}, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT    PRIMARY KEY,
			title        TEXT    NOT NULL,
			category     TEXT    NOT NULL DEFAULT 'general',
			completed    INTEGER NOT NULL DEFAULT 0,
			remind_at    TEXT,
			created_at   TEXT    NOT NULL,
			completed_at TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Add inserts a new task.
func (s *Store) Add(t *Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, title, category, completed, remind_at, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Category, boolToInt(t.Completed),
		formatOptTime(t.RemindAt), t.CreatedAt.Format(time.RFC3339),
		formatOptTime(t.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Filter narrows the result of List. Zero value means "everything".
type Filter struct {
	Category  string // exact category match; empty matches all
	Completed *bool  // nil matches both states
	Search    string // case-insensitive substring match on title
}

// List returns tasks matching the filter, oldest first.
func (s *Store) List(f Filter) ([]Task, error) {
	query := `
		SELECT id, title, category, completed, remind_at, created_at, completed_at
		FROM tasks`
	var clauses []string
	var args []interface{}

	if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	if f.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, boolToInt(*f.Completed))
	}
	if f.Search != "" {
		clauses = append(clauses, "title LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// Get returns a single task by ID.
func (s *Store) Get(id string) (*Task, error) {
	row := s.db.QueryRow(`
		SELECT id, title, category, completed, remind_at, created_at, completed_at
		FROM tasks WHERE id = ?
	`, id)

	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// Rename changes a task's title.
func (s *Store) Rename(id, title string) error {
	if title == "" {
		return fmt.Errorf("task title must not be empty")
	}
	return s.exec(id, `UPDATE tasks SET title = ? WHERE id = ?`, title, id)
}

// SetCategory changes a task's category.
func (s *Store) SetCategory(id, category string) error {
	if category == "" {
		category = CategoryGeneral
	}
	return s.exec(id, `UPDATE tasks SET category = ? WHERE id = ?`, category, id)
}

// SetRemindAt schedules (or reschedules) a task's reminder time.
func (s *Store) SetRemindAt(id string, at time.Time) error {
	return s.exec(id, `UPDATE tasks SET remind_at = ? WHERE id = ?`,
		at.Format(time.RFC3339), id)
}

// ClearRemindAt removes a task's reminder time.
func (s *Store) ClearRemindAt(id string) error {
	return s.exec(id, `UPDATE tasks SET remind_at = NULL WHERE id = ?`, id)
}

// Complete marks a task as completed, stamping completed_at.
func (s *Store) Complete(id string) error {
	now := time.Now().Format(time.RFC3339)
	return s.exec(id, `UPDATE tasks SET completed = 1, completed_at = ? WHERE id = ?`, now, id)
}

// Uncomplete marks a task as not completed and clears completed_at.
func (s *Store) Uncomplete(id string) error {
	return s.exec(id, `UPDATE tasks SET completed = 0, completed_at = NULL WHERE id = ?`, id)
}

// Delete removes a task by ID.
func (s *Store) Delete(id string) error {
	return s.exec(id, `DELETE FROM tasks WHERE id = ?`, id)
}

// Upcoming returns pending tasks whose reminder time falls within
// [now, now+within], soonest first.
func (s *Store) Upcoming(within time.Duration) ([]Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, category, completed, remind_at, created_at, completed_at
		FROM tasks WHERE completed = 0 AND remind_at IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	// Stored remind_at strings carry whatever UTC offset was current
	// when written, so the window is applied after parsing, not in SQL.
	now := time.Now()
	cutoff := now.Add(within)
	var upcoming []Task
	for _, t := range tasks {
		if t.RemindAt == nil || t.RemindAt.Before(now) || t.RemindAt.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, t)
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].RemindAt.Before(*upcoming[j].RemindAt)
	})
	return upcoming, nil
}

// ClearCompleted deletes every completed task and reports how many
// were removed.
func (s *Store) ClearCompleted() (int, error) {
	result, err := s.db.Exec(`DELETE FROM tasks WHERE completed = 1`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear completed tasks: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}

// Stats summarizes the stored tasks.
type Stats struct {
	Total      int
	Completed  int
	Pending    int
	WithRemind int
	ByCategory map[string]int
}

// Stats returns counts over the whole collection.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{ByCategory: make(map[string]int)}

	rows, err := s.db.Query(`SELECT category, completed, remind_at IS NOT NULL FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var completed, hasRemind bool
		if err := rows.Scan(&category, &completed, &hasRemind); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		st.Total++
		if completed {
			st.Completed++
		} else {
			st.Pending++
		}
		if hasRemind {
			st.WithRemind++
		}
		st.ByCategory[category]++
	}
	return st, rows.Err()
}

// Backup copies the database file into dir with a timestamp suffix and
// returns the backup path.
func (s *Store) Backup(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Flush WAL contents into the main database file first.
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("failed to checkpoint database: %w", err)
	}

	src, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to open database file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s.backup_%s", filepath.Base(s.path), time.Now().Format("20060102_150405"))
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}
	return dstPath, nil
}

// ExportJSON writes the full task collection as indented JSON, the
// interchange format of earlier versions of this app.
func (s *Store) ExportJSON(path string) error {
	tasks, err := s.List(Filter{})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// FileInfo describes the database file on disk.
type FileInfo struct {
	Path     string
	Size     int64
	Modified time.Time
}

// FileInfo returns size and mtime of the database file.
func (s *Store) FileInfo() (*FileInfo, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat database file: %w", err)
	}
	return &FileInfo{Path: s.path, Size: fi.Size(), Modified: fi.ModTime()}, nil
}

// exec runs a single-row mutation and maps "no rows affected" to
// ErrNotFound.
func (s *Store) exec(id, query string, args ...interface{}) error {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	var tasks []Task
	for rows.Next() {
		var t Task
		var completed int
		var remindAt, completedAt sql.NullString
		var createdAt string

		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &completed,
			&remindAt, &createdAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		t.Completed = completed != 0
		t.RemindAt = parseOptTime(remindAt)
		t.CompletedAt = parseOptTime(completedAt)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			t.CreatedAt = ts.Local()
		}

		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row *sql.Row) (*Task, error) {
	var t Task
	var completed int
	var remindAt, completedAt sql.NullString
	var createdAt string

	if err := row.Scan(&t.ID, &t.Title, &t.Category, &completed,
		&remindAt, &createdAt, &completedAt); err != nil {
		return nil, err
	}

	t.Completed = completed != 0
	t.RemindAt = parseOptTime(remindAt)
	t.CompletedAt = parseOptTime(completedAt)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts.Local()
	}

	return &t, nil
}

func formatOptTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func parseOptTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	t = t.Local()
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
