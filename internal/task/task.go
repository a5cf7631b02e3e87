package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category values for tasks. The set is extensible: unknown category
// strings loaded from the database are kept as-is.
const (
	CategoryGeneral = "general"
	CategoryWork    = "work"
	CategoryLife    = "life"
	CategoryStudy   = "study"
	CategoryHealth  = "health"
)

// Categories returns the built-in category list in display order.
func Categories() []string {
	return []string{CategoryGeneral, CategoryWork, CategoryLife, CategoryStudy, CategoryHealth}
}

// Task represents a single tracked task.
//
// CompletedAt is nil exactly when Completed is false. The store's
// Complete/Uncomplete methods are the only writers of either field.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	RemindAt    *time.Time `json:"remind_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// New creates an incomplete task with a fresh ID. An empty category
// defaults to general.
func New(title, category string) (*Task, error) {
	if title == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}
	if category == "" {
		category = CategoryGeneral
	}
	return &Task{
		ID:        uuid.NewString(),
		Title:     title,
		Category:  category,
		CreatedAt: time.Now(),
	}, nil
}

func (t *Task) String() string {
	status := "○"
	if t.Completed {
		status = "✓"
	}
	return fmt.Sprintf("%s %s [%s]", status, t.Title, t.Category)
}
