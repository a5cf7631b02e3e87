package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/dianyike/Todo-Desktop/internal/reminder"
	"github.com/dianyike/Todo-Desktop/internal/task"
)

func TestSetThemeFallsBackToDark(t *testing.T) {
	f := NewFormatter(true, "mauve")
	if f.Theme() != "dark" {
		t.Errorf("unknown theme should fall back to dark, got %s", f.Theme())
	}

	f.SetTheme("light")
	if f.Theme() != "light" {
		t.Errorf("SetTheme(light) not applied: %s", f.Theme())
	}
}

func TestGlamourStyle(t *testing.T) {
	if got := NewFormatter(true, "light").GlamourStyle(); got != "light" {
		t.Errorf("GlamourStyle = %s, want light", got)
	}
	if got := NewFormatter(false, "dark").GlamourStyle(); got != "notty" {
		t.Errorf("uncolored GlamourStyle = %s, want notty", got)
	}
}

func TestFormatTaskPlain(t *testing.T) {
	f := NewFormatter(false, "dark")

	pending := task.Task{Title: "Buy milk", Category: "life"}
	got := f.FormatTask(2, pending)
	if got != "  2. ○ Buy milk [life]" {
		t.Errorf("pending task = %q", got)
	}

	remind := time.Date(2025, 6, 4, 18, 0, 0, 0, time.Local)
	pending.RemindAt = &remind
	got = f.FormatTask(2, pending)
	if !strings.Contains(got, "⏰ 06-04 18:00") {
		t.Errorf("reminder annotation missing: %q", got)
	}

	doneAt := time.Date(2025, 6, 3, 9, 30, 0, 0, time.Local)
	done := task.Task{Title: "Pay rent", Category: "life", Completed: true, CompletedAt: &doneAt}
	got = f.FormatTask(1, done)
	if !strings.HasPrefix(got, "  1. ✓ Pay rent") || !strings.Contains(got, "done 06-03 09:30") {
		t.Errorf("completed task = %q", got)
	}
}

func TestFormatTaskListPlain(t *testing.T) {
	f := NewFormatter(false, "dark")

	got := f.FormatTaskList("All tasks", nil)
	if !strings.Contains(got, "All tasks (0)") || !strings.Contains(got, "nothing here") {
		t.Errorf("empty list = %q", got)
	}

	tasks := []task.Task{
		{Title: "one", Category: "general"},
		{Title: "two", Category: "work"},
	}
	got = f.FormatTaskList("All tasks", tasks)
	if !strings.Contains(got, "All tasks (2)") ||
		!strings.Contains(got, "  1. ○ one [general]") ||
		!strings.Contains(got, "  2. ○ two [work]") {
		t.Errorf("list = %q", got)
	}
}

func TestFormatNotificationPlain(t *testing.T) {
	f := NewFormatter(false, "dark")
	r := reminder.Reminder{
		TaskID:    "id",
		TaskTitle: "Stand-up meeting",
		RemindAt:  time.Date(2025, 6, 4, 9, 30, 0, 0, time.Local),
		Notified:  true,
	}

	got := f.FormatNotification(r, false)
	if !strings.Contains(got, "Task Reminder") ||
		!strings.Contains(got, "Stand-up meeting") ||
		!strings.Contains(got, "09:30") {
		t.Errorf("notification = %q", got)
	}
	if strings.Contains(got, "\a") {
		t.Error("bell emitted while disabled")
	}

	if got := f.FormatNotification(r, true); !strings.HasPrefix(got, "\a") {
		t.Error("bell missing while enabled")
	}
}
