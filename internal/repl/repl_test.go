package repl

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dianyike/Todo-Desktop/internal/config"
	"github.com/dianyike/Todo-Desktop/internal/task"
	"github.com/dianyike/Todo-Desktop/internal/ui"
)

func TestParseCommand(t *testing.T) {
	r := &REPL{}

	tests := []struct {
		input     string
		isCommand bool
		command   string
		args      string
	}{
		{"/list", true, "/list", ""},
		{"/list pending", true, "/list", "pending"},
		{"/REMIND 3 14:30", true, "/remind", "3 14:30"},
		{"/search  buy milk ", true, "/search", "buy milk"},
		{"buy milk", false, "", ""},
		{"no /slash here", false, "", ""},
	}

	for _, tt := range tests {
		isCommand, command, args := r.parseCommand(tt.input)
		if isCommand != tt.isCommand || command != tt.command || args != tt.args {
			t.Errorf("parseCommand(%q) = (%v, %q, %q), want (%v, %q, %q)",
				tt.input, isCommand, command, args, tt.isCommand, tt.command, tt.args)
		}
	}
}

func TestListCommandShortcuts(t *testing.T) {
	store, err := task.NewStore(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	open, err := task.New("open one", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Add(open); err != nil {
		t.Fatal(err)
	}
	finished, err := task.New("finished one", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Add(finished); err != nil {
		t.Fatal(err)
	}
	if err := store.Complete(finished.ID); err != nil {
		t.Fatal(err)
	}

	r := &REPL{store: store, formatter: ui.NewFormatter(false, "dark")}

	if err := r.handleCommand("/pending", ""); err != nil {
		t.Fatalf("/pending failed: %v", err)
	}
	if len(r.listing) != 1 || r.listing[0] != open.ID {
		t.Errorf("/pending listing = %v", r.listing)
	}

	if err := r.handleCommand("/done", ""); err != nil {
		t.Fatalf("/done failed: %v", err)
	}
	if len(r.listing) != 1 || r.listing[0] != finished.ID {
		t.Errorf("/done listing = %v", r.listing)
	}

	if err := r.handleCommand("/all", ""); err != nil {
		t.Fatalf("/all failed: %v", err)
	}
	if len(r.listing) != 2 {
		t.Errorf("/all listing = %v", r.listing)
	}
}

func TestPromptClock(t *testing.T) {
	now := time.Date(2025, 6, 4, 9, 5, 0, 0, time.Local)

	r := &REPL{config: &config.Config{}}
	if got := r.prompt(now); got != "todo> " {
		t.Errorf("prompt without clock = %q", got)
	}

	r.config.UI.Clock = true
	if got := r.prompt(now); got != "09:05 todo> " {
		t.Errorf("prompt with clock = %q", got)
	}
}

func TestSplitCategory(t *testing.T) {
	tests := []struct {
		input    string
		title    string
		category string
	}{
		{"buy milk #life", "buy milk", "life"},
		{"buy milk #LIFE", "buy milk", "life"},
		{"plain task", "plain task", ""},
		{"#work", "#work", ""}, // a lone marker is a title, not a category
		{"ship release #work extra", "ship release #work extra", ""},
		{"trailing hash #", "trailing hash #", ""},
	}

	for _, tt := range tests {
		title, category := splitCategory(tt.input)
		if title != tt.title || category != tt.category {
			t.Errorf("splitCategory(%q) = (%q, %q), want (%q, %q)",
				tt.input, title, category, tt.title, tt.category)
		}
	}
}
