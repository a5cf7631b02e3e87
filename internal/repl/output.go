package repl

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/dianyike/Todo-Desktop/internal/reminder"
	"github.com/dianyike/Todo-Desktop/internal/task"
)

func (r *REPL) displayWelcome() {
	count := 0
	if tasks, err := r.store.List(task.Filter{}); err == nil {
		count = len(tasks)
	}
	fmt.Print(r.formatter.FormatWelcome(r.store.Path(), count))
}

func (r *REPL) displayError(err error) {
	r.status.Hide()
	fmt.Println(r.formatter.FormatError(err))
	fmt.Println()
}

func (r *REPL) displayInfo(msg string) {
	fmt.Println(r.formatter.FormatInfo(msg))
	fmt.Println()
}

func (r *REPL) displaySystem(msg string) {
	fmt.Println(r.formatter.FormatSystem(msg))
	fmt.Println()
}

func (r *REPL) displaySuccess(msg string) {
	fmt.Println(r.formatter.FormatSuccess(msg))
	fmt.Println()
}

func (r *REPL) displayEngineStatus(st reminder.Status) {
	running := "stopped"
	if st.Running {
		running = "running"
	}
	r.displayInfo(fmt.Sprintf(
		"Reminder engine %s (poll interval %s)\nreminders: %d total, %d active, %d overdue",
		running, st.Interval, st.Total, st.Active, st.Overdue))
}

func (r *REPL) displayUpcoming(horizon time.Duration, upcoming []reminder.Reminder) {
	header := fmt.Sprintf("Upcoming reminders (next %dh)", int(horizon.Hours()))
	if len(upcoming) == 0 {
		r.displayInfo(header + ": none")
		return
	}

	out := header + ":\n"
	for _, rem := range upcoming {
		out += fmt.Sprintf("  %s  %s\n", rem.RemindAt.Format("01-02 15:04"), rem.TaskTitle)
	}
	fmt.Println(r.formatter.FormatInfo(out))
}

// renderMarkdown renders md through glamour using the active theme,
// falling back to the raw text if the renderer fails.
func (r *REPL) renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.formatter.GlamourStyle()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
