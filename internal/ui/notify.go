package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dianyike/Todo-Desktop/internal/reminder"
)

// FormatNotification renders the reminder banner shown when a
// reminder fires. With bell enabled the string starts with BEL so the
// terminal chimes; the banner itself stays in the scrollback.
func (f *Formatter) FormatNotification(r reminder.Reminder, bell bool) string {
	timeLine := "Scheduled for " + r.RemindAt.Format("15:04")

	var out string
	if f.colored {
		box := lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(f.styles.Overdue.GetForeground()).
			Padding(0, 2)

		content := strings.Join([]string{
			f.styles.Overdue.Render("⏰ Task Reminder"),
			f.styles.Pending.Render(r.TaskTitle),
			f.styles.Dim.Render(timeLine),
		}, "\n")
		out = "\n" + box.Render(content) + "\n"
	} else {
		out = strings.Join([]string{
			"",
			"=== Task Reminder ===",
			r.TaskTitle,
			timeLine,
			"=====================",
			"",
		}, "\n")
	}

	if bell {
		out = "\a" + out
	}
	return out
}
