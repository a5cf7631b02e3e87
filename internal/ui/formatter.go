package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dianyike/Todo-Desktop/internal/task"
)

// Styles is the palette applied to all formatted output. Two palettes
// exist, one per theme.
type Styles struct {
	Header   lipgloss.Style
	Pending  lipgloss.Style
	Done     lipgloss.Style
	Category lipgloss.Style
	Remind   lipgloss.Style
	Overdue  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	System   lipgloss.Style
	Status   lipgloss.Style
	Success  lipgloss.Style
	Dim      lipgloss.Style
	Border   lipgloss.Style
}

func darkStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Category: lipgloss.NewStyle().Foreground(lipgloss.Color("147")),
		Remind:   lipgloss.NewStyle().Foreground(lipgloss.Color("222")),
		Overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("222")),
		System:   lipgloss.NewStyle().Foreground(lipgloss.Color("183")).Italic(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	}
}

func lightStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Strikethrough(true),
		Category: lipgloss.NewStyle().Foreground(lipgloss.Color("55")),
		Remind:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		Overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		System:   lipgloss.NewStyle().Foreground(lipgloss.Color("92")).Italic(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
	}
}

// Formatter renders tasks, reminders, and messages for the terminal.
type Formatter struct {
	colored bool
	theme   string
	styles  Styles
}

func NewFormatter(colored bool, theme string) *Formatter {
	f := &Formatter{colored: colored}
	f.SetTheme(theme)
	return f
}

// SetTheme switches between the dark and light palettes. Unknown
// themes fall back to dark.
func (f *Formatter) SetTheme(theme string) {
	if theme == "light" {
		f.theme = "light"
		f.styles = lightStyles()
		return
	}
	f.theme = "dark"
	f.styles = darkStyles()
}

func (f *Formatter) Theme() string {
	return f.theme
}

// GlamourStyle maps the active theme to a glamour style name.
func (f *Formatter) GlamourStyle() string {
	if !f.colored {
		return "notty"
	}
	return f.theme
}

// FormatTask renders one numbered task line:
//
//	 3. ○ Buy groceries [life] ⏰ 08-24 18:00
func (f *Formatter) FormatTask(index int, t task.Task) string {
	glyph := "○"
	if t.Completed {
		glyph = "✓"
	}

	line := fmt.Sprintf("%3d. %s %s", index, glyph, t.Title)
	category := fmt.Sprintf("[%s]", t.Category)

	var annotation string
	overdue := false
	if t.Completed && t.CompletedAt != nil {
		annotation = "done " + t.CompletedAt.Format("01-02 15:04")
	} else if t.RemindAt != nil {
		annotation = "⏰ " + t.RemindAt.Format("01-02 15:04")
		overdue = t.RemindAt.Before(time.Now())
	}

	if !f.colored {
		if annotation != "" {
			return line + " " + category + " " + annotation
		}
		return line + " " + category
	}

	body := f.styles.Pending
	if t.Completed {
		body = f.styles.Done
	}
	out := body.Render(line) + " " + f.styles.Category.Render(category)
	if annotation != "" {
		style := f.styles.Remind
		if t.Completed {
			style = f.styles.Dim
		} else if overdue {
			style = f.styles.Overdue
		}
		out += " " + style.Render(annotation)
	}
	return out
}

// FormatTaskList renders a header plus numbered task lines. The
// numbering matches the index arguments accepted by REPL commands.
func (f *Formatter) FormatTaskList(header string, tasks []task.Task) string {
	var b strings.Builder

	h := fmt.Sprintf("%s (%d)", header, len(tasks))
	if f.colored {
		h = f.styles.Header.Render(h)
	}
	b.WriteString(h + "\n")

	if len(tasks) == 0 {
		empty := "  nothing here"
		if f.colored {
			empty = f.styles.Dim.Render(empty)
		}
		b.WriteString(empty + "\n")
		return b.String()
	}

	for i, t := range tasks {
		b.WriteString(f.FormatTask(i+1, t) + "\n")
	}
	return b.String()
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = f.styles.Error.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return f.styles.Info.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return f.styles.System.Render(msg)
	}
	return msg
}

func (f *Formatter) FormatStatus(msg string) string {
	if f.colored {
		return f.styles.Status.Render(msg)
	}
	return msg
}

func (f *Formatter) FormatSuccess(msg string) string {
	if f.colored {
		return f.styles.Success.Render(msg)
	}
	return msg
}

// FormatWelcome draws the startup banner.
func (f *Formatter) FormatWelcome(dbPath string, taskCount int) string {
	title := "Todo Desktop"
	countLine := fmt.Sprintf("Tasks: %d", taskCount)
	pathLine := fmt.Sprintf("Data: %s", dbPath)
	helpLine := "Type a task to add it, /help for commands"

	if !f.colored {
		return strings.Join([]string{"", title, countLine, pathLine, helpLine, ""}, "\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.styles.Border.GetForeground()).
		Padding(0, 2)

	content := strings.Join([]string{
		f.styles.Header.Render(title),
		f.styles.Dim.Render(countLine),
		f.styles.Dim.Render(pathLine),
		"",
		f.styles.Status.Render(helpLine),
	}, "\n")

	return "\n" + box.Render(content) + "\n"
}
