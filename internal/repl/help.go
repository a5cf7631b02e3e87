package repl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dianyike/Todo-Desktop/internal/task"
)

const helpText = `# Todo Desktop

Type any text to add it as a task. Append ` + "`#category`" + ` to file it
(general, work, life, study, health).

## Tasks

| Command | Description |
|---|---|
| ` + "`/list [all\\|pending\\|done\\|<category>]`" + ` | List tasks (numbers feed the commands below) |
| ` + "`/all`" + ` / ` + "`/pending`" + ` / ` + "`/done`" + ` | Listing shortcuts |
| ` + "`/search <text>`" + ` | Find tasks by title |
| ` + "`/add <title> [#category]`" + ` | Add a task |
| ` + "`/complete <n>`" + ` / ` + "`/uncomplete <n>`" + ` | Toggle completion |
| ` + "`/category <n> <category>`" + ` | Re-file a task |
| ` + "`/rm <n>`" + ` | Delete a task |
| ` + "`/clear`" + ` | Delete all completed tasks |

## Reminders

| Command | Description |
|---|---|
| ` + "`/remind <n>`" + ` | Pick from quick options (5/15/30 min, 1h, today 17:00, tomorrow 9:00) |
| ` + "`/remind <n> 14:30`" + ` | Today at 14:30, or tomorrow if already past |
| ` + "`/remind <n> 14:30 2025-12-24`" + ` | Exact date and time |
| ` + "`/unremind <n>`" + ` | Cancel a task's reminder |
| ` + "`/reminders [hours]`" + ` | Show what fires soon |
| ` + "`/status`" + ` | Reminder engine state |

## Misc

` + "`/stats`" + `, ` + "`/reload`" + `, ` + "`/backup`" + `, ` + "`/export [path]`" + `, ` + "`/theme [dark|light]`" + `, ` + "`/quit`" + `

Accepted time formats: 14:30, 2:30 PM, 2:30PM, 14:30:00.
`

func (r *REPL) displayHelp() {
	fmt.Print(r.renderMarkdown(helpText))
}

func (r *REPL) handleStats() error {
	st, err := r.store.Stats()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# Statistics\n\n")
	b.WriteString(fmt.Sprintf("- Total: **%d**\n", st.Total))
	b.WriteString(fmt.Sprintf("- Pending: **%d**\n", st.Pending))
	b.WriteString(fmt.Sprintf("- Completed: **%d**\n", st.Completed))
	b.WriteString(fmt.Sprintf("- With reminder: **%d**\n", st.WithRemind))
	if st.Total > 0 {
		b.WriteString(fmt.Sprintf("- Completion rate: **%.0f%%**\n", float64(st.Completed)/float64(st.Total)*100))
	}

	if len(st.ByCategory) > 0 {
		b.WriteString("\n## By category\n\n")

		// Built-in categories first, in display order, then the rest.
		seen := make(map[string]bool)
		for _, c := range task.Categories() {
			if n, ok := st.ByCategory[c]; ok {
				b.WriteString(fmt.Sprintf("- %s: %d\n", c, n))
				seen[c] = true
			}
		}
		var extra []string
		for c := range st.ByCategory {
			if !seen[c] {
				extra = append(extra, c)
			}
		}
		sort.Strings(extra)
		for _, c := range extra {
			b.WriteString(fmt.Sprintf("- %s: %d\n", c, st.ByCategory[c]))
		}
	}

	if info, err := r.store.FileInfo(); err == nil {
		b.WriteString(fmt.Sprintf("\nData file: %s (%d bytes, modified %s)\n",
			info.Path, info.Size, info.Modified.Format("2006-01-02 15:04")))
	}

	fmt.Print(r.renderMarkdown(b.String()))
	return nil
}
