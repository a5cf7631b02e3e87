// Package repl implements the interactive terminal front end: a
// readline loop over the task store, with the reminder engine running
// in the background and firing notifications into the prompt.
package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/dianyike/Todo-Desktop/internal/config"
	"github.com/dianyike/Todo-Desktop/internal/reminder"
	"github.com/dianyike/Todo-Desktop/internal/task"
	"github.com/dianyike/Todo-Desktop/internal/ui"
)

type REPL struct {
	store     *task.Store
	engine    *reminder.Engine
	config    *config.Config
	rl        *readline.Instance
	formatter *ui.Formatter
	status    *ui.StatusDisplay

	// Task IDs of the last rendered listing; numeric command
	// arguments index into this slice.
	listing []string
}

func NewREPL(store *task.Store, engine *reminder.Engine, cfg *config.Config) (*REPL, error) {
	rl, err := setupReadline()
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	formatter := ui.NewFormatter(cfg.UI.ColoredOutput, cfg.UI.Theme)
	status := ui.NewStatusDisplay(rl.Stdout(), formatter, true)

	r := &REPL{
		store:     store,
		engine:    engine,
		config:    cfg,
		rl:        rl,
		formatter: formatter,
		status:    status,
	}

	engine.SetNotifier(reminder.NotifierFunc(r.onReminder))
	return r, nil
}

// Start runs the interactive loop until /quit or EOF. The reminder
// set is rebuilt from the store before the first prompt.
func (r *REPL) Start() error {
	defer r.rl.Close()

	if err := r.reloadReminders(); err != nil {
		r.displayError(err)
	}
	r.displayWelcome()

	for {
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if isCommand {
			if err := r.handleCommand(command, args); err != nil {
				r.displayError(err)
			}

			if command == "/quit" || command == "/exit" || command == "/q" {
				return nil
			}

			continue
		}

		// Bare input adds a task.
		if err := r.handleAdd(input); err != nil {
			r.displayError(err)
		}
	}
}

func (r *REPL) Stop() {
	r.rl.Close()
}

func (r *REPL) handleCommand(command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/list", "/l":
		return r.handleList(args)

	// Listing shortcuts.
	case "/all":
		return r.handleList("all")
	case "/pending":
		return r.handleList("pending")
	case "/done":
		return r.handleList("done")

	case "/search", "/f":
		if args == "" {
			return fmt.Errorf("usage: /search <text>")
		}
		return r.showList("Search: "+args, task.Filter{Search: args})

	case "/add", "/a":
		if args == "" {
			return fmt.Errorf("usage: /add <title> [#category]")
		}
		return r.handleAdd(args)

	case "/complete", "/c":
		return r.handleComplete(args, true)

	case "/uncomplete", "/u":
		return r.handleComplete(args, false)

	case "/rm", "/del":
		return r.handleDelete(args)

	case "/category", "/cat":
		return r.handleCategory(args)

	case "/remind", "/r":
		return r.handleRemind(args)

	case "/unremind":
		return r.handleUnremind(args)

	case "/reminders":
		return r.handleReminders(args)

	case "/status":
		r.displayEngineStatus(r.engine.Status())
		return nil

	case "/stats":
		return r.handleStats()

	case "/clear":
		return r.handleClearCompleted()

	case "/reload":
		if err := r.reloadReminders(); err != nil {
			return err
		}
		r.displaySystem("Reloaded tasks from storage.")
		return r.showList("All tasks", task.Filter{})

	case "/backup":
		path, err := r.store.Backup(r.config.Storage.BackupDir)
		if err != nil {
			return err
		}
		r.displaySuccess("Backup written to " + path)
		return nil

	case "/export":
		return r.handleExport(args)

	case "/theme":
		return r.handleTheme(args)

	case "/quit", "/exit", "/q":
		fmt.Println("\nGoodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

func (r *REPL) handleList(args string) error {
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "", "all":
		return r.showList("All tasks", task.Filter{})
	case "pending", "open":
		return r.showList("Pending tasks", task.Filter{Completed: boolPtr(false)})
	case "done", "completed":
		return r.showList("Completed tasks", task.Filter{Completed: boolPtr(true)})
	default:
		category := strings.ToLower(strings.TrimSpace(args))
		return r.showList("Category: "+category, task.Filter{Category: category})
	}
}

func (r *REPL) handleAdd(input string) error {
	title, category := splitCategory(input)

	t, err := task.New(title, category)
	if err != nil {
		return err
	}
	if err := r.store.Add(t); err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Added: %s [%s]", t.Title, t.Category))
	return nil
}

func (r *REPL) handleComplete(args string, done bool) error {
	t, err := r.resolve(args)
	if err != nil {
		return err
	}

	if done {
		if err := r.store.Complete(t.ID); err != nil {
			return err
		}
		// A completed task must not fire.
		r.engine.RemoveReminder(t.ID)
		r.displaySuccess("Completed: " + t.Title)
		return nil
	}

	if err := r.store.Uncomplete(t.ID); err != nil {
		return err
	}
	// Re-arm the reminder if one is still scheduled.
	if fresh, err := r.store.Get(t.ID); err == nil {
		r.engine.AddReminder(taskRef(fresh))
	}
	r.displaySuccess("Reopened: " + t.Title)
	return nil
}

func (r *REPL) handleDelete(args string) error {
	t, err := r.resolve(args)
	if err != nil {
		return err
	}

	if err := r.store.Delete(t.ID); err != nil {
		return err
	}
	r.engine.RemoveReminder(t.ID)
	r.displaySuccess("Deleted: " + t.Title)
	return nil
}

func (r *REPL) handleCategory(args string) error {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return fmt.Errorf("usage: /category <number> <category>")
	}

	t, err := r.resolve(parts[0])
	if err != nil {
		return err
	}
	category := strings.ToLower(parts[1])
	if err := r.store.SetCategory(t.ID, category); err != nil {
		return err
	}
	r.displaySuccess(fmt.Sprintf("Moved %q to [%s]", t.Title, category))
	return nil
}

func (r *REPL) handleRemind(args string) error {
	parts := strings.Fields(args)
	if len(parts) == 0 {
		return fmt.Errorf("usage: /remind <number> [time] [date]")
	}

	t, err := r.resolve(parts[0])
	if err != nil {
		return err
	}
	if t.Completed {
		return fmt.Errorf("task %q is completed; reopen it before setting a reminder", t.Title)
	}

	var at time.Time
	switch len(parts) {
	case 1:
		at, err = r.pickQuickOption(t.Title)
		if err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				r.displaySystem("Reminder not changed.")
				return nil
			}
			return err
		}
	case 2:
		parsed, ok := reminder.ParseReminderTime(parts[1], "")
		if !ok {
			return fmt.Errorf("could not parse time %q (try 14:30, 2:30 PM or 14:30:00)", parts[1])
		}
		at = parsed
	case 3:
		parsed, ok := reminder.ParseReminderTime(parts[1], parts[2])
		if !ok {
			return fmt.Errorf("could not parse %q %q (time like 14:30, date like 2025-06-04)", parts[1], parts[2])
		}
		at = parsed
	default:
		return fmt.Errorf("usage: /remind <number> [time] [date]")
	}

	if err := r.store.SetRemindAt(t.ID, at); err != nil {
		return err
	}
	if fresh, err := r.store.Get(t.ID); err == nil {
		r.engine.AddReminder(taskRef(fresh))
	}

	r.displaySuccess(fmt.Sprintf("Reminder for %q at %s", t.Title, at.Format("2006-01-02 15:04")))
	if !at.After(time.Now()) {
		r.displaySystem("Note: that time is already past, so no notification will fire.")
	}
	return nil
}

func (r *REPL) pickQuickOption(title string) (time.Time, error) {
	options := reminder.QuickOptions()
	if len(options) == 0 {
		return time.Time{}, fmt.Errorf("no quick options available right now")
	}

	items := make([]ui.SelectorOption, len(options))
	for i, o := range options {
		items[i] = ui.SelectorOption{
			Label:       o.Label,
			Description: o.At.Format("15:04"),
		}
	}

	sel := ui.NewSelector("Remind about "+title+" when?", items, r.config.UI.ColoredOutput)
	idx, err := sel.Run()
	if err != nil {
		return time.Time{}, err
	}
	return options[idx].At, nil
}

func (r *REPL) handleUnremind(args string) error {
	t, err := r.resolve(args)
	if err != nil {
		return err
	}

	if err := r.store.ClearRemindAt(t.ID); err != nil {
		return err
	}
	r.engine.RemoveReminder(t.ID)
	r.displaySuccess("Reminder cleared for " + t.Title)
	return nil
}

func (r *REPL) handleReminders(args string) error {
	horizon := time.Duration(r.config.Reminder.HorizonHours) * time.Hour
	if args != "" {
		hours, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil || hours <= 0 {
			return fmt.Errorf("usage: /reminders [hours]")
		}
		horizon = time.Duration(hours) * time.Hour
	}

	upcoming := r.engine.UpcomingReminders(horizon)
	r.displayUpcoming(horizon, upcoming)
	return nil
}

func (r *REPL) handleClearCompleted() error {
	n, err := r.store.ClearCompleted()
	if err != nil {
		return err
	}
	if err := r.reloadReminders(); err != nil {
		return err
	}
	r.displaySuccess(fmt.Sprintf("Removed %d completed task(s).", n))
	return nil
}

func (r *REPL) handleExport(args string) error {
	path := strings.TrimSpace(args)
	if path == "" {
		path = fmt.Sprintf("tasks_%s.json", time.Now().Format("20060102_150405"))
	}
	if err := r.store.ExportJSON(path); err != nil {
		return err
	}
	r.displaySuccess("Exported tasks to " + path)
	return nil
}

func (r *REPL) handleTheme(args string) error {
	theme := strings.ToLower(strings.TrimSpace(args))
	if theme == "" {
		// No argument toggles between the two themes.
		if r.formatter.Theme() == config.ThemeDark {
			theme = config.ThemeLight
		} else {
			theme = config.ThemeDark
		}
	}
	if theme != config.ThemeDark && theme != config.ThemeLight {
		return fmt.Errorf("unknown theme: %s (supported: dark, light)", theme)
	}

	r.formatter.SetTheme(theme)
	r.config.UI.Theme = theme
	r.displaySystem("Theme switched to " + theme + ".")
	return nil
}

// reloadReminders rebuilds the engine's reminder set from the full
// stored collection, the bulk path used at startup and after /reload
// and /clear.
func (r *REPL) reloadReminders() error {
	tasks, err := r.store.List(task.Filter{})
	if err != nil {
		return err
	}
	refs := make([]reminder.TaskRef, len(tasks))
	for i := range tasks {
		refs[i] = taskRef(&tasks[i])
	}
	r.engine.UpdateReminders(refs)
	return nil
}

// taskRef is the read-only view the engine consumes.
func taskRef(t *task.Task) reminder.TaskRef {
	return reminder.TaskRef{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		RemindAt:  t.RemindAt,
	}
}

// showList renders tasks matching the filter and records their IDs so
// numeric arguments refer to the printed numbering.
func (r *REPL) showList(header string, f task.Filter) error {
	tasks, err := r.store.List(f)
	if err != nil {
		return err
	}

	r.listing = make([]string, len(tasks))
	for i, t := range tasks {
		r.listing[i] = t.ID
	}

	fmt.Println(r.formatter.FormatTaskList(header, tasks))
	return nil
}

// resolve maps a 1-based listing number to its task.
func (r *REPL) resolve(arg string) (*task.Task, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("task number required (run /list first)")
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid task number: %s", arg)
	}
	if len(r.listing) == 0 {
		return nil, fmt.Errorf("no listing yet; run /list first")
	}
	if n < 1 || n > len(r.listing) {
		return nil, fmt.Errorf("task number %d out of range (1-%d)", n, len(r.listing))
	}

	return r.store.Get(r.listing[n-1])
}

// onReminder is the engine's notification callback. It writes through
// the readline instance so the prompt is redrawn under the banner.
func (r *REPL) onReminder(rem reminder.Reminder) {
	fmt.Fprint(r.rl.Stdout(), r.formatter.FormatNotification(rem, r.config.UI.NotifyBell))
	r.rl.Refresh()
}

// splitCategory extracts a trailing "#category" marker from an add
// command, e.g. "buy milk #life".
func splitCategory(input string) (title, category string) {
	fields := strings.Fields(input)
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if strings.HasPrefix(last, "#") && len(last) > 1 {
			return strings.Join(fields[:len(fields)-1], " "), strings.ToLower(last[1:])
		}
	}
	return strings.TrimSpace(input), ""
}

func boolPtr(b bool) *bool {
	return &b
}
