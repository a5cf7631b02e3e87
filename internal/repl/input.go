package repl

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
)

const basePrompt = "todo> "

// readInput reads one trimmed line, refreshing the prompt clock first
// when ui.clock is enabled.
func (r *REPL) readInput() (string, error) {
	r.rl.SetPrompt(r.prompt(time.Now()))
	line, err := r.rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// prompt renders the input prompt, prefixed with the wall clock when
// ui.clock is enabled.
func (r *REPL) prompt(now time.Time) string {
	if r.config != nil && r.config.UI.Clock {
		return now.Format("15:04") + " " + basePrompt
	}
	return basePrompt
}

func (r *REPL) parseCommand(input string) (bool, string, string) {
	if !strings.HasPrefix(input, "/") {
		return false, "", ""
	}

	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	return true, command, args
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("/help"),
	readline.PcItem("/list",
		readline.PcItem("all"),
		readline.PcItem("pending"),
		readline.PcItem("done"),
	),
	readline.PcItem("/all"),
	readline.PcItem("/pending"),
	readline.PcItem("/done"),
	readline.PcItem("/search"),
	readline.PcItem("/add"),
	readline.PcItem("/complete"),
	readline.PcItem("/uncomplete"),
	readline.PcItem("/rm"),
	readline.PcItem("/category"),
	readline.PcItem("/remind"),
	readline.PcItem("/unremind"),
	readline.PcItem("/reminders"),
	readline.PcItem("/status"),
	readline.PcItem("/stats"),
	readline.PcItem("/clear"),
	readline.PcItem("/reload"),
	readline.PcItem("/backup"),
	readline.PcItem("/export"),
	readline.PcItem("/theme",
		readline.PcItem("dark"),
		readline.PcItem("light"),
	),
	readline.PcItem("/quit"),
)

func setupReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              basePrompt,
		HistoryFile:         historyPath(),
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	return rl, err
}

// historyPath returns the persistent command history location, or
// empty (history disabled) when the home directory is unknown.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".todo-desktop", "history")
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt
}
