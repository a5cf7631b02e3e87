package ui

import (
	"fmt"
	"io"
)

// StatusDisplay writes a transient one-line status on the current
// terminal row, overwriting it in place. Output goes through the given
// writer so callers can route it past a line editor's prompt.
type StatusDisplay struct {
	out       io.Writer
	formatter *Formatter
	enabled   bool
}

func NewStatusDisplay(out io.Writer, formatter *Formatter, enabled bool) *StatusDisplay {
	return &StatusDisplay{
		out:       out,
		formatter: formatter,
		enabled:   enabled,
	}
}

func (s *StatusDisplay) Show(message string) {
	if !s.enabled {
		return
	}

	fmt.Fprint(s.out, "\r\033[K")
	fmt.Fprint(s.out, s.formatter.FormatStatus(message))
}

func (s *StatusDisplay) Hide() {
	if !s.enabled {
		return
	}

	fmt.Fprint(s.out, "\r\033[K")
}

func (s *StatusDisplay) Update(message string) {
	if !s.enabled {
		return
	}

	s.Hide()
	s.Show(message)
}
