package ui

import (
	"bytes"
	"testing"
)

func TestStatusDisplay(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(false, "dark")
	s := NewStatusDisplay(&buf, f, true)

	s.Show("working")
	if got := buf.String(); got != "\r\033[Kworking" {
		t.Errorf("Show wrote %q", got)
	}

	buf.Reset()
	s.Hide()
	if got := buf.String(); got != "\r\033[K" {
		t.Errorf("Hide wrote %q", got)
	}

	buf.Reset()
	s.Update("still working")
	if got := buf.String(); got != "\r\033[K\r\033[Kstill working" {
		t.Errorf("Update wrote %q", got)
	}
}

func TestStatusDisplayDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := NewStatusDisplay(&buf, NewFormatter(false, "dark"), false)

	s.Show("quiet")
	s.Update("quiet")
	s.Hide()
	if buf.Len() != 0 {
		t.Errorf("disabled display wrote %q", buf.String())
	}
}
