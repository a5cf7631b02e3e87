package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Reminder.Interval != 1 {
		t.Errorf("default interval = %d, want 1", cfg.Reminder.Interval)
	}
	if cfg.Reminder.Granularity != GranularityCoarse {
		t.Errorf("default granularity = %s, want coarse", cfg.Reminder.Granularity)
	}
	if cfg.Reminder.HorizonHours != 24 {
		t.Errorf("default horizon = %d, want 24", cfg.Reminder.HorizonHours)
	}
	if cfg.UI.Theme != ThemeDark || !cfg.UI.ColoredOutput || !cfg.UI.Clock {
		t.Errorf("unexpected UI defaults: %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
reminder:
  interval: 5
  horizon_hours: 48
ui:
  theme: light
  notify_bell: false
`)
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Reminder.Interval != 5 {
		t.Errorf("interval = %d, want 5", cfg.Reminder.Interval)
	}
	if cfg.Reminder.HorizonHours != 48 {
		t.Errorf("horizon = %d, want 48", cfg.Reminder.HorizonHours)
	}
	if cfg.UI.Theme != ThemeLight || cfg.UI.NotifyBell {
		t.Errorf("yaml UI overrides lost: %+v", cfg.UI)
	}
	// Untouched keys keep their defaults.
	if cfg.Reminder.Granularity != GranularityCoarse {
		t.Errorf("granularity should stay coarse, got %s", cfg.Reminder.Granularity)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TODO_UI__THEME", "light")
	t.Setenv("TODO_REMINDER__INTERVAL", "3")
	// Single underscores inside a key segment must survive the
	// double-underscore separator.
	t.Setenv("TODO_UI__NOTIFY_BELL", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.Theme != ThemeLight {
		t.Errorf("env theme override lost: %s", cfg.UI.Theme)
	}
	if cfg.Reminder.Interval != 3 {
		t.Errorf("env interval override lost: %d", cfg.Reminder.Interval)
	}
	if cfg.UI.NotifyBell {
		t.Error("env notify_bell override lost")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.Reminder.Interval = 0 }},
		{"unknown granularity", func(c *Config) { c.Reminder.Granularity = "sometimes" }},
		{"precise with coarse interval", func(c *Config) {
			c.Reminder.Granularity = GranularityPrecise
			c.Reminder.Interval = 5
		}},
		{"zero horizon", func(c *Config) { c.Reminder.HorizonHours = 0 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "blue" }},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	// precise + 1s interval is the supported precise setup
	cfg := base()
	cfg.Reminder.Granularity = GranularityPrecise
	cfg.Reminder.Interval = 1
	if err := cfg.Validate(); err != nil {
		t.Errorf("precise with 1s interval must validate: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := expandPath("~/.todo-desktop/tasks.db")
	want := filepath.Join(home, ".todo-desktop/tasks.db")
	if got != want {
		t.Errorf("expandPath = %s, want %s", got, want)
	}

	if got := expandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("absolute path must pass through, got %s", got)
	}
}
