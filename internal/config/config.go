package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Trigger granularity values for the reminder engine.
const (
	GranularityCoarse  = "coarse"
	GranularityPrecise = "precise"
)

// Theme values for the terminal UI.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	Storage  StorageConfig  `koanf:"storage"`
	Reminder ReminderConfig `koanf:"reminder"`
	UI       UIConfig       `koanf:"ui"`
}

type StorageConfig struct {
	Path      string `koanf:"path"`       // SQLite database file
	BackupDir string `koanf:"backup_dir"` // Destination for /backup copies
}

type ReminderConfig struct {
	Interval     int    `koanf:"interval"`      // Poll interval in seconds
	Granularity  string `koanf:"granularity"`   // coarse or precise
	HorizonHours int    `koanf:"horizon_hours"` // Default window for /reminders
}

type UIConfig struct {
	ColoredOutput bool   `koanf:"colored_output"`
	Theme         string `koanf:"theme"` // dark or light
	NotifyBell    bool   `koanf:"notify_bell"`
	Clock         bool   `koanf:"clock"` // wall clock in the input prompt
}

// Load builds the configuration from defaults, then the optional YAML
// file at configPath, then TODO_* environment variables. A double
// underscore separates key segments: TODO_REMINDER__INTERVAL=5
// overrides reminder.interval, TODO_UI__NOTIFY_BELL=false overrides
// ui.notify_bell.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("TODO_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "TODO_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Storage.BackupDir = expandPath(cfg.Storage.BackupDir)

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	if c.Reminder.Interval <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %d", c.Reminder.Interval)
	}

	switch c.Reminder.Granularity {
	case GranularityCoarse, GranularityPrecise:
	default:
		return fmt.Errorf("unknown granularity: %s (supported: %s, %s)",
			c.Reminder.Granularity, GranularityCoarse, GranularityPrecise)
	}

	// The precise policy only matches within the exact scheduled
	// minute, so a coarser poll can skip the window entirely.
	if c.Reminder.Granularity == GranularityPrecise && c.Reminder.Interval > 1 {
		return fmt.Errorf("precise granularity requires a 1-second interval, got %d", c.Reminder.Interval)
	}

	if c.Reminder.HorizonHours <= 0 {
		return fmt.Errorf("horizon_hours must be positive, got %d", c.Reminder.HorizonHours)
	}

	switch c.UI.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme: %s (supported: %s, %s)",
			c.UI.Theme, ThemeDark, ThemeLight)
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
