package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"path":       "~/.todo-desktop/tasks.db",
			"backup_dir": "~/.todo-desktop/backups",
		},
		"reminder": map[string]interface{}{
			"interval":      1,        // seconds between polls
			"granularity":   "coarse", // fire once now >= remind_at
			"horizon_hours": 24,
		},
		"ui": map[string]interface{}{
			"colored_output": true,
			"theme":          "dark",
			"notify_bell":    true,
			"clock":          true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.todo-desktop/config.yaml"
}
