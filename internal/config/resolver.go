package config

import (
	"os"
	"path/filepath"
)

// ResolveConfigPath returns the first existing file among
// $XDG_CONFIG_HOME/cronpad/cronpad.yaml (or ~/.config/cronpad/cronpad.yaml)
// and ./cronpad.yaml, or "" when none exists.
func ResolveConfigPath() string {
	for _, path := range candidates() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func candidates() []string {
	var out []string
	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdg != "" {
		out = append(out, filepath.Join(xdg, "cronpad", "cronpad.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, ".config", "cronpad", "cronpad.yaml"))
	}
	return append(out, "cronpad.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/cronpad, falling back to
// ~/.local/share/cronpad.
func DefaultDataDir() string {
	if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok && dir != "" {
		return filepath.Join(dir, "cronpad")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "cronpad")
}
