// Package config loads cronpad.yaml: YAML with environment variable
// expansion, defaults for every key and aggregated validation.
package config

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	Backend BackendConfig `yaml:"backend"`
	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// Backend kinds.
const (
	BackendCrontab = "crontab"
	BackendFile    = "file"
)

// BackendConfig selects where the job table lives.
type BackendConfig struct {
	// Kind is "crontab" (the crontab(1) command) or "file". Defaults to
	// "crontab".
	Kind string `yaml:"kind"`

	// Path is the table file for the file backend.
	Path string `yaml:"path"`

	// Binary is the crontab executable. Defaults to "crontab".
	Binary string `yaml:"binary"`

	// User edits another user's table (crontab -u). Requires privileges.
	User string `yaml:"user"`

	// Watch reloads the table when the file changes on disk. Only used by
	// the file backend.
	Watch bool `yaml:"watch"`
}

// HistoryConfig controls the change journal.
type HistoryConfig struct {
	// Enabled defaults to true.
	Enabled *bool `yaml:"enabled"`

	// Path defaults to {DataDir}/history.db.
	Path string `yaml:"path"`
}

// IsEnabled reports whether the journal is on.
func (h HistoryConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// MetricsConfig controls the Prometheus textfile.
type MetricsConfig struct {
	// Textfile is written when the session ends. Empty disables metrics.
	Textfile string `yaml:"textfile"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is debug, info, warn or error. Defaults to warn.
	Level string `yaml:"level"`

	// File receives the log instead of stderr when set.
	File string `yaml:"file"`

	// Redact lists extra regular expressions whose matches are masked.
	Redact []string `yaml:"redact"`

	// RedactEnv names environment variables whose values are masked.
	RedactEnv []string `yaml:"redact_env"`
}

// UI modes.
const (
	UIAuto = "auto"
	UILine = "line"
	UIForm = "form"
)

// UIConfig selects the prompter.
type UIConfig struct {
	// Mode is auto, line or form. Auto uses forms on a terminal.
	Mode string `yaml:"mode"`
}
