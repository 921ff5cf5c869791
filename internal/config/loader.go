package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envPattern matches ${VAR} and ${VAR:-default} expressions.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^}\\]|\\.)*))?\}`)

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{Version: "1"}
	cfg.applyDefaults(DefaultDataDir())
	return cfg
}

// Load reads a YAML configuration file, expands environment variables,
// parses it and fills in defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	expanded, err := expandEnv(raw)
	if err != nil {
		return nil, fmt.Errorf("config: expanding variables in %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyDefaults(DefaultDataDir())
	return &cfg, nil
}

// LoadOrDefault loads path, or the first file found by ResolveConfigPath
// when path is empty. With no file anywhere it returns Default and an
// empty path.
func LoadOrDefault(path string) (*Config, string, error) {
	if path == "" {
		path = ResolveConfigPath()
		if path == "" {
			return Default(), "", nil
		}
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func (c *Config) applyDefaults(dataDir string) {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.Backend.Kind == "" {
		c.Backend.Kind = BackendCrontab
	}
	if c.Backend.Binary == "" {
		c.Backend.Binary = "crontab"
	}
	if c.History.Path == "" {
		c.History.Path = filepath.Join(dataDir, "history.db")
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.UI.Mode == "" {
		c.UI.Mode = UIAuto
	}
}

// expandEnv replaces ${VAR} and ${VAR:-default} patterns in raw YAML bytes.
// Returns an error listing all unresolved variables (no default, no env value).
func expandEnv(raw []byte) ([]byte, error) {
	var errs []error

	result := envPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		subs := envPattern.FindSubmatch(match)
		name := string(subs[1])

		if value, ok := os.LookupEnv(name); ok {
			return []byte(value)
		}
		if subs[2] != nil {
			return subs[2]
		}

		errs = append(errs, fmt.Errorf("unresolved variable: %s", name))
		return match
	})

	return result, errors.Join(errs...)
}
