package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validate checks the structural validity of a Config and reports every
// problem at once.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	switch cfg.Backend.Kind {
	case BackendCrontab:
		if cfg.Backend.Path != "" {
			errs = append(errs, errors.New("config: backend.path is only used by the file backend"))
		}
		if cfg.Backend.Watch {
			errs = append(errs, errors.New("config: backend.watch requires the file backend"))
		}
	case BackendFile:
		if cfg.Backend.Path == "" {
			errs = append(errs, errors.New("config: backend.path is required for the file backend"))
		}
		if cfg.Backend.User != "" {
			errs = append(errs, errors.New("config: backend.user is only used by the crontab backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: backend.kind must be %q or %q, got %q", BackendCrontab, BackendFile, cfg.Backend.Kind))
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("config: log.level %q is not one of debug, info, warn, error", cfg.Log.Level))
	}

	for i, p := range cfg.Log.Redact {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Errorf("config: log.redact[%d]: %w", i, err))
		}
	}

	switch cfg.UI.Mode {
	case UIAuto, UILine, UIForm:
	default:
		errs = append(errs, fmt.Errorf("config: ui.mode must be %q, %q or %q, got %q", UIAuto, UILine, UIForm, cfg.UI.Mode))
	}

	if cfg.History.IsEnabled() && cfg.History.Path == "" {
		errs = append(errs, errors.New("config: history.path is required when history is enabled"))
	}

	return errors.Join(errs...)
}
