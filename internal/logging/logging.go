// Package logging builds the process logger: slog text output on stderr or
// in a file, with credentials found in crontab lines masked.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps debug, info, warn and error to a slog level. The empty
// string is warn, which keeps the interactive screen clean.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logging: unknown level %q", s)
}

// New returns a logger writing to w at level, masking what r finds. A nil
// r uses NewRedactor.
func New(w io.Writer, level slog.Level, r *Redactor) *slog.Logger {
	if r == nil {
		r = NewRedactor()
	}
	inner := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactingHandler(inner, r))
}

// Open returns a logger at level writing to file, or to stderr when file
// is empty. The returned close function is never nil.
func Open(level slog.Level, file string, r *Redactor) (*slog.Logger, func() error, error) {
	if file == "" {
		return New(os.Stderr, level, r), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return nil, nil, fmt.Errorf("logging: create directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", file, err)
	}
	return New(f, level, r), f.Close, nil
}
