package crontab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

// Backend loads and persists a job table. Save must be atomic: either the
// whole table is stored or the previous content is left in place.
type Backend interface {
	Load(ctx context.Context) (*Table, error)
	Save(ctx context.Context, t *Table) error
}

// FileBackend stores the table in a crontab-format file.
type FileBackend struct {
	Path string
}

// Compile-time interface check.
var _ Backend = (*FileBackend)(nil)

// Load reads the file. A missing file is an empty table.
func (b *FileBackend) Load(_ context.Context) (*Table, error) {
	raw, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Table{Owner: b.Path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("crontab: reading %s: %w", b.Path, err)
	}
	t := Parse(string(raw))
	t.Owner = b.Path
	return t, nil
}

// Save writes the table to a temporary file in the same directory and
// renames it over the target.
func (b *FileBackend) Save(_ context.Context, t *Table) error {
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("crontab: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.Path)+".*")
	if err != nil {
		return fmt.Errorf("crontab: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(t.String()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("crontab: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("crontab: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("crontab: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("crontab: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, b.Path); err != nil {
		return fmt.Errorf("crontab: replace %s: %w", b.Path, err)
	}
	return nil
}

// Runner executes name with args, feeding stdin, and returns its stdout.
// A non-nil error carries the command's stderr in its message.
type Runner func(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)

// CommandBackend drives the system crontab(1) binary.
type CommandBackend struct {
	// Binary defaults to "crontab".
	Binary string

	// User selects another user's table (crontab -u). Empty means the
	// invoking user.
	User string

	// Run defaults to ExecRunner.
	Run Runner
}

// Compile-time interface check.
var _ Backend = (*CommandBackend)(nil)

// Load runs "crontab -l". A user without a crontab gets an empty table.
func (b *CommandBackend) Load(ctx context.Context) (*Table, error) {
	out, err := b.runner()(ctx, nil, b.binary(), b.args("-l")...)
	if err != nil {
		if strings.Contains(err.Error(), "no crontab for") {
			return &Table{Owner: b.owner()}, nil
		}
		return nil, fmt.Errorf("crontab: list: %w", err)
	}
	t := Parse(string(out))
	t.Owner = b.owner()
	return t, nil
}

// Save installs the table with "crontab -", which replaces it atomically.
func (b *CommandBackend) Save(ctx context.Context, t *Table) error {
	if _, err := b.runner()(ctx, []byte(t.String()), b.binary(), b.args("-")...); err != nil {
		return fmt.Errorf("crontab: install: %w", err)
	}
	return nil
}

func (b *CommandBackend) args(op string) []string {
	if b.User != "" {
		return []string{"-u", b.User, op}
	}
	return []string{op}
}

func (b *CommandBackend) binary() string {
	if b.Binary != "" {
		return b.Binary
	}
	return "crontab"
}

func (b *CommandBackend) runner() Runner {
	if b.Run != nil {
		return b.Run
	}
	return ExecRunner
}

func (b *CommandBackend) owner() string {
	if b.User != "" {
		return b.User
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
