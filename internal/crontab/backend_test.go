package crontab

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFileBackend_LoadMissing(t *testing.T) {
	t.Parallel()

	b := &FileBackend{Path: filepath.Join(t.TempDir(), "crontab")}
	tbl, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
	if tbl.Owner != b.Path {
		t.Errorf("Owner = %q, want %q", tbl.Owner, b.Path)
	}
}

func TestFileBackend_SaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := &FileBackend{Path: filepath.Join(dir, "sub", "crontab")}
	ctx := context.Background()

	if err := b.Save(ctx, Parse(sample)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tbl, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.String() != Parse(sample).String() {
		t.Errorf("loaded table differs:\n%s", tbl.String())
	}

	info, err := os.Stat(b.Path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(b.Path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestCommandBackend(t *testing.T) {
	t.Parallel()

	var calls [][]string
	var installed string
	b := &CommandBackend{
		Binary: "fakecrontab",
		User:   "alice",
		Run: func(_ context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
			calls = append(calls, append([]string{name}, args...))
			if args[len(args)-1] == "-" {
				installed = string(stdin)
				return nil, nil
			}
			return []byte("@daily true # tidy\n"), nil
		},
	}
	ctx := context.Background()

	tbl, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Owner != "alice" || tbl.Len() != 1 {
		t.Fatalf("Load = owner %q, %d jobs", tbl.Owner, tbl.Len())
	}
	if err := b.Save(ctx, tbl); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if installed != "@daily true # tidy\n" {
		t.Errorf("installed = %q", installed)
	}

	want := [][]string{
		{"fakecrontab", "-u", "alice", "-l"},
		{"fakecrontab", "-u", "alice", "-"},
	}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestCommandBackend_NoCrontab(t *testing.T) {
	t.Parallel()

	b := &CommandBackend{
		User: "bob",
		Run: func(context.Context, []byte, string, ...string) ([]byte, error) {
			return nil, errors.New("crontab: exit status 1: no crontab for bob")
		},
	}
	tbl, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
}

func TestCommandBackend_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("permission denied")
	b := &CommandBackend{
		Run: func(context.Context, []byte, string, ...string) ([]byte, error) {
			return nil, boom
		},
	}
	ctx := context.Background()
	if _, err := b.Load(ctx); !errors.Is(err, boom) {
		t.Errorf("Load error = %v", err)
	}
	err := b.Save(ctx, Parse(sample))
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "install") {
		t.Errorf("Save error = %v", err)
	}
}
