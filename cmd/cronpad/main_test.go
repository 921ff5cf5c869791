package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the CLI with args against an isolated environment.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	chdir(t, dir)

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sample = "MAILTO=ops@example.com\n@daily /bin/backup.sh # nightly\n# 0 * * * * /bin/report\n"

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "cronpad dev") {
		t.Errorf("output = %q", out)
	}
}

func TestList(t *testing.T) {
	table := writeTable(t, sample)
	out, err := execute(t, "list", "--file", table)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{
		"Job Count: 2",
		"Active Jobs:\n1. @daily /bin/backup.sh # nightly\n",
		"Inactive Jobs:\n1. # 0 * * * * /bin/report\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearch(t *testing.T) {
	table := writeTable(t, sample)

	out, err := execute(t, "search", "--file", table, "nightly")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "found 1 job(s):\n1. @daily /bin/backup.sh # nightly") {
		t.Errorf("output:\n%s", out)
	}

	out, err = execute(t, "search", "-f", table, "/^/bin/(backup|report)/")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "found 2 job(s)") {
		t.Errorf("output:\n%s", out)
	}

	if _, err := execute(t, "search", "-f", table, "/(/"); err == nil {
		t.Error("expected error for bad pattern")
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"0-30/10 9-17 * * 1-5", false},
		{"@weekly", false},
		{"@reboot", false},
		{"weekly", true},
		{"*/5 * * * *", true},
		{"60 * * * *", true},
		{"* * *", true},
		{"@every", true},
	}
	for _, tt := range tests {
		out, err := execute(t, "check", tt.expr)
		if tt.wantErr {
			if err == nil {
				t.Errorf("check %q: expected error", tt.expr)
			}
			continue
		}
		if err != nil || !strings.HasPrefix(out, "OK: ") {
			t.Errorf("check %q = %q, %v", tt.expr, out, err)
		}
	}
}

func TestHistory_Empty(t *testing.T) {
	table := writeTable(t, sample)
	out, err := execute(t, "history", "-f", table)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No changes recorded.") {
		t.Errorf("output = %q", out)
	}
}

func TestInteractive_LineMode(t *testing.T) {
	table := writeTable(t, sample)
	out, err := execute(t, "--ui", "line", "-f", table)
	if err != nil {
		t.Fatalf("interactive: %v", err)
	}
	if !strings.Contains(out, "Menu:\n1. Add job") {
		t.Errorf("output:\n%s", out)
	}
}

func TestUnknownFlagValue(t *testing.T) {
	if _, err := execute(t, "list", "--ui", "gui"); err == nil {
		t.Error("expected error for unknown ui mode")
	}
}

// chdir changes the working directory to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
