package history_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/flemzord/cronpad/internal/history"
)

func open(t *testing.T, path string) *history.Journal {
	t.Helper()
	j, err := history.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_RecordAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j := open(t, filepath.Join(t.TempDir(), "history.db"))
	j.Owner = "alice"

	if err := j.Record(ctx, "create", "", "@daily /bin/a"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record(ctx, "disable", "@daily /bin/a", "# @daily /bin/a"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record(ctx, "delete", "# @daily /bin/a", ""); err != nil {
		t.Fatalf("Record: %v", err)
	}

	all, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	wantActions := []string{"create", "disable", "delete"}
	for i, c := range all {
		if c.Action != wantActions[i] {
			t.Errorf("all[%d].Action = %q, want %q", i, c.Action, wantActions[i])
		}
		if c.SessionID != j.Session() || c.Owner != "alice" {
			t.Errorf("all[%d] = %+v", i, c)
		}
		if c.ID == "" || c.CreatedAt.IsZero() {
			t.Errorf("all[%d] missing id or timestamp", i)
		}
	}

	recent, err := j.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recent) != 2 || recent[0].Action != "disable" || recent[1].Action != "delete" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestJournal_ReopenKeepsChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	first, err := history.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Record(ctx, "create", "", "* * * * * /bin/x"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	session := first.Session()
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := open(t, path)
	if second.Session() == session {
		t.Error("reopened journal reused the session id")
	}
	got, err := second.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].SessionID != session || got[0].After != "* * * * * /bin/x" {
		t.Errorf("got %+v", got)
	}
}
