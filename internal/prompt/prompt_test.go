package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLine_Ask(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := NewLine(strings.NewReader("first\r\nsecond\nlast"), &out)
	ctx := context.Background()

	for _, want := range []string{"first", "second", "last"} {
		got, err := p.Ask(ctx, "> ")
		if err != nil {
			t.Fatalf("Ask: %v", err)
		}
		if got != want {
			t.Errorf("Ask = %q, want %q", got, want)
		}
	}
	if _, err := p.Ask(ctx, "> "); !errors.Is(err, ErrInterrupted) {
		t.Errorf("Ask at EOF error = %v, want ErrInterrupted", err)
	}
	if !strings.HasPrefix(out.String(), "> > > > ") {
		t.Errorf("labels not written: %q", out.String())
	}
}

func TestLine_AskCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewLine(strings.NewReader("y\n"), &bytes.Buffer{})
	if _, err := p.Ask(ctx, "> "); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"N\n", false},
		{"yes\n\nmaybe\nn\n", false},
		{"x\ny\n", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := NewLine(strings.NewReader(tt.input), &out)
		got, err := Confirm(context.Background(), p, "Delete it?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfirm_RepromptsAndStopsAtEOF(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := NewLine(strings.NewReader("ok\n"), &out)
	_, err := Confirm(context.Background(), p, "Delete it?")
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("error = %v, want ErrInterrupted", err)
	}
	if !strings.Contains(out.String(), "You must answer y or n") {
		t.Errorf("missing re-prompt: %q", out.String())
	}
}
