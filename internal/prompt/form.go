package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Form asks each question through a single-field huh form.
type Form struct {
	w io.Writer
}

// Compile-time interface check.
var _ Prompter = (*Form)(nil)

// NewForm creates a huh-backed prompter writing free-form output to w.
func NewForm(w io.Writer) *Form {
	return &Form{w: w}
}

// Ask implements Prompter.
func (f *Form) Ask(ctx context.Context, label string) (string, error) {
	var answer string
	input := huh.NewInput().
		Title(strings.TrimRight(label, " ")).
		Value(&answer)
	err := huh.NewForm(huh.NewGroup(input)).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", fmt.Errorf("prompt: form: %w", err)
	}
	return answer, nil
}

// Printf implements Prompter.
func (f *Form) Printf(format string, args ...any) {
	fmt.Fprintf(f.w, format, args...)
}
