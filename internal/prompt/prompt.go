// Package prompt reads operator answers. The interactive session only
// depends on the Prompter interface; Line serves pipes and plain
// terminals, Form renders each question with huh on a TTY.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInterrupted indicates the operator closed input or pressed Ctrl-C.
var ErrInterrupted = errors.New("prompt: interrupted")

// Prompter asks one question at a time and writes free-form output.
type Prompter interface {
	// Ask shows label and returns the answer without its line ending.
	Ask(ctx context.Context, label string) (string, error)

	// Printf writes output for the operator.
	Printf(format string, args ...any)
}

// Line reads answers line by line from r and writes to w.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

// Compile-time interface check.
var _ Prompter = (*Line)(nil)

// NewLine creates a line prompter.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

// Ask implements Prompter. End of input maps to ErrInterrupted; a final
// line without a newline is still returned.
func (l *Line) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(l.w, label)
	s, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			return strings.TrimRight(s, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(l.w)
			return "", ErrInterrupted
		}
		return "", fmt.Errorf("prompt: read: %w", err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// Printf implements Prompter.
func (l *Line) Printf(format string, args ...any) {
	fmt.Fprintf(l.w, format, args...)
}

// Confirm asks whether to perform action and loops until the answer is y
// or n in any case.
func Confirm(ctx context.Context, p Prompter, question string) (bool, error) {
	label := strings.TrimLeft(question+" [y/n]: ", " ")
	for {
		answer, err := p.Ask(ctx, label)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		label = "You must answer y or n [y/n]: "
	}
}
