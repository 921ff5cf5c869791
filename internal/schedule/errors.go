// Package schedule builds and validates recurrence expressions for crontab
// jobs: either one of the named macros or a five-field time specification.
package schedule

import (
	"errors"
	"fmt"
)

// Sentinel errors for schedule construction.
var (
	// ErrFieldSyntax indicates a single field token matched none of the
	// accepted grammars. Returned errors are *FieldSyntaxError values that
	// match this sentinel via errors.Is.
	ErrFieldSyntax = errors.New("schedule: invalid field syntax")

	// ErrAmbiguousYesNo indicates a yes/no question received an answer
	// other than y, n, or an empty default.
	ErrAmbiguousYesNo = errors.New("schedule: answer must be y or n")

	// ErrMalformedTime indicates a clock time did not split into exactly
	// two integer parts on ':'.
	ErrMalformedTime = errors.New("schedule: time must be HH:MM")

	// ErrIncompleteSchedule indicates a field schedule was rendered before
	// every field was resolved.
	ErrIncompleteSchedule = errors.New("schedule: incomplete schedule")

	// ErrInvalidOption indicates a menu choice or macro name outside the
	// recognized set.
	ErrInvalidOption = errors.New("invalid option")
)

// FieldSyntaxError describes why a token was rejected for a field.
type FieldSyntaxError struct {
	Field  Field
	Token  string
	Reason string
}

func (e *FieldSyntaxError) Error() string {
	return fmt.Sprintf("schedule: %s %q: %s", e.Field, e.Token, e.Reason)
}

// Is reports whether target is ErrFieldSyntax.
func (e *FieldSyntaxError) Is(target error) bool {
	return target == ErrFieldSyntax
}
