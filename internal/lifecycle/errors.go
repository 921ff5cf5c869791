// Package lifecycle is the only writer of the job table. It stages each
// create, modify or delete on a detached candidate, validates it, gates it
// behind operator confirmation and commits it through the backend.
package lifecycle

import (
	"errors"

	"github.com/flemzord/cronpad/internal/schedule"
)

// Sentinel errors for job mutations.
var (
	// ErrInvalidSyntax indicates the candidate job failed validation. The
	// table is unchanged.
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrPersistFailure indicates the backend could not store the table.
	// The in-memory table has been re-read from the backend.
	ErrPersistFailure = errors.New("failed to save the job table")

	// ErrAborted indicates the operator declined the confirmation.
	ErrAborted = errors.New("cancelled")

	// ErrStaleIndex indicates a job reference or index predates the last
	// change to the table and must be rebuilt.
	ErrStaleIndex = errors.New("job listing is out of date")

	// ErrInvalidOption is the shared invalid menu input error.
	ErrInvalidOption = schedule.ErrInvalidOption
)
