// Package crontab models a per-user job table: the ordered job records,
// their line encoding, the syntax check applied before a job is stored, and
// the backends that load and atomically persist the table.
package crontab

import "errors"

// Sentinel errors for job table operations.
var (
	// ErrInvalidSchedule indicates a recurrence the scheduler would not accept.
	ErrInvalidSchedule = errors.New("crontab: invalid schedule")

	// ErrInvalidCommand indicates an empty, multi-line or badly quoted command.
	ErrInvalidCommand = errors.New("crontab: invalid command")

	// ErrInvalidComment indicates a comment that would not survive a save.
	ErrInvalidComment = errors.New("crontab: invalid comment")

	// ErrJobNotFound indicates the job is not part of the table.
	ErrJobNotFound = errors.New("crontab: job not in table")
)
