package crontab

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/robfig/cron/v3"
)

// Validator reports whether a job's recurrence and command are acceptable
// to the target scheduler.
type Validator interface {
	Validate(j *Job) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(j *Job) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(j *Job) error { return f(j) }

// Syntax is the default Validator used by the job table.
var Syntax Validator = ValidatorFunc(Validate)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// commentSep separates a command from its comment on a saved line.
const commentSep = " # "

// Validate checks the schedule, the command and the comment of j.
func Validate(j *Job) error {
	if err := ValidateSchedule(j.Schedule); err != nil {
		return err
	}
	if err := ValidateCommand(j.Command); err != nil {
		return err
	}
	return ValidateComment(j.Comment)
}

// ValidateSchedule accepts five-field expressions and the crontab
// descriptors. @every is a robfig extension that crond does not know.
func ValidateSchedule(expr string) error {
	switch {
	case expr == "":
		return fmt.Errorf("%w: empty", ErrInvalidSchedule)
	case expr == "@reboot":
		return nil
	case strings.HasPrefix(expr, "@every"):
		return fmt.Errorf("%w: %q is not a crontab descriptor", ErrInvalidSchedule, expr)
	}
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, expr, err)
	}
	return nil
}

// ValidateCommand rejects empty and multi-line commands, commands holding
// the comment separator and commands whose quoting does not balance.
func ValidateCommand(command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidCommand)
	}
	if strings.ContainsAny(command, "\r\n") {
		return fmt.Errorf("%w: must be a single line", ErrInvalidCommand)
	}
	if strings.Contains(command, commentSep) {
		return fmt.Errorf("%w: %q would be read back as a comment", ErrInvalidCommand, commentSep)
	}
	if _, err := shellquote.Split(command); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	return nil
}

// ValidateComment rejects multi-line comments and comments that would be
// split at a separator when the line is read back. An empty comment is valid.
func ValidateComment(comment string) error {
	if strings.ContainsAny(comment, "\r\n") {
		return fmt.Errorf("%w: must be a single line", ErrInvalidComment)
	}
	if strings.Contains(" "+comment+" ", commentSep) {
		return fmt.Errorf("%w: a standalone # would be read back as a separator", ErrInvalidComment)
	}
	return nil
}
