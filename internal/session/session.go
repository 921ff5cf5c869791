// Package session runs the interactive crontab editor: it shows the table,
// reads menu choices through a prompt.Prompter and drives the lifecycle
// Manager. Every recoverable error is reported and the loop continues.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/flemzord/cronpad/internal/jobindex"
	"github.com/flemzord/cronpad/internal/lifecycle"
	"github.com/flemzord/cronpad/internal/prompt"
)

// Notifier reports whether the table changed outside this session since
// the last call.
type Notifier interface {
	Changed() bool
}

// Config configures a Session.
type Config struct {
	Manager  *lifecycle.Manager
	Prompter prompt.Prompter

	// Notifier is optional. When it reports a change the table is reloaded
	// before the next listing.
	Notifier Notifier

	Logger *slog.Logger
}

// Session is one interactive run over a single table.
type Session struct {
	m      *lifecycle.Manager
	p      prompt.Prompter
	notify Notifier
	logger *slog.Logger
}

// New creates a session.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{m: cfg.Manager, p: cfg.Prompter, notify: cfg.Notifier, logger: logger}
}

var errQuit = errors.New("quit")

const separator = "------------------------------------------------------------"

// Run shows the table and the main menu until the operator quits or input
// ends. Quitting and interrupts are not errors.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.syncExternal(ctx)
		s.show()

		err := s.step(ctx)
		if err == nil {
			continue
		}
		if errors.Is(err, errQuit) || errors.Is(err, prompt.ErrInterrupted) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.report(ctx, err); err != nil {
			if errors.Is(err, prompt.ErrInterrupted) {
				return nil
			}
			return err
		}
	}
}

func (s *Session) syncExternal(ctx context.Context) {
	if s.notify == nil || !s.notify.Changed() {
		return
	}
	changed, err := s.m.Reload(ctx)
	if err != nil {
		s.logger.Warn("session: reload after external change failed", "error", err)
		s.p.Printf("Warning: the crontab changed on disk and could not be re-read: %v\n\n", err)
		return
	}
	if changed {
		s.p.Printf("The crontab was changed by another program and has been reloaded.\n\n")
	}
}

func (s *Session) show() {
	t := s.m.Table()
	s.p.Printf("User: %s\n", t.Owner)
	s.p.Printf("Job Count: %d\n", t.Len())

	s.p.Printf("Active Jobs:\n")
	s.list(s.m.Active(), "no active jobs")
	s.p.Printf("\nInactive Jobs:\n")
	s.list(s.m.Inactive(), "no inactive jobs")
	s.p.Printf("\n%s\n\n", separator)
}

func (s *Session) list(ix jobindex.Index, empty string) {
	if ix.Len() == 0 {
		s.p.Printf("%s\n", empty)
		return
	}
	for _, e := range ix.Entries() {
		s.p.Printf("%d. %s\n", e.Position, e.Job.Line())
	}
}

const mainMenu = `Menu:
1. Add job
2. Remove job
3. Modify job

Type (q)uit to exit

`

func (s *Session) step(ctx context.Context) error {
	s.p.Printf("%s", mainMenu)
	choice, err := s.p.Ask(ctx, "> ")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "q", "quit", "exit":
		return errQuit
	case "1", "add", "a":
		return s.add(ctx)
	case "2", "remove", "delete", "del", "r":
		return s.remove(ctx)
	case "3", "modify", "mod", "m":
		return s.modify(ctx)
	}
	return lifecycle.ErrInvalidOption
}

// report tells the operator what went wrong and waits for Enter.
func (s *Session) report(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrAborted):
		s.p.Printf("Cancelled, nothing was changed.\n\n")
		return nil
	case errors.Is(err, lifecycle.ErrInvalidOption):
		s.p.Printf("Invalid option\n\n")
	case errors.Is(err, lifecycle.ErrStaleIndex):
		s.p.Printf("The job list changed, please select the job again.\n\n")
	case errors.Is(err, lifecycle.ErrPersistFailure):
		s.logger.Error("session: commit failed", "error", err)
		s.p.Printf("Error: %v\nThe crontab was re-read; it is unchanged. You may retry.\n\n", err)
	default:
		s.logger.Debug("session: operation failed", "error", err)
		s.p.Printf("Error: %v\n\n", err)
	}
	_, err = s.p.Ask(ctx, "Press [Enter] to continue")
	return err
}

func (s *Session) add(ctx context.Context) error {
	command, err := s.p.Ask(ctx, "Command for new job: ")
	if err != nil {
		return err
	}
	spec, err := s.recurrence(ctx)
	if err != nil {
		return err
	}
	comment, err := s.optionalComment(ctx)
	if err != nil {
		return err
	}

	job, err := s.m.Create(ctx, command, comment, spec)
	if err != nil {
		return err
	}
	if job != nil {
		s.p.Printf("Added job: (%s)\n\n", job.Line())
	}
	return nil
}

func (s *Session) optionalComment(ctx context.Context) (string, error) {
	label := "\nDo you want to add a comment to the cronjob? [y/N]: "
	for {
		answer, err := s.p.Ask(ctx, label)
		if err != nil {
			return "", err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "", "n":
			return "", nil
		case "y":
			return s.p.Ask(ctx, "\nType the comment you want for the cronjob\n> ")
		}
		label = "Please type y or n [y/N]: "
	}
}

func (s *Session) remove(ctx context.Context) error {
	if s.m.Table().Len() == 0 {
		s.p.Printf("There are no jobs\n")
		return lifecycle.ErrInvalidOption
	}
	job, err := s.findJob(ctx)
	if err != nil || job == nil {
		return err
	}
	if err := s.m.Delete(ctx, job); err != nil {
		return err
	}
	s.p.Printf("Job deleted.\n\n")
	return nil
}

const modifyMenu = `Options:
1. Enable/Disable job
2. Edit command for job
3. Edit schedule for job
4. Edit comment for job

Otherwise type 'c' to cancel
`

func (s *Session) modify(ctx context.Context) error {
	if s.m.Table().Len() == 0 {
		s.p.Printf("There are no jobs\n")
		return lifecycle.ErrInvalidOption
	}
	s.p.Printf("%s", modifyMenu)
	choice, err := s.p.Ask(ctx, "> ")
	if err != nil {
		return err
	}
	choice = strings.ToLower(strings.TrimSpace(choice))
	switch choice {
	case "1", "2", "3", "4":
	case "c", "cancel":
		return nil
	default:
		return lifecycle.ErrInvalidOption
	}

	job, err := s.findJob(ctx)
	if err != nil || job == nil {
		return err
	}

	var change lifecycle.Change
	switch choice {
	case "1":
		change = lifecycle.Toggle()
	case "2":
		command, err := s.p.Ask(ctx, "New command for job: ")
		if err != nil {
			return err
		}
		change = lifecycle.SetCommand(command)
	case "3":
		spec, err := s.recurrence(ctx)
		if err != nil {
			return err
		}
		change = lifecycle.SetRecurrence(spec)
	case "4":
		s.p.Printf("Note: Type nothing to remove a comment\n")
		comment, err := s.p.Ask(ctx, "New comment for job: ")
		if err != nil {
			return err
		}
		change = lifecycle.SetAnnotation(comment)
	}

	if err := s.m.Modify(ctx, job, change); err != nil {
		return err
	}
	s.p.Printf("Job saved.\n\n")
	return nil
}
