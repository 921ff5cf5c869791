package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/flemzord/cronpad/internal/crontab"
	"github.com/flemzord/cronpad/internal/jobindex"
	"github.com/flemzord/cronpad/internal/schedule"
)

// Journal records committed mutations. Before and After are crontab lines;
// one of them is empty for creates and deletes.
type Journal interface {
	Record(ctx context.Context, action, before, after string) error
}

// Recorder receives mutation outcomes and table sizes.
type Recorder interface {
	Mutation(action, outcome string)
	Table(active, inactive int)
}

// Mutation outcomes reported to the Recorder.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeAborted   = "aborted"
	OutcomeFailed    = "failed"
)

// Config configures a Manager.
type Config struct {
	// Backend loads and persists the table. Required.
	Backend crontab.Backend

	// Validator checks candidates. Defaults to crontab.Syntax.
	Validator crontab.Validator

	// Confirmer gates deletes and modifications. Required.
	Confirmer Confirmer

	// Journal and Recorder are optional.
	Journal  Journal
	Recorder Recorder

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Manager owns the in-memory table for one session. It is not safe for
// concurrent use; one mutation completes before the next begins.
type Manager struct {
	backend   crontab.Backend
	validator crontab.Validator
	confirmer Confirmer
	journal   Journal
	recorder  Recorder
	logger    *slog.Logger

	table *crontab.Table
	rev   uint64
	stale bool
}

// NewManager loads the table from cfg.Backend.
func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	if cfg.Backend == nil {
		return nil, errors.New("lifecycle: backend is required")
	}
	if cfg.Confirmer == nil {
		return nil, errors.New("lifecycle: confirmer is required")
	}
	m := &Manager{
		backend:   cfg.Backend,
		validator: cfg.Validator,
		confirmer: cfg.Confirmer,
		journal:   cfg.Journal,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
	}
	if m.validator == nil {
		m.validator = crontab.Syntax
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if _, err := m.Reload(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Table returns the current table. It is replaced after every commit and
// reload; callers must not keep it across mutations.
func (m *Manager) Table() *crontab.Table { return m.table }

// Revision increases every time the table is replaced.
func (m *Manager) Revision() uint64 { return m.rev }

// Active numbers the enabled jobs.
func (m *Manager) Active() jobindex.Index { return jobindex.Active(m.table, m.rev) }

// Inactive numbers the disabled jobs.
func (m *Manager) Inactive() jobindex.Index { return jobindex.Inactive(m.table, m.rev) }

// Search numbers jobs whose command or comment contains term.
func (m *Manager) Search(term string) jobindex.Index {
	return jobindex.Search(m.table, m.rev, term)
}

// SearchPattern numbers jobs whose command or comment matches re.
func (m *Manager) SearchPattern(re *regexp.Regexp) jobindex.Index {
	return jobindex.SearchPattern(m.table, m.rev, re)
}

// Resolve maps a position of ix to its job. It returns nil without error
// when the position is absent and ErrStaleIndex when ix predates the
// current table.
func (m *Manager) Resolve(ix jobindex.Index, position int) (*crontab.Job, error) {
	if ix.Revision != m.rev {
		return nil, ErrStaleIndex
	}
	j, ok := ix.Resolve(position)
	if !ok {
		return nil, nil
	}
	return j, nil
}

// Reload re-reads the table from the backend, reporting whether its content
// differs from the table it replaces. All indices become stale.
func (m *Manager) Reload(ctx context.Context) (bool, error) {
	t, err := m.backend.Load(ctx)
	if err != nil {
		m.stale = true
		return false, fmt.Errorf("lifecycle: load table: %w", err)
	}
	changed := m.table == nil || m.table.String() != t.String()
	m.table = t
	m.rev++
	m.stale = false
	if m.recorder != nil {
		m.recorder.Table(m.Active().Len(), m.Inactive().Len())
	}
	return changed, nil
}

// Create validates a new job built from command, comment and spec, then
// appends and commits it. A rejected job never reaches the table.
func (m *Manager) Create(ctx context.Context, command, comment string, spec schedule.Spec) (*crontab.Job, error) {
	const action = "create"
	if err := m.refresh(ctx); err != nil {
		return nil, err
	}

	candidate := crontab.NewJob(strings.TrimSpace(command), strings.TrimSpace(comment))
	if err := crontab.ValidateComment(candidate.Comment); err != nil {
		return nil, m.reject(action, err)
	}
	expr, err := spec.Render()
	if err != nil {
		return nil, m.reject(action, err)
	}
	candidate.SetSchedule(expr)
	if err := m.validator.Validate(candidate); err != nil {
		return nil, m.reject(action, err)
	}

	m.table.Append(candidate)
	if err := m.Commit(ctx); err != nil {
		m.outcome(action, OutcomeFailed)
		return nil, err
	}
	m.record(ctx, action, "", candidate.Line())
	return m.find(candidate), nil
}

// Modify applies change to job after validation and confirmation. On any
// failure the job keeps its previous content.
func (m *Manager) Modify(ctx context.Context, job *crontab.Job, change Change) error {
	if err := m.live(ctx, job); err != nil {
		return err
	}

	candidate := job.Copy()
	action, verb, err := change.apply(candidate)
	if err != nil {
		return m.reject(action, err)
	}
	if change.Action != ToggleEnabled {
		if err := m.validator.Validate(candidate); err != nil {
			return m.reject(action, err)
		}
	}

	ok, err := m.confirmer.Confirm(ctx, verb, candidate)
	if err != nil {
		return err
	}
	if !ok {
		m.outcome(action, OutcomeAborted)
		return ErrAborted
	}

	before := job.Line()
	*job = *candidate
	if err := m.Commit(ctx); err != nil {
		m.outcome(action, OutcomeFailed)
		return err
	}
	m.record(ctx, action, before, candidate.Line())
	return nil
}

// Delete removes job after confirmation.
func (m *Manager) Delete(ctx context.Context, job *crontab.Job) error {
	const action = "delete"
	if err := m.live(ctx, job); err != nil {
		return err
	}

	ok, err := m.confirmer.Confirm(ctx, action, job)
	if err != nil {
		return err
	}
	if !ok {
		m.outcome(action, OutcomeAborted)
		return ErrAborted
	}

	before := job.Line()
	m.table.Remove(job)
	if err := m.Commit(ctx); err != nil {
		m.outcome(action, OutcomeFailed)
		return err
	}
	m.record(ctx, action, before, "")
	return nil
}

// Commit persists the in-memory table and re-reads it. When the save
// fails the in-memory table is discarded and re-read, so it again matches
// the last successful commit. Once the save succeeds the mutation counts as
// committed: a failed re-read is logged and leaves the table stale, so the
// next operation loads it again.
func (m *Manager) Commit(ctx context.Context) error {
	if err := m.backend.Save(ctx, m.table); err != nil {
		saveErr := fmt.Errorf("%w: %w", ErrPersistFailure, err)
		m.logger.Error("lifecycle: save failed", "error", err)
		if _, rerr := m.Reload(ctx); rerr != nil {
			m.rev++
			return errors.Join(saveErr, rerr)
		}
		return saveErr
	}
	if _, err := m.Reload(ctx); err != nil {
		m.logger.Warn("lifecycle: re-read after save failed", "error", err)
		m.rev++
	}
	return nil
}

// refresh re-reads a table left stale by a failed load.
func (m *Manager) refresh(ctx context.Context) error {
	if !m.stale {
		return nil
	}
	_, err := m.Reload(ctx)
	return err
}

// live checks that job belongs to the current table.
func (m *Manager) live(ctx context.Context, job *crontab.Job) error {
	if err := m.refresh(ctx); err != nil {
		return err
	}
	if job == nil || !m.table.Contains(job) {
		return fmt.Errorf("%w: %w", ErrStaleIndex, crontab.ErrJobNotFound)
	}
	return nil
}

// find returns the reloaded job equal to j, preferring the last one since
// Create appends.
func (m *Manager) find(j *crontab.Job) *crontab.Job {
	jobs := m.table.Jobs()
	for i := len(jobs) - 1; i >= 0; i-- {
		if *jobs[i] == *j {
			return jobs[i]
		}
	}
	return nil
}

func (m *Manager) reject(action string, err error) error {
	m.outcome(action, OutcomeRejected)
	m.logger.Debug("lifecycle: candidate rejected", "action", action, "error", err)
	return fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
}

func (m *Manager) outcome(action, outcome string) {
	if m.recorder != nil {
		m.recorder.Mutation(action, outcome)
	}
}

func (m *Manager) record(ctx context.Context, action, before, after string) {
	m.outcome(action, OutcomeCommitted)
	m.logger.Info("lifecycle: committed", "action", action, "before", before, "after", after)
	if m.journal == nil {
		return
	}
	if err := m.journal.Record(ctx, action, before, after); err != nil {
		m.logger.Warn("lifecycle: journal write failed", "action", action, "error", err)
	}
}

// Action selects what Modify changes.
type Action int

// Modify actions.
const (
	ToggleEnabled Action = iota + 1
	EditCommand
	EditRecurrence
	EditAnnotation
)

// Change is one modification of a job.
type Change struct {
	Action  Action
	Command string
	Spec    schedule.Spec
	Comment string
}

// Toggle flips the enabled flag.
func Toggle() Change { return Change{Action: ToggleEnabled} }

// SetCommand replaces the command.
func SetCommand(command string) Change { return Change{Action: EditCommand, Command: command} }

// SetRecurrence replaces the schedule with the rendering of spec.
func SetRecurrence(spec schedule.Spec) Change { return Change{Action: EditRecurrence, Spec: spec} }

// SetAnnotation replaces the comment. An empty comment removes it.
func SetAnnotation(comment string) Change { return Change{Action: EditAnnotation, Comment: comment} }

// apply stages the change on candidate and returns the journal action name
// and the confirmation verb shown to the operator.
func (c Change) apply(candidate *crontab.Job) (action, verb string, err error) {
	switch c.Action {
	case ToggleEnabled:
		candidate.Enabled = !candidate.Enabled
		if candidate.Enabled {
			return "enable", "enable", nil
		}
		return "disable", "disable", nil

	case EditCommand:
		candidate.Command = strings.TrimSpace(c.Command)
		return "edit-command", "save the command for", nil

	case EditRecurrence:
		expr, err := c.Spec.Render()
		if err != nil {
			return "edit-recurrence", "", err
		}
		candidate.SetSchedule(expr)
		return "edit-recurrence", "save the schedule for", nil

	case EditAnnotation:
		comment := strings.TrimSpace(c.Comment)
		if err := crontab.ValidateComment(comment); err != nil {
			return "edit-annotation", "", err
		}
		candidate.Comment = comment
		if comment == "" {
			return "edit-annotation", "remove the comment for", nil
		}
		return "edit-annotation", "save the comment for", nil
	}
	return "modify", "", fmt.Errorf("%w: modify action %d", ErrInvalidOption, int(c.Action))
}
