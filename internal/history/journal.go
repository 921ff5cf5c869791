// Package history keeps a journal of committed crontab changes in a local
// SQLite database, one row per create, modify or delete.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Change is one journal row.
type Change struct {
	ID        string
	SessionID string
	Owner     string
	Action    string
	Before    string
	After     string
	CreatedAt time.Time
}

// Journal appends changes for one session. Open returns a ready journal.
type Journal struct {
	db      *sql.DB
	session string
	seq     int

	// Owner is stored with every row written after it is set.
	Owner string
}

// Session returns the ID shared by every change this journal records.
func (j *Journal) Session() string { return j.session }

// Record appends a change.
func (j *Journal) Record(ctx context.Context, action, before, after string) error {
	j.seq++
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO changes (id, session_id, seq, owner, action, before, after)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), j.session, j.seq, j.Owner, action, before, after,
	)
	if err != nil {
		return fmt.Errorf("history: record %s: %w", action, err)
	}
	return nil
}

// List returns up to limit most recent changes across all sessions in
// chronological order. A non-positive limit returns every change.
func (j *Journal) List(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, session_id, owner, action, before, after, created_at
		FROM changes
		ORDER BY created_at DESC, seq DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Change
	for rows.Next() {
		var (
			c       Change
			created string
		)
		if err := rows.Scan(&c.ID, &c.SessionID, &c.Owner, &c.Action, &c.Before, &c.After, &created); err != nil {
			return nil, fmt.Errorf("history: scan change: %w", err)
		}
		c.CreatedAt, err = time.Parse("2006-01-02T15:04:05.000Z", created)
		if err != nil {
			return nil, fmt.Errorf("history: parse created_at %q: %w", created, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list rows: %w", err)
	}

	slices.Reverse(out)
	return out, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
