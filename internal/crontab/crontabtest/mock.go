// Package crontabtest provides test doubles for the crontab package.
package crontabtest

import (
	"context"
	"sync"

	"github.com/flemzord/cronpad/internal/crontab"
)

// MemoryBackend is an in-memory crontab.Backend. Saved tables are encoded
// to text and parsed again on Load, like a real store.
type MemoryBackend struct {
	// Owner is reported as the table owner.
	Owner string

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error

	// LoadErrAfterSave, when set, is returned by the first Load following
	// each successful Save.
	LoadErrAfterSave error

	mu      sync.Mutex
	text    string
	saves   int
	loads   int
	pending bool
}

// Compile-time interface check.
var _ crontab.Backend = (*MemoryBackend)(nil)

// NewMemoryBackend returns a backend holding text.
func NewMemoryBackend(text string) *MemoryBackend {
	return &MemoryBackend{Owner: "test", text: text}
}

// Load implements crontab.Backend.
func (m *MemoryBackend) Load(_ context.Context) (*crontab.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.pending {
		m.pending = false
		return nil, m.LoadErrAfterSave
	}
	t := crontab.Parse(m.text)
	t.Owner = m.Owner
	return t, nil
}

// Save implements crontab.Backend.
func (m *MemoryBackend) Save(_ context.Context, t *crontab.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saves++
	m.text = t.String()
	m.pending = m.LoadErrAfterSave != nil
	return nil
}

// Text returns the stored crontab text.
func (m *MemoryBackend) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// SetText replaces the stored text, simulating an external edit.
func (m *MemoryBackend) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

// SaveCount returns the number of successful saves.
func (m *MemoryBackend) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// LoadCount returns the number of Load calls.
func (m *MemoryBackend) LoadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}
