package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"playground/internal/catalog"
	"playground/internal/metrics"
	"playground/internal/runner"
	"playground/internal/storage"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown session IDs
var ErrSessionNotFound = errors.New("session not found")

// Manager keeps one Coordinator per open session
type Manager struct {
	runner     *runner.Runner
	repository storage.Repository
	clock      clock.Clock

	requireCompile bool

	mu       sync.RWMutex
	sessions map[string]*Coordinator
}

// NewManager creates a Manager whose sessions share runner and repository
func NewManager(r *runner.Runner, repository storage.Repository, clk clock.Clock) *Manager {
	if clk == nil {
		clk = clock.New()
	}

	return &Manager{
		runner:     r,
		repository: repository,
		clock:      clk,
		sessions:   make(map[string]*Coordinator),
	}
}

// SetRequireCompile gates deploy on a completed compile in sessions created afterwards
func (m *Manager) SetRequireCompile(require bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requireCompile = require
}

// Create opens a session with the default contract in its editor
func (m *Manager) Create() *Coordinator {
	id := uuid.NewString()
	store := NewStore(NewState(catalog.DefaultContract()))
	c := NewCoordinator(id, m.clock.Now().UTC(), store, m.runner, m.repository)

	m.mu.Lock()
	c.SetRequireCompile(m.requireCompile)
	m.sessions[id] = c
	m.mu.Unlock()

	metrics.ActiveSessions.Inc()
	slog.Info("Session created", "session_id", id)

	return c
}

// Get returns the Coordinator of session id
func (m *Manager) Get(id string) (*Coordinator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return c, nil
}

// List returns the IDs of all open sessions, sorted
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close ends session id, cancelling its in-flight operations and dropping its history
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	c, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	c.Close()
	metrics.ActiveSessions.Dec()

	if err := m.repository.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session history: %w", err)
	}

	slog.Info("Session closed", "session_id", id)
	return nil
}

// Shutdown closes every session
func (m *Manager) Shutdown(ctx context.Context) {
	for _, id := range m.List() {
		if err := m.Close(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			slog.Warn("Failed to close session", "session_id", id, "error", err)
		}
	}
}
