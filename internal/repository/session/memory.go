package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/quiz"
)

type memEntry struct {
	snap    quiz.Snapshot
	expires time.Time // zero = never
}

// Memory is an in-process session store for single-instance deployments
// and tests. Expired entries are dropped on access and swept by Save at most
// once per TTL interval.
type Memory struct {
	mu        sync.Mutex
	entries   map[string]memEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewMemory creates an in-memory session store. ttl <= 0 keeps sessions forever.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: make(map[string]memEntry), ttl: ttl, now: time.Now}
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Get returns a stored snapshot and extends its TTL.
func (m *Memory) Get(_ context.Context, id string) (quiz.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok || m.expired(e) {
		delete(m.entries, id)
		return quiz.Snapshot{}, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	e.expires = m.deadline()
	m.entries[id] = e
	return cloneSnapshot(e.snap), nil
}

// Save stores a snapshot.
func (m *Memory) Save(_ context.Context, snap quiz.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maybeSweep()
	m.entries[snap.ID] = memEntry{snap: cloneSnapshot(snap), expires: m.deadline()}
	return nil
}

// Delete removes a snapshot.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok || m.expired(e) {
		delete(m.entries, id)
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	delete(m.entries, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	return len(m.entries)
}

// maybeSweep runs sweep when a full TTL has passed since the last one.
// Callers hold m.mu.
func (m *Memory) maybeSweep() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	if now.Sub(m.lastSweep) < m.ttl {
		return
	}
	m.sweep()
	m.lastSweep = now
}

// sweep drops every expired entry. Callers hold m.mu.
func (m *Memory) sweep() {
	for id, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, id)
		}
	}
}

func (m *Memory) deadline() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(m.ttl)
}

func (m *Memory) expired(e memEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}

func cloneSnapshot(s quiz.Snapshot) quiz.Snapshot {
	s.Morning = append([]string(nil), s.Morning...)
	s.Afternoon = append([]string(nil), s.Afternoon...)
	s.Answers = append([]int(nil), s.Answers...)
	s.Badges = append([]quiz.Badge(nil), s.Badges...)
	return s
}
