package quiz

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/domain"
	domquiz "github.com/lernwerk/compass/internal/domain/quiz"
	"github.com/lernwerk/compass/internal/domain/quiz/catalog"
)

// --- Mocks ---

type mockStore struct {
	mu    sync.Mutex
	snaps map[string]domquiz.Snapshot
	saves int

	getErr  error
	saveErr error
}

func newMockStore() *mockStore {
	return &mockStore{snaps: make(map[string]domquiz.Snapshot)}
}

func (m *mockStore) Get(_ context.Context, id string) (domquiz.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domquiz.Snapshot{}, m.getErr
	}
	snap, ok := m.snaps[id]
	if !ok {
		return domquiz.Snapshot{}, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	return snap, nil
}

func (m *mockStore) Save(_ context.Context, snap domquiz.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snaps[snap.ID] = snap
	return nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snaps[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	delete(m.snaps, id)
	return nil
}

func (m *mockStore) stored(id string) (domquiz.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snaps[id]
	return s, ok
}

type mockRecorder struct {
	mu        sync.Mutex
	ops       map[string]int // "op/status" -> count
	completed []int
}

func (m *mockRecorder) ObserveQuizOp(op, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ops == nil {
		m.ops = make(map[string]int)
	}
	m.ops[op+"/"+status]++
}

func (m *mockRecorder) ObserveQuizCompleted(level int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, level)
}

func (m *mockRecorder) count(op, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ops[op+"/"+status]
}

// --- Helpers ---

func newTestService(t *testing.T) (*Service, *mockStore, *mockRecorder) {
	t.Helper()
	store := newMockStore()
	rec := &mockRecorder{}
	svc, err := New(store, catalog.Default(), domquiz.DefaultRules(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n := 0
	svc.WithRecorder(rec).WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("sess-%d", n)
	})
	return svc, store, rec
}

// pickPhase selects the first PicksPerPhase tiles of the current phase and advances.
func pickPhase(t *testing.T, svc *Service, id string) {
	t.Helper()
	sess, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for _, tile := range svc.Catalog().Pool(sess.Phase())[:svc.Rules().PicksPerPhase] {
		if _, _, err := svc.ToggleTile(context.Background(), id, tile.ID); err != nil {
			t.Fatalf("ToggleTile(%s): %v", tile.ID, err)
		}
	}
	if _, err := svc.Advance(context.Background(), id); err != nil {
		t.Fatalf("Advance: %v", err)
	}
}

// finishQuiz drives a started session to completion answering option 1.
func finishQuiz(t *testing.T, svc *Service, id string) {
	t.Helper()
	pickPhase(t, svc, id)
	pickPhase(t, svc, id)
	for range svc.Catalog().Scenarios {
		if _, err := svc.Answer(context.Background(), id, 1); err != nil {
			t.Fatalf("Answer: %v", err)
		}
	}
}
