package scoring

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/domain/applicant"
	"github.com/lernwerk/compass/internal/domain/category"
	"github.com/lernwerk/compass/internal/domain/compatibility"
	"github.com/lernwerk/compass/internal/domain/opportunity"
	"github.com/lernwerk/compass/internal/domain/region"
)

// --- Mocks ---

type batchObservation struct {
	mode                         compatibility.Mode
	status                       string
	candidates, ranked, rejected int
}

type mockRecorder struct {
	mu  sync.Mutex
	obs []batchObservation
}

func (m *mockRecorder) ObserveBatch(
	mode compatibility.Mode, status string, candidates, ranked, rejected int, _ time.Duration,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, batchObservation{mode, status, candidates, ranked, rejected})
}

// --- Helpers ---

func ptr(f float64) *float64 { return &f }

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(region.MustSwitzerland(), category.Builtin(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	return s
}

func newTestService(t *testing.T) (*Service, *mockRecorder) {
	t.Helper()
	rec := &mockRecorder{}
	return New(newTestScorer(t), zap.NewNop()).WithRecorder(rec), rec
}

func mustApplicant(t *testing.T, p applicant.Params) applicant.Profile {
	t.Helper()
	a, err := applicant.New(p)
	if err != nil {
		t.Fatalf("applicant.New: %v", err)
	}
	return a
}

func mustOpportunity(t *testing.T, p opportunity.Params) opportunity.Opportunity {
	t.Helper()
	o, err := opportunity.New(p)
	if err != nil {
		t.Fatalf("opportunity.New: %v", err)
	}
	return o
}

// informatikRow is the built-in work-value row of the informatik category.
func informatikRow(t *testing.T) []float64 {
	t.Helper()
	row, ok := category.Builtin().Lookup("informatik")
	if !ok {
		t.Fatal("informatik category missing")
	}
	return row.Slice()
}
