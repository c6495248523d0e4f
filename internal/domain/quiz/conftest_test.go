package quiz

import (
	"fmt"
	"testing"

	"github.com/lernwerk/compass/internal/domain/vector"
)

// testCatalog builds 12 tiles per phase and 6 scenarios. Tile i of each pool
// weights trait i%6 with 1.0; option j of every scenario weights trait j.
func testCatalog() *Catalog {
	c := &Catalog{}
	for i := 0; i < 12; i++ {
		var w Weights
		w.Traits[i%vector.TraitDim] = 1
		w.WorkValues[i%vector.WorkValueDim] = 0.5
		c.Morning = append(c.Morning, Tile{ID: fmt.Sprintf("m%02d", i), Weights: w})
		c.Afternoon = append(c.Afternoon, Tile{ID: fmt.Sprintf("a%02d", i), Weights: w})
	}
	for i := 0; i < 6; i++ {
		s := Scenario{ID: fmt.Sprintf("s%d", i)}
		for j := range s.Options {
			s.Options[j].Weights.Traits[j] = 1
		}
		c.Scenarios = append(c.Scenarios, s)
	}
	return c
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession("sess-1", testCatalog(), DefaultRules())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// pickN toggles the first n tiles of the current phase on.
func pickN(t *testing.T, s *Session, n int) {
	t.Helper()
	for _, tile := range s.Catalog().Pool(s.Phase())[:n] {
		if _, err := s.Toggle(tile.ID); err != nil {
			t.Fatalf("Toggle(%s): %v", tile.ID, err)
		}
	}
}

// completeSession drives a session through every phase.
func completeSession(t *testing.T, s *Session) {
	t.Helper()
	for s.Phase().IsTilePhase() {
		pickN(t, s, s.Rules().PicksPerPhase)
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	for !s.Complete() {
		if err := s.Answer(0); err != nil {
			t.Fatalf("Answer: %v", err)
		}
	}
}
