package quiz

import (
	"math"
	"testing"
)

func TestLevel(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{10000, 3},
	}
	for _, tc := range tests {
		if got := r.Level(tc.xp); got != tc.want {
			t.Errorf("Level(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestProgress(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		xp   int
		want float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 0},
		{175, 0.5},
		{250, 1},
		{900, 1},
	}
	for _, tc := range tests {
		if got := r.Progress(tc.xp); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Progress(%d) = %v, want %v", tc.xp, got, tc.want)
		}
	}
}

func TestBadgeSet(t *testing.T) {
	s := BadgeSet{}
	if !s.Add(BadgeMorning) {
		t.Error("first add should report new")
	}
	if s.Add(BadgeMorning) {
		t.Error("second add should be a no-op")
	}
	s.Add(BadgeAfternoon)
	got := s.Sorted()
	if len(got) != 2 || got[0] != BadgeAfternoon {
		t.Errorf("Sorted() = %v", got)
	}
}

func TestRules_Validate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
	r := DefaultRules()
	r.PicksPerPhase = 0
	if r.Validate() == nil {
		t.Error("expected error for zero picks")
	}
	r = DefaultRules()
	r.Multipliers.Scenario = -1
	if r.Validate() == nil {
		t.Error("expected error for negative multiplier")
	}
}
