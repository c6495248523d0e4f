// Package quiz implements the personality quiz: the phase state machine,
// gamification bookkeeping and the conversion of picks and answers into
// trait and work-value vectors.
package quiz

import (
	"fmt"
	"math"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/vector"
)

// Phase is a quiz state.
type Phase string

// Phases in order. Complete is terminal.
const (
	PhaseMorning   Phase = "morning"
	PhaseAfternoon Phase = "afternoon"
	PhaseScenarios Phase = "scenarios"
	PhaseComplete  Phase = "complete"
)

// IsTilePhase reports whether the phase is a tile-picking phase.
func (p Phase) IsTilePhase() bool { return p == PhaseMorning || p == PhaseAfternoon }

// IsValid checks if the phase is known.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseMorning, PhaseAfternoon, PhaseScenarios, PhaseComplete:
		return true
	}
	return false
}

// OptionsPerScenario is the fixed number of options of every scenario question.
const OptionsPerScenario = 4

// Weights is a dense per-dimension contribution of a tile or scenario option.
type Weights struct {
	Traits     vector.Traits
	WorkValues vector.WorkValues
}

// ParseWeights expands a sparse dimension→weight map. Keys are trait names,
// trait letters or work-value names.
func ParseWeights(m map[string]float64) (Weights, error) {
	var w Weights
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Weights{}, fmt.Errorf("%w: weight for %q must be finite, got %v", domain.ErrInvalidInput, k, v)
		}
		if v < 0 {
			return Weights{}, fmt.Errorf("%w: negative weight %v for %q", domain.ErrInvalidInput, v, k)
		}
		if t, ok := vector.ParseTrait(k); ok {
			w.Traits[t] = v
			continue
		}
		if wv, ok := vector.ParseWorkValue(k); ok {
			w.WorkValues[wv] = v
			continue
		}
		return Weights{}, fmt.Errorf("%w: unknown dimension %q", domain.ErrInvalidInput, k)
	}
	return w, nil
}

// Tile is a selectable card of a tile phase.
type Tile struct {
	ID      string
	Label   string
	Weights Weights
}

// Option is one answer of a scenario question.
type Option struct {
	Label   string
	Weights Weights
}

// Scenario is a question with exactly four options.
type Scenario struct {
	ID      string
	Prompt  string
	Options [OptionsPerScenario]Option
}

// Catalog is the quiz content: tile pools per tile phase and the ordered
// scenario list. Immutable once built and shared by all sessions.
type Catalog struct {
	Morning   []Tile
	Afternoon []Tile
	Scenarios []Scenario
}

// Pool returns the tile pool of a tile phase.
func (c *Catalog) Pool(p Phase) []Tile {
	switch p {
	case PhaseMorning:
		return c.Morning
	case PhaseAfternoon:
		return c.Afternoon
	default:
		return nil
	}
}

// Tile looks up a tile of a phase pool by id.
func (c *Catalog) Tile(p Phase, id string) (Tile, bool) {
	for _, t := range c.Pool(p) {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// Validate checks that each pool can satisfy the pick count and ids are unique.
func (c *Catalog) Validate(picksPerPhase int) error {
	for _, p := range []Phase{PhaseMorning, PhaseAfternoon} {
		pool := c.Pool(p)
		if len(pool) < picksPerPhase {
			return fmt.Errorf("%s pool has %d tiles, need at least %d", p, len(pool), picksPerPhase)
		}
		seen := make(map[string]bool, len(pool))
		for _, t := range pool {
			if t.ID == "" {
				return fmt.Errorf("%s pool: tile id is required", p)
			}
			if seen[t.ID] {
				return fmt.Errorf("%s pool: duplicate tile id %q", p, t.ID)
			}
			seen[t.ID] = true
		}
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario is required")
	}
	return nil
}

// Multipliers are the per-phase contribution rates used by Compute.
type Multipliers struct {
	Morning   float64
	Afternoon float64
	Scenario  float64
}

// Rules are the tunable quiz constants.
type Rules struct {
	PicksPerPhase int
	TileXP        int
	AnswerXP      int
	Level2XP      int // T1: level 2 starts here
	Level3XP      int // T2: level 3 (max) starts here
	Multipliers   Multipliers
}

// DefaultRules returns the standard quiz constants.
func DefaultRules() Rules {
	return Rules{
		PicksPerPhase: 8,
		TileXP:        10,
		AnswerXP:      15,
		Level2XP:      100,
		Level3XP:      250,
		Multipliers:   Multipliers{Morning: 0.3, Afternoon: 0.3, Scenario: 0.4},
	}
}

// Validate checks the rules for consistency.
func (r Rules) Validate() error {
	if r.PicksPerPhase <= 0 {
		return fmt.Errorf("picks per phase must be positive, got %d", r.PicksPerPhase)
	}
	if r.TileXP < 0 || r.AnswerXP < 0 {
		return fmt.Errorf("xp rewards must not be negative")
	}
	if r.Level2XP <= 0 || r.Level3XP <= r.Level2XP {
		return fmt.Errorf("level thresholds must satisfy 0 < T1 < T2, got %d, %d", r.Level2XP, r.Level3XP)
	}
	m := r.Multipliers
	if m.Morning < 0 || m.Afternoon < 0 || m.Scenario < 0 {
		return fmt.Errorf("phase multipliers must not be negative")
	}
	return nil
}
