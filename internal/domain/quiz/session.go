package quiz

import (
	"fmt"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/vector"
)

// Session is the mutable state of one quiz run. It is owned by a single
// caller at a time; concurrent use must be serialized externally.
// Every transition either succeeds completely or leaves the session unchanged.
type Session struct {
	id      string
	catalog *Catalog
	rules   Rules
	phase   Phase
	picks   map[Phase][]string
	answers []int
	xp      int
	badges  BadgeSet
}

// NewSession starts a session in the morning phase.
func NewSession(id string, c *Catalog, r Rules) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: catalog is required", domain.ErrInvalidInput)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(r.PicksPerPhase); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return &Session{
		id:      id,
		catalog: c,
		rules:   r,
		phase:   PhaseMorning,
		picks:   make(map[Phase][]string, 2),
		badges:  make(BadgeSet, len(phaseBadge)+1),
	}, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Rules returns the session's quiz constants.
func (s *Session) Rules() Rules { return s.rules }

// Catalog returns the shared quiz content.
func (s *Session) Catalog() *Catalog { return s.catalog }

// XP returns the accumulated experience.
func (s *Session) XP() int { return s.xp }

// Level returns the current level.
func (s *Session) Level() int { return s.rules.Level(s.xp) }

// Progress returns the progress towards the next level.
func (s *Session) Progress() float64 { return s.rules.Progress(s.xp) }

// Badges returns the earned badges in lexical order.
func (s *Session) Badges() []Badge { return s.badges.Sorted() }

// HasBadge reports whether a badge was earned.
func (s *Session) HasBadge(b Badge) bool { return s.badges.Has(b) }

// Complete reports whether the session reached the terminal phase.
func (s *Session) Complete() bool { return s.phase == PhaseComplete }

// Selected returns the selected tile ids of a tile phase in pick order.
func (s *Session) Selected(p Phase) []string {
	return append([]string(nil), s.picks[p]...)
}

// Answers returns the chosen option index of each answered scenario.
func (s *Session) Answers() []int {
	return append([]int(nil), s.answers...)
}

// ScenarioIndex returns the index of the next unanswered scenario.
func (s *Session) ScenarioIndex() int { return len(s.answers) }

// CurrentScenario returns the next unanswered scenario while in the
// scenarios phase.
func (s *Session) CurrentScenario() (Scenario, bool) {
	if s.phase != PhaseScenarios || len(s.answers) >= len(s.catalog.Scenarios) {
		return Scenario{}, false
	}
	return s.catalog.Scenarios[len(s.answers)], true
}

// IsSelected reports whether a tile of the current phase is selected.
func (s *Session) IsSelected(tileID string) bool {
	return indexOf(s.picks[s.phase], tileID) >= 0
}

// Toggle selects or deselects a tile of the current phase and returns the new
// selection state. Selecting beyond the per-phase cap is rejected.
func (s *Session) Toggle(tileID string) (bool, error) {
	if !s.phase.IsTilePhase() {
		return false, domain.NewTransitionError(string(s.phase), "tiles can only be toggled in a tile phase")
	}
	if _, ok := s.catalog.Tile(s.phase, tileID); !ok {
		return false, fmt.Errorf("%w: tile %q is not offered in phase %s", domain.ErrInvalidInput, tileID, s.phase)
	}

	picked := s.picks[s.phase]
	if i := indexOf(picked, tileID); i >= 0 {
		s.picks[s.phase] = append(picked[:i:i], picked[i+1:]...)
		s.xp -= s.rules.TileXP
		return false, nil
	}
	if len(picked) >= s.rules.PicksPerPhase {
		return false, domain.NewTransitionError(
			string(s.phase), fmt.Sprintf("pick limit of %d reached", s.rules.PicksPerPhase),
		)
	}
	s.picks[s.phase] = append(picked, tileID)
	s.xp += s.rules.TileXP
	return true, nil
}

// Advance finishes the current tile phase. It requires exactly the per-phase
// pick count and awards the phase badge.
func (s *Session) Advance() error {
	if !s.phase.IsTilePhase() {
		return domain.NewTransitionError(string(s.phase), "advance is only valid in a tile phase")
	}
	if n := len(s.picks[s.phase]); n != s.rules.PicksPerPhase {
		return domain.NewTransitionError(
			string(s.phase), fmt.Sprintf("%d of %d tiles picked", n, s.rules.PicksPerPhase),
		)
	}
	s.finishPhase()
	return nil
}

// Answer records the chosen option for the current scenario. Answering the
// last scenario completes the quiz.
func (s *Session) Answer(option int) error {
	if s.phase != PhaseScenarios {
		return domain.NewTransitionError(string(s.phase), "answers are only accepted in the scenarios phase")
	}
	if len(s.answers) >= len(s.catalog.Scenarios) {
		return domain.NewTransitionError(string(s.phase), "all scenarios already answered")
	}
	if option < 0 || option >= OptionsPerScenario {
		return fmt.Errorf("%w: option must be between 0 and %d, got %d",
			domain.ErrInvalidInput, OptionsPerScenario-1, option)
	}
	s.answers = append(s.answers, option)
	s.xp += s.rules.AnswerXP
	if len(s.answers) == len(s.catalog.Scenarios) {
		s.finishPhase()
	}
	return nil
}

// finishPhase awards the current phase badge and moves to the next phase.
// Badges are a set, so repeated completion never duplicates them.
func (s *Session) finishPhase() {
	if b, ok := phaseBadge[s.phase]; ok {
		s.badges.Add(b)
	}
	switch s.phase {
	case PhaseMorning:
		s.phase = PhaseAfternoon
	case PhaseAfternoon:
		s.phase = PhaseScenarios
	case PhaseScenarios:
		s.phase = PhaseComplete
		s.badges.Add(BadgeComplete)
	}
}

// Contributions collects the weights of the current picks and answers.
func (s *Session) Contributions() Contributions {
	var c Contributions
	for _, id := range s.picks[PhaseMorning] {
		if t, ok := s.catalog.Tile(PhaseMorning, id); ok {
			c.Morning = append(c.Morning, t.Weights)
		}
	}
	for _, id := range s.picks[PhaseAfternoon] {
		if t, ok := s.catalog.Tile(PhaseAfternoon, id); ok {
			c.Afternoon = append(c.Afternoon, t.Weights)
		}
	}
	for i, opt := range s.answers {
		c.Scenario = append(c.Scenario, s.catalog.Scenarios[i].Options[opt].Weights)
	}
	return c
}

// Vectors computes the trait and work-value vectors of the current state.
func (s *Session) Vectors() (vector.Traits, vector.WorkValues) {
	return Compute(s.Contributions(), s.rules.Multipliers)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
