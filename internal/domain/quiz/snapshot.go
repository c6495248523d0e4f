package quiz

import (
	"fmt"

	"github.com/lernwerk/compass/internal/domain"
)

// Snapshot is the serializable state of a session.
type Snapshot struct {
	ID        string   `json:"id"`
	Phase     Phase    `json:"phase"`
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	Answers   []int    `json:"answers"`
	XP        int      `json:"xp"`
	Badges    []Badge  `json:"badges"`
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:        s.id,
		Phase:     s.phase,
		Morning:   s.Selected(PhaseMorning),
		Afternoon: s.Selected(PhaseAfternoon),
		Answers:   s.Answers(),
		XP:        s.xp,
		Badges:    s.Badges(),
	}
}

// Restore rebuilds a session from a snapshot against the given catalog and
// rules. Snapshots referencing tiles or options the catalog does not offer,
// repeating a tile, or holding progress their phase cannot have are rejected.
func Restore(snap Snapshot, c *Catalog, r Rules) (*Session, error) {
	s, err := NewSession(snap.ID, c, r)
	if err != nil {
		return nil, err
	}
	if !snap.Phase.IsValid() {
		return nil, fmt.Errorf("%w: unknown phase %q", domain.ErrInvalidInput, snap.Phase)
	}
	for phase, ids := range map[Phase][]string{PhaseMorning: snap.Morning, PhaseAfternoon: snap.Afternoon} {
		if len(ids) > r.PicksPerPhase {
			return nil, fmt.Errorf("%w: %s has %d picks, cap is %d", domain.ErrInvalidInput, phase, len(ids), r.PicksPerPhase)
		}
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := c.Tile(phase, id); !ok {
				return nil, fmt.Errorf("%w: unknown %s tile %q", domain.ErrInvalidInput, phase, id)
			}
			if _, dup := seen[id]; dup {
				return nil, fmt.Errorf("%w: %s tile %q picked twice", domain.ErrInvalidInput, phase, id)
			}
			seen[id] = struct{}{}
		}
		if len(ids) > 0 {
			s.picks[phase] = append([]string(nil), ids...)
		}
	}
	if len(snap.Answers) > len(c.Scenarios) {
		return nil, fmt.Errorf("%w: %d answers for %d scenarios", domain.ErrInvalidInput, len(snap.Answers), len(c.Scenarios))
	}
	for _, a := range snap.Answers {
		if a < 0 || a >= OptionsPerScenario {
			return nil, fmt.Errorf("%w: answer option %d out of range", domain.ErrInvalidInput, a)
		}
	}
	if err := checkProgress(snap, len(c.Scenarios), r.PicksPerPhase); err != nil {
		return nil, err
	}
	if snap.XP < 0 {
		return nil, fmt.Errorf("%w: negative xp", domain.ErrInvalidInput)
	}

	s.phase = snap.Phase
	s.answers = append([]int(nil), snap.Answers...)
	s.xp = snap.XP
	for _, b := range snap.Badges {
		s.badges.Add(b)
	}
	return s, nil
}

// checkProgress verifies that picks and answers match what the state machine
// allows in the snapshot's phase: earlier tile phases hold exactly the pick
// count, later phases hold nothing, and only complete has every answer.
func checkProgress(snap Snapshot, scenarios, picks int) error {
	morning, afternoon, answers := len(snap.Morning), len(snap.Afternoon), len(snap.Answers)
	var ok bool
	switch snap.Phase {
	case PhaseMorning:
		ok = afternoon == 0 && answers == 0
	case PhaseAfternoon:
		ok = morning == picks && answers == 0
	case PhaseScenarios:
		ok = morning == picks && afternoon == picks && answers < scenarios
	case PhaseComplete:
		ok = morning == picks && afternoon == picks && answers == scenarios
	}
	if !ok {
		return fmt.Errorf("%w: phase %s inconsistent with %d/%d picks and %d answers",
			domain.ErrInvalidInput, snap.Phase, morning, afternoon, answers)
	}
	return nil
}
