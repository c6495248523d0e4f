package quiz

import "sort"

// MaxLevel is the highest reachable level.
const MaxLevel = 3

// Level returns the level for an experience total.
func (r Rules) Level(xp int) int {
	switch {
	case xp < r.Level2XP:
		return 1
	case xp < r.Level3XP:
		return 2
	default:
		return MaxLevel
	}
}

// Progress returns the fraction of the way from the current level floor to
// the next level, or 1 at the max level.
func (r Rules) Progress(xp int) float64 {
	var floor, ceiling int
	switch r.Level(xp) {
	case 1:
		floor, ceiling = 0, r.Level2XP
	case 2:
		floor, ceiling = r.Level2XP, r.Level3XP
	default:
		return 1
	}
	p := float64(xp-floor) / float64(ceiling-floor)
	if p < 0 {
		return 0
	}
	return p
}

// Badge is an achievement earned during the quiz.
type Badge string

// Badges awarded by the state machine.
const (
	BadgeMorning   Badge = "morning_done"
	BadgeAfternoon Badge = "afternoon_done"
	BadgeScenarios Badge = "scenarios_done"
	BadgeComplete  Badge = "quiz_complete"
)

// phaseBadge maps a content phase to the badge earned by finishing it.
var phaseBadge = map[Phase]Badge{
	PhaseMorning:   BadgeMorning,
	PhaseAfternoon: BadgeAfternoon,
	PhaseScenarios: BadgeScenarios,
}

// BadgeSet is a set of earned badges. Adding twice is a no-op.
type BadgeSet map[Badge]struct{}

// Add inserts a badge and reports whether it was new.
func (s BadgeSet) Add(b Badge) bool {
	if _, ok := s[b]; ok {
		return false
	}
	s[b] = struct{}{}
	return true
}

// Has reports whether the badge was earned.
func (s BadgeSet) Has(b Badge) bool {
	_, ok := s[b]
	return ok
}

// Sorted returns the badges in lexical order.
func (s BadgeSet) Sorted() []Badge {
	out := make([]Badge, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
