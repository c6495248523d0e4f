package scoring

import (
	"fmt"
	"sort"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/opportunity"
)

// Step maps a qualification score at or above Min to Score.
type Step struct {
	Min   float64
	Score float64
}

// QualificationTable holds the step function of every track plus the value
// used when the applicant has no score yet.
type QualificationTable struct {
	Steps   map[opportunity.Track][]Step
	Missing float64
}

// DefaultQualificationTable returns the standard step functions.
func DefaultQualificationTable() QualificationTable {
	return QualificationTable{
		Steps: map[opportunity.Track][]Step{
			opportunity.TrackFull:  {{80, 1.0}, {65, 0.8}, {50, 0.5}, {0, 0.2}},
			opportunity.TrackBasic: {{60, 1.0}, {45, 0.8}, {30, 0.6}, {0, 0.3}},
		},
		Missing: 0.6,
	}
}

// Validate checks that every track has steps and values lie in [0,1].
func (q QualificationTable) Validate() error {
	if q.Missing < 0 || q.Missing > 1 {
		return fmt.Errorf("%w: missing-qualification value must be between 0 and 1", domain.ErrInvalidInput)
	}
	for _, t := range []opportunity.Track{opportunity.TrackFull, opportunity.TrackBasic} {
		steps := q.Steps[t]
		if len(steps) == 0 {
			return fmt.Errorf("%w: no qualification steps for track %s", domain.ErrInvalidInput, t)
		}
		for _, s := range steps {
			if s.Score < 0 || s.Score > 1 {
				return fmt.Errorf("%w: track %s step score %v out of range", domain.ErrInvalidInput, t, s.Score)
			}
		}
	}
	return nil
}

// sorted returns a copy with every track's steps ordered by descending Min.
func (q QualificationTable) sorted() QualificationTable {
	out := QualificationTable{Steps: make(map[opportunity.Track][]Step, len(q.Steps)), Missing: q.Missing}
	for t, steps := range q.Steps {
		cp := append([]Step(nil), steps...)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].Min > cp[j].Min })
		out.Steps[t] = cp
	}
	return out
}

// Fit returns the qualification fit of an optional score on a track.
// Scores below every step get 0.
func (q QualificationTable) Fit(track opportunity.Track, score float64, ok bool) float64 {
	if !ok {
		return q.Missing
	}
	for _, s := range q.Steps[track] {
		if score >= s.Min {
			return s.Score
		}
	}
	return 0
}
