package applicant

import (
	"fmt"
	"math"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/region"
	"github.com/lernwerk/compass/internal/domain/tag"
	"github.com/lernwerk/compass/internal/domain/vector"
)

// Qualification score bounds.
const (
	MinQualification = 0
	MaxQualification = 100
)

// Params carries raw applicant input for New.
type Params struct {
	Region        string
	Language      string
	Interests     []string
	Skills        []string
	Qualification *float64  // nil = not assessed
	Traits        []float64 // nil or exactly vector.TraitDim values
	WorkValues    []float64 // nil or exactly vector.WorkValueDim values
}

// Profile is the applicant as seen by the scorer (immutable value object).
// Traits and work values are either both present or both absent.
type Profile struct {
	region        region.Code
	language      string
	interests     []string
	skills        []string
	qualification float64
	hasQual       bool
	traits        vector.Traits
	workValues    vector.WorkValues
	hasVectors    bool
}

// New validates and creates a Profile. Region membership in the proximity
// graph is checked by the scorer, which owns the graph.
func New(p Params) (Profile, error) {
	code := region.Normalize(p.Region)
	if code == "" {
		return Profile{}, fmt.Errorf("%w: applicant region is required", domain.ErrInvalidInput)
	}

	prof := Profile{
		region:    code,
		language:  tag.Normalize(p.Language),
		interests: tag.Clean(p.Interests),
		skills:    tag.Clean(p.Skills),
	}

	if p.Qualification != nil {
		q := *p.Qualification
		if math.IsNaN(q) || q < MinQualification || q > MaxQualification {
			return Profile{}, fmt.Errorf(
				"%w: qualification score must be between %d and %d, got %v",
				domain.ErrInvalidInput, MinQualification, MaxQualification, q,
			)
		}
		prof.qualification = q
		prof.hasQual = true
	}

	switch {
	case p.Traits == nil && p.WorkValues == nil:
	case p.Traits == nil || p.WorkValues == nil:
		return Profile{}, fmt.Errorf("%w: trait and work-value vectors must be given together", domain.ErrInvalidInput)
	default:
		t, err := vector.TraitsFromSlice(p.Traits)
		if err != nil {
			return Profile{}, fmt.Errorf("traits: %w", err)
		}
		w, err := vector.WorkValuesFromSlice(p.WorkValues)
		if err != nil {
			return Profile{}, fmt.Errorf("work values: %w", err)
		}
		prof.traits, prof.workValues, prof.hasVectors = t, w, true
	}

	return prof, nil
}

// WithVectors returns a copy of the profile carrying the given vector pair,
// typically the output of a completed quiz.
func (p Profile) WithVectors(t vector.Traits, w vector.WorkValues) Profile {
	p.traits, p.workValues, p.hasVectors = t, w, true
	return p
}

// Region returns the applicant's home region.
func (p Profile) Region() region.Code { return p.region }

// Language returns the preferred language tag (may be empty).
func (p Profile) Language() string { return p.language }

// Interests returns the normalized interest tags.
func (p Profile) Interests() []string { return p.interests }

// Skills returns the normalized skill tags.
func (p Profile) Skills() []string { return p.skills }

// Qualification returns the qualification score and whether it was assessed.
func (p Profile) Qualification() (float64, bool) { return p.qualification, p.hasQual }

// Traits returns the trait vector; zero when HasVectors is false.
func (p Profile) Traits() vector.Traits { return p.traits }

// WorkValues returns the work-value vector; zero when HasVectors is false.
func (p Profile) WorkValues() vector.WorkValues { return p.workValues }

// HasVectors reports whether the trait/work-value pair is present.
func (p Profile) HasVectors() bool { return p.hasVectors }

// ColdStart reports whether the profile must be scored without vectors.
func (p Profile) ColdStart() bool { return !p.hasVectors }
