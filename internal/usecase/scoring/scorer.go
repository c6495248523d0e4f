package scoring

import (
	"fmt"
	"math"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/applicant"
	"github.com/lernwerk/compass/internal/domain/category"
	"github.com/lernwerk/compass/internal/domain/compatibility"
	"github.com/lernwerk/compass/internal/domain/opportunity"
	"github.com/lernwerk/compass/internal/domain/region"
	"github.com/lernwerk/compass/internal/domain/tag"
	"github.com/lernwerk/compass/internal/domain/vector"
)

// Config holds the tunable scoring constants.
type Config struct {
	Full          FullWeights
	Cold          ColdWeights
	Qualification QualificationTable
	// WorkValueNeutral is used for unknown categories and degenerate vectors.
	WorkValueNeutral float64
	// CategoryShare is the share of the interest fit earned by a category
	// match; the rest comes from culture tags.
	CategoryShare float64
}

// DefaultConfig returns the standard scoring constants.
func DefaultConfig() Config {
	return Config{
		Full:             DefaultFullWeights(),
		Cold:             DefaultColdWeights(),
		Qualification:    DefaultQualificationTable(),
		WorkValueNeutral: 0.5,
		CategoryShare:    0.6,
	}
}

// Validate checks the configuration for correctness.
func (c Config) Validate() error {
	if err := c.Full.Validate(); err != nil {
		return err
	}
	if err := c.Cold.Validate(); err != nil {
		return err
	}
	if err := c.Qualification.Validate(); err != nil {
		return err
	}
	if c.WorkValueNeutral < 0 || c.WorkValueNeutral > 1 {
		return fmt.Errorf("%w: work-value neutral must be between 0 and 1", domain.ErrInvalidInput)
	}
	if c.CategoryShare < 0 || c.CategoryShare > 1 {
		return fmt.Errorf("%w: category share must be between 0 and 1", domain.ErrInvalidInput)
	}
	return nil
}

// Scorer computes the compatibility of one opportunity for one applicant.
// It holds only immutable tables and is safe for concurrent use.
type Scorer struct {
	graph      *region.Graph
	categories *category.Table
	cfg        Config
}

// NewScorer validates the configuration and creates a Scorer.
func NewScorer(graph *region.Graph, categories *category.Table, cfg Config) (*Scorer, error) {
	if graph == nil {
		return nil, fmt.Errorf("region graph is required")
	}
	if categories == nil {
		categories = category.Builtin()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Qualification = cfg.Qualification.sorted()
	return &Scorer{graph: graph, categories: categories, cfg: cfg}, nil
}

// Graph returns the proximity graph used by the scorer.
func (s *Scorer) Graph() *region.Graph { return s.graph }

// CheckApplicant validates the applicant against the scorer's tables.
func (s *Scorer) CheckApplicant(p applicant.Profile) error {
	if err := s.graph.Validate(p.Region()); err != nil {
		return fmt.Errorf("applicant: %w", err)
	}
	return nil
}

// Score computes the compatibility result. The mode is full-profile when the
// applicant carries both vectors and cold start otherwise.
func (s *Scorer) Score(p applicant.Profile, o opportunity.Opportunity) (compatibility.Result, error) {
	if err := s.CheckApplicant(p); err != nil {
		return compatibility.Result{}, err
	}
	proximity, err := s.graph.Combined(p.Region(), o.Region(), o.SecondaryRegion())
	if err != nil {
		return compatibility.Result{}, fmt.Errorf("opportunity %s: %w", o.ID(), err)
	}
	interest := s.interestFit(p, o)
	qs, hasQ := p.Qualification()
	qualification := s.cfg.Qualification.Fit(o.Track(), qs, hasQ)

	if p.ColdStart() {
		w := s.cfg.Cold
		return compose(o, compatibility.ModeColdStart, []term{
			{compatibility.LabelProximity, proximity, w.Proximity},
			{compatibility.LabelInterest, interest, w.Interest},
			{compatibility.LabelQualification, qualification, w.Qualification},
		}), nil
	}

	w := s.cfg.Full
	return compose(o, compatibility.ModeFull, []term{
		{compatibility.LabelTrait, traitFit(p, o), w.Trait},
		{compatibility.LabelProximity, proximity, w.Proximity},
		{compatibility.LabelInterest, interest, w.Interest},
		{compatibility.LabelWorkValue, s.workValueFit(p, o), w.WorkValue},
		{compatibility.LabelQualification, qualification, w.Qualification},
		{compatibility.LabelBoost, boost(o), w.Boost},
	}), nil
}

type term struct {
	label  string
	score  float64
	weight float64
}

func compose(o opportunity.Opportunity, mode compatibility.Mode, terms []term) compatibility.Result {
	var total float64
	breakdown := make([]compatibility.Component, len(terms))
	for i, t := range terms {
		sub := vector.Clamp01(t.score)
		total += sub * t.weight
		breakdown[i] = compatibility.Component{Label: t.label, Score: round3(sub), Weight: t.weight}
	}
	return compatibility.NewResult(o.ID(), o.Category(), mode, vector.Clamp01(total), breakdown)
}

// traitFit is the cosine between applicant traits and the ideal traits;
// degenerate vectors score 0.
func traitFit(p applicant.Profile, o opportunity.Opportunity) float64 {
	have, want := p.Traits(), o.IdealTraits()
	score, _ := vector.Cosine(have[:], want[:])
	return score
}

// workValueFit compares applicant work values with the category profile.
// Unknown categories and degenerate vectors get the neutral value.
func (s *Scorer) workValueFit(p applicant.Profile, o opportunity.Opportunity) float64 {
	row, ok := s.categories.Lookup(o.Category())
	if !ok {
		return s.cfg.WorkValueNeutral
	}
	have := p.WorkValues()
	score, ok := vector.Cosine(have[:], row[:])
	if !ok {
		return s.cfg.WorkValueNeutral
	}
	return score
}

// interestFit rewards an interest matching the category and culture tags
// matching any interest or skill.
func (s *Scorer) interestFit(p applicant.Profile, o opportunity.Opportunity) float64 {
	var categoryHit float64
	if o.Category() != "" && tag.MatchAny(o.Category(), p.Interests()) {
		categoryHit = 1
	}

	var culture float64
	if tags := o.CultureTags(); len(tags) > 0 {
		matched := 0
		for _, t := range tags {
			if tag.MatchAny(t, p.Interests()) || tag.MatchAny(t, p.Skills()) {
				matched++
			}
		}
		culture = float64(matched) / float64(len(tags))
	}

	return s.cfg.CategoryShare*categoryHit + (1-s.cfg.CategoryShare)*culture
}

func boost(o opportunity.Opportunity) float64 {
	switch {
	case o.Verified() && o.Boosted():
		return 1
	case o.Verified():
		return 0.5
	default:
		return 0
	}
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
