package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lernwerk/compass/internal/domain/category"
	"github.com/lernwerk/compass/internal/domain/opportunity"
	"github.com/lernwerk/compass/internal/domain/quiz"
	"github.com/lernwerk/compass/internal/domain/quiz/catalog"
	"github.com/lernwerk/compass/internal/domain/region"
	"github.com/lernwerk/compass/internal/usecase/scoring"
)

// Engine holds the validated engine tables built from the configuration.
type Engine struct {
	Tiers      region.Tiers
	Scoring    scoring.Config
	Categories *category.Table
	Rules      quiz.Rules
}

// Engine builds the engine tables, merging configured values over the defaults.
func (c *Config) Engine() (Engine, error) {
	var e Engine
	var err error

	if e.Tiers, err = c.Scoring.tiers(); err != nil {
		return Engine{}, err
	}
	if e.Scoring, err = c.Scoring.scorer(); err != nil {
		return Engine{}, err
	}
	if e.Categories, err = category.New(c.Categories); err != nil {
		return Engine{}, fmt.Errorf("categories: %w", err)
	}
	if e.Rules, err = c.Quiz.rules(); err != nil {
		return Engine{}, err
	}
	return e, nil
}

// Catalog loads the quiz catalog from catalog_path, or returns the built-in one.
func (q QuizConfig) Catalog() (*quiz.Catalog, error) {
	if q.CatalogPath == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(q.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("quiz.catalog_path: %w", err)
	}
	return c, nil
}

func (s ScoringConfig) tiers() (region.Tiers, error) {
	t := region.DefaultTiers()
	err := merge("scoring.proximity", s.Proximity, map[string]*float64{
		"same":              &t.Same,
		"adjacent_language": &t.AdjacentLanguage,
		"shared_language":   &t.SharedLanguage,
		"adjacent":          &t.Adjacent,
		"distant":           &t.Distant,
	})
	if err != nil {
		return region.Tiers{}, err
	}
	if err := t.Validate(); err != nil {
		return region.Tiers{}, fmt.Errorf("scoring.proximity: %w", err)
	}
	return t, nil
}

func (s ScoringConfig) scorer() (scoring.Config, error) {
	cfg := scoring.DefaultConfig()

	full := &cfg.Full
	if err := merge("scoring.full_weights", s.FullWeights, map[string]*float64{
		"trait":         &full.Trait,
		"proximity":     &full.Proximity,
		"interest":      &full.Interest,
		"work_value":    &full.WorkValue,
		"qualification": &full.Qualification,
		"boost":         &full.Boost,
	}); err != nil {
		return scoring.Config{}, err
	}

	cold := &cfg.Cold
	if err := merge("scoring.cold_weights", s.ColdWeights, map[string]*float64{
		"proximity":     &cold.Proximity,
		"interest":      &cold.Interest,
		"qualification": &cold.Qualification,
	}); err != nil {
		return scoring.Config{}, err
	}

	if s.Qualification.Missing != nil {
		cfg.Qualification.Missing = *s.Qualification.Missing
	}
	for name, steps := range s.Qualification.Tracks {
		track, err := opportunity.ParseTrack(name)
		if err != nil {
			return scoring.Config{}, fmt.Errorf("scoring.qualification.tracks: %w", err)
		}
		out := make([]scoring.Step, len(steps))
		for i, st := range steps {
			out[i] = scoring.Step{Min: st.Min, Score: st.Score}
		}
		cfg.Qualification.Steps[track] = out
	}

	if s.WorkValueNeutral != nil {
		cfg.WorkValueNeutral = *s.WorkValueNeutral
	}
	if s.CategoryShare != nil {
		cfg.CategoryShare = *s.CategoryShare
	}

	if err := cfg.Validate(); err != nil {
		return scoring.Config{}, fmt.Errorf("scoring: %w", err)
	}
	return cfg, nil
}

func (q QuizConfig) rules() (quiz.Rules, error) {
	r := quiz.DefaultRules()
	for _, f := range []struct {
		src int
		dst *int
	}{
		{q.PicksPerPhase, &r.PicksPerPhase},
		{q.TileXP, &r.TileXP},
		{q.AnswerXP, &r.AnswerXP},
		{q.Level2XP, &r.Level2XP},
		{q.Level3XP, &r.Level3XP},
	} {
		if f.src > 0 {
			*f.dst = f.src
		}
	}

	m := &r.Multipliers
	if err := merge("quiz.multipliers", q.Multipliers, map[string]*float64{
		"morning":   &m.Morning,
		"afternoon": &m.Afternoon,
		"scenario":  &m.Scenario,
	}); err != nil {
		return quiz.Rules{}, err
	}

	if err := r.Validate(); err != nil {
		return quiz.Rules{}, fmt.Errorf("quiz: %w", err)
	}
	return r, nil
}

// merge copies src values into the matching dst fields. Unknown keys are an error.
func merge(section string, src map[string]float64, dst map[string]*float64) error {
	for k, v := range src {
		p, ok := dst[strings.ToLower(strings.TrimSpace(k))]
		if !ok {
			return fmt.Errorf("%s: unknown key %q (known: %s)", section, k, strings.Join(keys(dst), ", "))
		}
		*p = v
	}
	return nil
}

func keys(m map[string]*float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
