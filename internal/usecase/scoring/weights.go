package scoring

import (
	"fmt"
	"math"

	"github.com/lernwerk/compass/internal/domain"
)

// weightTolerance is the allowed deviation of a weight set's sum from 1.
const weightTolerance = 0.001

// FullWeights are the sub-score weights of the full-profile mode.
type FullWeights struct {
	Trait         float64
	Proximity     float64
	Interest      float64
	WorkValue     float64
	Qualification float64
	Boost         float64
}

// DefaultFullWeights returns the standard full-profile weights.
func DefaultFullWeights() FullWeights {
	return FullWeights{
		Trait:         0.35,
		Proximity:     0.25,
		Interest:      0.15,
		WorkValue:     0.10,
		Qualification: 0.10,
		Boost:         0.05,
	}
}

// Validate checks that weights are non-negative and sum to 1.
func (w FullWeights) Validate() error {
	return validateWeights("full", []namedWeight{
		{"trait", w.Trait}, {"proximity", w.Proximity}, {"interest", w.Interest},
		{"work_value", w.WorkValue}, {"qualification", w.Qualification}, {"boost", w.Boost},
	})
}

// ColdWeights are the sub-score weights of the cold-start mode.
type ColdWeights struct {
	Proximity     float64
	Interest      float64
	Qualification float64
}

// DefaultColdWeights returns the standard cold-start weights.
func DefaultColdWeights() ColdWeights {
	return ColdWeights{Proximity: 0.45, Interest: 0.35, Qualification: 0.20}
}

// Validate checks that weights are non-negative and sum to 1.
func (w ColdWeights) Validate() error {
	return validateWeights("cold_start", []namedWeight{
		{"proximity", w.Proximity}, {"interest", w.Interest}, {"qualification", w.Qualification},
	})
}

type namedWeight struct {
	name  string
	value float64
}

func validateWeights(set string, ws []namedWeight) error {
	var sum float64
	for _, w := range ws {
		if w.value < 0 || math.IsNaN(w.value) || math.IsInf(w.value, 0) {
			return fmt.Errorf("%w: %s weight %s must be non-negative, got %v", domain.ErrInvalidInput, set, w.name, w.value)
		}
		sum += w.value
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: %s weights must sum to 1, got %.4f", domain.ErrInvalidInput, set, sum)
	}
	return nil
}
