package quiz

import "github.com/lernwerk/compass/internal/domain/vector"

// Contributions are the weights of selected tiles per tile phase and of the
// chosen option of every answered scenario.
type Contributions struct {
	Morning   []Weights
	Afternoon []Weights
	Scenario  []Weights
}

// Compute sums the contributions per dimension using the phase multipliers,
// then scales each group by its largest value so every component lies in
// [0,1]. Empty input yields zero vectors.
func Compute(c Contributions, m Multipliers) (vector.Traits, vector.WorkValues) {
	var traits vector.Traits
	var values vector.WorkValues

	add := func(ws []Weights, rate float64) {
		for _, w := range ws {
			for i := range traits {
				traits[i] += w.Traits[i] * rate
			}
			for i := range values {
				values[i] += w.WorkValues[i] * rate
			}
		}
	}
	add(c.Morning, m.Morning)
	add(c.Afternoon, m.Afternoon)
	add(c.Scenario, m.Scenario)

	vector.NormalizeByMax(traits[:])
	vector.NormalizeByMax(values[:])
	return traits, values
}
