// Package vector holds the fixed-order trait and work-value vectors and the
// similarity math over them.
package vector

import (
	"fmt"
	"math"

	"github.com/lernwerk/compass/internal/domain"
)

// Dimension counts.
const (
	TraitDim     = 6
	WorkValueDim = 8
)

// Trait is a position in the trait vector.
type Trait int

// Trait dimensions in vector order. The order doubles as the tie-break order.
const (
	Realistic Trait = iota
	Investigative
	Artistic
	Social
	Enterprising
	Conventional
)

var traitNames = [TraitDim]string{
	"realistic", "investigative", "artistic", "social", "enterprising", "conventional",
}

// String returns the trait name.
func (t Trait) String() string {
	if t < 0 || int(t) >= TraitDim {
		return fmt.Sprintf("trait(%d)", int(t))
	}
	return traitNames[t]
}

// Letter returns the single-letter code (R, I, A, S, E, C).
func (t Trait) Letter() string {
	if t < 0 || int(t) >= TraitDim {
		return "?"
	}
	return string("RIASEC"[t])
}

// WorkValue is a position in the work-value vector.
type WorkValue int

// Work-value dimensions in vector order.
const (
	Teamwork WorkValue = iota
	Independence
	Creativity
	Stability
	Variety
	HelpingOthers
	PhysicalActivity
	Technology
)

var workValueNames = [WorkValueDim]string{
	"teamwork", "independence", "creativity", "stability",
	"variety", "helping_others", "physical_activity", "technology",
}

// String returns the work-value name.
func (w WorkValue) String() string {
	if w < 0 || int(w) >= WorkValueDim {
		return fmt.Sprintf("work_value(%d)", int(w))
	}
	return workValueNames[w]
}

// TraitNames returns the trait names in vector order.
func TraitNames() []string { return traitNames[:] }

// WorkValueNames returns the work-value names in vector order.
func WorkValueNames() []string { return workValueNames[:] }

// ParseTrait resolves a trait name ("social") or letter ("S").
func ParseTrait(s string) (Trait, bool) {
	for i, n := range traitNames {
		if s == n || s == Trait(i).Letter() {
			return Trait(i), true
		}
	}
	return 0, false
}

// ParseWorkValue resolves a work-value name.
func ParseWorkValue(s string) (WorkValue, bool) {
	for i, n := range workValueNames {
		if s == n {
			return WorkValue(i), true
		}
	}
	return 0, false
}

// Traits is the 6-dimensional trait vector.
type Traits [TraitDim]float64

// WorkValues is the 8-dimensional work-value vector.
type WorkValues [WorkValueDim]float64

// TraitsFromSlice copies a slice into a Traits vector.
// The slice must have exactly TraitDim finite entries in [0,1], the range a
// normalized quiz result produces.
func TraitsFromSlice(v []float64) (Traits, error) {
	var t Traits
	if len(v) != TraitDim {
		return t, fmt.Errorf("%w: trait vector must have %d values, got %d", domain.ErrInvalidInput, TraitDim, len(v))
	}
	if err := checkComponents(v); err != nil {
		return t, err
	}
	for i, x := range v {
		if x > 1 {
			return t, fmt.Errorf("%w: trait component %d is %v, above 1", domain.ErrInvalidInput, i, x)
		}
	}
	copy(t[:], v)
	return t, nil
}

// WorkValuesFromSlice copies a slice into a WorkValues vector.
func WorkValuesFromSlice(v []float64) (WorkValues, error) {
	var w WorkValues
	if len(v) != WorkValueDim {
		return w, fmt.Errorf(
			"%w: work-value vector must have %d values, got %d", domain.ErrInvalidInput, WorkValueDim, len(v),
		)
	}
	if err := checkComponents(v); err != nil {
		return w, err
	}
	copy(w[:], v)
	return w, nil
}

// TraitsFromMap expands a sparse name→weight mapping into a Traits vector.
// Missing dimensions are zero; unknown names and negative weights are rejected.
func TraitsFromMap(m map[string]float64) (Traits, error) {
	var t Traits
	for k, v := range m {
		tr, ok := ParseTrait(k)
		if !ok {
			return Traits{}, fmt.Errorf("%w: unknown trait %q", domain.ErrInvalidInput, k)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Traits{}, fmt.Errorf("%w: trait %q weight %v", domain.ErrInvalidInput, k, v)
		}
		t[tr] = v
	}
	return t, nil
}

// WorkValuesFromMap expands a sparse name→weight mapping into a WorkValues vector.
func WorkValuesFromMap(m map[string]float64) (WorkValues, error) {
	var w WorkValues
	for k, v := range m {
		wv, ok := ParseWorkValue(k)
		if !ok {
			return WorkValues{}, fmt.Errorf("%w: unknown work value %q", domain.ErrInvalidInput, k)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return WorkValues{}, fmt.Errorf("%w: work value %q weight %v", domain.ErrInvalidInput, k, v)
		}
		w[wv] = v
	}
	return w, nil
}

func checkComponents(v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: component %d is not finite", domain.ErrInvalidInput, i)
		}
		if x < 0 {
			return fmt.Errorf("%w: component %d is negative", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// Slice returns a copy of the vector as a slice.
func (t Traits) Slice() []float64 { return append([]float64(nil), t[:]...) }

// Slice returns a copy of the vector as a slice.
func (w WorkValues) Slice() []float64 { return append([]float64(nil), w[:]...) }

// IsZero reports whether every component is zero.
func (t Traits) IsZero() bool { return t == Traits{} }

// IsZero reports whether every component is zero.
func (w WorkValues) IsZero() bool { return w == WorkValues{} }

// Dominant returns the highest-scoring trait; ties go to the earlier dimension.
func (t Traits) Dominant() Trait {
	best := Realistic
	for i := 1; i < TraitDim; i++ {
		if t[i] > t[best] {
			best = Trait(i)
		}
	}
	return best
}

// TopThree returns the three highest traits, ties broken by dimension order.
func (t Traits) TopThree() [3]Trait {
	var top [3]Trait
	used := [TraitDim]bool{}
	for k := range top {
		best := -1
		for i := 0; i < TraitDim; i++ {
			if used[i] {
				continue
			}
			if best < 0 || t[i] > t[best] {
				best = i
			}
		}
		used[best] = true
		top[k] = Trait(best)
	}
	return top
}

// Code returns the three-letter code of the top three traits, e.g. "RIA".
func (t Traits) Code() string {
	top := t.TopThree()
	return top[0].Letter() + top[1].Letter() + top[2].Letter()
}

// Cosine returns dot(a,b)/(|a|·|b|). ok is false when the inputs are
// degenerate (length mismatch, empty, or zero magnitude); the score is 0 then.
func Cosine(a, b []float64) (score float64, ok bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(s) {
		return 0, false
	}
	return Clamp01(s), true
}

// Clamp01 bounds x to [0,1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// NormalizeByMax divides every component by the largest one.
// An all-zero input is returned unchanged.
func NormalizeByMax(v []float64) {
	var peak float64
	for _, x := range v {
		if x > peak {
			peak = x
		}
	}
	if peak == 0 {
		return
	}
	for i := range v {
		v[i] = Clamp01(v[i] / peak)
	}
}
