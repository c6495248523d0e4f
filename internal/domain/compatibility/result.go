package compatibility

// Mode is the scoring mode chosen for an applicant.
type Mode string

// Scoring modes.
const (
	ModeFull      Mode = "full"
	ModeColdStart Mode = "cold_start"
)

// Breakdown labels in output order.
const (
	LabelTrait         = "trait"
	LabelProximity     = "proximity"
	LabelInterest      = "interest"
	LabelWorkValue     = "work_value"
	LabelQualification = "qualification"
	LabelBoost         = "boost"
)

// Component is one weighted sub-score of a result.
type Component struct {
	Label  string
	Score  float64 // rounded to 3 decimals
	Weight float64
}

// Result is the compatibility of one opportunity for one applicant.
type Result struct {
	opportunityID string
	category      string
	mode          Mode
	score         float64
	breakdown     []Component
}

// NewResult creates a Result. The breakdown is stored as given.
func NewResult(opportunityID, category string, mode Mode, score float64, breakdown []Component) Result {
	return Result{
		opportunityID: opportunityID,
		category:      category,
		mode:          mode,
		score:         score,
		breakdown:     breakdown,
	}
}

// OpportunityID returns the scored opportunity id.
func (r Result) OpportunityID() string { return r.opportunityID }

// Category returns the opportunity category.
func (r Result) Category() string { return r.category }

// Mode returns the scoring mode.
func (r Result) Mode() Mode { return r.mode }

// Score returns the final score in [0,1].
func (r Result) Score() float64 { return r.score }

// Breakdown returns the sub-scores in fixed label order.
func (r Result) Breakdown() []Component { return r.breakdown }

// Component looks up a sub-score by label.
func (r Result) Component(label string) (Component, bool) {
	for _, c := range r.breakdown {
		if c.Label == label {
			return c, true
		}
	}
	return Component{}, false
}
