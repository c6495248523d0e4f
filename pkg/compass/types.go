package compass

// Applicant is the person opportunities are scored for. Traits (6 values)
// and WorkValues (8 values) must be given together or not at all; without
// them the applicant is scored in cold-start mode.
type Applicant struct {
	Region        string    `json:"region"`
	Language      string    `json:"language,omitempty"`
	Interests     []string  `json:"interests,omitempty"`
	Skills        []string  `json:"skills,omitempty"`
	Qualification *float64  `json:"qualification,omitempty"` // 0-100, nil = not assessed
	Traits        []float64 `json:"traits,omitempty"`
	WorkValues    []float64 `json:"work_values,omitempty"`
}

// Candidate is one apprenticeship opportunity.
type Candidate struct {
	ID              string             `json:"id"`
	Region          string             `json:"region"`
	SecondaryRegion string             `json:"secondary_region,omitempty"`
	Track           string             `json:"track"` // "A" or "B"
	Category        string             `json:"category"`
	IdealTraits     map[string]float64 `json:"ideal_traits,omitempty"`
	CultureTags     []string           `json:"culture_tags,omitempty"`
	Verified        bool               `json:"verified,omitempty"`
	Boosted         bool               `json:"boosted,omitempty"`
}

// ScoreOptions controls filtering and truncation of a ranking.
type ScoreOptions struct {
	MinScore  float64 // results below are dropped, 0..1
	BatchSize int     // maximum number of results, 0 = DefaultBatchSize
}

// DefaultBatchSize is used when ScoreOptions.BatchSize is zero.
const DefaultBatchSize = 20

// Ranking is the outcome of Score.
type Ranking struct {
	Mode     string     `json:"mode"` // "full" or "cold_start"
	Results  []Result   `json:"results"`
	Rejected []Rejected `json:"rejected,omitempty"`
}

// Result is the compatibility of one opportunity.
type Result struct {
	OpportunityID string      `json:"opportunity_id"`
	Category      string      `json:"category"`
	Score         float64     `json:"score"`
	Breakdown     []Component `json:"breakdown"`
}

// Component is one weighted sub-score of a Result.
type Component struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// Rejected is a candidate that could not be scored.
type Rejected struct {
	ID      string `json:"id"`
	Index   int    `json:"index"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Session is a snapshot of a quiz session.
type Session struct {
	ID       string    `json:"id"`
	Phase    string    `json:"phase"`
	XP       int       `json:"xp"`
	Level    int       `json:"level"`
	Progress float64   `json:"progress"`
	Badges   []string  `json:"badges"`
	Selected []string  `json:"selected,omitempty"` // picks of the current tile phase
	Tiles    []Tile    `json:"tiles,omitempty"`    // offer of the current tile phase
	Scenario *Scenario `json:"scenario,omitempty"`
	Complete bool      `json:"complete"`
}

// Tile is a selectable card of a tile phase.
type Tile struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Scenario is the next unanswered scenario question.
type Scenario struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Index   int      `json:"index"`
	Options []string `json:"options"`
}

// QuizResult is the outcome of a completed quiz.
type QuizResult struct {
	SessionID  string    `json:"session_id"`
	Traits     []float64 `json:"traits"`
	WorkValues []float64 `json:"work_values"`
	Dominant   string    `json:"dominant"`
	TopThree   []string  `json:"top_three"`
	Code       string    `json:"code"`
	XP         int       `json:"xp"`
	Level      int       `json:"level"`
	Badges     []string  `json:"badges"`
}

// Apply returns a copy of a carrying the quiz vectors, which switches
// scoring to full-profile mode.
func (r QuizResult) Apply(a Applicant) Applicant {
	a.Traits = append([]float64(nil), r.Traits...)
	a.WorkValues = append([]float64(nil), r.WorkValues...)
	return a
}
