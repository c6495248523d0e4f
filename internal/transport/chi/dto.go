package chi

import (
	"github.com/lernwerk/compass/internal/domain/applicant"
	dombatch "github.com/lernwerk/compass/internal/domain/batch"
	"github.com/lernwerk/compass/internal/domain/compatibility"
	"github.com/lernwerk/compass/internal/domain/opportunity"
	domquiz "github.com/lernwerk/compass/internal/domain/quiz"
	"github.com/lernwerk/compass/internal/domain/vector"
	quizuc "github.com/lernwerk/compass/internal/usecase/quiz"
	scoringuc "github.com/lernwerk/compass/internal/usecase/scoring"
)

// --- Score ---

// ScoreRequest is the body of POST /api/v1/score. Candidates are validated
// individually by the engine so one bad candidate does not fail the batch;
// their count is bounded by scoring.max_candidates there, not here.
type ScoreRequest struct {
	Applicant  ApplicantRequest   `json:"applicant"`
	Candidates []CandidateRequest `json:"candidates"`
	MinScore   *float64           `json:"min_score,omitempty" validate:"omitempty,gte=0,lte=1"`
	BatchSize  *int               `json:"batch_size,omitempty" validate:"omitempty,gt=0"`
}

// ApplicantRequest is the applicant part of a score request. When
// QuizSessionID is set and no vectors are given, the vectors of the completed
// quiz session are used.
type ApplicantRequest struct {
	Region        string    `json:"region" validate:"required,max=8"`
	Language      string    `json:"language,omitempty" validate:"omitempty,max=8"`
	Interests     []string  `json:"interests,omitempty" validate:"max=64,dive,max=128"`
	Skills        []string  `json:"skills,omitempty" validate:"max=64,dive,max=128"`
	Qualification *float64  `json:"qualification,omitempty" validate:"omitempty,gte=0,lte=100"`
	Traits        []float64 `json:"traits,omitempty"`
	WorkValues    []float64 `json:"work_values,omitempty"`
	QuizSessionID string    `json:"quiz_session_id,omitempty" validate:"omitempty,max=64"`
}

// CandidateRequest is one candidate opportunity.
type CandidateRequest struct {
	ID              string             `json:"id"`
	Region          string             `json:"region"`
	SecondaryRegion string             `json:"secondary_region,omitempty"`
	Track           string             `json:"track"`
	Category        string             `json:"category"`
	IdealTraits     map[string]float64 `json:"ideal_traits,omitempty"`
	CultureTags     []string           `json:"culture_tags,omitempty"`
	Verified        bool               `json:"verified,omitempty"`
	Boosted         bool               `json:"boosted,omitempty"`
}

// ScoreResponse lists ranked results and the rejected candidates.
type ScoreResponse struct {
	Mode     string             `json:"mode"`
	Results  []ResultResponse   `json:"results"`
	Rejected []RejectedResponse `json:"rejected,omitempty"`
}

// ResultResponse is one ranked opportunity.
type ResultResponse struct {
	OpportunityID string              `json:"opportunity_id"`
	Category      string              `json:"category"`
	Score         float64             `json:"score"`
	Breakdown     []ComponentResponse `json:"breakdown"`
}

// ComponentResponse is one weighted sub-score.
type ComponentResponse struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// RejectedResponse describes a candidate that could not be scored.
type RejectedResponse struct {
	ID      string `json:"id"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (r ApplicantRequest) params() applicant.Params {
	return applicant.Params{
		Region:        r.Region,
		Language:      r.Language,
		Interests:     r.Interests,
		Skills:        r.Skills,
		Qualification: r.Qualification,
		Traits:        r.Traits,
		WorkValues:    r.WorkValues,
	}
}

func (c CandidateRequest) params() opportunity.Params {
	return opportunity.Params{
		ID:              c.ID,
		Region:          c.Region,
		SecondaryRegion: c.SecondaryRegion,
		Track:           c.Track,
		Category:        c.Category,
		IdealTraits:     c.IdealTraits,
		CultureTags:     c.CultureTags,
		Verified:        c.Verified,
		Boosted:         c.Boosted,
	}
}

func candidateParams(in []CandidateRequest) []opportunity.Params {
	out := make([]opportunity.Params, len(in))
	for i, c := range in {
		out[i] = c.params()
	}
	return out
}

func scoreResponse(out scoringuc.Outcome) ScoreResponse {
	resp := ScoreResponse{
		Mode:    string(out.Mode),
		Results: make([]ResultResponse, len(out.Ranked)),
	}
	for i, r := range out.Ranked {
		resp.Results[i] = resultResponse(r)
	}
	for _, rej := range out.Rejected {
		resp.Rejected = append(resp.Rejected, rejectedResponse(rej))
	}
	return resp
}

func resultResponse(r compatibility.Result) ResultResponse {
	bd := make([]ComponentResponse, len(r.Breakdown()))
	for i, c := range r.Breakdown() {
		bd[i] = ComponentResponse{Label: c.Label, Score: c.Score, Weight: c.Weight}
	}
	return ResultResponse{
		OpportunityID: r.OpportunityID(),
		Category:      r.Category(),
		Score:         r.Score(),
		Breakdown:     bd,
	}
}

func rejectedResponse(r dombatch.Result) RejectedResponse {
	msg := ""
	if r.Err() != nil {
		msg = clientMessage(r.Err())
	}
	return RejectedResponse{ID: r.ID(), Index: r.Index(), Message: msg}
}

// --- Quiz ---

// AnswerRequest is the body of POST .../answers.
type AnswerRequest struct {
	Option *int `json:"option" validate:"required,gte=0,lte=3"`
}

// SessionResponse is the client view of a quiz session.
type SessionResponse struct {
	ID            string            `json:"id"`
	Phase         string            `json:"phase"`
	XP            int               `json:"xp"`
	Level         int               `json:"level"`
	Progress      float64           `json:"progress"`
	Badges        []string          `json:"badges"`
	PicksRequired int               `json:"picks_required,omitempty"`
	Tiles         []TileResponse    `json:"tiles,omitempty"`
	Scenario      *ScenarioResponse `json:"scenario,omitempty"`
	Complete      bool              `json:"complete"`
}

// TileResponse is one tile of the current phase.
type TileResponse struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ScenarioResponse is the next unanswered scenario.
type ScenarioResponse struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Options []string `json:"options"`
}

// ToggleResponse reports the tile state after a toggle.
type ToggleResponse struct {
	Selected bool            `json:"selected"`
	Session  SessionResponse `json:"session"`
}

// QuizResultResponse is the outcome of a completed quiz.
type QuizResultResponse struct {
	SessionID  string             `json:"session_id"`
	Traits     map[string]float64 `json:"traits"`
	WorkValues map[string]float64 `json:"work_values"`
	Dominant   string             `json:"dominant"`
	TopThree   []string           `json:"top_three"`
	Code       string             `json:"code"`
	XP         int                `json:"xp"`
	Level      int                `json:"level"`
	Badges     []string           `json:"badges"`
}

func sessionResponse(s *domquiz.Session) SessionResponse {
	resp := SessionResponse{
		ID:       s.ID(),
		Phase:    string(s.Phase()),
		XP:       s.XP(),
		Level:    s.Level(),
		Progress: s.Progress(),
		Badges:   badgeNames(s.Badges()),
		Complete: s.Complete(),
	}
	if s.Phase().IsTilePhase() {
		resp.PicksRequired = s.Rules().PicksPerPhase
		for _, t := range s.Catalog().Pool(s.Phase()) {
			resp.Tiles = append(resp.Tiles, TileResponse{ID: t.ID, Label: t.Label, Selected: s.IsSelected(t.ID)})
		}
	}
	if sc, ok := s.CurrentScenario(); ok {
		opts := make([]string, len(sc.Options))
		for i, o := range sc.Options {
			opts[i] = o.Label
		}
		resp.Scenario = &ScenarioResponse{
			ID:      sc.ID,
			Prompt:  sc.Prompt,
			Index:   s.ScenarioIndex(),
			Total:   len(s.Catalog().Scenarios),
			Options: opts,
		}
	}
	return resp
}

func quizResultResponse(r quizuc.Result) QuizResultResponse {
	top := make([]string, len(r.TopThree))
	for i, t := range r.TopThree {
		top[i] = t.String()
	}
	return QuizResultResponse{
		SessionID:  r.SessionID,
		Traits:     named(vector.TraitNames(), r.Traits.Slice()),
		WorkValues: named(vector.WorkValueNames(), r.WorkValues.Slice()),
		Dominant:   r.Dominant.String(),
		TopThree:   top,
		Code:       r.Code(),
		XP:         r.XP,
		Level:      r.Level,
		Badges:     badgeNames(r.Badges),
	}
}

func named(names []string, values []float64) map[string]float64 {
	out := make(map[string]float64, len(names))
	for i, n := range names {
		out[n] = values[i]
	}
	return out
}

func badgeNames(bs []domquiz.Badge) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}
