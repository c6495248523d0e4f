package compass

import (
	"errors"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/applicant"
	dombatch "github.com/lernwerk/compass/internal/domain/batch"
	"github.com/lernwerk/compass/internal/domain/compatibility"
	"github.com/lernwerk/compass/internal/domain/opportunity"
	domquiz "github.com/lernwerk/compass/internal/domain/quiz"
	quizuc "github.com/lernwerk/compass/internal/usecase/quiz"
	scoringuc "github.com/lernwerk/compass/internal/usecase/scoring"
)

func toApplicantParams(a Applicant) applicant.Params {
	return applicant.Params{
		Region:        a.Region,
		Language:      a.Language,
		Interests:     a.Interests,
		Skills:        a.Skills,
		Qualification: a.Qualification,
		Traits:        a.Traits,
		WorkValues:    a.WorkValues,
	}
}

func toCandidateParams(cs []Candidate) []opportunity.Params {
	out := make([]opportunity.Params, len(cs))
	for i, c := range cs {
		out[i] = opportunity.Params{
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
	return out
}

func fromOutcome(out scoringuc.Outcome) Ranking {
	r := Ranking{Mode: string(out.Mode), Results: make([]Result, len(out.Ranked))}
	for i, res := range out.Ranked {
		r.Results[i] = fromResult(res)
	}
	for _, rej := range out.Rejected {
		r.Rejected = append(r.Rejected, fromRejected(rej))
	}
	return r
}

func fromResult(res compatibility.Result) Result {
	bd := make([]Component, len(res.Breakdown()))
	for i, c := range res.Breakdown() {
		bd[i] = Component{Label: c.Label, Score: c.Score, Weight: c.Weight}
	}
	return Result{
		OpportunityID: res.OpportunityID(),
		Category:      res.Category(),
		Score:         res.Score(),
		Breakdown:     bd,
	}
}

func fromRejected(r dombatch.Result) Rejected {
	out := Rejected{ID: r.ID(), Index: r.Index(), Err: r.Err()}
	if r.Err() != nil {
		out.Message = r.Err().Error()
		var te *domain.TransitionError
		if errors.As(r.Err(), &te) {
			out.Message = te.Error()
		}
	}
	return out
}

func fromSession(s *domquiz.Session) Session {
	out := Session{
		ID:       s.ID(),
		Phase:    string(s.Phase()),
		XP:       s.XP(),
		Level:    s.Level(),
		Progress: s.Progress(),
		Badges:   badgeStrings(s.Badges()),
		Complete: s.Complete(),
	}
	if s.Phase().IsTilePhase() {
		out.Selected = s.Selected(s.Phase())
		for _, t := range s.Catalog().Pool(s.Phase()) {
			out.Tiles = append(out.Tiles, Tile{ID: t.ID, Label: t.Label})
		}
	}
	if sc, ok := s.CurrentScenario(); ok {
		opts := make([]string, len(sc.Options))
		for i, o := range sc.Options {
			opts[i] = o.Label
		}
		out.Scenario = &Scenario{ID: sc.ID, Prompt: sc.Prompt, Index: s.ScenarioIndex(), Options: opts}
	}
	return out
}

func fromQuizResult(r quizuc.Result) QuizResult {
	top := make([]string, len(r.TopThree))
	for i, t := range r.TopThree {
		top[i] = t.String()
	}
	return QuizResult{
		SessionID:  r.SessionID,
		Traits:     r.Traits.Slice(),
		WorkValues: r.WorkValues.Slice(),
		Dominant:   r.Dominant.String(),
		TopThree:   top,
		Code:       r.Code(),
		XP:         r.XP,
		Level:      r.Level,
		Badges:     badgeStrings(r.Badges),
	}
}

func badgeStrings(bs []domquiz.Badge) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}
