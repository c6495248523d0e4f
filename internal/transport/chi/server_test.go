package chi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func scoreBody() map[string]any {
	return map[string]any{
		"applicant": map[string]any{"region": "ZH", "interests": []string{"Informatik"}},
		"candidates": []map[string]any{
			{"id": "it-zh", "region": "ZH", "track": "A", "category": "Informatik"},
			{"id": "bau-ge", "region": "GE", "track": "B", "category": "Bau"},
			{"id": "it-ag", "region": "AG", "track": "A", "category": "Informatik"},
		},
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		failStore bool
		want      int
		status    string
	}{
		{"healthy", false, http.StatusOK, "ok"},
		{"store down", true, http.StatusServiceUnavailable, "error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, fixtureOpts{failStore: tc.failStore})
			rr := f.do("GET", "/health", nil)
			if rr.Code != tc.want {
				t.Fatalf("status: got %d, want %d", rr.Code, tc.want)
			}
			resp := decodeBody[HealthResponse](t, rr)
			if resp.Status != tc.status || resp.Checks["session_store"] == "" {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.do("GET", "/health", nil)
	rr := f.do("GET", "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "compass_http_requests_total") {
		t.Error("metrics output misses the request counter")
	}
}

func TestScore_ColdStart(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	rr := f.do("POST", "/api/v1/score", scoreBody())
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	resp := decodeBody[ScoreResponse](t, rr)
	if resp.Mode != "cold_start" {
		t.Errorf("mode = %q", resp.Mode)
	}
	if len(resp.Results) != 3 || len(resp.Rejected) != 0 {
		t.Fatalf("results=%d rejected=%d", len(resp.Results), len(resp.Rejected))
	}
	if resp.Results[0].OpportunityID != "it-zh" {
		t.Errorf("top result = %s, want it-zh", resp.Results[0].OpportunityID)
	}
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i].Score > resp.Results[i-1].Score {
			t.Errorf("results not sorted at %d", i)
		}
	}
	if len(resp.Results[0].Breakdown) == 0 {
		t.Error("breakdown is empty")
	}
}

func TestScore_RejectsInvalidCandidates(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	body := scoreBody()
	cands := body["candidates"].([]map[string]any)
	cands[1]["region"] = "XX"
	cands[2]["track"] = "Z"

	rr := f.do("POST", "/api/v1/score", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	resp := decodeBody[ScoreResponse](t, rr)
	if len(resp.Results) != 1 || len(resp.Rejected) != 2 {
		t.Fatalf("results=%d rejected=%d", len(resp.Results), len(resp.Rejected))
	}
	if r := resp.Rejected[0]; r.ID != "bau-ge" || r.Index != 1 || !strings.Contains(r.Message, "unknown region") {
		t.Errorf("rejected[0] = %+v", r)
	}
	if r := resp.Rejected[1]; r.Index != 2 || !strings.Contains(r.Message, "unknown track") {
		t.Errorf("rejected[1] = %+v", r)
	}
}

func TestScore_BatchSizeAndMinScore(t *testing.T) {
	f := newFixture(t, fixtureOpts{configure: func(s *Server) { s.WithScoreDefaults(0, 1) }})

	resp := decodeBody[ScoreResponse](t, f.do("POST", "/api/v1/score", scoreBody()))
	if len(resp.Results) != 1 {
		t.Errorf("default batch size: got %d results, want 1", len(resp.Results))
	}

	body := scoreBody()
	body["batch_size"] = 10
	body["min_score"] = 1.0
	resp = decodeBody[ScoreResponse](t, f.do("POST", "/api/v1/score", body))
	if len(resp.Results) != 0 {
		t.Errorf("min score 1: got %d results", len(resp.Results))
	}
}

func TestScore_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		status int
		code   ErrorCode
	}{
		{"malformed json", `{"applicant":`, http.StatusBadRequest, CodeBadRequest},
		{"missing region", map[string]any{"applicant": map[string]any{}}, http.StatusBadRequest, CodeValidationFailed},
		{
			"min score out of range",
			map[string]any{"applicant": map[string]any{"region": "ZH"}, "min_score": 1.5},
			http.StatusBadRequest, CodeValidationFailed,
		},
		{
			"unknown applicant region",
			map[string]any{"applicant": map[string]any{"region": "XX"}},
			http.StatusUnprocessableEntity, CodeUnknownRegion,
		},
		{
			"half vector pair",
			map[string]any{"applicant": map[string]any{"region": "ZH", "traits": []float64{1, 0, 0, 0, 0, 0}}},
			http.StatusBadRequest, CodeValidationFailed,
		},
		{
			"trait above 1",
			map[string]any{"applicant": map[string]any{
				"region": "ZH", "traits": []float64{2, 0, 0, 0, 0, 0}, "work_values": make([]float64, 8),
			}},
			http.StatusBadRequest, CodeValidationFailed,
		},
		{
			"unknown quiz session",
			map[string]any{"applicant": map[string]any{"region": "ZH", "quiz_session_id": "nope"}},
			http.StatusNotFound, CodeSessionNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, fixtureOpts{})
			expectError(t, f.do("POST", "/api/v1/score", tc.body), tc.status, tc.code)
		})
	}
}

func TestScore_CandidateLimitFromService(t *testing.T) {
	f := newFixture(t, fixtureOpts{configure: func(s *Server) { s.scoring.WithMaxCandidates(2) }})
	resp := expectError(t, f.do("POST", "/api/v1/score", scoreBody()), http.StatusBadRequest, CodeValidationFailed)
	if !strings.Contains(resp.Message, "limit of 2") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestScore_PayloadTooLarge(t *testing.T) {
	f := newFixture(t, fixtureOpts{configure: func(s *Server) { s.WithMaxBodyBytes(64) }})
	expectError(t, f.do("POST", "/api/v1/score", scoreBody()), http.StatusRequestEntityTooLarge, CodePayloadTooLarge)
}

func TestScore_UsesQuizVectors(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	id := f.completeQuiz()

	body := scoreBody()
	body["applicant"].(map[string]any)["quiz_session_id"] = id
	rr := f.do("POST", "/api/v1/score", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if resp := decodeBody[ScoreResponse](t, rr); resp.Mode != "full" {
		t.Errorf("mode = %q, want full", resp.Mode)
	}
}

func TestScore_IncompleteQuizSession(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.do("POST", "/api/v1/quiz/sessions", nil)

	body := scoreBody()
	body["applicant"].(map[string]any)["quiz_session_id"] = "sess-1"
	expectError(t, f.do("POST", "/api/v1/score", body), http.StatusConflict, CodeNotReady)
}

func TestQuiz_StartAndGet(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	rr := f.do("POST", "/api/v1/quiz/sessions", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/api/v1/quiz/sessions/sess-1" {
		t.Errorf("Location = %q", loc)
	}
	started := decodeBody[SessionResponse](t, rr)
	if started.Phase != "morning" || started.XP != 0 || started.Level != 1 || started.Complete {
		t.Errorf("started = %+v", started)
	}
	if started.PicksRequired != f.quiz.Rules().PicksPerPhase || len(started.Tiles) != len(f.quiz.Catalog().Morning) {
		t.Errorf("picks=%d tiles=%d", started.PicksRequired, len(started.Tiles))
	}

	rr = f.do("GET", sessionPath("sess-1"), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: %d", rr.Code)
	}
	if got := decodeBody[SessionResponse](t, rr); got.ID != "sess-1" {
		t.Errorf("id = %q", got.ID)
	}
}

func TestQuiz_ToggleTile(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.do("POST", "/api/v1/quiz/sessions", nil)
	tile := f.quiz.Catalog().Morning[0].ID

	resp := decodeBody[ToggleResponse](t, f.do("POST", sessionPath("sess-1", "tiles", tile, "toggle"), nil))
	if !resp.Selected || resp.Session.XP != f.quiz.Rules().TileXP {
		t.Errorf("first toggle = %+v", resp)
	}
	if !resp.Session.Tiles[0].Selected {
		t.Error("tile not marked selected in session view")
	}

	resp = decodeBody[ToggleResponse](t, f.do("POST", sessionPath("sess-1", "tiles", tile, "toggle"), nil))
	if resp.Selected || resp.Session.XP != 0 {
		t.Errorf("second toggle = %+v", resp)
	}

	expectError(t, f.do("POST", sessionPath("sess-1", "tiles", "no-such-tile", "toggle"), nil),
		http.StatusBadRequest, CodeValidationFailed)
}

func TestQuiz_IllegalTransitions(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.do("POST", "/api/v1/quiz/sessions", nil)

	resp := expectError(t, f.do("POST", sessionPath("sess-1", "advance"), nil), http.StatusConflict, CodeIllegalTransition)
	if !strings.Contains(resp.Message, "morning") {
		t.Errorf("message %q does not name the phase", resp.Message)
	}
	expectError(t, f.do("POST", sessionPath("sess-1", "answers"), map[string]int{"option": 0}),
		http.StatusConflict, CodeIllegalTransition)
	expectError(t, f.do("GET", sessionPath("sess-1", "result"), nil), http.StatusConflict, CodeNotReady)
}

func TestQuiz_AnswerValidation(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.do("POST", "/api/v1/quiz/sessions", nil)

	for _, body := range []any{map[string]int{"option": 4}, map[string]int{"option": -1}, map[string]any{}} {
		expectError(t, f.do("POST", sessionPath("sess-1", "answers"), body), http.StatusBadRequest, CodeValidationFailed)
	}
}

func TestQuiz_CompleteFlow(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	id := f.completeQuiz()

	sess := decodeBody[SessionResponse](t, f.do("GET", sessionPath(id), nil))
	if !sess.Complete || sess.Phase != "complete" || sess.Scenario != nil || len(sess.Tiles) != 0 {
		t.Errorf("completed session = %+v", sess)
	}

	rr := f.do("GET", sessionPath(id, "result"), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("result: %d (%s)", rr.Code, rr.Body.String())
	}
	res := decodeBody[QuizResultResponse](t, rr)
	if res.SessionID != id || len(res.Traits) != 6 || len(res.WorkValues) != 8 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Code) != 3 || len(res.TopThree) != 3 || res.Dominant != res.TopThree[0] {
		t.Errorf("code=%q top=%v dominant=%q", res.Code, res.TopThree, res.Dominant)
	}
	if res.Level != 3 || len(res.Badges) == 0 {
		t.Errorf("level=%d badges=%v", res.Level, res.Badges)
	}
	for name, v := range res.Traits {
		if v < 0 || v > 1 {
			t.Errorf("trait %s = %v out of range", name, v)
		}
	}
}

func TestQuiz_ScenarioView(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.do("POST", "/api/v1/quiz/sessions", nil)
	picks := f.quiz.Rules().PicksPerPhase
	for _, phase := range [][]string{tileIDs(f, "morning", picks), tileIDs(f, "afternoon", picks)} {
		for _, id := range phase {
			f.do("POST", sessionPath("sess-1", "tiles", id, "toggle"), nil)
		}
		f.do("POST", sessionPath("sess-1", "advance"), nil)
	}

	sess := decodeBody[SessionResponse](t, f.do("GET", sessionPath("sess-1"), nil))
	if sess.Phase != "scenarios" || sess.Scenario == nil {
		t.Fatalf("session = %+v", sess)
	}
	if sess.Scenario.Index != 0 || sess.Scenario.Total != len(f.quiz.Catalog().Scenarios) || len(sess.Scenario.Options) != 4 {
		t.Errorf("scenario = %+v", sess.Scenario)
	}
}

func tileIDs(f *fixture, phase string, n int) []string {
	var pool []string
	tiles := f.quiz.Catalog().Morning
	if phase == "afternoon" {
		tiles = f.quiz.Catalog().Afternoon
	}
	for _, t := range tiles[:n] {
		pool = append(pool, t.ID)
	}
	return pool
}

func TestQuiz_DeleteAndNotFound(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.do("POST", "/api/v1/quiz/sessions", nil)

	if rr := f.do("DELETE", sessionPath("sess-1"), nil); rr.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d", rr.Code)
	}
	expectError(t, f.do("GET", sessionPath("sess-1"), nil), http.StatusNotFound, CodeSessionNotFound)
	expectError(t, f.do("DELETE", sessionPath("sess-1"), nil), http.StatusNotFound, CodeSessionNotFound)
	expectError(t, f.do("POST", sessionPath("missing", "advance"), nil), http.StatusNotFound, CodeSessionNotFound)
}

func TestRouter_AuthAndFallbacks(t *testing.T) {
	f := newFixture(t, fixtureOpts{apiKeys: []string{"secret"}})

	expectError(t, f.do("POST", "/api/v1/quiz/sessions", nil), http.StatusUnauthorized, CodeUnauthorized)
	if rr := f.do("POST", "/api/v1/quiz/sessions", nil, "Authorization", "Bearer secret"); rr.Code != http.StatusCreated {
		t.Errorf("authorized start: got %d", rr.Code)
	}
	if rr := f.do("GET", "/health", nil); rr.Code != http.StatusOK {
		t.Errorf("health without key: got %d", rr.Code)
	}

	expectError(t, f.do("GET", "/nope", nil, "Authorization", "Bearer secret"), http.StatusNotFound, CodeNotFound)
	expectError(t, f.do("PUT", "/api/v1/score", nil, "Authorization", "Bearer secret"),
		http.StatusMethodNotAllowed, CodeMethodNotAllowed)
}

func TestRouter_RequestID(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	rr := f.do("GET", "/health", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestJSONRecoverer(t *testing.T) {
	handler := JSONRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	expectError(t, rr, http.StatusInternalServerError, CodeInternalError)
}
