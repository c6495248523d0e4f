package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/domain/category"
	domquiz "github.com/lernwerk/compass/internal/domain/quiz"
	"github.com/lernwerk/compass/internal/domain/quiz/catalog"
	"github.com/lernwerk/compass/internal/domain/region"
	"github.com/lernwerk/compass/internal/repository/session"
	healthuc "github.com/lernwerk/compass/internal/usecase/health"
	quizuc "github.com/lernwerk/compass/internal/usecase/quiz"
	scoringuc "github.com/lernwerk/compass/internal/usecase/scoring"
)

// --- Fixtures ---

type fixture struct {
	t       *testing.T
	handler http.Handler
	server  *Server
	quiz    *quizuc.Service
}

type fixtureOpts struct {
	apiKeys   []string
	failStore bool
	configure func(*Server)
}

func newFixture(t *testing.T, opts fixtureOpts) *fixture {
	t.Helper()

	scorer, err := scoringuc.NewScorer(region.MustSwitzerland(), category.Builtin(), scoringuc.DefaultConfig())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	scoring := scoringuc.New(scorer, zap.NewNop())

	store := session.NewMemory(0)
	quiz, err := quizuc.New(store, catalog.Default(), domquiz.DefaultRules(), zap.NewNop())
	if err != nil {
		t.Fatalf("quiz.New: %v", err)
	}
	n := 0
	quiz.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("sess-%d", n)
	})

	var pinger healthuc.Pinger = store
	if opts.failStore {
		pinger = healthuc.PingerFunc(func(context.Context) error { return errors.New("connection refused") })
	}
	health := healthuc.New(pinger)

	srv := NewServer(scoring, quiz, health, zap.NewNop())
	if opts.configure != nil {
		opts.configure(srv)
	}
	return &fixture{
		t:       t,
		handler: NewRouter(srv, zap.NewNop(), opts.apiKeys),
		server:  srv,
		quiz:    quiz,
	}
}

// --- Helpers ---

func (f *fixture) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	f.t.Helper()
	var r io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			f.t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode body %T: %v", v, err)
	}
	return v
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code ErrorCode) ErrorResponse {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	resp := decodeBody[ErrorResponse](t, rr)
	if resp.Code != code {
		t.Errorf("code: got %s, want %s (message %q)", resp.Code, code, resp.Message)
	}
	return resp
}

func sessionPath(id string, parts ...string) string {
	p := "/api/v1/quiz/sessions/" + id
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// completeQuiz drives a fresh session to the complete phase over HTTP.
func (f *fixture) completeQuiz() string {
	f.t.Helper()
	rr := f.do("POST", "/api/v1/quiz/sessions", nil)
	if rr.Code != http.StatusCreated {
		f.t.Fatalf("start: %d %s", rr.Code, rr.Body.String())
	}
	id := decodeBody[SessionResponse](f.t, rr).ID

	picks := f.quiz.Rules().PicksPerPhase
	for _, phase := range []domquiz.Phase{domquiz.PhaseMorning, domquiz.PhaseAfternoon} {
		for _, tile := range f.quiz.Catalog().Pool(phase)[:picks] {
			if rr := f.do("POST", sessionPath(id, "tiles", tile.ID, "toggle"), nil); rr.Code != http.StatusOK {
				f.t.Fatalf("toggle %s: %d %s", tile.ID, rr.Code, rr.Body.String())
			}
		}
		if rr := f.do("POST", sessionPath(id, "advance"), nil); rr.Code != http.StatusOK {
			f.t.Fatalf("advance %s: %d %s", phase, rr.Code, rr.Body.String())
		}
	}
	for i := range f.quiz.Catalog().Scenarios {
		if rr := f.do("POST", sessionPath(id, "answers"), map[string]int{"option": i % 4}); rr.Code != http.StatusOK {
			f.t.Fatalf("answer %d: %d %s", i, rr.Code, rr.Body.String())
		}
	}
	return id
}
