package compass

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lernwerk/compass/internal/config"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func testCandidates() []Candidate {
	return []Candidate{
		{ID: "it-zh", Region: "ZH", Track: "A", Category: "Informatik"},
		{ID: "it-ge", Region: "GE", Track: "A", Category: "Informatik"},
		{ID: "bau-ag", Region: "AG", Track: "B", Category: "Bau"},
		{ID: "bad", Region: "XX", Track: "A", Category: "Bau"},
	}
}

func TestNew_Defaults(t *testing.T) {
	e := newTestEngine(t)
	if e.store != nil {
		t.Error("default engine should keep sessions in memory")
	}
	if err := e.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if len(e.Regions()) != 26 {
		t.Errorf("Regions() = %d codes, want 26", len(e.Regions()))
	}
}

func TestNew_MissingConfigFile(t *testing.T) {
	_, err := New(context.Background(), WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestNew_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compass.yaml")
	data := []byte(`
database:
  driver: memory
scoring:
  proximity:
    distant: 0.2
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(t, WithConfigFile(path))
	p, err := e.Proximity("GE", "SG")
	if err != nil {
		t.Fatalf("Proximity: %v", err)
	}
	if p != 0.2 {
		t.Errorf("distant proximity = %v, want 0.2", p)
	}
}

func TestNew_InvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compass.yaml")
	if err := os.WriteFile(path, []byte("database:\n  driver: memory\nscoring:\n  full_weights:\n    charm: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := New(context.Background(), WithConfigFile(path)); err == nil {
		t.Fatal("expected error for unknown weight key")
	}
}

func TestSessionTTL(t *testing.T) {
	var defaults config.Config
	defaults.ApplyDefaults()
	fromFile := defaults
	fromFile.Database.SessionTTLMin = 30

	tests := []struct {
		name string
		opts []Option
		cfg  config.Config
		want time.Duration
	}{
		{"built-in default", nil, defaults, 24 * time.Hour},
		{"config file", nil, fromFile, 30 * time.Minute},
		{"option wins", []Option{WithSessionTTL(time.Hour)}, fromFile, time.Hour},
		{"explicit zero", []Option{WithSessionTTL(0)}, fromFile, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ec := &engineConfig{}
			for _, o := range tc.opts {
				o.apply(ec)
			}
			if got := sessionTTL(ec, tc.cfg); got != tc.want {
				t.Errorf("sessionTTL = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	ec := &engineConfig{}
	for _, o := range []Option{
		WithWorkers(2), WithDiversityCap(5), WithMaxCandidates(10),
		WithKeyPrefix("x:"), WithValkey("localhost:6379", "pw"),
	} {
		o.apply(ec)
	}
	if ec.workers != 2 || ec.diversityCap != 5 || ec.maxCandidates != 10 || ec.keyPrefix != "x:" {
		t.Errorf("config = %+v", ec)
	}
	if len(ec.addrs) != 1 || ec.addrs[0] != "localhost:6379" || ec.password != "pw" {
		t.Errorf("valkey = %v %q", ec.addrs, ec.password)
	}
}

func TestScore_ColdStart(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.Score(context.Background(),
		Applicant{Region: "ZH", Interests: []string{"Informatik"}}, testCandidates(), ScoreOptions{})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if r.Mode != "cold_start" {
		t.Errorf("Mode = %q", r.Mode)
	}
	if len(r.Results) != 3 || r.Results[0].OpportunityID != "it-zh" {
		t.Errorf("results = %+v", r.Results)
	}
	if len(r.Rejected) != 1 || r.Rejected[0].Index != 3 || !errors.Is(r.Rejected[0].Err, ErrUnknownRegion) {
		t.Errorf("rejected = %+v", r.Rejected)
	}
	if r.Rejected[0].Message == "" {
		t.Error("rejected message is empty")
	}
}

func TestScore_DiversityCapOption(t *testing.T) {
	e := newTestEngine(t, WithDiversityCap(1))
	r, err := e.Score(context.Background(), Applicant{Region: "ZH"}, testCandidates()[:3], ScoreOptions{})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	perCategory := map[string]int{}
	for _, res := range r.Results {
		perCategory[res.Category]++
	}
	if perCategory["Informatik"] != 1 || perCategory["Bau"] != 1 {
		t.Errorf("per category = %v", perCategory)
	}
}

func TestScore_Errors(t *testing.T) {
	e := newTestEngine(t, WithMaxCandidates(2))
	tests := []struct {
		name string
		a    Applicant
		c    []Candidate
		opts ScoreOptions
		want error
	}{
		{"unknown region", Applicant{Region: "XX"}, nil, ScoreOptions{}, ErrUnknownRegion},
		{"min score", Applicant{Region: "ZH"}, nil, ScoreOptions{MinScore: 2}, ErrInvalidInput},
		{"negative batch", Applicant{Region: "ZH"}, nil, ScoreOptions{BatchSize: -1}, ErrInvalidInput},
		{"too many candidates", Applicant{Region: "ZH"}, testCandidates(), ScoreOptions{}, ErrInvalidInput},
		{"half vectors", Applicant{Region: "ZH", Traits: make([]float64, 6)}, nil, ScoreOptions{}, ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.Score(context.Background(), tc.a, tc.c, tc.opts); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestProximity(t *testing.T) {
	e := newTestEngine(t)
	tests := []struct {
		a, b string
		want float64
	}{
		{"ZH", "zh", 1.0},
		{"ZH", "AG", 0.75},
		{"GE", "VD", 0.75},
		{"GE", "VS", 0.5},
		{"GE", "SG", 0.1},
	}
	for _, tc := range tests {
		got, err := e.Proximity(tc.a, tc.b)
		if err != nil {
			t.Fatalf("Proximity(%s, %s): %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Errorf("Proximity(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
	if _, err := e.Proximity("ZH", "XX"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("unknown region: got %v", err)
	}
}

func TestLanguagesAndNeighbors(t *testing.T) {
	e := newTestEngine(t)
	langs, err := e.Languages("gr")
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}
	if len(langs) != 3 {
		t.Errorf("GR languages = %v, want three", langs)
	}
	neighbors, err := e.Neighbors("GE")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(neighbors) != 1 || neighbors[0] != "VD" {
		t.Errorf("GE neighbors = %v, want [VD]", neighbors)
	}
	if _, err := e.Languages("XX"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("unknown region: got %v", err)
	}
}
