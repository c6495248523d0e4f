package compass

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/config"
	"github.com/lernwerk/compass/internal/db"
	dbValkey "github.com/lernwerk/compass/internal/db/valkey"
	"github.com/lernwerk/compass/internal/domain/region"
	sessionrepo "github.com/lernwerk/compass/internal/repository/session"
	quizuc "github.com/lernwerk/compass/internal/usecase/quiz"
	scoringuc "github.com/lernwerk/compass/internal/usecase/scoring"
)

const defaultReadinessTimeout = 10 * time.Second

// Engine is the compass SDK entry point.
type Engine struct {
	store   db.Store // nil for in-memory sessions
	graph   *region.Graph
	scoring *scoringuc.Service
	quiz    *quizuc.Service
	obs     *observer
}

// New creates an Engine. When WithValkey is given, the provided context is
// used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	ec := &engineConfig{}
	for _, o := range opts {
		o.apply(ec)
	}

	cfg, err := loadConfig(ec.configFile)
	if err != nil {
		return nil, err
	}
	tables, err := cfg.Engine()
	if err != nil {
		return nil, fmt.Errorf("compass: %w", err)
	}
	cat, err := cfg.Quiz.Catalog()
	if err != nil {
		return nil, fmt.Errorf("compass: %w", err)
	}

	graph, err := region.Switzerland(tables.Tiers)
	if err != nil {
		return nil, fmt.Errorf("compass: proximity graph: %w", err)
	}
	scorer, err := scoringuc.NewScorer(graph, tables.Categories, tables.Scoring)
	if err != nil {
		return nil, fmt.Errorf("compass: %w", err)
	}

	obs, err := newObserver(ec.logger, ec.metricsReg)
	if err != nil {
		return nil, err
	}

	ec.sessionTTL = sessionTTL(ec, cfg)
	store, sessions, err := createSessionStore(ctx, ec)
	if err != nil {
		return nil, err
	}

	quiz, err := quizuc.New(sessions, cat, tables.Rules, zap.NewNop())
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("compass: %w", err)
	}

	scoring := scoringuc.New(scorer, zap.NewNop()).
		WithWorkers(firstPositive(ec.workers, cfg.Scoring.Workers)).
		WithDiversityCap(firstPositive(ec.diversityCap, cfg.Scoring.DiversityCap)).
		WithMaxCandidates(firstPositive(ec.maxCandidates, cfg.Scoring.MaxCandidates))

	return &Engine{store: store, graph: graph, scoring: scoring, quiz: quiz, obs: obs}, nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		var cfg config.Config
		cfg.ApplyDefaults()
		return cfg, nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("compass: %w", err)
	}
	return cfg, nil
}

// sessionTTL prefers WithSessionTTL over the config file's session_ttl_min.
func sessionTTL(ec *engineConfig, cfg config.Config) time.Duration {
	if ec.sessionTTLSet {
		return ec.sessionTTL
	}
	return time.Duration(cfg.Database.SessionTTLMin) * time.Minute
}

func createSessionStore(ctx context.Context, ec *engineConfig) (db.Store, quizuc.SessionStore, error) {
	if len(ec.addrs) == 0 {
		return nil, sessionrepo.NewMemory(ec.sessionTTL), nil
	}

	s, err := dbValkey.NewStore(dbValkey.Config{Addrs: ec.addrs, Password: ec.password})
	if err != nil {
		return nil, nil, fmt.Errorf("compass: create valkey store: %w", err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("compass: database not ready: %w", err)
	}

	prefix := ec.keyPrefix
	if prefix == "" {
		prefix = "compass:"
	}
	return s, sessionrepo.New(s, prefix, ec.sessionTTL, zap.NewNop()), nil
}

func firstPositive(vs ...int) int {
	for _, v := range vs {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Close releases all resources.
func (e *Engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// Ping checks session store connectivity. In-memory engines always succeed.
func (e *Engine) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { e.obs.observe("ping", start, err) }()

	if e.store == nil {
		return nil
	}
	if err = e.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Score ranks candidates for one applicant. An invalid applicant or option
// fails the call; invalid candidates are listed in Ranking.Rejected.
func (e *Engine) Score(ctx context.Context, a Applicant, candidates []Candidate, opts ScoreOptions) (_ Ranking, err error) {
	start := time.Now()
	var ranking Ranking
	defer func() {
		e.obs.observe("score", start, err,
			"mode", ranking.Mode, "candidates", len(candidates), "results", len(ranking.Results))
	}()

	batchSize := opts.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}

	out, err := e.scoring.ScoreBatch(ctx, toApplicantParams(a), toCandidateParams(candidates), opts.MinScore, batchSize)
	if err != nil {
		return Ranking{}, fmt.Errorf("score: %w", err)
	}
	ranking = fromOutcome(out)
	e.obs.candidates(len(candidates), len(ranking.Results), len(ranking.Rejected))
	return ranking, nil
}

// Proximity returns the geographic and linguistic proximity of two region
// codes, between 0 and 1.
func (e *Engine) Proximity(a, b string) (float64, error) {
	p, err := e.graph.Proximity(region.Normalize(a), region.Normalize(b))
	if err != nil {
		return 0, fmt.Errorf("proximity: %w", err)
	}
	return p, nil
}

// Regions returns all known region codes in sorted order.
func (e *Engine) Regions() []string {
	codes := e.graph.Codes()
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

// Languages returns the language tags (e.g. "de", "fr") spoken in a region.
func (e *Engine) Languages(code string) ([]string, error) {
	c := region.Normalize(code)
	if err := e.graph.Validate(c); err != nil {
		return nil, err
	}
	langs := e.graph.Languages(c)
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return out, nil
}

// Neighbors returns the regions bordering code in sorted order.
func (e *Engine) Neighbors(code string) ([]string, error) {
	c := region.Normalize(code)
	if err := e.graph.Validate(c); err != nil {
		return nil, err
	}
	var out []string
	for _, n := range e.graph.Neighbors(c) {
		out = append(out, string(n))
	}
	return out, nil
}

// Quiz returns the quiz session service.
func (e *Engine) Quiz() *QuizService {
	return &QuizService{svc: e.quiz, obs: e.obs}
}
