package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/applicant"
	dombatch "github.com/lernwerk/compass/internal/domain/batch"
	"github.com/lernwerk/compass/internal/domain/compatibility"
	"github.com/lernwerk/compass/internal/domain/opportunity"
)

// Service defaults.
const (
	DefaultWorkers       = 8
	DefaultMaxCandidates = 1000
)

// Batch status values reported to the Recorder.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusAborted = "aborted"
)

// Outcome is the result of scoring a batch of candidates.
type Outcome struct {
	Mode     compatibility.Mode
	Ranked   []compatibility.Result
	Rejected []dombatch.Result // invalid candidates, in input order
}

// Service scores candidate batches for one applicant and reranks them.
type Service struct {
	scorer        *Scorer
	logger        *zap.Logger
	recorder      Recorder
	workers       int
	diversityCap  int
	maxCandidates int
}

// New creates a scoring service.
func New(scorer *Scorer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scorer:        scorer,
		logger:        logger,
		recorder:      nopRecorder{},
		workers:       DefaultWorkers,
		diversityCap:  DefaultDiversityCap,
		maxCandidates: DefaultMaxCandidates,
	}
}

// WithWorkers sets the number of candidates scored in parallel.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithDiversityCap sets the per-category limit applied in cold start.
func (s *Service) WithDiversityCap(n int) *Service {
	if n > 0 {
		s.diversityCap = n
	}
	return s
}

// WithMaxCandidates sets the largest accepted candidate batch.
func (s *Service) WithMaxCandidates(n int) *Service {
	if n > 0 {
		s.maxCandidates = n
	}
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Scorer returns the underlying scorer.
func (s *Service) Scorer() *Scorer { return s.scorer }

// ScoreBatch validates raw applicant and candidate input, scores every valid
// candidate and returns at most batchSize results scoring at least minScore.
// An invalid applicant fails the whole call; an invalid candidate is reported
// in Outcome.Rejected and skipped.
func (s *Service) ScoreBatch(
	ctx context.Context, a applicant.Params, candidates []opportunity.Params, minScore float64, batchSize int,
) (Outcome, error) {
	profile, err := applicant.New(a)
	if err != nil {
		s.recorder.ObserveBatch(compatibility.ModeColdStart, StatusInvalid, len(candidates), 0, 0, 0)
		return Outcome{}, fmt.Errorf("applicant: %w", err)
	}

	items := make([]item, 0, len(candidates))
	var rejected []dombatch.Result
	for i, c := range candidates {
		o, err := opportunity.New(c)
		if err != nil {
			rejected = append(rejected, dombatch.NewRejected(c.ID, i, err))
			continue
		}
		items = append(items, item{index: i, opp: o})
	}

	out, err := s.rank(ctx, profile, items, len(candidates), minScore, batchSize)
	if err != nil {
		return Outcome{}, err
	}
	out.Rejected = mergeRejected(rejected, out.Rejected)
	return out, nil
}

// Rank scores already constructed opportunities.
func (s *Service) Rank(
	ctx context.Context, p applicant.Profile, candidates []opportunity.Opportunity, minScore float64, batchSize int,
) (Outcome, error) {
	items := make([]item, len(candidates))
	for i, o := range candidates {
		items[i] = item{index: i, opp: o}
	}
	return s.rank(ctx, p, items, len(candidates), minScore, batchSize)
}

type item struct {
	index int
	opp   opportunity.Opportunity
}

func (s *Service) rank(
	ctx context.Context, p applicant.Profile, items []item, total int, minScore float64, batchSize int,
) (Outcome, error) {
	start := time.Now()
	mode := compatibility.ModeFull
	if p.ColdStart() {
		mode = compatibility.ModeColdStart
	}

	if err := s.checkRequest(p, total, minScore, batchSize); err != nil {
		s.recorder.ObserveBatch(mode, StatusInvalid, total, 0, 0, time.Since(start))
		return Outcome{}, err
	}

	results := make([]compatibility.Result, len(items))
	errs := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = s.scorer.Score(p, items[i].opp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.recorder.ObserveBatch(mode, StatusAborted, total, 0, 0, time.Since(start))
		return Outcome{}, fmt.Errorf("score batch: %w", err)
	}

	scored := make([]compatibility.Result, 0, len(items))
	var rejected []dombatch.Result
	for i, err := range errs {
		if err != nil {
			rejected = append(rejected, dombatch.NewRejected(items[i].opp.ID(), items[i].index, err))
			s.logger.Debug("candidate rejected",
				zap.String("opportunity_id", items[i].opp.ID()),
				zap.Error(err),
			)
			continue
		}
		scored = append(scored, results[i])
	}

	ranked := rerank(scored, minScore, batchSize, mode == compatibility.ModeColdStart, s.diversityCap)

	dur := time.Since(start)
	s.recorder.ObserveBatch(mode, StatusOK, total, len(ranked), len(rejected), dur)
	s.logger.Debug("batch scored",
		zap.String("mode", string(mode)),
		zap.Int("candidates", total),
		zap.Int("ranked", len(ranked)),
		zap.Int("rejected", len(rejected)),
		zap.Duration("duration", dur),
	)

	return Outcome{Mode: mode, Ranked: ranked, Rejected: rejected}, nil
}

func (s *Service) checkRequest(p applicant.Profile, total int, minScore float64, batchSize int) error {
	if err := s.scorer.CheckApplicant(p); err != nil {
		return err
	}
	if math.IsNaN(minScore) || minScore < 0 || minScore > 1 {
		return fmt.Errorf("%w: min score must be between 0 and 1, got %v", domain.ErrInvalidInput, minScore)
	}
	if batchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", domain.ErrInvalidInput, batchSize)
	}
	if total > s.maxCandidates {
		return fmt.Errorf("%w: %d candidates exceed the limit of %d", domain.ErrInvalidInput, total, s.maxCandidates)
	}
	return nil
}

func mergeRejected(a, b []dombatch.Result) []dombatch.Result {
	if len(a) == 0 {
		return b
	}
	out := append(a, b...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}
