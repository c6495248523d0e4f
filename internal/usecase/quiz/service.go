package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/domain"
	domquiz "github.com/lernwerk/compass/internal/domain/quiz"
	"github.com/lernwerk/compass/internal/domain/vector"
	"github.com/lernwerk/compass/internal/logger"
)

// Operation names reported to the Recorder.
const (
	OpStart   = "start"
	OpGet     = "get"
	OpToggle  = "toggle"
	OpAdvance = "advance"
	OpAnswer  = "answer"
	OpResult  = "result"
	OpDelete  = "delete"
)

// Result is the outcome of a completed quiz.
type Result struct {
	SessionID  string
	Traits     vector.Traits
	WorkValues vector.WorkValues
	Dominant   vector.Trait
	TopThree   [3]vector.Trait
	XP         int
	Level      int
	Badges     []domquiz.Badge
}

// Code returns the three-letter code of the top traits, e.g. "IRC".
func (r Result) Code() string { return r.Traits.Code() }

// Service drives quiz sessions stored in a SessionStore. Operations on the
// same session id are serialized within the process.
type Service struct {
	store    SessionStore
	catalog  *domquiz.Catalog
	rules    domquiz.Rules
	logger   *zap.Logger
	recorder Recorder
	locks    *keyedMutex
	newID    func() string
}

// New creates a quiz service. The catalog must offer enough tiles for the
// configured picks per phase.
func New(store SessionStore, catalog *domquiz.Catalog, rules domquiz.Rules, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("quiz rules: %w", err)
	}
	if err := catalog.Validate(rules.PicksPerPhase); err != nil {
		return nil, fmt.Errorf("quiz catalog: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		catalog:  catalog,
		rules:    rules,
		logger:   logger,
		recorder: nopRecorder{},
		locks:    newKeyedMutex(),
		newID:    func() string { return uuid.NewString() },
	}, nil
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithIDGenerator replaces the session id generator (uuid v4 by default).
func (s *Service) WithIDGenerator(fn func() string) *Service {
	if fn != nil {
		s.newID = fn
	}
	return s
}

// Catalog returns the catalog new sessions are built from.
func (s *Service) Catalog() *domquiz.Catalog { return s.catalog }

// Rules returns the quiz rules.
func (s *Service) Rules() domquiz.Rules { return s.rules }

// Start creates and stores a fresh session in the morning phase.
func (s *Service) Start(ctx context.Context) (*domquiz.Session, error) {
	sess, err := domquiz.NewSession(s.newID(), s.catalog, s.rules)
	if err != nil {
		s.observe(OpStart, err)
		return nil, fmt.Errorf("start session: %w", err)
	}
	if err := s.store.Save(ctx, sess.Snapshot()); err != nil {
		s.observe(OpStart, err)
		return nil, fmt.Errorf("start session: %w", err)
	}
	s.observe(OpStart, nil)
	s.log(ctx).Debug("quiz session started", zap.String("session_id", sess.ID()))
	return sess, nil
}

// Get loads a session.
func (s *Service) Get(ctx context.Context, id string) (*domquiz.Session, error) {
	sess, err := s.load(ctx, id)
	s.observe(OpGet, err)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ToggleTile selects or deselects a tile of the current phase and reports
// the new selection state.
func (s *Service) ToggleTile(ctx context.Context, id, tileID string) (*domquiz.Session, bool, error) {
	var selected bool
	sess, err := s.mutate(ctx, OpToggle, id, func(sess *domquiz.Session) error {
		var err error
		selected, err = sess.Toggle(tileID)
		return err
	})
	return sess, selected, err
}

// Advance finishes the current tile phase.
func (s *Service) Advance(ctx context.Context, id string) (*domquiz.Session, error) {
	return s.mutate(ctx, OpAdvance, id, (*domquiz.Session).Advance)
}

// Answer records the option chosen for the current scenario.
func (s *Service) Answer(ctx context.Context, id string, option int) (*domquiz.Session, error) {
	return s.mutate(ctx, OpAnswer, id, func(sess *domquiz.Session) error {
		return sess.Answer(option)
	})
}

// Result computes the trait and work-value vectors of a completed session.
// Sessions that are not complete yet return domain.ErrNotReady.
func (s *Service) Result(ctx context.Context, id string) (Result, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		s.observe(OpResult, err)
		return Result{}, err
	}
	if !sess.Complete() {
		err := fmt.Errorf("session %s in phase %s: %w", id, sess.Phase(), domain.ErrNotReady)
		s.observe(OpResult, err)
		return Result{}, err
	}
	s.observe(OpResult, nil)
	return ResultOf(sess), nil
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	err := s.store.Delete(ctx, id)
	s.observe(OpDelete, err)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ResultOf computes the result of a session regardless of its phase.
func ResultOf(sess *domquiz.Session) Result {
	traits, values := sess.Vectors()
	return Result{
		SessionID:  sess.ID(),
		Traits:     traits,
		WorkValues: values,
		Dominant:   traits.Dominant(),
		TopThree:   traits.TopThree(),
		XP:         sess.XP(),
		Level:      sess.Level(),
		Badges:     sess.Badges(),
	}
}

// mutate applies fn to the stored session under the session lock and saves
// the result. A failing fn leaves the stored session untouched.
func (s *Service) mutate(
	ctx context.Context, op, id string, fn func(*domquiz.Session) error,
) (*domquiz.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		s.observe(op, err)
		return nil, err
	}

	wasComplete := sess.Complete()
	if err := fn(sess); err != nil {
		s.observe(op, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Save(ctx, sess.Snapshot()); err != nil {
		s.observe(op, err)
		return nil, fmt.Errorf("%s: save session: %w", op, err)
	}
	s.observe(op, nil)

	if !wasComplete && sess.Complete() {
		s.recorder.ObserveQuizCompleted(sess.Level())
		s.log(ctx).Info("quiz completed",
			zap.String("session_id", id),
			zap.Int("xp", sess.XP()),
			zap.Int("level", sess.Level()),
		)
	}
	return sess, nil
}

func (s *Service) load(ctx context.Context, id string) (*domquiz.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}
	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess, err := domquiz.Restore(snap, s.catalog, s.rules)
	if err != nil {
		s.log(ctx).Warn("stored session does not match catalog", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	return sess, nil
}

func (s *Service) observe(op string, err error) {
	s.recorder.ObserveQuizOp(op, statusOf(err))
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, s.logger)
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrIllegalTransition):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
