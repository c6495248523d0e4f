package compass

import (
	"context"
	"time"

	quizuc "github.com/lernwerk/compass/internal/usecase/quiz"
)

// QuizService drives quiz sessions.
type QuizService struct {
	svc *quizuc.Service
	obs *observer
}

// Start creates a new session in the morning phase.
func (q *QuizService) Start(ctx context.Context) (_ Session, err error) {
	start := time.Now()
	defer func() { q.obs.observe("quiz.start", start, err) }()

	sess, err := q.svc.Start(ctx)
	if err != nil {
		return Session{}, err
	}
	return fromSession(sess), nil
}

// Get returns the current state of a session.
func (q *QuizService) Get(ctx context.Context, id string) (_ Session, err error) {
	start := time.Now()
	defer func() { q.obs.observe("quiz.get", start, err) }()

	sess, err := q.svc.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return fromSession(sess), nil
}

// Toggle selects or deselects a tile of the current phase and reports
// whether the tile is now selected.
func (q *QuizService) Toggle(ctx context.Context, id, tileID string) (_ Session, selected bool, err error) {
	start := time.Now()
	defer func() { q.obs.observe("quiz.toggle", start, err) }()

	sess, selected, err := q.svc.ToggleTile(ctx, id, tileID)
	if err != nil {
		return Session{}, false, err
	}
	return fromSession(sess), selected, nil
}

// Advance finishes the current tile phase.
func (q *QuizService) Advance(ctx context.Context, id string) (_ Session, err error) {
	start := time.Now()
	defer func() { q.obs.observe("quiz.advance", start, err) }()

	sess, err := q.svc.Advance(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return fromSession(sess), nil
}

// Answer records the option (0-3) chosen for the current scenario.
func (q *QuizService) Answer(ctx context.Context, id string, option int) (_ Session, err error) {
	start := time.Now()
	defer func() { q.obs.observe("quiz.answer", start, err) }()

	sess, err := q.svc.Answer(ctx, id, option)
	if err != nil {
		return Session{}, err
	}
	return fromSession(sess), nil
}

// Result returns the outcome of a completed session.
func (q *QuizService) Result(ctx context.Context, id string) (_ QuizResult, err error) {
	start := time.Now()
	defer func() { q.obs.observe("quiz.result", start, err) }()

	res, err := q.svc.Result(ctx, id)
	if err != nil {
		return QuizResult{}, err
	}
	return fromQuizResult(res), nil
}

// Delete removes a session.
func (q *QuizService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { q.obs.observe("quiz.delete", start, err) }()

	return q.svc.Delete(ctx, id)
}
