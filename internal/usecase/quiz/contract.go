package quiz

import (
	"context"

	domquiz "github.com/lernwerk/compass/internal/domain/quiz"
)

// SessionStore persists quiz session snapshots. Get and Delete return an
// error wrapping domain.ErrSessionNotFound for unknown ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (domquiz.Snapshot, error)
	Save(ctx context.Context, snap domquiz.Snapshot) error
	Delete(ctx context.Context, id string) error
}

// Recorder receives quiz metrics.
type Recorder interface {
	ObserveQuizOp(operation, status string)
	ObserveQuizCompleted(level int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveQuizOp(string, string) {}
func (nopRecorder) ObserveQuizCompleted(int)     {}
