package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/db"
	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/quiz"
)

const keySuffix = "quiz_session:"

// kvStore is the consumer interface for session persistence (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// Repo stores quiz session snapshots as JSON values with a sliding TTL.
type Repo struct {
	store  kvStore
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a session repository. keyPrefix namespaces all keys
// (e.g. "compass:"); ttl <= 0 keeps sessions forever.
func New(s kvStore, keyPrefix string, ttl time.Duration, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{store: s, prefix: keyPrefix + keySuffix, ttl: ttl, logger: logger}
}

// Get loads a session snapshot and extends its TTL.
func (r *Repo) Get(ctx context.Context, id string) (quiz.Snapshot, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return quiz.Snapshot{}, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
		}
		return quiz.Snapshot{}, fmt.Errorf("get session %s: %w", id, err)
	}

	var snap quiz.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return quiz.Snapshot{}, fmt.Errorf("decode session %s: %w", id, err)
	}

	if r.ttl > 0 {
		// Losing the refresh only shortens the session lifetime.
		if err := r.store.Expire(ctx, r.key(id), r.ttl); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("session ttl refresh failed", zap.String("session_id", id), zap.Error(err))
		}
	}
	return snap, nil
}

// Save writes a session snapshot, resetting its TTL.
func (r *Repo) Save(ctx context.Context, snap quiz.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", snap.ID, err)
	}
	if err := r.store.SetWithTTL(ctx, r.key(snap.ID), data, r.ttl); err != nil {
		return fmt.Errorf("save session %s: %w", snap.ID, err)
	}
	return nil
}

// Delete removes a session.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
		}
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (r *Repo) key(id string) string { return r.prefix + id }
