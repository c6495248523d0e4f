package session

import (
	"context"
	"time"

	"github.com/lernwerk/compass/internal/db"
	"github.com/lernwerk/compass/internal/domain/quiz"
)

// mockKVStore implements the consumer interface for tests. Unset functions
// behave like an empty store.
type mockKVStore struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn    func(ctx context.Context, key string) error
	expireFn func(ctx context.Context, key string, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKVStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return db.ErrKeyNotFound
}

func (m *mockKVStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if m.expireFn != nil {
		return m.expireFn(ctx, key, ttl)
	}
	return nil
}

func testSnapshot() quiz.Snapshot {
	return quiz.Snapshot{
		ID:      "sess-1",
		Phase:   quiz.PhaseAfternoon,
		Morning: []string{"m01", "m02", "m03", "m04", "m05", "m06", "m07", "m08"},
		XP:      80,
		Badges:  []quiz.Badge{quiz.BadgeMorning},
	}
}
