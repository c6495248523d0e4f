package valkey

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/lernwerk/compass/internal/db"
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.b().Set().Key(key).Value(rueidis.BinaryString(value)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// SetWithTTL stores a value that expires after ttl. A non-positive ttl
// stores the value without expiry.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Set(ctx, key, value)
	}
	cmd := s.b().Set().Key(key).Value(rueidis.BinaryString(value)).ExSeconds(expirySeconds(ttl)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del removes a key. Deleting a missing key returns db.ErrKeyNotFound.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if n == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}

// Expire resets the TTL of an existing key. Returns db.ErrKeyNotFound when
// the key does not exist.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) error {
	cmd := s.b().Expire().Key(key).Seconds(expirySeconds(ttl)).Build()
	ok, err := s.do(ctx, cmd).AsBool()
	if err != nil {
		return &db.Error{Op: db.OpExpire, Err: err}
	}
	if !ok {
		return db.ErrKeyNotFound
	}
	return nil
}

// expirySeconds converts ttl to whole seconds, rounding up so that a
// sub-second ttl never becomes EX 0.
func expirySeconds(ttl time.Duration) int64 {
	return int64((ttl + time.Second - 1) / time.Second)
}
