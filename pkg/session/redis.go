package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrNoKey is the sentinel a RedisClient returns (possibly wrapped) from
// Get when the key does not exist. Adapters translate the driver's own
// miss value into it; for go-redis that is redis.Nil.
var ErrNoKey = errors.New("session: redis key not found")

// RedisClient is the byte-oriented subset of Redis the store needs. A thin
// adapter over *redis.Client from github.com/redis/go-redis/v9 satisfies
// it, which keeps the driver out of this module's dependency graph. The
// store never closes the client; it may be shared with other components.
type RedisClient interface {
	// Set writes value under key with the given ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get reads the value under key. Missing keys return ErrNoKey.
	Get(ctx context.Context, key string) ([]byte, error)

	// Del removes keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error

	// Expire resets key's ttl. A missing key is not an error.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// RedisBatchWriter is an optional RedisClient upgrade for clients that can
// batch writes, such as a go-redis pipeline. SaveAll uses it when the
// client provides it and writes sequentially when not.
type RedisBatchWriter interface {
	SetBatch(ctx context.Context, entries map[string]RedisBatchEntry) error
}

// RedisBatchEntry is one keyed write in a SetBatch call.
type RedisBatchEntry struct {
	Value []byte
	TTL   time.Duration
}

// RedisStore is a Redis-backed session store for multi-server deployments
// with shared session state. Records are stored under prefix+sessionID
// with their remaining lifetime as the Redis TTL, so expiry is Redis's
// job and the store needs no sweep goroutine.
type RedisStore struct {
	client RedisClient
	prefix string
	closed atomic.Bool
}

// RedisStoreOption configures RedisStore behavior.
type RedisStoreOption func(*RedisStore)

// WithRedisPrefix sets the key prefix for session keys.
// Default: "colloquy:session:".
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client RedisClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "colloquy:session:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Save stores a record, with the time until expiresAt as its Redis TTL.
// A record that is already expired is deleted instead of written.
func (s *RedisStore) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	if s.closed.Load() {
		return ErrStoreClosed{}
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sessionID)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, ttl); err != nil {
		return fmt.Errorf("session: redis save %s: %w", sessionID, err)
	}
	return nil
}

// Load retrieves a record. Missing and expired keys are indistinguishable
// in Redis; both come back as (nil, nil) per the Store contract.
func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed{}
	}

	data, err := s.client.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, ErrNoKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: redis load %s: %w", sessionID, err)
	}
	return data, nil
}

// Delete removes a record.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if s.closed.Load() {
		return ErrStoreClosed{}
	}

	if err := s.client.Del(ctx, s.key(sessionID)); err != nil {
		return fmt.Errorf("session: redis delete %s: %w", sessionID, err)
	}
	return nil
}

// Touch extends a record's lifetime without rewriting its data. An
// already-elapsed deadline deletes the record.
func (s *RedisStore) Touch(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if s.closed.Load() {
		return ErrStoreClosed{}
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sessionID)
	}

	if err := s.client.Expire(ctx, s.key(sessionID), ttl); err != nil {
		return fmt.Errorf("session: redis touch %s: %w", sessionID, err)
	}
	return nil
}

// SaveAll stores multiple records, batching through RedisBatchWriter when
// the client supports it. Records already expired are skipped.
func (s *RedisStore) SaveAll(ctx context.Context, sessions map[string]Record) error {
	if s.closed.Load() {
		return ErrStoreClosed{}
	}
	if len(sessions) == 0 {
		return nil
	}

	now := time.Now()

	if bw, ok := s.client.(RedisBatchWriter); ok {
		batch := make(map[string]RedisBatchEntry, len(sessions))
		for id, rec := range sessions {
			if ttl := rec.ExpiresAt.Sub(now); ttl > 0 {
				batch[s.key(id)] = RedisBatchEntry{Value: rec.Data, TTL: ttl}
			}
		}
		if len(batch) == 0 {
			return nil
		}
		if err := bw.SetBatch(ctx, batch); err != nil {
			return fmt.Errorf("session: redis save all: %w", err)
		}
		return nil
	}

	for id, rec := range sessions {
		ttl := rec.ExpiresAt.Sub(now)
		if ttl <= 0 {
			continue
		}
		if err := s.client.Set(ctx, s.key(id), rec.Data, ttl); err != nil {
			return fmt.Errorf("session: redis save %s: %w", id, err)
		}
	}
	return nil
}

// Close marks the store as closed. The Redis client stays open; it may be
// shared with other components.
func (s *RedisStore) Close() error {
	s.closed.Store(true)
	return nil
}

// Prefix returns the key prefix.
func (s *RedisStore) Prefix() string {
	return s.prefix
}
