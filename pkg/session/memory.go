package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory session store. It's the default store and
// suitable for single-process deployments; use RedisStore or SQLStore when
// sessions must survive restarts or be shared across servers.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	closed  bool
	done    chan struct{}
}

// MemoryStoreOption configures MemoryStore behavior.
type MemoryStoreOption func(*memoryStoreConfig)

type memoryStoreConfig struct {
	sweepInterval time.Duration
}

// WithSweepInterval sets how often expired sessions are swept.
// Default: 1 minute.
func WithSweepInterval(d time.Duration) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		c.sweepInterval = d
	}
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	cfg := &memoryStoreConfig{
		sweepInterval: 1 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	store := &MemoryStore{
		records: make(map[string]Record),
		done:    make(chan struct{}),
	}

	go store.sweepLoop(cfg.sweepInterval)
	return store
}

// Save stores session data with an expiration time.
func (m *MemoryStore) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	// Copy so later caller mutations don't leak into the store
	m.records[sessionID] = Record{
		Data:      append([]byte(nil), data...),
		ExpiresAt: expiresAt,
	}
	return nil
}

// Load retrieves session data if it exists and hasn't expired.
// Expired entries are pruned on the spot.
func (m *MemoryStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil, ErrStoreClosed{}
	}

	rec, ok := m.records[sessionID]
	if ok && time.Now().Before(rec.ExpiresAt) {
		data := append([]byte(nil), rec.Data...)
		m.mu.RUnlock()
		return data, nil
	}
	m.mu.RUnlock()

	if ok {
		m.prune(sessionID)
	}
	return nil, nil
}

// prune deletes sessionID if it is still present and expired.
func (m *MemoryStore) prune(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if rec, ok := m.records[sessionID]; ok && !time.Now().Before(rec.ExpiresAt) {
		delete(m.records, sessionID)
	}
}

// Delete removes a session from the store.
func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	delete(m.records, sessionID)
	return nil
}

// Touch updates the expiration time for a session.
func (m *MemoryStore) Touch(ctx context.Context, sessionID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	if rec, ok := m.records[sessionID]; ok {
		rec.ExpiresAt = expiresAt
		m.records[sessionID] = rec
	}
	return nil
}

// SaveAll saves multiple sessions atomically.
func (m *MemoryStore) SaveAll(ctx context.Context, sessions map[string]Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	for id, rec := range sessions {
		m.records[id] = Record{
			Data:      append([]byte(nil), rec.Data...),
			ExpiresAt: rec.ExpiresAt,
		}
	}
	return nil
}

// Close shuts down the store and its sweep goroutine.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)
	m.records = nil
	return nil
}

// Count returns the number of sessions in the store.
// This is for monitoring/testing purposes.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// sweepLoop periodically removes expired sessions.
func (m *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.done:
			return
		}
	}
}

// sweep removes every expired session.
func (m *MemoryStore) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	now := time.Now()
	for id, rec := range m.records {
		if now.After(rec.ExpiresAt) {
			delete(m.records, id)
		}
	}
}
