package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultTTL is how long a session lives without activity.
const DefaultTTL = 24 * time.Hour

// Manager handles session lifecycle on top of a Store: creation, lookup
// with sliding expiry, and teardown. The store is the source of truth;
// the manager holds no session state of its own.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTTL sets the session lifetime. Each Get slides the expiry forward
// by this amount. Default: DefaultTTL.
func WithTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.ttl = d
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a session manager backed by store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "sessions")
	return m
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create starts a new session for userID and persists it.
// An empty userID creates an anonymous session.
func (m *Manager) Create(ctx context.Context, userID string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:         NewID(),
		UserID:     userID,
		CreatedAt:  now,
		LastActive: now,
	}

	if err := m.Put(ctx, sess); err != nil {
		return nil, err
	}

	m.logger.Debug("session created", "session_id", sess.ID, "user_id", userID)
	return sess, nil
}

// Get loads a session by ID and slides its expiry forward.
// Returns NotFoundError if the session doesn't exist or has expired.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, NotFoundError{SessionID: sessionID}
	}

	sess, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}

	sess.LastActive = time.Now()
	if err := m.store.Touch(ctx, sessionID, sess.LastActive.Add(m.ttl)); err != nil {
		m.logger.Warn("session touch failed", "session_id", sessionID, "error", err)
	}
	return sess, nil
}

// Put persists a session with a fresh expiry.
func (m *Manager) Put(ctx context.Context, sess *Session) error {
	data, err := Encode(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Save(ctx, sess.ID, data, time.Now().Add(m.ttl)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Destroy removes a session. Destroying a missing session is not an error.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	m.logger.Debug("session destroyed", "session_id", sessionID)
	return nil
}

// Seed persists a batch of prebuilt sessions in one store call.
// Used to install fixture sessions at startup.
func (m *Manager) Seed(ctx context.Context, sessions ...*Session) error {
	if len(sessions) == 0 {
		return nil
	}

	expiresAt := time.Now().Add(m.ttl)
	records := make(map[string]Record, len(sessions))
	for _, sess := range sessions {
		data, err := Encode(sess)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", sess.ID, err)
		}
		records[sess.ID] = Record{Data: data, ExpiresAt: expiresAt}
	}

	return m.store.SaveAll(ctx, records)
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}
