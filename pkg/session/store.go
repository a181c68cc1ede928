package session

import (
	"context"
	"time"
)

// Store is the interface for session persistence backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists session data with an expiration time.
	// If sessionID already exists, it is overwritten.
	Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error

	// Load retrieves session data by ID.
	// Returns (nil, nil) if the session doesn't exist or has expired.
	// Returns (data, nil) if found and not expired.
	// Returns (nil, err) on backend errors.
	Load(ctx context.Context, sessionID string) ([]byte, error)

	// Delete removes a session. Called on sign-out or expiration.
	// Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Touch extends the expiration time without rewriting session data.
	// Touching a missing session is not an error.
	Touch(ctx context.Context, sessionID string, expiresAt time.Time) error

	// SaveAll persists multiple sessions atomically (if possible).
	// Implementations that don't support atomicity save sequentially.
	SaveAll(ctx context.Context, sessions map[string]Record) error

	// Close releases any resources held by the store.
	// Shared backends (database pools, Redis clients) are not closed.
	Close() error
}

// Record is a session as the store sees it: opaque bytes plus an expiry.
type Record struct {
	// Data is the encoded session.
	Data []byte

	// ExpiresAt is when the session should expire.
	ExpiresAt time.Time
}

// NotFoundError is returned when a lookup requires the session to exist
// and it doesn't. Note: Store.Load returns (nil, nil) for missing
// sessions, not this error.
type NotFoundError struct {
	SessionID string
}

func (e NotFoundError) Error() string {
	return "session not found: " + e.SessionID
}

// ErrStoreClosed is returned when operations are attempted on a closed store.
type ErrStoreClosed struct{}

func (e ErrStoreClosed) Error() string {
	return "session store is closed"
}
