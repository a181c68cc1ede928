package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session is the decoded form of a commenter session.
type Session struct {
	// ID is the unique session identifier.
	ID string `json:"id"`

	// UserID is the signed-in user's ID, if any.
	UserID string `json:"user_id,omitempty"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`

	// LastActive is when the session was last seen on a request.
	LastActive time.Time `json:"last_active"`

	// Values holds arbitrary per-session state keyed by name.
	Values map[string]json.RawMessage `json:"values,omitempty"`

	// Version is the encoding format version.
	Version int `json:"version"`
}

// EncodingVersion is the current version of the session wire format.
// Increment when making breaking changes to the format.
const EncodingVersion = 1

// NewID returns a fresh random session identifier.
func NewID() string {
	return uuid.NewString()
}

// Encode converts a session to bytes for storage.
func Encode(s *Session) ([]byte, error) {
	s.Version = EncodingVersion
	return json.Marshal(s)
}

// Decode converts stored bytes back to a session.
func Decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Set stores v under key, JSON-encoded.
func (s *Session) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if s.Values == nil {
		s.Values = make(map[string]json.RawMessage)
	}
	s.Values[key] = raw
	return nil
}

// Get decodes the value stored under key into dst.
// Returns false if the key is not present.
func (s *Session) Get(key string, dst any) (bool, error) {
	raw, ok := s.Values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}
