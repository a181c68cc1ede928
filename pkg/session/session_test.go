package session

import (
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	sess := &Session{
		ID:         "sess-1",
		UserID:     "user-42",
		CreatedAt:  now,
		LastActive: now,
	}
	if err := sess.Set("display_name", "Jane Doe"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := Encode(sess)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got.ID != "sess-1" {
		t.Errorf("ID = %q, want %q", got.ID, "sess-1")
	}
	if got.UserID != "user-42" {
		t.Errorf("UserID = %q, want %q", got.UserID, "user-42")
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
	if got.Version != EncodingVersion {
		t.Errorf("Version = %d, want %d", got.Version, EncodingVersion)
	}

	var name string
	ok, err := got.Get("display_name", &name)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || name != "Jane Doe" {
		t.Errorf("Get(display_name) = %q, %v, want %q, true", name, ok, "Jane Doe")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("Decode accepted malformed input")
	}
}

func TestSessionGetMissingKey(t *testing.T) {
	sess := &Session{ID: "sess-2"}

	var v string
	ok, err := sess.Get("absent", &v)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get reported a value for a missing key")
	}
}

func TestSessionSetOverwrites(t *testing.T) {
	sess := &Session{ID: "sess-3"}
	sess.Set("count", 1)
	sess.Set("count", 2)

	var count int
	if ok, _ := sess.Get("count", &count); !ok || count != 2 {
		t.Errorf("Get(count) = %d, %v, want 2, true", count, ok)
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("NewID returned empty string")
		}
		if seen[id] {
			t.Fatalf("NewID returned duplicate: %s", id)
		}
		seen[id] = true
	}
}
