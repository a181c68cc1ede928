// Package session provides commenter session persistence for Colloquy.
//
// A session records who is signed in on a page so the comment form can be
// rendered for that person. Sessions are kept server side and referenced by
// an opaque ID carried in a cookie.
//
// # Session Storage
//
// The Store interface defines the contract for session persistence:
//
//	store := session.NewRedisStore(redisClient)
//	// or
//	store := session.NewSQLStore(db)
//	// or (default)
//	store := session.NewMemoryStore()
//
// # Lifecycle
//
// The Manager handles creation, lookup, and expiry on top of a Store:
//
//	sessions := session.NewManager(store, session.WithTTL(24*time.Hour))
//	sess, err := sessions.Create(ctx, "user-1")
//	// Later, on each request...
//	sess, err := sessions.Get(ctx, cookieValue)
package session
