package colloquy

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/colloquy-dev/colloquy/pkg/avatar"
	"github.com/colloquy-dev/colloquy/pkg/comments"
	"github.com/colloquy-dev/colloquy/pkg/identity"
	"github.com/colloquy-dev/colloquy/pkg/middleware"
	"github.com/colloquy-dev/colloquy/pkg/session"
	"github.com/colloquy-dev/colloquy/pkg/theme"
)

// =============================================================================
// Configuration Types
// =============================================================================

// Config is the main engine configuration.
// This is the user-friendly entry point for configuring the renderer.
type Config struct {
	// Site describes the hosting site (base URL for login/logout/profile
	// links).
	Site SiteConfig

	// Comments configures list rendering behavior.
	Comments CommentsConfig

	// Sessions configures commenter session handling.
	Sessions SessionsConfig

	// Identity overrides session-cookie identity resolution. When set,
	// CurrentUser resolves through it instead of Sessions.Store — for
	// example identity.NewTokenProvider for stateless JWT identity on
	// statically published sites.
	Identity identity.Provider

	// Support, when set, gates the live list layout on the theme
	// declaring theme.FeatureLiveCommentList; Comments.LiveList alone
	// is not enough. Nil leaves the flag solely in charge.
	Support *theme.Support

	// Security configures cookie attributes.
	Security SecurityConfig

	// Middleware wraps every render operation, first entry outermost.
	// Use pkg/middleware's Prometheus and OpenTelemetry, or your own.
	Middleware []middleware.Middleware

	// Avatars resolves avatar images for comment authors and the
	// signed-in notice. If nil, Gravatar is used.
	Avatars avatar.Source

	// Translator localizes emitted labels. If nil, labels pass through
	// unchanged.
	Translator theme.Translator

	// Logger is the structured logger for the engine.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// SiteConfig describes the hosting site.
type SiteConfig struct {
	// BaseURL is the site root, without a trailing slash
	// (e.g. "https://blog.example.com"). Login, logout, and profile
	// links derive from it.
	BaseURL string
}

// CommentsConfig configures comment list rendering.
type CommentsConfig struct {
	// LiveList enables the live-polling list layout. Off renders the
	// plain static list regardless of the other settings.
	LiveList bool

	// Order is the top-level comment sort direction.
	// Default: ascending.
	Order comments.Order

	// Paged enables comment pagination; PerPage is the page size and is
	// meaningful only when Paged is set.
	Paged   bool
	PerPage int

	// Threaded enables nested replies up to MaxDepth levels.
	// Default: threaded, five levels.
	Threaded bool
	MaxDepth int

	// UnpagedCap overrides the item cap advertised on unpaged live
	// lists. Default: comments.DefaultUnpagedCap.
	UnpagedCap int
}

// settings converts the user-facing config to discussion settings.
func (c CommentsConfig) settings() comments.Settings {
	return comments.Settings{
		Order:    c.Order,
		Paged:    c.Paged,
		PerPage:  c.PerPage,
		Threaded: c.Threaded,
		MaxDepth: c.MaxDepth,
	}
}

// SessionsConfig configures commenter sessions.
type SessionsConfig struct {
	// Store is the persistence backend for sessions.
	// If nil, the form renders for anonymous readers only.
	// Use colloquy.NewMemoryStore(), colloquy.NewRedisStore(), or
	// colloquy.NewSQLStore().
	Store SessionStore

	// TTL is the sliding session lifetime. Default: 24 hours.
	TTL time.Duration

	// Cookie is the session cookie name.
	// Default: identity.DefaultCookie.
	Cookie string

	// Users resolves session user IDs to profiles. Required when Store
	// is set.
	Users identity.UserSource
}

// SecurityConfig configures cookie attributes.
type SecurityConfig struct {
	// CookieSecure sets the Secure flag on session cookies.
	// Should be true when using HTTPS.
	// Default: true.
	CookieSecure bool

	// CookieSameSite sets the SameSite attribute for session cookies.
	// Default: http.SameSiteLaxMode.
	CookieSameSite http.SameSite
}

// SessionStore is the interface for session persistence backends.
type SessionStore = session.Store

// =============================================================================
// Default Configurations
// =============================================================================

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Comments: DefaultCommentsConfig(),
		Sessions: DefaultSessionsConfig(),
		Security: SecurityConfig{
			CookieSecure:   true,
			CookieSameSite: http.SameSiteLaxMode,
		},
	}
}

// DefaultCommentsConfig returns a CommentsConfig with sensible defaults.
func DefaultCommentsConfig() CommentsConfig {
	s := comments.DefaultSettings()
	return CommentsConfig{
		Order:    s.Order,
		Paged:    s.Paged,
		PerPage:  s.PerPage,
		Threaded: s.Threaded,
		MaxDepth: s.MaxDepth,
	}
}

// DefaultSessionsConfig returns a SessionsConfig with sensible defaults.
func DefaultSessionsConfig() SessionsConfig {
	return SessionsConfig{
		TTL:    session.DefaultTTL,
		Cookie: identity.DefaultCookie,
	}
}
