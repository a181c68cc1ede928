package identity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/colloquy-dev/colloquy/pkg/session"
)

// DefaultCookie is the session cookie name.
const DefaultCookie = "colloquy_session"

// UserSource looks up users by ID. Session payloads stay slim: they carry
// the user ID and the profile is fetched fresh per request.
type UserSource interface {
	// ByID returns the user, or (nil, nil) if no such user exists.
	ByID(ctx context.Context, id string) (*User, error)
}

// StaticUsers is a fixed in-memory UserSource, used for fixtures and the
// preview server.
type StaticUsers map[string]*User

func (u StaticUsers) ByID(ctx context.Context, id string) (*User, error) {
	return u[id], nil
}

// SessionProvider resolves identity from a session cookie backed by a
// session.Manager.
type SessionProvider struct {
	sessions *session.Manager
	users    UserSource
	cookie   string
	secure   bool
	sameSite http.SameSite
	logger   *slog.Logger
}

// SessionProviderOption configures a SessionProvider.
type SessionProviderOption func(*SessionProvider)

// WithCookie sets the session cookie name. Default: DefaultCookie.
func WithCookie(name string) SessionProviderOption {
	return func(p *SessionProvider) {
		p.cookie = name
	}
}

// WithSecureCookies marks issued cookies Secure. Enable whenever the site
// is served over HTTPS.
func WithSecureCookies() SessionProviderOption {
	return func(p *SessionProvider) {
		p.secure = true
	}
}

// WithSameSite sets the SameSite attribute on issued cookies.
// Default: http.SameSiteLaxMode.
func WithSameSite(mode http.SameSite) SessionProviderOption {
	return func(p *SessionProvider) {
		p.sameSite = mode
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) SessionProviderOption {
	return func(p *SessionProvider) {
		p.logger = l
	}
}

// NewSessionProvider creates a session-cookie identity provider.
func NewSessionProvider(sessions *session.Manager, users UserSource, opts ...SessionProviderOption) *SessionProvider {
	p := &SessionProvider{
		sessions: sessions,
		users:    users,
		cookie:   DefaultCookie,
		sameSite: http.SameSiteLaxMode,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "identity")
	return p
}

// Current resolves the signed-in user from the request's session cookie.
// Missing cookie, unknown session, or unknown user all mean anonymous.
func (p *SessionProvider) Current(r *http.Request) (*User, bool) {
	c, err := r.Cookie(p.cookie)
	if err != nil || c.Value == "" {
		return nil, false
	}

	sess, err := p.sessions.Get(r.Context(), c.Value)
	if err != nil {
		var nf session.NotFoundError
		if !errors.As(err, &nf) {
			p.logger.Warn("session lookup failed", "error", err)
		}
		return nil, false
	}
	if sess.UserID == "" {
		return nil, false
	}

	user, err := p.users.ByID(r.Context(), sess.UserID)
	if err != nil {
		p.logger.Warn("user lookup failed", "user_id", sess.UserID, "error", err)
		return nil, false
	}
	if user == nil {
		return nil, false
	}
	return user, true
}

// Login starts a session for userID and sets the session cookie.
func (p *SessionProvider) Login(w http.ResponseWriter, r *http.Request, userID string) (*session.Session, error) {
	sess, err := p.sessions.Create(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, p.newCookie(sess.ID, p.sessions.TTL()))
	return sess, nil
}

// Logout destroys the request's session and expires the cookie.
// Logging out an anonymous request is a no-op.
func (p *SessionProvider) Logout(w http.ResponseWriter, r *http.Request) error {
	if c, err := r.Cookie(p.cookie); err == nil && c.Value != "" {
		if err := p.sessions.Destroy(r.Context(), c.Value); err != nil {
			return err
		}
	}
	http.SetCookie(w, p.expiredCookie())
	return nil
}

// CookieName returns the configured cookie name.
func (p *SessionProvider) CookieName() string {
	return p.cookie
}

func (p *SessionProvider) newCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     p.cookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: p.sameSite,
		Secure:   p.secure,
	}
}

func (p *SessionProvider) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     p.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: p.sameSite,
		Secure:   p.secure,
	}
}
