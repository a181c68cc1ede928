package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenCookie is the cookie name TokenProvider reads when no
// Authorization header is present.
const DefaultTokenCookie = "colloquy_token"

// ErrInvalidToken is returned by Verify for tokens that parse but fail
// validation.
var ErrInvalidToken = errors.New("invalid identity token")

// Claims is the JWT payload carried by TokenProvider tokens.
// The user ID travels in the registered Subject claim.
type Claims struct {
	jwt.RegisteredClaims
	DisplayName string `json:"name"`
	Email       string `json:"email,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// TokenProvider resolves identity from a signed JWT, so no server-side
// session state is required. Suitable for statically published sites where
// an auth service issues the token and the comment renderer only verifies.
type TokenProvider struct {
	secret []byte
	issuer string
	ttl    time.Duration
	cookie string
}

// TokenOption configures a TokenProvider.
type TokenOption func(*TokenProvider)

// WithIssuer sets the iss claim written and required. Default: "colloquy".
func WithIssuer(issuer string) TokenOption {
	return func(p *TokenProvider) {
		p.issuer = issuer
	}
}

// WithTokenTTL sets issued-token lifetime. Default: 24h.
func WithTokenTTL(d time.Duration) TokenOption {
	return func(p *TokenProvider) {
		p.ttl = d
	}
}

// WithTokenCookie sets the cookie name. Default: DefaultTokenCookie.
func WithTokenCookie(name string) TokenOption {
	return func(p *TokenProvider) {
		p.cookie = name
	}
}

// NewTokenProvider creates a JWT identity provider signing with secret.
func NewTokenProvider(secret []byte, opts ...TokenOption) *TokenProvider {
	p := &TokenProvider{
		secret: secret,
		issuer: "colloquy",
		ttl:    24 * time.Hour,
		cookie: DefaultTokenCookie,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Issue signs a token for user.
func (p *TokenProvider) Issue(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Avatar:      user.AvatarURL,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign identity token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user it names.
func (p *TokenProvider) Verify(raw string) (*User, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithIssuer(p.issuer))
	if err != nil {
		return nil, fmt.Errorf("parse identity token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &User{
		ID:          claims.Subject,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		AvatarURL:   claims.Avatar,
	}, nil
}

// Current resolves the signed-in user from a Bearer token or the token
// cookie. Any verification failure means anonymous.
func (p *TokenProvider) Current(r *http.Request) (*User, bool) {
	raw := bearerToken(r)
	if raw == "" {
		if c, err := r.Cookie(p.cookie); err == nil {
			raw = c.Value
		}
	}
	if raw == "" {
		return nil, false
	}

	user, err := p.Verify(raw)
	if err != nil {
		return nil, false
	}
	return user, true
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}
