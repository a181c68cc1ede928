package identity

import (
	"net/http"
	"net/url"
	"strings"
)

// User is the signed-in reader as rendering sees it.
// Intentionally minimal; authorization is out of scope here.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Provider resolves the signed-in user for a request.
// Implementations return (nil, false) for anonymous requests and must
// never error the request; an unverifiable identity is anonymous.
type Provider interface {
	Current(r *http.Request) (*User, bool)
}

// Anonymous is a Provider that treats every request as signed out.
type Anonymous struct{}

func (Anonymous) Current(*http.Request) (*User, bool) { return nil, false }

// Site builds account URLs rooted at a site's base URL.
type Site struct {
	// BaseURL is the site root, e.g. "https://blog.example.com".
	BaseURL string
}

// LoginURL returns the sign-in address. A non-empty redirectTo is carried
// in the query so the reader returns to the page they came from.
func (s Site) LoginURL(redirectTo string) string {
	return s.withRedirect("/login", redirectTo)
}

// LogoutURL returns the sign-out address, with the same redirect handling
// as LoginURL.
func (s Site) LogoutURL(redirectTo string) string {
	return s.withRedirect("/logout", redirectTo)
}

// ProfileURL returns the address of the account profile editor.
func (s Site) ProfileURL() string {
	return s.join("/account")
}

func (s Site) join(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + path
}

func (s Site) withRedirect(path, redirectTo string) string {
	u := s.join(path)
	if redirectTo == "" {
		return u
	}
	q := url.Values{"redirect_to": {redirectTo}}
	return u + "?" + q.Encode()
}
