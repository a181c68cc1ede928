package colloquy

import (
	"net/http"
	"testing"
	"time"

	"github.com/colloquy-dev/colloquy/pkg/comments"
	"github.com/colloquy-dev/colloquy/pkg/identity"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Comments.LiveList {
		t.Error("LiveList enabled by default")
	}
	if cfg.Comments.Order != Asc {
		t.Errorf("Order = %q, want %q", cfg.Comments.Order, Asc)
	}
	if cfg.Comments.Paged {
		t.Error("Paged enabled by default")
	}
	if !cfg.Comments.Threaded {
		t.Error("Threaded disabled by default")
	}
	if cfg.Comments.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5", cfg.Comments.MaxDepth)
	}

	if cfg.Sessions.TTL != 24*time.Hour {
		t.Errorf("Sessions.TTL = %v, want 24h", cfg.Sessions.TTL)
	}
	if cfg.Sessions.Cookie != identity.DefaultCookie {
		t.Errorf("Sessions.Cookie = %q, want %q", cfg.Sessions.Cookie, identity.DefaultCookie)
	}

	if !cfg.Security.CookieSecure {
		t.Error("CookieSecure disabled by default")
	}
	if cfg.Security.CookieSameSite != http.SameSiteLaxMode {
		t.Errorf("CookieSameSite = %v, want Lax", cfg.Security.CookieSameSite)
	}
}

func TestCommentsConfigSettings(t *testing.T) {
	cc := CommentsConfig{
		Order:    Desc,
		Paged:    true,
		PerPage:  25,
		Threaded: true,
		MaxDepth: 3,
	}

	got := cc.settings()
	want := comments.Settings{
		Order:    Desc,
		Paged:    true,
		PerPage:  25,
		Threaded: true,
		MaxDepth: 3,
	}
	if got != want {
		t.Errorf("settings() = %+v, want %+v", got, want)
	}
}

func TestDefaultCommentsConfigMatchesSettings(t *testing.T) {
	got := DefaultCommentsConfig().settings()
	if want := comments.DefaultSettings(); got != want {
		t.Errorf("default settings = %+v, want %+v", got, want)
	}
}
