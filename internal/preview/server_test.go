package preview

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/colloquy-dev/colloquy/internal/config"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, *httptest.Server) {
	t.Helper()

	cfg := config.New()
	if mutate != nil {
		mutate(cfg)
	}

	s, err := NewServer(ServerOptions{Config: cfg})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { s.Stop() })

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func get(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIndexListsSamplePages(t *testing.T) {
	_, srv := newTestServer(t, nil)

	status, body := get(t, srv.Client(), srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "Hello World") {
		t.Errorf("index missing sample page title: %s", body)
	}
	if !strings.Contains(body, "/pages/hello-world") {
		t.Errorf("index missing page link")
	}
}

func TestPageRendersStaticList(t *testing.T) {
	_, srv := newTestServer(t, nil)

	status, body := get(t, srv.Client(), srv.URL+"/pages/hello-world")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, `<ol class="comment-list">`) {
		t.Errorf("missing static comment list: %s", body)
	}
	if strings.Contains(body, "amp-live-list") {
		t.Errorf("static page should not carry a live list")
	}
	if !strings.Contains(body, "comment-form") && !strings.Contains(body, "respond") {
		t.Errorf("missing comment form section")
	}
}

func TestPageRendersLiveList(t *testing.T) {
	_, srv := newTestServer(t, func(c *config.Config) {
		c.Comments.LiveList = true
	})

	status, body := get(t, srv.Client(), srv.URL+"/pages/hello-world")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "<amp-live-list") {
		t.Fatalf("missing live list container: %s", body)
	}
	if !strings.Contains(body, `data-poll-interval="60000"`) {
		t.Errorf("missing poll interval attribute")
	}
	if !strings.Contains(body, `data-max-items-per-page="10000"`) {
		t.Errorf("unpaged live list should advertise the default cap")
	}
}

func TestPageNotFound(t *testing.T) {
	_, srv := newTestServer(t, nil)

	status, body := get(t, srv.Client(), srv.URL+"/pages/no-such-page")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if !strings.Contains(body, "Page not found") {
		t.Errorf("missing not-found body")
	}
}

func TestHotReloadScriptInjection(t *testing.T) {
	_, srv := newTestServer(t, nil)
	_, body := get(t, srv.Client(), srv.URL+"/pages/hello-world")
	if !strings.Contains(body, ReloadPath) {
		t.Errorf("hot reload script missing")
	}

	_, srvOff := newTestServer(t, func(c *config.Config) {
		c.Preview.HotReload = false
	})
	_, body = get(t, srvOff.Client(), srvOff.URL+"/pages/hello-world")
	if strings.Contains(body, ReloadPath) {
		t.Errorf("hot reload script should be absent when disabled")
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	_, srv := newTestServer(t, nil)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{Jar: jar, Transport: srv.Client().Transport}

	// Anonymous page shows the sign-in control.
	_, body := get(t, client, srv.URL+"/pages/hello-world")
	if !strings.Contains(body, "Sign In") {
		t.Fatalf("anonymous page missing sign-in control")
	}

	// Login follows the redirect back to the page.
	resp, err := client.PostForm(srv.URL+"/login", url.Values{
		"user":        {"u1"},
		"redirect_to": {"/pages/hello-world"},
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	loggedIn, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post-login status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(loggedIn), "Signed in as Ana Admin") {
		t.Errorf("page missing signed-in state: %s", loggedIn)
	}
	// The comment form switches to the logged-in notice.
	if !strings.Contains(string(loggedIn), "logged-in-as") {
		t.Errorf("comment form missing logged-in notice")
	}

	// Logout returns to anonymous.
	_, body = get(t, client, srv.URL+"/logout?redirect_to=/pages/hello-world")
	if !strings.Contains(body, "Sign In") {
		t.Errorf("page should show sign-in control after logout")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	_, srv := newTestServer(t, nil)

	resp, err := srv.Client().PostForm(srv.URL+"/login", url.Values{"user": {"ghost"}})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, srv := newTestServer(t, nil)

	status, body := get(t, srv.Client(), srv.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Errorf("metrics output looks wrong")
	}
}

func TestRedirectTargetRejectsOffsite(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/pages/hello-world", "/pages/hello-world"},
		{"https://evil.example.com", "/"},
		{"//evil.example.com", "/"},
		{"/\\evil.example.com", "/"},
		{"/", "/"},
		{"", "/"},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/logout?redirect_to="+url.QueryEscape(tt.in), nil)
		if got := redirectTarget(r); got != tt.want {
			t.Errorf("redirectTarget(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildEngineSQLite(t *testing.T) {
	cfg := config.New()
	cfg.Sessions.Store = config.StoreSQLite
	cfg.Sessions.DSN = t.TempDir() + "/sessions.db"

	engine, cleanup, err := BuildEngine(cfg, SampleUsers(), nil)
	if err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}
	defer cleanup()

	if engine.Identity() == nil {
		t.Error("sqlite-backed engine should have an identity provider")
	}
}

func TestBuildEngineRedisUnsupported(t *testing.T) {
	cfg := config.New()
	cfg.Sessions.Store = config.StoreRedis
	cfg.Sessions.DSN = "localhost:6379"

	_, _, err := BuildEngine(cfg, SampleUsers(), nil)
	if err == nil {
		t.Fatal("expected error for redis store in preview")
	}
	if !strings.Contains(err.Error(), "E080") {
		t.Errorf("error should carry code E080: %v", err)
	}
}
