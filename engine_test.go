package colloquy

import (
	"context"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/colloquy-dev/colloquy/pkg/comments"
	"github.com/colloquy-dev/colloquy/pkg/identity"
	"github.com/colloquy-dev/colloquy/pkg/middleware"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Site.BaseURL = "https://blog.example.test"
	cfg.Logger = quietLogger()
	return cfg
}

func testEnginePage() *Page {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &Page{
		ID:        7,
		Slug:      "hello-world",
		Title:     "Hello World",
		Permalink: "https://blog.example.test/p/hello-world/",
		Comments: []*Comment{
			{
				ID:        1,
				Author:    Author{Name: "Ada", Email: "ada@example.test"},
				Content:   "<p>First!</p>",
				CreatedAt: base,
				Children: []*Comment{
					{
						ID:        3,
						ParentID:  1,
						Author:    Author{Name: "Grace", Email: "grace@example.test"},
						Content:   "<p>Welcome aboard.</p>",
						CreatedAt: base.Add(time.Hour),
					},
				},
			},
			{
				ID:        2,
				Author:    Author{Name: "Linus", Email: "linus@example.test"},
				Content:   "<p>Second.</p>",
				CreatedAt: base.Add(30 * time.Minute),
			},
		},
	}
}

func testEngineUser() *User {
	return &User{
		ID:          "u-1",
		DisplayName: "Ada Lovelace",
		Email:       "ada@example.test",
	}
}

func TestNew_Defaults(t *testing.T) {
	e := New(testConfig())
	defer e.Close()

	if e.Hooks() == nil {
		t.Error("Hooks() = nil, want registry")
	}
	if e.Sessions() != nil {
		t.Error("Sessions() != nil without a store")
	}
	if e.Identity() != nil {
		t.Error("Identity() != nil without a store")
	}

	r := httptest.NewRequest(http.MethodGet, "/p/hello-world/", nil)
	if user, ok := e.CurrentUser(r); ok || user != nil {
		t.Errorf("CurrentUser() = %v, %v, want nil, false", user, ok)
	}
}

func TestEngine_ListCommentsStatic(t *testing.T) {
	e := New(testConfig())
	defer e.Close()

	var b strings.Builder
	if err := e.ListComments(context.Background(), &b, testEnginePage(), nil); err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	html := b.String()

	if got := strings.Count(html, `<ol class="comment-list">`); got != 1 {
		t.Errorf("comment-list count = %d, want 1", got)
	}
	if strings.Contains(html, "amp-live-list") {
		t.Error("static render contains live-list container")
	}
	for _, name := range []string{"Ada", "Grace", "Linus"} {
		if !strings.Contains(html, name) {
			t.Errorf("output missing author %q", name)
		}
	}
	if !strings.Contains(html, "<p>First!</p>") {
		t.Error("output missing comment content")
	}
}

func TestEngine_ListCommentsLive(t *testing.T) {
	cfg := testConfig()
	cfg.Comments.LiveList = true
	e := New(cfg)
	defer e.Close()

	var b strings.Builder
	if err := e.ListComments(context.Background(), &b, testEnginePage(), nil); err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	html := b.String()

	wantOpen := `<amp-live-list id="live-comment-list-7" sort="ascending" data-poll-interval="60000" data-max-items-per-page="10000">`
	if !strings.Contains(html, wantOpen) {
		t.Errorf("output missing live container %q\ngot: %s", wantOpen, html)
	}
	if got := strings.Count(html, `<ol class="comment-list" items>`); got != 1 {
		t.Errorf("items list count = %d, want 1", got)
	}
	if !strings.Contains(html, `on="tap:live-comment-list-7.update"`) {
		t.Error("output missing update control binding")
	}
	if !strings.Contains(html, ">New comment(s)</button>") {
		t.Error("output missing update control label")
	}
	if !strings.HasSuffix(html, "</amp-live-list>") {
		t.Errorf("output does not close live container: %s", html[len(html)-60:])
	}
}

func TestEngine_ListCommentsLivePaged(t *testing.T) {
	cfg := testConfig()
	cfg.Comments.LiveList = true
	cfg.Comments.Paged = true
	cfg.Comments.PerPage = 20
	e := New(cfg)
	defer e.Close()

	var b strings.Builder
	if err := e.ListComments(context.Background(), &b, testEnginePage(), nil); err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}

	if !strings.Contains(b.String(), `data-max-items-per-page="20"`) {
		t.Errorf("paged live list did not advertise page size:\n%s", b.String())
	}
}

func TestEngine_ThemeSupportGatesLive(t *testing.T) {
	cfg := testConfig()
	cfg.Comments.LiveList = true
	cfg.Support = NewSupport()
	e := New(cfg)
	defer e.Close()

	var b strings.Builder
	if err := e.ListComments(context.Background(), &b, testEnginePage(), nil); err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if strings.Contains(b.String(), "amp-live-list") {
		t.Error("live layout rendered without the declared theme feature")
	}

	cfg.Support.Add(FeatureLiveCommentList)
	b.Reset()
	if err := e.ListComments(context.Background(), &b, testEnginePage(), nil); err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if !strings.Contains(b.String(), "<amp-live-list") {
		t.Error("live layout missing after the theme declared the feature")
	}
}

func TestEngine_ListCommentsNilPage(t *testing.T) {
	e := New(testConfig())
	defer e.Close()

	err := e.ListComments(context.Background(), &strings.Builder{}, nil, nil)
	if err != comments.ErrNilPage {
		t.Errorf("ListComments(nil page) = %v, want %v", err, comments.ErrNilPage)
	}
}

func TestEngine_CommentForm(t *testing.T) {
	e := New(testConfig())
	defer e.Close()

	t.Run("anonymous", func(t *testing.T) {
		var b strings.Builder
		if err := e.CommentForm(context.Background(), &b, testEnginePage(), nil); err != nil {
			t.Fatalf("CommentForm failed: %v", err)
		}
		html := b.String()

		for _, field := range []string{`name="author"`, `name="email"`, `name="url"`, `name="comment"`} {
			if !strings.Contains(html, field) {
				t.Errorf("anonymous form missing %s", field)
			}
		}
		if strings.Contains(html, "logged-in-as") {
			t.Error("anonymous form contains signed-in notice")
		}
	})

	t.Run("signed in", func(t *testing.T) {
		var b strings.Builder
		if err := e.CommentForm(context.Background(), &b, testEnginePage(), testEngineUser()); err != nil {
			t.Fatalf("CommentForm failed: %v", err)
		}
		html := b.String()

		if !strings.Contains(html, `class="logged-in-as"`) {
			t.Error("signed-in form missing notice")
		}
		if !strings.Contains(html, `class="comment-logout-link"`) {
			t.Error("signed-in form missing logout link")
		}
		if !strings.Contains(html, "redirect_to=https%3A%2F%2Fblog.example.test%2Fp%2Fhello-world%2F") {
			t.Error("logout link missing page redirect")
		}
		if strings.Contains(html, `name="author"`) {
			t.Error("signed-in form renders guest identity fields")
		}
		if !strings.Contains(html, `name="comment"`) {
			t.Error("signed-in form missing comment field")
		}
	})
}

func TestEngine_RenderPage(t *testing.T) {
	e := New(testConfig())
	defer e.Close()

	var b strings.Builder
	if err := e.RenderPage(context.Background(), testEnginePage(), &b); err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	html := b.String()

	list := strings.Index(html, `<ol class="comment-list">`)
	form := strings.Index(html, `<section id="respond"`)
	if list < 0 || form < 0 {
		t.Fatalf("output missing list (%d) or form (%d)", list, form)
	}
	if form < list {
		t.Error("form rendered before comment list")
	}
}

type recordingMiddleware struct {
	name string
	log  *[]string
}

func (m recordingMiddleware) Handle(ctx context.Context, r *middleware.Render, next middleware.Next) error {
	*m.log = append(*m.log, m.name+":"+r.Op+":"+r.Mode+":"+r.Page)
	err := next(ctx)
	*m.log = append(*m.log, m.name+":after:"+strconv.Itoa(r.Comments))
	return err
}

func TestEngine_MiddlewareChain(t *testing.T) {
	var log []string
	cfg := testConfig()
	cfg.Comments.LiveList = true
	cfg.Middleware = []middleware.Middleware{
		recordingMiddleware{name: "outer", log: &log},
		recordingMiddleware{name: "inner", log: &log},
	}
	e := New(cfg)
	defer e.Close()

	if err := e.ListComments(context.Background(), &strings.Builder{}, testEnginePage(), nil); err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}

	want := []string{
		"outer:comment_list:live:hello-world",
		"inner:comment_list:live:hello-world",
		"inner:after:3",
		"outer:after:3",
	}
	if len(log) != len(want) {
		t.Fatalf("middleware log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}

	log = log[:0]
	if err := e.CommentForm(context.Background(), &strings.Builder{}, testEnginePage(), testEngineUser()); err != nil {
		t.Fatalf("CommentForm failed: %v", err)
	}
	if len(log) == 0 || log[0] != "outer:comment_form::hello-world" {
		t.Errorf("form log = %v, want first entry %q", log, "outer:comment_form::hello-world")
	}
}

func TestEngine_SessionFlow(t *testing.T) {
	cfg := testConfig()
	cfg.Sessions.Store = NewMemoryStore()
	cfg.Sessions.Users = StaticUsers{
		"u-1": {ID: "u-1", DisplayName: "Ada Lovelace", Email: "ada@example.test"},
	}
	e := New(cfg)
	defer e.Close()

	if e.Sessions() == nil || e.Identity() == nil {
		t.Fatal("session manager or identity provider not configured")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	sess, err := e.Identity().Login(rec, req, "u-1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.UserID != "u-1" {
		t.Errorf("session user = %q, want %q", sess.UserID, "u-1")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Login set %d cookies, want 1", len(cookies))
	}

	authed := httptest.NewRequest(http.MethodGet, "/p/hello-world/", nil)
	authed.AddCookie(cookies[0])
	user, ok := e.CurrentUser(authed)
	if !ok || user == nil {
		t.Fatal("CurrentUser did not resolve the session")
	}
	if user.DisplayName != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, want %q", user.DisplayName, "Ada Lovelace")
	}

	logoutRec := httptest.NewRecorder()
	if err := e.Identity().Logout(logoutRec, authed); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if user, ok := e.CurrentUser(authed); ok || user != nil {
		t.Error("CurrentUser still resolves after logout")
	}
}

func TestEngine_TokenIdentity(t *testing.T) {
	provider := identity.NewTokenProvider([]byte("test-secret"))

	cfg := testConfig()
	cfg.Identity = provider
	e := New(cfg)
	defer e.Close()

	if e.Sessions() != nil {
		t.Error("Sessions() != nil without a store")
	}

	token, err := provider.Issue(testEngineUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/p/hello-world/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	user, ok := e.CurrentUser(req)
	if !ok || user == nil {
		t.Fatal("CurrentUser did not resolve the token")
	}
	if user.ID != "u-1" || user.DisplayName != "Ada Lovelace" {
		t.Errorf("CurrentUser = %+v, want u-1 / Ada Lovelace", user)
	}

	anon := httptest.NewRequest(http.MethodGet, "/p/hello-world/", nil)
	if user, ok := e.CurrentUser(anon); ok || user != nil {
		t.Errorf("CurrentUser without a token = %v, %v, want nil, false", user, ok)
	}
}

func TestEngine_Publish(t *testing.T) {
	e := New(testConfig())
	defer e.Close()

	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	pages := []*Page{
		testEnginePage(),
		{ID: 8, Slug: "second-post", Permalink: "https://blog.example.test/p/second-post/"},
	}

	n, err := e.Publish(context.Background(), store, pages)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if n != 2 {
		t.Errorf("published %d pages, want 2", n)
	}

	data, err := os.ReadFile(filepath.Join(dir, "hello-world", "comments.html"))
	if err != nil {
		t.Fatalf("reading published page failed: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, `<ol class="comment-list">`) {
		t.Error("published page missing comment list")
	}
	if !strings.Contains(html, `<section id="respond"`) {
		t.Error("published page missing comment form")
	}

	if _, err := os.Stat(filepath.Join(dir, "second-post", "comments.html")); err != nil {
		t.Errorf("second page not published: %v", err)
	}
}

func TestEngine_TemplateFuncs(t *testing.T) {
	e := New(testConfig())
	defer e.Close()

	tmpl := template.Must(template.New("page").
		Funcs(e.TemplateFuncs()).
		Parse(`<main>{{ comment_list .Page }}{{ comment_form .Page .User }}</main>`))

	data := struct {
		Page *Page
		User *User
	}{Page: testEnginePage(), User: testEngineUser()}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	html := b.String()

	if !strings.Contains(html, `<ol class="comment-list">`) {
		t.Error("template output missing comment list")
	}
	if strings.Contains(html, "&lt;ol") {
		t.Error("markup was escaped by the template engine")
	}
	if !strings.Contains(html, `class="logged-in-as"`) {
		t.Error("template output missing signed-in notice")
	}

	t.Run("form without user", func(t *testing.T) {
		anon := template.Must(template.New("anon").
			Funcs(e.TemplateFuncs()).
			Parse(`{{ comment_form .Page }}`))

		var b strings.Builder
		if err := anon.Execute(&b, data); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if !strings.Contains(b.String(), `name="author"`) {
			t.Error("anonymous template form missing guest fields")
		}
	})
}

func TestEngine_Close(t *testing.T) {
	e := New(testConfig())

	var before strings.Builder
	if err := e.CommentForm(context.Background(), &before, testEnginePage(), testEngineUser()); err != nil {
		t.Fatalf("CommentForm failed: %v", err)
	}
	if !strings.Contains(before.String(), "comment-logout-link") {
		t.Fatal("notice decoration missing before Close")
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var after strings.Builder
	if err := e.CommentForm(context.Background(), &after, testEnginePage(), testEngineUser()); err != nil {
		t.Fatalf("CommentForm failed: %v", err)
	}
	if strings.Contains(after.String(), "comment-logout-link") {
		t.Error("notice decoration still applied after Close")
	}
	if !strings.Contains(after.String(), "Logged in as") {
		t.Error("stock notice missing after Close")
	}
}
