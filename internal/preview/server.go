package preview

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/colloquy-dev/colloquy"
	"github.com/colloquy-dev/colloquy/internal/config"
	"github.com/colloquy-dev/colloquy/internal/errors"
	"github.com/colloquy-dev/colloquy/pkg/comments"
	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/identity"
	"github.com/colloquy-dev/colloquy/pkg/markup"
)

// ServerOptions configures the preview server.
type ServerOptions struct {
	// Config is the loaded project configuration.
	Config *config.Config

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger

	// OnReload is called after browsers are told to reload.
	OnReload func(clients int)
}

// Server serves fixture pages through a real rendering engine.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	engine  *colloquy.Engine
	cleanup func() error

	mu    sync.RWMutex
	pages []*content.Page
	users identity.StaticUsers

	reload   *ReloadServer
	watcher  *Watcher
	onReload func(clients int)

	httpServer *http.Server
}

// NewServer creates a preview server from a project configuration. Missing
// fixture files fall back to the built-in sample content.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "preview")

	s := &Server{
		cfg:      opts.Config,
		logger:   logger,
		reload:   NewReloadServer(),
		onReload: opts.OnReload,
	}

	if err := s.loadFixtures(); err != nil {
		return nil, err
	}

	engine, cleanup, err := BuildEngine(opts.Config, s.userSource(), logger)
	if err != nil {
		return nil, err
	}
	s.engine = engine
	s.cleanup = cleanup

	if opts.Config.Preview.HotReload {
		s.watcher = NewWatcher(WatcherConfig{
			Paths:    opts.Config.WatchPaths(),
			Debounce: 150 * time.Millisecond,
		})
		s.watcher.OnChange(s.handleChange)
	}

	return s, nil
}

// Engine exposes the underlying rendering engine.
func (s *Server) Engine() *colloquy.Engine {
	return s.engine
}

// Handler returns the preview HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/pages/{slug}", s.handlePage)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get(ReloadPath, s.reload.HandleWebSocket)

	return r
}

// Start runs the preview server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.watcher != nil {
		go func() {
			if err := s.watcher.Start(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("fixture watcher stopped", "error", err)
			}
		}()
	}

	s.httpServer = &http.Server{
		Addr:              s.cfg.PreviewAddress(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("preview server started", "url", s.cfg.PreviewURL())

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.New("E142").Wrap(err)
		}
		return nil
	}
}

// Stop shuts the server down and releases the engine.
func (s *Server) Stop() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	s.reload.Close()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}

	return s.cleanup()
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	pages := s.pages
	users := s.users
	s.mu.RUnlock()

	user, _ := s.engine.CurrentUser(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	doc := document("Pages", user, users, "/", indexNode(pages), s.cfg.Preview.HotReload)
	if err := markup.Render(w, doc); err != nil {
		s.logger.Error("index render failed", "error", err)
	}
}

// handlePage streams a fixture page: the shell opens, the engine writes the
// comment list and form straight to the response, then the shell closes.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	s.mu.RLock()
	users := s.users
	page := s.findPage(slug)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if page == nil {
		w.WriteHeader(http.StatusNotFound)
		user, _ := s.engine.CurrentUser(r)
		doc := document("Not found", user, users, r.URL.Path, notFoundNode(slug), s.cfg.Preview.HotReload)
		markup.Render(w, doc)
		return
	}

	user, _ := s.engine.CurrentUser(r)
	path := permalinkFor(page)

	var opts comments.Options
	if p := r.URL.Query().Get("cpage"); p != "" {
		opts = comments.Options{comments.OptPage: p}
	}

	wr := markup.NewWriter(w)
	wr.WriteRaw("<!doctype html>\n")

	htmlNode := markup.Html(markup.Lang("en"))
	wr.OpenTag(htmlNode)
	wr.WriteNode(headNode(page.Title))

	wr.OpenTag(markup.Body())
	wr.WriteNode(siteNav(user, users, path))
	wr.WriteNode(pageHeader(page))

	if err := s.engine.ListComments(r.Context(), w, page, opts); err != nil {
		s.logger.Error("comment list render failed", "slug", slug, "error", err)
	}
	if err := s.engine.CommentForm(r.Context(), w, page, user); err != nil {
		s.logger.Error("comment form render failed", "slug", slug, "error", err)
	}

	if s.cfg.Preview.HotReload {
		wr.WriteRaw(ClientScript)
	}
	wr.CloseTag("body")
	wr.CloseTag("html")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	provider := s.engine.Identity()
	if provider == nil {
		http.Error(w, "sessions are not configured", http.StatusNotFound)
		return
	}

	userID := r.FormValue("user")
	s.mu.RLock()
	_, known := s.users[userID]
	s.mu.RUnlock()
	if !known {
		http.Error(w, "unknown user", http.StatusBadRequest)
		return
	}

	if _, err := provider.Login(w, r, userID); err != nil {
		s.logger.Error("login failed", "user_id", userID, "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	provider := s.engine.Identity()
	if provider == nil {
		http.Error(w, "sessions are not configured", http.StatusNotFound)
		return
	}

	if err := provider.Logout(w, r); err != nil {
		s.logger.Error("logout failed", "error", err)
	}
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

// redirectTarget returns a safe local redirect destination. Targets must
// be absolute paths; protocol-relative forms like //host or /\host would
// leave the site.
func redirectTarget(r *http.Request) string {
	to := r.FormValue("redirect_to")
	if to == "" || to[0] != '/' {
		return "/"
	}
	if len(to) > 1 && (to[1] == '/' || to[1] == '\\') {
		return "/"
	}
	return to
}

// =============================================================================
// Fixtures
// =============================================================================

// loadFixtures reads the pages and users files, falling back to samples.
func (s *Server) loadFixtures() error {
	pages := SamplePages()
	if path := s.cfg.PagesPath(); path != "" {
		if loaded, err := LoadPages(path); err == nil {
			pages = loaded
		} else {
			s.logger.Warn("pages fixture not loaded, using samples", "path", path, "error", err)
		}
	}

	users := SampleUsers()
	if path := s.cfg.UsersPath(); path != "" {
		loaded, err := LoadUsers(path)
		if err != nil {
			return err
		}
		users = loaded
	}

	s.mu.Lock()
	s.pages = pages
	s.users = users
	s.mu.Unlock()
	return nil
}

// userSource resolves users against the currently loaded fixtures, so a
// users.json edit takes effect without restarting.
func (s *Server) userSource() identity.UserSource {
	return userSourceFunc(func(ctx context.Context, id string) (*identity.User, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.users[id], nil
	})
}

type userSourceFunc func(ctx context.Context, id string) (*identity.User, error)

func (f userSourceFunc) ByID(ctx context.Context, id string) (*identity.User, error) {
	return f(ctx, id)
}

// findPage returns the page with the given slug. Caller holds s.mu.
func (s *Server) findPage(slug string) *content.Page {
	for _, p := range s.pages {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

// handleChange reloads fixtures and notifies browsers.
func (s *Server) handleChange(c Change) {
	s.logger.Info("fixture changed", "path", c.Path)

	if err := s.loadFixtures(); err != nil {
		s.reload.NotifyError(err.Error())
		return
	}
	s.reload.ClearError()
	s.reload.NotifyReload()

	if s.onReload != nil {
		s.onReload(s.reload.ClientCount())
	}
}
