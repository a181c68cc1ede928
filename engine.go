package colloquy

import (
	"context"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/colloquy-dev/colloquy/pkg/comments"
	"github.com/colloquy-dev/colloquy/pkg/content"
	"github.com/colloquy-dev/colloquy/pkg/form"
	"github.com/colloquy-dev/colloquy/pkg/identity"
	"github.com/colloquy-dev/colloquy/pkg/middleware"
	"github.com/colloquy-dev/colloquy/pkg/publish"
	"github.com/colloquy-dev/colloquy/pkg/session"
	"github.com/colloquy-dev/colloquy/pkg/theme"
)

// Engine renders comment lists and comment forms for one site.
//
// An Engine owns its filter registry, its session manager when sessions are
// configured, and the middleware chain every render operation runs through.
// Engines are safe for concurrent use.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	hooks    *theme.Hooks
	site     identity.Site
	renderer *comments.ListRenderer
	builder  *form.Builder

	notice       *form.LoggedIn
	removeNotice func()

	sessions *session.Manager
	provider *identity.SessionProvider
	ident    identity.Provider

	mw []middleware.Middleware
}

// New creates an engine from cfg. Zero-value config fields fall back to the
// DefaultConfig values; a nil Sessions.Store leaves session handling off and
// every reader anonymous.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	site := identity.Site{BaseURL: cfg.Site.BaseURL}
	hooks := theme.NewHooks()

	notice := form.NewLoggedIn(site)
	if cfg.Avatars != nil {
		notice.Avatars = cfg.Avatars
	}
	if cfg.Translator != nil {
		notice.Translator = cfg.Translator
	}
	removeNotice := notice.Register(hooks)

	walker := comments.NewWalker()
	if cfg.Avatars != nil {
		walker.Avatars = cfg.Avatars
	}
	if cfg.Translator != nil {
		walker.Translator = cfg.Translator
	}

	renderer := comments.NewListRenderer(comments.ListConfig{
		LiveList:   cfg.Comments.LiveList,
		Support:    cfg.Support,
		Settings:   cfg.Comments.settings(),
		UnpagedCap: cfg.Comments.UnpagedCap,
		Formatter:  walker,
		Hooks:      hooks,
		Translator: cfg.Translator,
		Logger:     logger,
	})

	formOpts := []form.BuilderOption{
		form.WithHooks(hooks),
		form.WithNotice(notice),
	}
	if cfg.Translator != nil {
		formOpts = append(formOpts, form.WithTranslator(cfg.Translator))
	}
	builder := form.NewBuilder(site, formOpts...)

	e := &Engine{
		cfg:          cfg,
		logger:       logger.With("component", "colloquy"),
		hooks:        hooks,
		site:         site,
		renderer:     renderer,
		builder:      builder,
		notice:       notice,
		removeNotice: removeNotice,
		mw:           cfg.Middleware,
	}

	if cfg.Sessions.Store != nil {
		ttl := cfg.Sessions.TTL
		if ttl <= 0 {
			ttl = session.DefaultTTL
		}
		e.sessions = session.NewManager(cfg.Sessions.Store,
			session.WithTTL(ttl),
			session.WithLogger(logger),
		)

		provOpts := []identity.SessionProviderOption{identity.WithLogger(logger)}
		if cfg.Sessions.Cookie != "" {
			provOpts = append(provOpts, identity.WithCookie(cfg.Sessions.Cookie))
		}
		if cfg.Security.CookieSecure {
			provOpts = append(provOpts, identity.WithSecureCookies())
		}
		if cfg.Security.CookieSameSite != 0 {
			provOpts = append(provOpts, identity.WithSameSite(cfg.Security.CookieSameSite))
		}
		e.provider = identity.NewSessionProvider(e.sessions, cfg.Sessions.Users, provOpts...)
	}

	e.ident = cfg.Identity
	if e.ident == nil && e.provider != nil {
		e.ident = e.provider
	}

	return e
}

// liveEnabled is the effective live-list capability flag: the config flag,
// additionally requiring the declared theme feature when a support
// registry is configured.
func (e *Engine) liveEnabled() bool {
	if e.cfg.Support != nil && !e.cfg.Support.Supports(theme.FeatureLiveCommentList) {
		return false
	}
	return e.cfg.Comments.LiveList
}

// =============================================================================
// Render operations
// =============================================================================

// ListComments writes the comment list markup for page to w.
//
// The list layout follows the engine's live-list flag and discussion
// settings; opts overrides the per-render option defaults. The render runs
// through the configured middleware chain.
func (e *Engine) ListComments(ctx context.Context, w io.Writer, page *Page, opts Options) error {
	mode := comments.ResolveMode(e.liveEnabled(), e.cfg.Comments.settings(), e.cfg.Comments.UnpagedCap)

	rd := &middleware.Render{
		Op:   middleware.OpList,
		Mode: mode.String(),
	}
	if page != nil {
		rd.Page = page.Slug
	}

	return middleware.Compose(ctx, e.mw, rd, func(ctx context.Context) error {
		if err := e.renderer.Render(ctx, w, page, opts); err != nil {
			return err
		}
		rd.Comments = content.Total(page.Comments)
		return nil
	})
}

// CommentForm writes the comment submission form for page to w. A nil user
// renders the signed-out form; a signed-in user gets the logged-in notice in
// place of the guest identity fields. The render runs through the configured
// middleware chain.
func (e *Engine) CommentForm(ctx context.Context, w io.Writer, page *Page, user *User) error {
	rd := &middleware.Render{Op: middleware.OpForm}
	if page != nil {
		rd.Page = page.Slug
	}
	if user != nil {
		rd.User = user.ID
	}

	return middleware.Compose(ctx, e.mw, rd, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return e.builder.Render(w, page, user)
	})
}

// RenderPage writes the full comment section for page: the list followed by
// the signed-out form. The signature matches publish.RenderFunc, so an
// engine plugs straight into a Publisher.
func (e *Engine) RenderPage(ctx context.Context, page *content.Page, w io.Writer) error {
	if err := e.ListComments(ctx, w, page, nil); err != nil {
		return err
	}
	return e.CommentForm(ctx, w, page, nil)
}

// CurrentUser resolves the signed-in reader: through the configured
// Identity provider when one is set, else the session cookie. With
// neither, every request is anonymous.
func (e *Engine) CurrentUser(r *http.Request) (*User, bool) {
	if e.ident == nil {
		return nil, false
	}
	return e.ident.Current(r)
}

// Publish renders every page through RenderPage and writes the results to
// store. It returns the number of pages written; on error that count covers
// the pages that completed before the failure.
func (e *Engine) Publish(ctx context.Context, store publish.Store, pages []*Page) (int, error) {
	pub := publish.NewPublisher(store, e.RenderPage, publish.WithLogger(e.logger))

	n, err := pub.Publish(ctx, pages)
	if n > 0 {
		middleware.RecordPagesPublished(n)
	}
	if err != nil {
		middleware.RecordPublishError()
	}
	return n, err
}

// TemplateFuncs returns helpers for html/template layouts:
//
//	{{ comment_list .Page }}
//	{{ comment_form .Page }}
//	{{ comment_form .Page .User }}
//
// Both return rendered markup as template.HTML.
func (e *Engine) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"comment_list": func(page *Page) (template.HTML, error) {
			var b strings.Builder
			if err := e.ListComments(context.Background(), &b, page, nil); err != nil {
				return "", err
			}
			return template.HTML(b.String()), nil
		},
		"comment_form": func(page *Page, user ...*User) (template.HTML, error) {
			var u *User
			if len(user) > 0 {
				u = user[0]
			}
			var b strings.Builder
			if err := e.CommentForm(context.Background(), &b, page, u); err != nil {
				return "", err
			}
			return template.HTML(b.String()), nil
		},
	}
}

// =============================================================================
// Accessors
// =============================================================================

// Hooks returns the engine's filter registry for host theme filters.
func (e *Engine) Hooks() *Hooks {
	return e.hooks
}

// Sessions returns the session manager, or nil when no store is configured.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Identity returns the session-cookie identity provider, or nil when no
// store is configured. Hosts use it to implement login and logout handlers.
func (e *Engine) Identity() *identity.SessionProvider {
	return e.provider
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Close releases the engine's filter registrations and closes the session
// store when one is configured.
func (e *Engine) Close() error {
	e.removeNotice()
	if e.sessions != nil {
		return e.sessions.Close()
	}
	return nil
}
