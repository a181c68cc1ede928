package preview

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/colloquy-dev/colloquy"
	"github.com/colloquy-dev/colloquy/internal/config"
	"github.com/colloquy-dev/colloquy/internal/errors"
	"github.com/colloquy-dev/colloquy/pkg/comments"
	"github.com/colloquy-dev/colloquy/pkg/identity"
	"github.com/colloquy-dev/colloquy/pkg/middleware"
	"github.com/colloquy-dev/colloquy/pkg/session"
)

// BuildEngine constructs a rendering engine from a project configuration.
//
// The returned cleanup closes the engine and any database handle the
// session store was opened on. The preview server supports the memory and
// sqlite session stores; redis requires a host-provided client and is only
// available through the library API.
func BuildEngine(cfg *config.Config, users identity.UserSource, logger *slog.Logger) (*colloquy.Engine, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ecfg := colloquy.DefaultConfig()
	ecfg.Site.BaseURL = cfg.Site.BaseURL
	ecfg.Comments = colloquy.CommentsConfig{
		LiveList:   cfg.Comments.LiveList,
		Order:      comments.Order(cfg.Comments.Order),
		Paged:      cfg.Comments.Paged,
		PerPage:    cfg.Comments.PerPage,
		Threaded:   cfg.Comments.Threaded,
		MaxDepth:   cfg.Comments.MaxDepth,
		UnpagedCap: cfg.Comments.UnpagedCap,
	}
	// Preview serves plain HTTP; Secure cookies would never come back.
	ecfg.Security.CookieSecure = false
	ecfg.Middleware = []middleware.Middleware{
		middleware.Prometheus(),
		middleware.OpenTelemetry(),
	}
	ecfg.Logger = logger

	ttl, err := cfg.SessionTTL()
	if err != nil {
		return nil, nil, errors.New("E121").
			WithDetail("sessions.ttl is not a valid duration: " + cfg.Sessions.TTL)
	}
	ecfg.Sessions.TTL = ttl
	if cfg.Sessions.Cookie != "" {
		ecfg.Sessions.Cookie = cfg.Sessions.Cookie
	}

	var db *sql.DB
	switch cfg.Sessions.Store {
	case config.StoreMemory:
		ecfg.Sessions.Store = session.NewMemoryStore()

	case config.StoreSQLite:
		db, err = sql.Open("sqlite", cfg.Sessions.DSN)
		if err != nil {
			return nil, nil, errors.New("E080").
				WithDetail("open sqlite session store: " + err.Error())
		}
		store := session.NewSQLStore(db, session.WithSQLDialect(session.DialectSQLite))
		if err := store.CreateTable(context.Background()); err != nil {
			db.Close()
			return nil, nil, errors.New("E080").
				WithDetail("create session table: " + err.Error())
		}
		ecfg.Sessions.Store = store

	case config.StoreRedis:
		return nil, nil, errors.New("E080").
			WithDetail("the preview server has no redis client").
			WithSuggestion("Use the memory or sqlite store for preview; pass your own redis client through the library API")

	default:
		return nil, nil, errors.New("E121").
			WithDetail("unknown session store " + cfg.Sessions.Store)
	}
	ecfg.Sessions.Users = users

	engine := colloquy.New(ecfg)

	cleanup := func() error {
		err := engine.Close()
		if db != nil {
			if cerr := db.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return engine, cleanup, nil
}
