package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore is a SQL-backed session store. It works with any database/sql
// compatible driver; the dialect controls placeholder and timestamp syntax.
//
// The expected schema (see CreateTable):
//
//	CREATE TABLE colloquy_sessions (
//	    id VARCHAR(64) PRIMARY KEY,
//	    data BYTEA NOT NULL,
//	    expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
//	    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
//	);
//	CREATE INDEX idx_colloquy_sessions_expires ON colloquy_sessions(expires_at);
type SQLStore struct {
	db            *sql.DB
	table         string
	dialect       Dialect
	queries       sqlQueries
	sweepInterval time.Duration
	closed        bool
	done          chan struct{}
}

// Dialect selects the SQL flavor used for query generation.
type Dialect int

const (
	// DialectPostgres uses PostgreSQL syntax ($1, $2 placeholders).
	DialectPostgres Dialect = iota
	// DialectMySQL uses MySQL syntax (? placeholders).
	DialectMySQL
	// DialectSQLite uses SQLite syntax (? placeholders).
	DialectSQLite
)

// sqlQueries holds the statements for one dialect/table pair,
// built once at construction.
type sqlQueries struct {
	upsert    string
	selectOne string
	delete    string
	touch     string
	purge     string
}

func buildQueries(d Dialect, table string) sqlQueries {
	switch d {
	case DialectMySQL:
		return sqlQueries{
			upsert: fmt.Sprintf(
				`INSERT INTO %s (id, data, expires_at, updated_at) VALUES (?, ?, ?, NOW())
				 ON DUPLICATE KEY UPDATE data = VALUES(data), expires_at = VALUES(expires_at), updated_at = NOW()`, table),
			selectOne: fmt.Sprintf(`SELECT data FROM %s WHERE id = ? AND expires_at > NOW()`, table),
			delete:    fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table),
			touch:     fmt.Sprintf(`UPDATE %s SET expires_at = ?, updated_at = NOW() WHERE id = ?`, table),
			purge:     fmt.Sprintf(`DELETE FROM %s WHERE expires_at < NOW()`, table),
		}
	case DialectSQLite:
		return sqlQueries{
			upsert: fmt.Sprintf(
				`INSERT OR REPLACE INTO %s (id, data, expires_at, updated_at) VALUES (?, ?, ?, datetime('now'))`, table),
			selectOne: fmt.Sprintf(`SELECT data FROM %s WHERE id = ? AND expires_at > datetime('now')`, table),
			delete:    fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table),
			touch:     fmt.Sprintf(`UPDATE %s SET expires_at = ?, updated_at = datetime('now') WHERE id = ?`, table),
			purge:     fmt.Sprintf(`DELETE FROM %s WHERE expires_at < datetime('now')`, table),
		}
	default: // DialectPostgres
		return sqlQueries{
			upsert: fmt.Sprintf(
				`INSERT INTO %s (id, data, expires_at, updated_at) VALUES ($1, $2, $3, NOW())
				 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = NOW()`, table),
			selectOne: fmt.Sprintf(`SELECT data FROM %s WHERE id = $1 AND expires_at > NOW()`, table),
			delete:    fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table),
			touch:     fmt.Sprintf(`UPDATE %s SET expires_at = $1, updated_at = NOW() WHERE id = $2`, table),
			purge:     fmt.Sprintf(`DELETE FROM %s WHERE expires_at < NOW()`, table),
		}
	}
}

// SQLStoreOption configures SQLStore behavior.
type SQLStoreOption func(*sqlStoreConfig)

type sqlStoreConfig struct {
	table         string
	dialect       Dialect
	sweepInterval time.Duration
}

// WithSQLTable sets the table name for session storage.
// Default: "colloquy_sessions".
func WithSQLTable(name string) SQLStoreOption {
	return func(c *sqlStoreConfig) {
		c.table = name
	}
}

// WithSQLDialect sets the SQL dialect for query generation.
// Default: DialectPostgres.
func WithSQLDialect(dialect Dialect) SQLStoreOption {
	return func(c *sqlStoreConfig) {
		c.dialect = dialect
	}
}

// WithSQLSweepInterval sets how often expired sessions are purged.
// Default: 5 minutes.
func WithSQLSweepInterval(d time.Duration) SQLStoreOption {
	return func(c *sqlStoreConfig) {
		c.sweepInterval = d
	}
}

// NewSQLStore creates a new SQL-backed session store.
func NewSQLStore(db *sql.DB, opts ...SQLStoreOption) *SQLStore {
	cfg := &sqlStoreConfig{
		table:         "colloquy_sessions",
		dialect:       DialectPostgres,
		sweepInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	store := &SQLStore{
		db:            db,
		table:         cfg.table,
		dialect:       cfg.dialect,
		queries:       buildQueries(cfg.dialect, cfg.table),
		sweepInterval: cfg.sweepInterval,
		done:          make(chan struct{}),
	}

	go store.sweepLoop()
	return store
}

// Save stores session data with an expiration time.
func (s *SQLStore) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	if s.closed {
		return ErrStoreClosed{}
	}

	_, err := s.db.ExecContext(ctx, s.queries.upsert, sessionID, data, expiresAt)
	return err
}

// Load retrieves session data if it exists and hasn't expired.
func (s *SQLStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	if s.closed {
		return nil, ErrStoreClosed{}
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, s.queries.selectOne, sessionID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Delete removes a session from the database.
func (s *SQLStore) Delete(ctx context.Context, sessionID string) error {
	if s.closed {
		return ErrStoreClosed{}
	}

	_, err := s.db.ExecContext(ctx, s.queries.delete, sessionID)
	return err
}

// Touch updates the expiration time for a session.
func (s *SQLStore) Touch(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if s.closed {
		return ErrStoreClosed{}
	}

	_, err := s.db.ExecContext(ctx, s.queries.touch, expiresAt, sessionID)
	return err
}

// SaveAll saves multiple sessions in a single transaction.
func (s *SQLStore) SaveAll(ctx context.Context, sessions map[string]Record) error {
	if s.closed {
		return ErrStoreClosed{}
	}

	if len(sessions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.queries.upsert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, rec := range sessions {
		if _, err := stmt.ExecContext(ctx, id, rec.Data, rec.ExpiresAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close shuts down the store's sweep goroutine. The underlying database
// handle is not closed; it may be shared with other components.
func (s *SQLStore) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	close(s.done)
	return nil
}

// sweepLoop periodically purges expired sessions.
func (s *SQLStore) sweepLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

// sweep deletes expired sessions from the database.
func (s *SQLStore) sweep() {
	if s.closed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.db.ExecContext(ctx, s.queries.purge)
}

// CreateTable creates the session table and its expiry index if they don't
// exist. This is a convenience for development and tests.
func (s *SQLStore) CreateTable(ctx context.Context) error {
	var query string
	switch s.dialect {
	case DialectMySQL:
		query = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id VARCHAR(64) PRIMARY KEY,
				data BLOB NOT NULL,
				expires_at DATETIME NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			)
		`, s.table)
	case DialectSQLite:
		query = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				data BLOB NOT NULL,
				expires_at TEXT NOT NULL,
				updated_at TEXT DEFAULT (datetime('now'))
			)
		`, s.table)
	default:
		query = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id VARCHAR(64) PRIMARY KEY,
				data BYTEA NOT NULL,
				expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)
		`, s.table)
	}

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return err
	}

	// MySQL has no IF NOT EXISTS for indexes, so errors are ignored
	var indexQuery string
	switch s.dialect {
	case DialectMySQL:
		indexQuery = fmt.Sprintf(`CREATE INDEX idx_%s_expires ON %s(expires_at)`, s.table, s.table)
	default:
		indexQuery = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_expires ON %s(expires_at)`, s.table, s.table)
	}
	s.db.ExecContext(ctx, indexQuery)

	return nil
}
