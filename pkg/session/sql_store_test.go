package session

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// The tests below run the SQLStore against a recording fake driver, so
// they verify the generated SQL per dialect without a real database.

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

type recordedCall struct {
	query string
	args  []driver.NamedValue
}

type fakeSQLRecorder struct {
	mu      sync.Mutex
	execs   []recordedCall
	queries []recordedCall

	// Rows returned by QueryContext calls, consumed in order.
	rowQueue [][]driver.Value
}

func (r *fakeSQLRecorder) recordExec(query string, args []driver.NamedValue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.execs = append(r.execs, recordedCall{query: normalizeQuery(query), args: append([]driver.NamedValue(nil), args...)})
}

func (r *fakeSQLRecorder) recordQuery(query string, args []driver.NamedValue) [][]driver.Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, recordedCall{query: normalizeQuery(query), args: append([]driver.NamedValue(nil), args...)})
	if len(r.rowQueue) == 0 {
		return nil
	}
	rows := r.rowQueue[0]
	r.rowQueue = r.rowQueue[1:]
	return [][]driver.Value{rows}
}

func (r *fakeSQLRecorder) execQueries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.execs))
	for i, e := range r.execs {
		out[i] = e.query
	}
	return out
}

type fakeSQLDriver struct{}

var (
	fakeSQLRegisterOnce sync.Once
	fakeSQLMu           sync.Mutex
	fakeSQLRecorders    = map[string]*fakeSQLRecorder{}
)

func (d fakeSQLDriver) Open(name string) (driver.Conn, error) {
	fakeSQLMu.Lock()
	rec := fakeSQLRecorders[name]
	fakeSQLMu.Unlock()
	if rec == nil {
		return nil, fmt.Errorf("unknown fake db name: %s", name)
	}
	return &fakeSQLConn{rec: rec}, nil
}

type fakeSQLConn struct {
	rec *fakeSQLRecorder
}

func (c *fakeSQLConn) Prepare(query string) (driver.Stmt, error) {
	return &fakeSQLStmt{rec: c.rec, query: query}, nil
}
func (c *fakeSQLConn) Close() error { return nil }
func (c *fakeSQLConn) Begin() (driver.Tx, error) {
	return fakeSQLTx{}, nil
}

func (c *fakeSQLConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.rec.recordExec(query, args)
	return driver.RowsAffected(1), nil
}

func (c *fakeSQLConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return &fakeSQLRows{rows: c.rec.recordQuery(query, args)}, nil
}

type fakeSQLTx struct{}

func (fakeSQLTx) Commit() error   { return nil }
func (fakeSQLTx) Rollback() error { return nil }

type fakeSQLStmt struct {
	rec   *fakeSQLRecorder
	query string
}

func (s *fakeSQLStmt) Close() error  { return nil }
func (s *fakeSQLStmt) NumInput() int { return -1 }
func (s *fakeSQLStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.rec.recordExec(s.query, namedFromValues(args))
	return driver.RowsAffected(1), nil
}
func (s *fakeSQLStmt) Query(args []driver.Value) (driver.Rows, error) {
	return &fakeSQLRows{rows: s.rec.recordQuery(s.query, namedFromValues(args))}, nil
}

func namedFromValues(values []driver.Value) []driver.NamedValue {
	out := make([]driver.NamedValue, 0, len(values))
	for i, v := range values {
		out = append(out, driver.NamedValue{Ordinal: i + 1, Value: v})
	}
	return out
}

type fakeSQLRows struct {
	rows [][]driver.Value
	idx  int
}

func (r *fakeSQLRows) Columns() []string { return []string{"data"} }
func (r *fakeSQLRows) Close() error      { return nil }
func (r *fakeSQLRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

func openFakeDB(t *testing.T) (*sql.DB, *fakeSQLRecorder) {
	t.Helper()

	fakeSQLRegisterOnce.Do(func() {
		sql.Register("colloquy_fake_sql", fakeSQLDriver{})
	})

	rec := &fakeSQLRecorder{}
	name := t.Name()

	fakeSQLMu.Lock()
	fakeSQLRecorders[name] = rec
	fakeSQLMu.Unlock()

	t.Cleanup(func() {
		fakeSQLMu.Lock()
		delete(fakeSQLRecorders, name)
		fakeSQLMu.Unlock()
	})

	db, err := sql.Open("colloquy_fake_sql", name)
	if err != nil {
		t.Fatalf("sql.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db, rec
}

func newFakeSQLStore(t *testing.T, d Dialect, opts ...SQLStoreOption) (*SQLStore, *fakeSQLRecorder) {
	t.Helper()
	db, rec := openFakeDB(t)
	opts = append([]SQLStoreOption{WithSQLDialect(d), WithSQLSweepInterval(24 * time.Hour)}, opts...)
	store := NewSQLStore(db, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, rec
}

func TestSQLStorePostgresQueries(t *testing.T) {
	store, rec := newFakeSQLStore(t, DialectPostgres)
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Minute)

	if err := store.Save(ctx, "s1", []byte("data"), expiresAt); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	execs := rec.execQueries()
	if len(execs) != 1 {
		t.Fatalf("execs = %d, want 1", len(execs))
	}
	if !strings.Contains(execs[0], "INSERT INTO colloquy_sessions") {
		t.Errorf("Save query missing table: %q", execs[0])
	}
	if !strings.Contains(execs[0], "ON CONFLICT (id) DO UPDATE") {
		t.Errorf("Save query not an upsert: %q", execs[0])
	}
	if !strings.Contains(execs[0], "$1") {
		t.Errorf("Save query missing postgres placeholder: %q", execs[0])
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	execs = rec.execQueries()
	if got := execs[len(execs)-1]; got != "DELETE FROM colloquy_sessions WHERE id = $1" {
		t.Errorf("Delete query = %q", got)
	}

	if err := store.Touch(ctx, "s1", expiresAt); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}
	execs = rec.execQueries()
	if got := execs[len(execs)-1]; !strings.Contains(got, "UPDATE colloquy_sessions SET expires_at = $1") {
		t.Errorf("Touch query = %q", got)
	}
}

func TestSQLStoreSQLiteQueries(t *testing.T) {
	store, rec := newFakeSQLStore(t, DialectSQLite)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []byte("data"), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	execs := rec.execQueries()
	if !strings.Contains(execs[0], "INSERT OR REPLACE INTO colloquy_sessions") {
		t.Errorf("Save query not sqlite upsert: %q", execs[0])
	}
	if !strings.Contains(execs[0], "datetime('now')") {
		t.Errorf("Save query missing sqlite timestamp: %q", execs[0])
	}
	if strings.Contains(execs[0], "$1") {
		t.Errorf("sqlite query uses postgres placeholders: %q", execs[0])
	}
}

func TestSQLStoreMySQLQueries(t *testing.T) {
	store, rec := newFakeSQLStore(t, DialectMySQL)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []byte("data"), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	execs := rec.execQueries()
	if !strings.Contains(execs[0], "ON DUPLICATE KEY UPDATE") {
		t.Errorf("Save query not mysql upsert: %q", execs[0])
	}
}

func TestSQLStoreCustomTable(t *testing.T) {
	store, rec := newFakeSQLStore(t, DialectPostgres, WithSQLTable("blog_sessions"))
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []byte("data"), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	execs := rec.execQueries()
	if !strings.Contains(execs[0], "INSERT INTO blog_sessions") {
		t.Errorf("Save query missing custom table: %q", execs[0])
	}
}

func TestSQLStoreLoad(t *testing.T) {
	store, rec := newFakeSQLStore(t, DialectPostgres)
	ctx := context.Background()

	rec.mu.Lock()
	rec.rowQueue = append(rec.rowQueue, []driver.Value{[]byte("stored-data")})
	rec.mu.Unlock()

	data, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "stored-data" {
		t.Errorf("Load = %q, want %q", data, "stored-data")
	}

	rec.mu.Lock()
	query := rec.queries[0].query
	rec.mu.Unlock()
	if !strings.Contains(query, "expires_at > NOW()") {
		t.Errorf("Load query doesn't filter expired rows: %q", query)
	}

	// Empty result set means missing, not an error
	data, err = store.Load(ctx, "absent")
	if err != nil {
		t.Fatalf("Load of missing session failed: %v", err)
	}
	if data != nil {
		t.Errorf("Load of missing session = %q, want nil", data)
	}
}

func TestSQLStoreSaveAll(t *testing.T) {
	store, rec := newFakeSQLStore(t, DialectPostgres)
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Minute)

	err := store.SaveAll(ctx, map[string]Record{
		"a": {Data: []byte("1"), ExpiresAt: expiresAt},
		"b": {Data: []byte("2"), ExpiresAt: expiresAt},
	})
	if err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	execs := rec.execQueries()
	if len(execs) != 2 {
		t.Fatalf("execs = %d, want 2 (one upsert per session)", len(execs))
	}
	for _, q := range execs {
		if !strings.Contains(q, "INSERT INTO colloquy_sessions") {
			t.Errorf("SaveAll exec not an upsert: %q", q)
		}
	}
}

func TestSQLStoreClosed(t *testing.T) {
	store, _ := newFakeSQLStore(t, DialectPostgres)
	store.Close()

	ctx := context.Background()
	if err := store.Save(ctx, "s1", nil, time.Now()); err == nil {
		t.Error("Save on closed store did not fail")
	}
	if _, err := store.Load(ctx, "s1"); err == nil {
		t.Error("Load on closed store did not fail")
	}
}
