package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/leofalp/tangshi/providers/store"
)

// defaultTableName is the table used when no custom name is provided.
const defaultTableName = "game_saves"

// Querier abstracts the database/sql methods needed by SQLiteStore.
// Both *sql.DB and *sql.Tx satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements [store.Store] with SQLite persistence.
type SQLiteStore struct {
	db        Querier
	closer    func() error
	tableName string
}

// Compile-time check: SQLiteStore must implement store.Store.
var _ store.Store = (*SQLiteStore)(nil)

// Option configures optional SQLiteStore behavior.
type Option func(*SQLiteStore)

// WithTableName overrides the default table name ("game_saves").
// The name is quoted as an identifier since it is interpolated into queries.
func WithTableName(name string) Option {
	return func(s *SQLiteStore) {
		s.tableName = quoteIdentifier(name)
	}
}

// New wraps an existing database handle. It does not create the schema.
func New(db Querier, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{
		db:        db,
		tableName: quoteIdentifier(defaultTableName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens (or creates) the SQLite database at path and ensures the
// schema exists. The returned store owns the connection; call Close.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", path, err)
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := New(db, opts...)
	s.closer = db.Close

	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the connection opened by [Open]. It is a no-op for stores
// created with [New].
func (s *SQLiteStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Load returns the payload stored under key, or [store.ErrNotFound].
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE key = ?`, s.tableName)

	var data []byte
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("sqlitestore: load %q: %w", key, err)
	}

	return data, nil
}

// Save upserts data under key.
func (s *SQLiteStore) Save(ctx context.Context, key string, data []byte) error {
	query := fmt.Sprintf(`INSERT INTO %s (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("sqlitestore: save %q: %w", key, err)
	}

	return nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
