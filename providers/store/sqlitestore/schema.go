package sqlitestore

import (
	"context"
	"fmt"
)

// createTableSQL creates the save table. The key is the session identifier
// and data holds the JSON-encoded session.
const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
    key        TEXT PRIMARY KEY,
    data       BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// EnsureSchema creates the save table if it does not already exist.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(createTableSQL, s.tableName)); err != nil {
		return fmt.Errorf("sqlitestore: create table: %w", err)
	}
	return nil
}
