package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
	"github.com/pressly/goose/v3"

	"github.com/Chedi19/res-appartement/migrations"
)

// SQLiteStore is the production BlobStore: a single-file SQLite database
// holding one row per blob key. WAL mode keeps the occasional concurrent
// reader from blocking the single writer.
type SQLiteStore struct {
	db *sql.DB
}

// compile-time check: SQLiteStore must satisfy BlobStore.
var _ BlobStore = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database file at path and
// applies the embedded goose migrations. Parent directories are created
// automatically.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// migrate applies all pending embedded migrations.
func migrate(db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Read returns the blob stored under key, or ok=false when absent.
func (s *SQLiteStore) Read(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM blobs WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repo.SQLiteStore.Read %q: %w", key, err)
	}
	return value, true, nil
}

// Write stores value under key, replacing any previous value.
func (s *SQLiteStore) Write(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO blobs (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("repo.SQLiteStore.Write %q: %w", key, err)
	}
	return nil
}

// Clear removes the blob stored under key. Absent keys are a no-op.
func (s *SQLiteStore) Clear(ctx context.Context, key string) error {
	const q = `DELETE FROM blobs WHERE key = ?`

	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("repo.SQLiteStore.Clear %q: %w", key, err)
	}
	return nil
}
