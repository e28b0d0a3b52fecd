// Package testutil provides shared helpers for tests that need a real
// local database file instead of an in-memory fake.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" driver
	"github.com/pressly/goose/v3"

	"github.com/Chedi19/res-appartement/migrations"
)

// DBPath returns a database file path inside the test's temporary
// directory. The file (and its WAL sidecars) are removed when the test
// finishes, giving free per-test isolation without any manual cleanup.
func DBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "resapp.db")
}

// NewSQLDB opens a migrated *sql.DB on a fresh temporary database file.
// Use this when a test needs raw SQL access rather than the blob store;
// the handle is closed automatically when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", DBPath(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: goose provider: %v", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
