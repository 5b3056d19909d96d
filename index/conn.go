// Package index stores patch reports in a SQLite database.
package index

import (
	"database/sql"
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens the SQLite database at dbPath, creating its directory if needed, and applies migrations.
// ":memory:" opens a private in-memory database.
func Open(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if e := os.MkdirAll(filepath.Dir(dbPath), 0o755); e != nil {
			return nil, errors.Wrap(e, "make index dir")
		}
	}
	db, e := sql.Open("sqlite3", dbPath)
	if e != nil {
		return nil, errors.Wrap(e, "open sqlite")
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	}
	for _, p := range pragmas {
		if _, e := db.Exec(p); e != nil {
			_ = db.Close()
			return nil, errors.Wrapf(e, "pragma %q", p)
		}
	}
	if e := applyMigrations(db); e != nil {
		_ = db.Close()
		return nil, e
	}
	return db, nil
}

func applyMigrations(db *sql.DB) error {
	if _, e := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL UNIQUE,
        applied_at TEXT NOT NULL
    )`); e != nil {
		return errors.Wrap(e, "create schema_migrations")
	}
	entries, e := fs.ReadDir(migrationsFS, "migrations")
	if e != nil {
		return errors.Wrap(e, "read migrations")
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	for _, name := range files {
		applied, e := isApplied(db, name)
		if e != nil {
			return e
		}
		if applied {
			continue
		}
		b, e := migrationsFS.ReadFile(path.Join("migrations", name))
		if e != nil {
			return errors.Wrapf(e, "read migration %s", name)
		}
		if _, e := db.Exec(string(b)); e != nil {
			return errors.Wrapf(e, "apply migration %s", name)
		}
		if _, e := db.Exec(`INSERT INTO schema_migrations(name, applied_at) VALUES (?, ?)`, name, time.Now().UTC().Format(time.RFC3339)); e != nil {
			return errors.Wrapf(e, "record migration %s", name)
		}
	}
	return nil
}

func isApplied(db *sql.DB, name string) (bool, error) {
	var n int
	e := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE name = ?`, name).Scan(&n)
	if e == sql.ErrNoRows {
		return false, nil
	}
	if e != nil {
		return false, errors.Wrapf(e, "check migration %s", name)
	}
	return true, nil
}
