package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open opens a database for the given dialect and runs migrations.
// Every SQLite connection gets foreign keys and a busy timeout, file stores
// run in WAL mode, and the parent directory of a file path is created if
// missing.
func Open(dialect Dialect, dsn string) (*sql.DB, error) {
	switch dialect {
	case DialectSQLite:
		return openSQLite(dsn)
	case DialectPostgres:
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

func openSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// An in-memory database lives on a single connection; a second pooled
	// connection would see an empty schema.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// sqlitePragmas are applied by the driver to every new connection, not just
// the first one the pool hands out.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
}

// sqliteDSN turns a path into a file URI carrying the connection pragmas.
// File stores also get WAL.
func sqliteDSN(path string) string {
	params := sqlitePragmas
	if path == ":memory:" {
		return "file::memory:?" + strings.Join(params, "&")
	}
	params = append([]string{"_pragma=journal_mode(WAL)"}, params...)
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&")
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
