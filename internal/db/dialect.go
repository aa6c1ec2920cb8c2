package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect names the SQL flavor behind a connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect parses a dialect string.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unknown dialect: %s", s)
	}
}

// Bind adapts a DBTX to the dialect. Repositories write queries with "?"
// placeholders; for Postgres they are rewritten to $1, $2, ...
func Bind(dialect Dialect, q DBTX) DBTX {
	if dialect != DialectPostgres {
		return q
	}
	return &rebindDBTX{inner: q}
}

type rebindDBTX struct {
	inner DBTX
}

func (r *rebindDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.inner.ExecContext(ctx, Rebind(query), args...)
}

func (r *rebindDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.inner.QueryContext(ctx, Rebind(query), args...)
}

func (r *rebindDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.inner.QueryRowContext(ctx, Rebind(query), args...)
}

// Rebind replaces each "?" outside single-quoted literals with a numbered
// Postgres placeholder.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
