package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"sequential", "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"quoted question mark kept", "SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.in))
		})
	}
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"":           DialectSQLite,
		"sqlite":     DialectSQLite,
		"SQLite3":    DialectSQLite,
		"postgres":   DialectPostgres,
		"postgresql": DialectPostgres,
		"pg":         DialectPostgres,
	} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDialect("mysql")
	assert.Error(t, err)
}

func TestBind_SQLiteIsPassthrough(t *testing.T) {
	db := openTestDB(t)
	assert.Same(t, db, Bind(DialectSQLite, db))
}

func TestBind_PostgresRewritesBeforeDelegating(t *testing.T) {
	db := openTestDB(t)
	bound := Bind(DialectPostgres, db)

	// SQLite understands $n placeholders, so the rewritten query still runs.
	var got int
	err := bound.QueryRowContext(context.Background(), `SELECT ? + ?`, 2, 3).Scan(&got)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}
