package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, db.DialectSQLite, cfg.Dialect)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.LogUseCases)
	assert.True(t, filepath.IsAbs(cfg.DB) || cfg.DB != "")
	assert.Equal(t, cfg.DB, cfg.DataSource())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "db: /tmp/plan.db\nlog_level: debug\nlog_format: json\nlog_use_cases: true\n")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/plan.db", cfg.DB)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.LogUseCases)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log_level: debug\n")
	t.Setenv("LADDER_LOG_LEVEL", "error")
	t.Setenv("LADDER_DIALECT", "postgresql")
	t.Setenv("LADDER_DSN", "postgres://ladder@localhost/ladder")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, db.DialectPostgres, cfg.Dialect)
	assert.Equal(t, "postgres://ladder@localhost/ladder", cfg.DataSource())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("LADDER_DB", "/from/env.db")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("log-level", "", "")
	fs.String("unrelated", "", "")
	require.NoError(t, fs.Parse([]string{"--db", "/from/flag.db", "--log-level", "info"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v, writeConfig(t, "db: /from/file.db\n"))
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", cfg.DB)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")

	_, err = Load(New(), writeConfig(t, "dialect: oracle\n"))
	assert.ErrorContains(t, err, "unknown dialect")

	_, err = Load(New(), writeConfig(t, "dialect: postgres\n"))
	assert.ErrorContains(t, err, "requires dsn")
}
