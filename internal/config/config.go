// Package config loads ladder's runtime configuration. Values come from, in
// increasing precedence: built-in defaults, a YAML config file, LADDER_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
)

// Keys understood by Load. Flags bound with BindFlags use the same names.
const (
	KeyDB          = "db"
	KeyDialect     = "dialect"
	KeyDSN         = "dsn"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyLogUseCases = "log_use_cases"
)

const envPrefix = "LADDER"

// Config holds runtime settings. Role bindings and the parent date mode are
// not here; they live in the settings tables.
type Config struct {
	// DB is the SQLite database path.
	DB string
	// Dialect selects the store backend.
	Dialect db.Dialect
	// DSN is the connection string used by the postgres dialect.
	DSN         string
	LogLevel    string
	LogFormat   string
	LogUseCases bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		DB:        defaultDBPath(),
		Dialect:   db.DialectSQLite,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// New returns a viper instance with defaults and environment lookup wired.
func New() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault(KeyDB, def.DB)
	v.SetDefault(KeyDialect, string(def.Dialect))
	v.SetDefault(KeyDSN, def.DSN)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)
	v.SetDefault(KeyLogUseCases, def.LogUseCases)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in fs whose name matches a config key.
// Dashes in flag names map to underscores.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		switch key {
		case KeyDB, KeyDialect, KeyDSN, KeyLogLevel, KeyLogFormat, KeyLogUseCases:
			if err := v.BindPFlag(key, f); err != nil {
				errs = append(errs, fmt.Errorf("binding flag %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

// Load reads the optional config file and returns the merged configuration.
// An explicit cfgFile must exist; otherwise .ladder/config.yaml and
// $HOME/.ladder/config.yaml are tried and may be absent.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".ladder")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".ladder"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	dialect, err := db.ParseDialect(v.GetString(KeyDialect))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		DB:          v.GetString(KeyDB),
		Dialect:     dialect,
		DSN:         v.GetString(KeyDSN),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		LogUseCases: v.GetBool(KeyLogUseCases),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected dialect has a data source.
func (c Config) Validate() error {
	switch c.Dialect {
	case db.DialectPostgres:
		if c.DSN == "" {
			return fmt.Errorf("dialect postgres requires %s (or %s_DSN)", KeyDSN, envPrefix)
		}
	default:
		if c.DB == "" {
			return fmt.Errorf("dialect %s requires %s", c.Dialect, KeyDB)
		}
	}
	return nil
}

// DataSource returns the string passed to db.Open for the configured dialect.
func (c Config) DataSource() string {
	if c.Dialect == db.DialectPostgres {
		return c.DSN
	}
	return c.DB
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ladder", "ladder.db")
	}
	return filepath.Join(home, ".ladder", "ladder.db")
}
