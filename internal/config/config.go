// Package config loads the optional TOML configuration file for the
// songdb CLI. Flags override anything set here.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the songdb.toml structure.
type Config struct {
	Library struct {
		Backend        string `toml:"backend"`
		SQLitePath     string `toml:"sqlite_path"`
		SQLiteDriver   string `toml:"sqlite_driver"`
		PostgresDSN    string `toml:"postgres_dsn"`
		PostgresSchema string `toml:"postgres_schema"`
	} `toml:"library"`

	Search struct {
		FoldCase bool `toml:"fold_case"`
		Limit    int  `toml:"limit"`
	} `toml:"search"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Library.Backend {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Library.Backend)
	}
	switch c.Library.SQLiteDriver {
	case "", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("config: unknown sqlite driver %q", c.Library.SQLiteDriver)
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("config: negative search limit")
	}
	return nil
}
