package cliopt

import (
	"flag"

	"github.com/nonibytes/songdb/internal/config"
)

// GlobalOptions are parsed once at the CLI root and passed to
// subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the
// root command router and per-command code.
type GlobalOptions struct {
	ConfigPath string

	Backend        string
	SQLitePath     string
	SQLiteDriver   string
	PostgresDSN    string
	PostgresSchema string

	FoldCase bool
	Limit    int
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Backend:      "sqlite",
		SQLitePath:   "songs.db",
		SQLiteDriver: "sqlite",
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.ConfigPath, "config", g.ConfigPath, "path to songdb.toml")

	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")
	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite database file path")
	fs.StringVar(&g.SQLiteDriver, "sqlite-driver", g.SQLiteDriver, "sqlite driver: sqlite|sqlite3")
	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PostgresSchema, "pg-schema", g.PostgresSchema, "postgres schema name")
}

// ApplyConfig overlays config-file values onto the options.
func (g *GlobalOptions) ApplyConfig(cfg *config.Config) {
	if cfg.Library.Backend != "" {
		g.Backend = cfg.Library.Backend
	}
	if cfg.Library.SQLitePath != "" {
		g.SQLitePath = cfg.Library.SQLitePath
	}
	if cfg.Library.SQLiteDriver != "" {
		g.SQLiteDriver = cfg.Library.SQLiteDriver
	}
	if cfg.Library.PostgresDSN != "" {
		g.PostgresDSN = cfg.Library.PostgresDSN
	}
	if cfg.Library.PostgresSchema != "" {
		g.PostgresSchema = cfg.Library.PostgresSchema
	}
	g.FoldCase = cfg.Search.FoldCase
	if cfg.Search.Limit > 0 {
		g.Limit = cfg.Search.Limit
	}
}
