// Package storage abstracts the database backends holding the song
// library.
package storage

import (
	"context"
	"database/sql"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Adapter abstracts database-specific operations.
type Adapter interface {
	Backend() Backend

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// CreateSchema creates the songs tables if they do not exist.
	CreateSchema(ctx context.Context, db *sql.DB) error

	SQL() SQL
}

// SQL holds the statement templates in the backend's placeholder style.
type SQL struct {
	UpsertSong string
	DeleteSong string
	GetSong    string
	CountSongs string

	DeleteTagsBySong string
	InsertTag        string
	GetTagsBySong    string

	// SelectSongs and SelectTags stream the whole library, ordered
	// by URI so rows can be zipped into songs in one pass.
	SelectSongs string
	SelectTags  string

	// SelectSongsByPrefix narrows the scan to one directory subtree.
	// Arguments: exact URI, prefix with trailing slash (twice).
	SelectSongsByPrefix string
	SelectTagsByPrefix  string
}
