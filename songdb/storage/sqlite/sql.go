package sqlite

import "github.com/nonibytes/songdb/songdb/storage"

const ddl = `
CREATE TABLE IF NOT EXISTS songs (
	uri           TEXT PRIMARY KEY,
	mtime         INTEGER NOT NULL,
	added         INTEGER NOT NULL,
	sample_rate   INTEGER NOT NULL DEFAULT 0,
	sample_format INTEGER NOT NULL DEFAULT 0,
	channels      INTEGER NOT NULL DEFAULT 0,
	priority      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS song_tags (
	uri   TEXT NOT NULL REFERENCES songs(uri) ON DELETE CASCADE,
	kind  INTEGER NOT NULL,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS song_tags_uri ON song_tags(uri);
`

var sqlTemplates = storage.SQL{
	UpsertSong: `INSERT INTO songs (uri, mtime, added, sample_rate, sample_format, channels, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET
			mtime = excluded.mtime,
			sample_rate = excluded.sample_rate,
			sample_format = excluded.sample_format,
			channels = excluded.channels,
			priority = excluded.priority`,
	DeleteSong: `DELETE FROM songs WHERE uri = ?`,
	GetSong:    `SELECT uri, mtime, added, sample_rate, sample_format, channels, priority FROM songs WHERE uri = ?`,
	CountSongs: `SELECT COUNT(*) FROM songs`,

	DeleteTagsBySong: `DELETE FROM song_tags WHERE uri = ?`,
	InsertTag:        `INSERT INTO song_tags (uri, kind, value) VALUES (?, ?, ?)`,
	GetTagsBySong:    `SELECT kind, value FROM song_tags WHERE uri = ?`,

	SelectSongs: `SELECT uri, mtime, added, sample_rate, sample_format, channels, priority FROM songs ORDER BY uri`,
	SelectTags:  `SELECT uri, kind, value FROM song_tags ORDER BY uri`,

	SelectSongsByPrefix: `SELECT uri, mtime, added, sample_rate, sample_format, channels, priority FROM songs
		WHERE uri = ? OR substr(uri, 1, length(?)) = ? ORDER BY uri`,
	SelectTagsByPrefix: `SELECT uri, kind, value FROM song_tags
		WHERE uri = ? OR substr(uri, 1, length(?)) = ? ORDER BY uri`,
}
