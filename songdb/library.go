package songdb

import (
	"context"
	"database/sql"
	"time"

	"github.com/nonibytes/songdb/songdb/song"
	"github.com/nonibytes/songdb/songdb/storage"
	"github.com/nonibytes/songdb/songdb/tag"
)

// Library is an open song library.
type Library struct {
	adapter storage.Adapter
	db      *sql.DB
}

// Create connects to the backend and creates the schema.
func Create(ctx context.Context, adapter storage.Adapter) (*Library, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}
	if err := adapter.CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, Wrap(ErrSQL, "create schema", err)
	}
	return &Library{adapter: adapter, db: db}, nil
}

// Open connects to an existing library.
func Open(ctx context.Context, adapter storage.Adapter) (*Library, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}
	return &Library{adapter: adapter, db: db}, nil
}

// Close closes the library.
func (l *Library) Close() error {
	if l.db != nil {
		if err := l.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return l.adapter.Close()
}

// Put inserts or replaces a song, keyed by URI. The added timestamp of
// an existing row is preserved.
func (l *Library) Put(ctx context.Context, s *song.LightSong) error {
	if s.Loc == "" {
		return New(ErrBadSong, "song URI is empty")
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	sqlt := l.adapter.SQL()

	added := s.Added
	if added.IsZero() {
		added = time.Now()
	}
	format := s.Audio
	if !s.HasAudio {
		format = song.AudioFormat{}
	}

	if _, err := tx.ExecContext(ctx, sqlt.UpsertSong,
		s.Loc, s.Mtime.Unix(), added.Unix(),
		int64(format.SampleRate), int64(format.SampleFormat), int64(format.Channels),
		int64(s.Prio)); err != nil {
		return Wrap(ErrSQL, "upsert song", err)
	}

	if _, err := tx.ExecContext(ctx, sqlt.DeleteTagsBySong, s.Loc); err != nil {
		return Wrap(ErrSQL, "delete tags", err)
	}
	for _, item := range s.Tags {
		if _, err := tx.ExecContext(ctx, sqlt.InsertTag, s.Loc, int64(item.Kind), item.Value); err != nil {
			return Wrap(ErrSQL, "insert tag", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Wrap(ErrSQL, "commit", err)
	}
	return nil
}

// Get loads one song by URI.
func (l *Library) Get(ctx context.Context, uri string) (*song.LightSong, error) {
	sqlt := l.adapter.SQL()

	row := l.db.QueryRowContext(ctx, sqlt.GetSong, uri)
	s, err := scanSong(row)
	if err == sql.ErrNoRows {
		return nil, NotFoundError(uri)
	}
	if err != nil {
		return nil, Wrap(ErrSQL, "load song", err)
	}

	rows, err := l.db.QueryContext(ctx, sqlt.GetTagsBySong, uri)
	if err != nil {
		return nil, Wrap(ErrSQL, "load tags", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind int64
		var value string
		if err := rows.Scan(&kind, &value); err != nil {
			return nil, Wrap(ErrSQL, "scan tag", err)
		}
		s.AddTag(tag.Type(kind), value)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "load tags", err)
	}
	return s, nil
}

// Delete removes one song by URI.
func (l *Library) Delete(ctx context.Context, uri string) error {
	sqlt := l.adapter.SQL()

	// song_tags has ON DELETE CASCADE; only mattn honors the
	// foreign_keys DSN flag, so delete tags explicitly.
	if _, err := l.db.ExecContext(ctx, sqlt.DeleteTagsBySong, uri); err != nil {
		return Wrap(ErrSQL, "delete tags", err)
	}
	res, err := l.db.ExecContext(ctx, sqlt.DeleteSong, uri)
	if err != nil {
		return Wrap(ErrSQL, "delete song", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return NotFoundError(uri)
	}
	return nil
}

// Count returns the number of songs.
func (l *Library) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := l.db.QueryRowContext(ctx, l.adapter.SQL().CountSongs).Scan(&n); err != nil {
		return 0, Wrap(ErrSQL, "count songs", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*song.LightSong, error) {
	var s song.LightSong
	var mtime, added int64
	var rate, format, channels, prio int64
	if err := row.Scan(&s.Loc, &mtime, &added, &rate, &format, &channels, &prio); err != nil {
		return nil, err
	}
	s.Mtime = time.Unix(mtime, 0).UTC()
	s.Added = time.Unix(added, 0).UTC()
	s.Audio = song.AudioFormat{
		SampleRate:   uint32(rate),
		SampleFormat: song.SampleFormat(format),
		Channels:     uint8(channels),
	}
	s.HasAudio = s.Audio.IsDefined()
	s.Prio = uint8(prio)
	return &s, nil
}
