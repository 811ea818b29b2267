package songdb

import (
	"context"
	"sort"

	"github.com/nonibytes/songdb/songdb/filter"
	"github.com/nonibytes/songdb/songdb/song"
	"github.com/nonibytes/songdb/songdb/tag"
)

// Search scans the library and returns the songs matching f. When the
// filter carries a base scope, the scan is narrowed to that subtree
// before matching.
func (l *Library) Search(ctx context.Context, f *filter.SongFilter, opts SearchOptions) ([]*song.LightSong, error) {
	songs, err := l.scanSongs(ctx, f)
	if err != nil {
		return nil, err
	}

	matched := songs[:0]
	for _, s := range songs {
		if f == nil || f.Match(s) {
			matched = append(matched, s)
		}
	}

	sortSongs(matched, opts.Sort)
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// scanSongs streams songs and tags in URI order and zips them together.
func (l *Library) scanSongs(ctx context.Context, f *filter.SongFilter) ([]*song.LightSong, error) {
	sqlt := l.adapter.SQL()

	songQuery, tagQuery := sqlt.SelectSongs, sqlt.SelectTags
	var args []any
	if f != nil {
		if base, ok := f.GetBase(); ok {
			songQuery, tagQuery = sqlt.SelectSongsByPrefix, sqlt.SelectTagsByPrefix
			args = []any{base, base + "/", base + "/"}
		}
	}

	rows, err := l.db.QueryContext(ctx, songQuery, args...)
	if err != nil {
		return nil, Wrap(ErrSQL, "scan songs", err)
	}
	defer rows.Close()

	var songs []*song.LightSong
	index := make(map[string]*song.LightSong)
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, Wrap(ErrSQL, "scan song", err)
		}
		songs = append(songs, s)
		index[s.Loc] = s
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "scan songs", err)
	}

	tagRows, err := l.db.QueryContext(ctx, tagQuery, args...)
	if err != nil {
		return nil, Wrap(ErrSQL, "scan tags", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var uri, value string
		var kind int64
		if err := tagRows.Scan(&uri, &kind, &value); err != nil {
			return nil, Wrap(ErrSQL, "scan tag", err)
		}
		if s, ok := index[uri]; ok {
			s.AddTag(tag.Type(kind), value)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "scan tags", err)
	}

	return songs, nil
}

func sortSongs(songs []*song.LightSong, kind SortKind) {
	switch kind {
	case SortMtime:
		sort.SliceStable(songs, func(i, j int) bool {
			return songs[i].Mtime.After(songs[j].Mtime)
		})
	case SortPriority:
		sort.SliceStable(songs, func(i, j int) bool {
			return songs[i].Prio > songs[j].Prio
		})
	default:
		sort.SliceStable(songs, func(i, j int) bool {
			return songs[i].Loc < songs[j].Loc
		})
	}
}
