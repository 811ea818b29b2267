package songdb_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nonibytes/songdb/songdb"
	"github.com/nonibytes/songdb/songdb/filter"
	"github.com/nonibytes/songdb/songdb/song"
	"github.com/nonibytes/songdb/songdb/storage/sqlite"
	"github.com/nonibytes/songdb/songdb/tag"
	_ "modernc.org/sqlite"
)

func newLibrary(t *testing.T) *songdb.Library {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	lib, err := songdb.Create(context.Background(), sqlite.New(dbPath))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func testSong(uri, artist, title string, mtime int64, prio uint8) *song.LightSong {
	s := &song.LightSong{
		Loc:      uri,
		Mtime:    time.Unix(mtime, 0).UTC(),
		Added:    time.Unix(mtime+100, 0).UTC(),
		Audio:    song.AudioFormat{SampleRate: 44100, SampleFormat: song.SampleS16, Channels: 2},
		HasAudio: true,
		Prio:     prio,
	}
	s.AddTag(tag.Artist, artist)
	s.AddTag(tag.Title, title)
	return s
}

func seedLibrary(t *testing.T, lib *songdb.Library) {
	t.Helper()
	ctx := context.Background()
	for _, s := range []*song.LightSong{
		testSong("A/B/rain.flac", "Björk", "Rain", 1700000000, 10),
		testSong("A/sun.mp3", "Beck", "Sunshine", 1600000000, 0),
		testSong("C/moon.ogg", "Moby", "Moonlight", 1650000000, 5),
	} {
		if err := lib.Put(ctx, s); err != nil {
			t.Fatalf("Put %s: %v", s.Loc, err)
		}
	}
}

func uris(songs []*song.LightSong) []string {
	var out []string
	for _, s := range songs {
		out = append(out, s.Loc)
	}
	return out
}

func TestPutGetDelete_SQLite(t *testing.T) {
	lib := newLibrary(t)
	ctx := context.Background()

	put := testSong("A/B/rain.flac", "Björk", "Rain", 1700000000, 10)
	if err := lib.Put(ctx, put); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := lib.Get(ctx, "A/B/rain.flac")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Loc != put.Loc || !got.Mtime.Equal(put.Mtime) {
		t.Errorf("got %+v", got)
	}
	if values := got.TagValues(tag.Artist); len(values) != 1 || values[0] != "Björk" {
		t.Errorf("artist = %v", values)
	}
	if !got.HasAudio || got.Audio.String() != "44100:16:2" {
		t.Errorf("format = %v %v", got.HasAudio, got.Audio)
	}
	if got.Prio != 10 {
		t.Errorf("prio = %d", got.Prio)
	}

	if err := lib.Delete(ctx, "A/B/rain.flac"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := lib.Get(ctx, "A/B/rain.flac"); !songdb.IsKind(err, songdb.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := lib.Delete(ctx, "A/B/rain.flac"); !songdb.IsKind(err, songdb.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

func TestPutReplacesTags_SQLite(t *testing.T) {
	lib := newLibrary(t)
	ctx := context.Background()

	s := testSong("A/x.flac", "Old", "Old Title", 1700000000, 0)
	if err := lib.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s = testSong("A/x.flac", "New", "New Title", 1700000500, 0)
	if err := lib.Put(ctx, s); err != nil {
		t.Fatalf("re-Put: %v", err)
	}

	got, err := lib.Get(ctx, "A/x.flac")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if values := got.TagValues(tag.Artist); len(values) != 1 || values[0] != "New" {
		t.Errorf("tags must be replaced, got %v", values)
	}
}

func TestSearchExpression_SQLite(t *testing.T) {
	lib := newLibrary(t)
	seedLibrary(t, lib)

	f := filter.New(filter.DefaultOptions())
	if err := f.Parse([]string{`(title contains "Rai")`}, false); err != nil {
		t.Fatalf("parse: %v", err)
	}
	f.Optimize()

	songs, err := lib.Search(context.Background(), f, songdb.DefaultSearchOptions())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := uris(songs); len(got) != 1 || got[0] != "A/B/rain.flac" {
		t.Errorf("got %v", got)
	}
}

func TestSearchBaseScope_SQLite(t *testing.T) {
	lib := newLibrary(t)
	seedLibrary(t, lib)

	f := filter.New(filter.DefaultOptions())
	if err := f.Parse([]string{`(base "A")`}, false); err != nil {
		t.Fatalf("parse: %v", err)
	}
	f.Optimize()

	songs, err := lib.Search(context.Background(), f, songdb.DefaultSearchOptions())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got := uris(songs)
	if len(got) != 2 || got[0] != "A/B/rain.flac" || got[1] != "A/sun.mp3" {
		t.Errorf("got %v", got)
	}
}

func TestSearchEmptyFilter_SQLite(t *testing.T) {
	lib := newLibrary(t)
	seedLibrary(t, lib)

	songs, err := lib.Search(context.Background(), filter.New(filter.DefaultOptions()), songdb.DefaultSearchOptions())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(songs) != 3 {
		t.Errorf("empty filter returns everything, got %v", uris(songs))
	}
}

func TestSearchSortAndLimit_SQLite(t *testing.T) {
	lib := newLibrary(t)
	seedLibrary(t, lib)
	ctx := context.Background()

	f := filter.New(filter.DefaultOptions())

	byMtime, err := lib.Search(ctx, f, songdb.SearchOptions{Sort: songdb.SortMtime})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := uris(byMtime); got[0] != "A/B/rain.flac" || got[2] != "A/sun.mp3" {
		t.Errorf("mtime order: %v", got)
	}

	byPrio, err := lib.Search(ctx, f, songdb.SearchOptions{Sort: songdb.SortPriority, Limit: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := uris(byPrio); len(got) != 1 || got[0] != "A/B/rain.flac" {
		t.Errorf("priority order with limit: %v", got)
	}
}

func TestSearchPriorityAndFormat_SQLite(t *testing.T) {
	lib := newLibrary(t)
	seedLibrary(t, lib)

	f := filter.New(filter.DefaultOptions())
	if err := f.Parse([]string{`((prio >= 5) AND (AudioFormat =~ "44100:*:2"))`}, false); err != nil {
		t.Fatalf("parse: %v", err)
	}
	f.Optimize()

	songs, err := lib.Search(context.Background(), f, songdb.DefaultSearchOptions())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := uris(songs); len(got) != 2 || got[0] != "A/B/rain.flac" || got[1] != "C/moon.ogg" {
		t.Errorf("got %v", got)
	}
}

func TestCount_SQLite(t *testing.T) {
	lib := newLibrary(t)
	seedLibrary(t, lib)

	n, err := lib.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d", n)
	}
}
