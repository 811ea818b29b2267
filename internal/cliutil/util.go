package cliutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nonibytes/songdb/internal/cliopt"
	"github.com/nonibytes/songdb/songdb/song"
	"github.com/nonibytes/songdb/songdb/storage"
	"github.com/nonibytes/songdb/songdb/storage/postgres"
	"github.com/nonibytes/songdb/songdb/storage/sqlite"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatURIs   OutputFormat = "uris"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatURIs, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

// NewAdapter builds the storage adapter selected by the global options.
func NewAdapter(g cliopt.GlobalOptions) (storage.Adapter, error) {
	switch g.Backend {
	case "sqlite":
		return sqlite.NewWithDriver(g.SQLitePath, g.SQLiteDriver), nil
	case "postgres":
		if g.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend needs --pg-dsn")
		}
		return postgres.New(g.PostgresDSN, g.PostgresSchema), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", g.Backend)
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// songJSON is the stable JSON shape of a song.
type songJSON struct {
	URI      string              `json:"uri"`
	Tags     map[string][]string `json:"tags,omitempty"`
	Mtime    string              `json:"mtime"`
	Added    string              `json:"added"`
	Format   string              `json:"format,omitempty"`
	Priority uint8               `json:"priority,omitempty"`
}

func SongJSON(s *song.LightSong) any {
	out := songJSON{
		URI:      s.Loc,
		Mtime:    song.FormatTimestamp(s.Mtime),
		Added:    song.FormatTimestamp(s.Added),
		Priority: s.Prio,
	}
	if s.HasAudio {
		out.Format = s.Audio.String()
	}
	if len(s.Tags) > 0 {
		out.Tags = make(map[string][]string)
		for _, item := range s.Tags {
			name := item.Kind.String()
			out.Tags[name] = append(out.Tags[name], item.Value)
		}
	}
	return out
}

// PrintSong renders one song in pretty form.
func PrintSong(w io.Writer, s *song.LightSong) {
	fmt.Fprintf(w, "%s\n", s.Loc)
	for _, item := range s.Tags {
		fmt.Fprintf(w, "  %s: %s\n", item.Kind, item.Value)
	}
	fmt.Fprintf(w, "  mtime: %s\n", song.FormatTimestamp(s.Mtime))
	fmt.Fprintf(w, "  added: %s\n", song.FormatTimestamp(s.Added))
	if s.HasAudio {
		fmt.Fprintf(w, "  format: %s\n", s.Audio)
	}
	if s.Prio != 0 {
		fmt.Fprintf(w, "  prio: %d\n", s.Prio)
	}
}
