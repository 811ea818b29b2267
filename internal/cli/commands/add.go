package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nonibytes/songdb/internal/cliopt"
	"github.com/nonibytes/songdb/internal/cliutil"
	"github.com/nonibytes/songdb/songdb"
	"github.com/nonibytes/songdb/songdb/song"
	"github.com/nonibytes/songdb/songdb/tag"
)

// tagArgs collects repeatable --tag name=value flags.
type tagArgs []string

func (t *tagArgs) String() string { return strings.Join(*t, ",") }
func (t *tagArgs) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func RunAdd(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var uri, mtime, added, format string
	var prio int
	var tags tagArgs
	fs.StringVar(&uri, "uri", "", "song URI relative to the library root")
	fs.StringVar(&uri, "u", "", "song URI")
	fs.Var(&tags, "tag", "tag as name=value (repeatable)")
	fs.StringVar(&mtime, "mtime", "", "modification time (ISO 8601 or epoch seconds)")
	fs.StringVar(&added, "added", "", "added time (ISO 8601 or epoch seconds; default now)")
	fs.StringVar(&format, "format", "", "audio format rate:bits:channels")
	fs.IntVar(&prio, "prio", 0, "priority 0-255")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if uri == "" {
		fmt.Fprintln(os.Stderr, "missing --uri")
		return 2
	}
	if prio < 0 || prio > 255 {
		fmt.Fprintln(os.Stderr, "priority out of range")
		return 2
	}

	s := &song.LightSong{Loc: uri, Mtime: time.Now(), Prio: uint8(prio)}

	for _, kv := range tags {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "bad --tag value: %s\n", kv)
			return 2
		}
		kind := tag.ParseNameFold(name)
		if kind == tag.NumTypes {
			fmt.Fprintf(os.Stderr, "unknown tag: %s\n", name)
			return 2
		}
		s.AddTag(kind, value)
	}

	if mtime != "" {
		t, err := parseTimeArg(mtime)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		s.Mtime = t
	}
	if added != "" {
		t, err := parseTimeArg(added)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		s.Added = t
	}
	if format != "" {
		af, err := song.ParseAudioFormat(format, false)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		s.Audio = af
		s.HasAudio = true
	}

	adapter, err := cliutil.NewAdapter(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	lib, err := songdb.Open(context.Background(), adapter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer lib.Close()

	if err := lib.Put(context.Background(), s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func parseTimeArg(s string) (time.Time, error) {
	if t, err := song.ParseTimestamp(s); err == nil {
		return t, nil
	}
	if epoch, err := strconv.ParseUint(s, 10, 64); err == nil {
		return time.Unix(int64(epoch), 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad timestamp: %s", s)
}
