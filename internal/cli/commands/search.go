package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nonibytes/songdb/internal/cliopt"
	"github.com/nonibytes/songdb/internal/cliutil"
	"github.com/nonibytes/songdb/songdb"
	"github.com/nonibytes/songdb/songdb/filter"
)

func RunSearch(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var format, sortKind string
	var limit int
	var foldCase, noRegex, exprOnly bool
	fs.BoolVar(&foldCase, "fold-case", g.FoldCase, "case-insensitive matching for inherit-case operators")
	fs.IntVar(&limit, "limit", g.Limit, "result limit, 0 = unbounded")
	fs.StringVar(&sortKind, "sort", "uri", "sort: uri|mtime|priority")
	fs.StringVar(&format, "format", "pretty", "format: pretty|uris|json")
	fs.BoolVar(&noRegex, "no-regex", false, "disable the =~ and !~ operators")
	fs.BoolVar(&exprOnly, "expr", false, "print the canonical expression instead of searching")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "missing filter arguments")
		return 2
	}

	f := filter.New(filter.Options{EnableRegex: !noRegex})
	if err := f.Parse(fs.Args(), foldCase); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	f.Optimize()

	if exprOnly {
		fmt.Fprintln(os.Stdout, f.ToExpression())
		return 0
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

	opts := songdb.SearchOptions{Limit: limit, Sort: songdb.SortKind(sortKind)}
	songs, err := lib.Search(context.Background(), f, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch cliutil.ParseOutputFormat(format) {
	case cliutil.FormatJSON:
		out := make([]any, 0, len(songs))
		for _, s := range songs {
			out = append(out, cliutil.SongJSON(s))
		}
		cliutil.PrintJSON(os.Stdout, out)
	case cliutil.FormatURIs:
		for _, s := range songs {
			fmt.Fprintln(os.Stdout, s.Loc)
		}
	default:
		fmt.Fprintf(os.Stdout, "%d songs match %s\n", len(songs), f.ToExpression())
		for _, s := range songs {
			cliutil.PrintSong(os.Stdout, s)
		}
	}
	return 0
}
