package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nonibytes/songdb/internal/cliopt"
	"github.com/nonibytes/songdb/internal/cliutil"
	"github.com/nonibytes/songdb/songdb"
)

func RunGet(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var uri, format string
	fs.StringVar(&uri, "uri", "", "song URI")
	fs.StringVar(&uri, "u", "", "song URI")
	fs.StringVar(&format, "format", "pretty", "format: pretty|json")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if uri == "" {
		fmt.Fprintln(os.Stderr, "missing --uri")
		return 2
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

	s, err := lib.Get(context.Background(), uri)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, cliutil.SongJSON(s))
	} else {
		cliutil.PrintSong(os.Stdout, s)
	}
	return 0
}
