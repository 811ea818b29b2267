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

func RunDelete(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var uri string
	fs.StringVar(&uri, "uri", "", "song URI")
	fs.StringVar(&uri, "u", "", "song URI")
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

	if err := lib.Delete(context.Background(), uri); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
