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

func RunCount(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("count", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
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

	n, err := lib.Count(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, n)
	return 0
}
