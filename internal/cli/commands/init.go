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

func RunInit(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	adapter, err := cliutil.NewAdapter(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	lib, err := songdb.Create(context.Background(), adapter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer lib.Close()

	fmt.Fprintf(os.Stdout, "initialized %s library\n", adapter.Backend())
	return 0
}
