package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/nonibytes/songdb/internal/cli/commands"
	"github.com/nonibytes/songdb/internal/cliopt"
	"github.com/nonibytes/songdb/internal/config"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := flag.NewFlagSet("songdb", flag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	if g.ConfigPath != "" {
		cfg, err := config.Load(g.ConfigPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		g.ApplyConfig(cfg)
		// flags win over the config file
		_ = globalFS.Parse(argv)
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "init":
		return commands.RunInit(g, rest)
	case "add":
		return commands.RunAdd(g, rest)
	case "get":
		return commands.RunGet(g, rest)
	case "delete":
		return commands.RunDelete(g, rest)
	case "search":
		return commands.RunSearch(g, rest)
	case "count":
		return commands.RunCount(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
