package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `songdb — searchable song library with a filter expression language

USAGE
  songdb [global flags] <command> [args]

GLOBAL FLAGS
  --config <songdb.toml>
  --backend sqlite|postgres
  --sqlite-path <file.db>
  --sqlite-driver sqlite|sqlite3
  --pg-dsn <dsn>
  --pg-schema <name>

COMMANDS
  init
  add
  get
  delete
  search
  count

Filter arguments for "search" are expressions like
  '(artist == "Björk")'  '((base "A") AND (title contains "Rain"))'
or flat pairs like
  artist "Björk"

Run "songdb <command> --help" for details.`)
}
