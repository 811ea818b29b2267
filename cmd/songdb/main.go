package main

import (
	"os"

	"github.com/nonibytes/songdb/internal/cli"

	// sqlite drivers; selected by --sqlite-driver
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
