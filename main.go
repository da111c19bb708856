package main

import (
	"fmt"
	"os"

	"card-ingest/cmd/ledger"
	"card-ingest/cmd/load"
	"card-ingest/cmd/migrate"
	"card-ingest/cmd/root"
	"card-ingest/cmd/sources"
)

func init() {
	root.Cmd.AddCommand(load.Cmd)
	root.Cmd.AddCommand(ledger.Cmd)
	root.Cmd.AddCommand(sources.Cmd)
	root.Cmd.AddCommand(migrate.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
