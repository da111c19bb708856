// Package sources lists the registered statement sources.
package sources

import (
	"fmt"

	"github.com/spf13/cobra"

	"card-ingest/cmd/common"
	"card-ingest/cmd/root"
)

// Cmd represents the sources command.
var Cmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported source types",
	Run: func(cmd *cobra.Command, args []string) {
		registry := common.NewRegistry(root.Cfg)
		for _, tag := range registry.Names() {
			kind := "file"
			if requiresFile, err := registry.RequiresFile(tag); err == nil && !requiresFile {
				kind = "online"
			}
			fmt.Printf("%-15s %-7s %s\n", tag, kind, registry.Describe(tag))
		}
	},
}
