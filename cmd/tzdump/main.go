// Command tzdump inspects compiled zoneinfo (TZif) files.
package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// zipFlag points at a zoneinfo.zip-style archive to use instead of
// the platform zoneinfo directories.
var zipFlag string

func main() {
	root := &cobra.Command{
		Use:           "tzdump",
		Short:         "Inspect compiled zoneinfo (TZif) files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&zipFlag, "zip", "", "read zones from a zoneinfo.zip archive instead of the system database")
	root.AddCommand(
		newDumpCommand(),
		newInspectCommand(),
		newDiffCommand(),
		newZonesCommand(),
	)
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
