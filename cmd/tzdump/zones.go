package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newZonesCommand creates the `tzdump zones` command.
func newZonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the zones available in the local zoneinfo database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zones, err := source().Zones()
			if err != nil {
				return err
			}
			for _, z := range zones {
				fmt.Fprintln(cmd.OutOrStdout(), z)
			}
			return nil
		},
	}
}
