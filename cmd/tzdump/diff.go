package main

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/tzgo/zoneinfo/tzif"
)

// newDiffCommand creates the `tzdump diff` command.
func newDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <file|zone A> <file|zone B>",
		Short: "Compare the raw structures of two zoneinfo files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			af, err := decodeArg(args[0])
			if err != nil {
				return err
			}
			bf, err := decodeArg(args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if diff := cmp.Diff(af, bf); diff != "" {
				fmt.Fprintln(w, "files are different: -A +B")
				fmt.Fprintln(w, diff)
			} else {
				fmt.Fprintln(w, "files are identical")
			}
			return nil
		},
	}
}

func decodeArg(arg string) (tzif.File, error) {
	buf, err := loadInput(arg)
	if err != nil {
		return tzif.File{}, err
	}
	return tzif.DecodeFile(buf, tzif.SensibleLimits())
}
