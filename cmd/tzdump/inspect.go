package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tzgo/zoneinfo/tzif"
)

// newInspectCommand creates the `tzdump inspect` command.
func newInspectCommand() *cobra.Command {
	var (
		noLimits bool
		validate bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <file|zone>",
		Short: "Print the raw structures of a zoneinfo file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := loadInput(args[0])
			if err != nil {
				return err
			}
			limits := tzif.SensibleLimits()
			if noLimits {
				limits = tzif.NoLimits()
			}
			f, err := tzif.DecodeFile(buf, limits)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printHeader(w, f.Data.Header)
			printData(w, f.Data)
			if f.Has64 {
				printHeader(w, f.Header64)
				printBlock64(w, f.Block64)
				fmt.Fprintln(w, "Footer")
				fmt.Fprintln(w, "  TZString =", string(f.Footer.TZString))
			}
			if validate {
				if err := tzif.Validate(f.Data); err != nil {
					return fmt.Errorf("validation failed:\n%w", err)
				}
				fmt.Fprintln(w, "validation OK")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noLimits, "no-limits", false, "disable the size limit profile (trusted input only)")
	cmd.Flags().BoolVar(&validate, "validate", false, "check structural consistency rules after decoding")
	return cmd
}

func printHeader(w io.Writer, h tzif.Header) {
	fmt.Fprintln(w, "Header")
	fmt.Fprintln(w, "  version            =", h.Version)
	fmt.Fprintln(w, "  UT/local flags     =", h.NumUTFlags)
	fmt.Fprintln(w, "  standard flags     =", h.NumStandardFlags)
	fmt.Fprintln(w, "  leap seconds       =", h.NumLeapSeconds)
	fmt.Fprintln(w, "  transitions        =", h.NumTransitions)
	fmt.Fprintln(w, "  local time types   =", h.NumLocalTimeTypes)
	fmt.Fprintln(w, "  abbreviation chars =", h.NumAbbrChars)
}

func printData(w io.Writer, d tzif.Data) {
	fmt.Fprintln(w, "Data block (32bit)")
	fmt.Fprintf(w, "  Transitions (%d) = %+v\n", len(d.Transitions), d.Transitions)
	fmt.Fprintf(w, "  LocalTimeTypes (%d) = %+v\n", len(d.LocalTimeTypes), d.LocalTimeTypes)
	fmt.Fprintf(w, "  AbbrChars (%d) = %v\n", len(d.AbbrChars), strings.Split(string(d.AbbrChars), "\x00"))
	fmt.Fprintf(w, "  LeapSeconds (%d) = %+v\n", len(d.LeapSeconds), d.LeapSeconds)
	fmt.Fprintf(w, "  StandardFlags (%d) = %v\n", len(d.StandardFlags), d.StandardFlags)
	fmt.Fprintf(w, "  UTFlags (%d) = %v\n", len(d.UTFlags), d.UTFlags)
	fmt.Fprintln(w)
}

func printBlock64(w io.Writer, b tzif.Block64) {
	fmt.Fprintln(w, "Data block (64bit)")
	fmt.Fprintf(w, "  Transitions (%d) = %+v\n", len(b.Transitions), b.Transitions)
	fmt.Fprintf(w, "  LocalTimeTypes (%d) = %+v\n", len(b.LocalTimeTypes), b.LocalTimeTypes)
	fmt.Fprintf(w, "  AbbrChars (%d) = %v\n", len(b.AbbrChars), strings.Split(string(b.AbbrChars), "\x00"))
	fmt.Fprintf(w, "  LeapSeconds (%d) = %+v\n", len(b.LeapSeconds), b.LeapSeconds)
	fmt.Fprintf(w, "  StandardFlags (%d) = %v\n", len(b.StandardFlags), b.StandardFlags)
	fmt.Fprintf(w, "  UTFlags (%d) = %v\n", len(b.UTFlags), b.UTFlags)
	fmt.Fprintln(w)
}
