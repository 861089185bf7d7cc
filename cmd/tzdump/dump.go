package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/tzgo/zoneinfo/tzcook"
	"github.com/tzgo/zoneinfo/tzif"
)

// newDumpCommand creates the `tzdump dump` command.
func newDumpCommand() *cobra.Command {
	var (
		format   string
		noLimits bool
	)
	cmd := &cobra.Command{
		Use:   "dump <file|zone>",
		Short: "Print the cooked timezone model of a zoneinfo file",
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
			data, err := tzif.Parse(buf, limits)
			if err != nil {
				return err
			}
			model, err := tzcook.Cook(data)
			if err != nil {
				return err
			}
			switch format {
			case "text":
				printModel(cmd.OutOrStdout(), model)
				return nil
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), model)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	cmd.Flags().BoolVar(&noLimits, "no-limits", false, "disable the size limit profile (trusted input only)")
	return cmd
}

func printModel(w io.Writer, m tzcook.Model) {
	printRegime(w, "      base", m.Base)

	sorted := make([]tzcook.Transition, len(m.Transitions))
	copy(sorted, m.Transitions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	for _, t := range sorted {
		printRegime(w, fmt.Sprintf("%10d", t.Timestamp), t.Type)
	}
	for _, ls := range m.LeapSeconds {
		fmt.Fprintf(w, "leap %10d: count:%d\n", ls.Timestamp, ls.Count)
	}
}

func printRegime(w io.Writer, label string, t *tzcook.LocalTimeType) {
	fmt.Fprintf(w, "%s: name:%-6s offset:%6d DST:%-5v type:%s\n", label, t.Name, t.Offset, t.IsDST, t.Kind)
}

func writeYAML(w io.Writer, m tzcook.Model) error {
	type regime struct {
		Name   string `yaml:"name"`
		Offset int64  `yaml:"offset"`
		DST    bool   `yaml:"dst"`
		Kind   string `yaml:"kind"`
	}
	type transition struct {
		Timestamp int64  `yaml:"timestamp"`
		Regime    regime `yaml:"regime"`
	}
	type leap struct {
		Timestamp int64 `yaml:"timestamp"`
		Count     int32 `yaml:"count"`
	}
	type doc struct {
		Base        regime       `yaml:"base"`
		Transitions []transition `yaml:"transitions,omitempty"`
		LeapSeconds []leap       `yaml:"leapSeconds,omitempty"`
	}

	conv := func(t *tzcook.LocalTimeType) regime {
		return regime{Name: t.Name, Offset: t.Offset, DST: t.IsDST, Kind: t.Kind.String()}
	}
	d := doc{Base: conv(m.Base)}
	for _, t := range m.Transitions {
		d.Transitions = append(d.Transitions, transition{Timestamp: t.Timestamp, Regime: conv(t.Type)})
	}
	for _, ls := range m.LeapSeconds {
		d.LeapSeconds = append(d.LeapSeconds, leap{Timestamp: ls.Timestamp, Count: ls.Count})
	}

	out, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
