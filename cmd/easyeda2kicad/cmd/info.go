package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.kicad_mod>",
	Short: "Show footprint information",
	Long:  `Reads a KiCad footprint and prints its attributes, item counts and pads.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	fp, err := footprint.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing footprint: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Footprint: %s\n", fp.Name)
	fmt.Fprintf(w, "  Layer: %s\n", fp.Layer)
	if fp.Attribute != "" {
		fmt.Fprintf(w, "  Attribute: %s\n", fp.Attribute)
	}
	if fp.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", fp.Description)
	}

	bbox := fp.GetBoundingBox()
	if !bbox.IsEmpty() {
		fmt.Fprintf(w, "  Size: %.2f x %.2f mm\n", bbox.Width(), bbox.Height())
		fmt.Fprintf(w, "  Center: (%.2f, %.2f) mm\n", bbox.Center().X, bbox.Center().Y)
	}

	counts := fp.CountByKind()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	fmt.Fprintf(w, "\nItems:\n")
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-10s %4d\n", k, counts[k])
	}

	pads := fp.Pads()
	fmt.Fprintf(w, "\nPads (%d):\n", len(pads))
	for _, pad := range pads {
		fmt.Fprintf(w, "  Pad %-4s: %s %s %.2fx%.2f mm at (%.2f, %.2f)",
			pad.Number, pad.Type, pad.Shape,
			pad.Size.Width, pad.Size.Height,
			pad.Position.X, pad.Position.Y)
		if pad.Type == footprint.PadThroughHole {
			fmt.Fprintf(w, " drill %.2f", pad.Drill)
		}
		fmt.Fprintln(w)
	}

	for _, m := range fp.Models() {
		fmt.Fprintf(w, "\nModel: %s\n", m.Path)
	}
	return nil
}
