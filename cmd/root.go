package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "floorplan",
	Short: "Floorplan - Draw and share 2D floor plans",
	Long: `Floorplan is a 2D floor plan editor.
It places rooms, furniture and walls on a snapping grid, exports
plans as PNG, QOI, SVG or zip bundles, builds share messages and
serves plans over HTTP.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
