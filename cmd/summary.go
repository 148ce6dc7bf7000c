package cmd

import (
	"fmt"

	"github.com/bloodmagesoftware/floorplan/share"
	"github.com/spf13/cobra"
)

var (
	summaryOpen bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary {plan-name}",
	Short: "Print the share message of a floor plan",
	Long:  `Prints the plan summary and the message link. With --open the link is handed to the desktop.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, p, _, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		settings := config.Grid()
		if p.GridSize != 0 {
			settings = settings.WithCellSize(p.GridSize)
		}
		summary := share.Summarize(p, settings.Cell())
		text := summary.Text()
		link := share.Link(config.ShareBase, text)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, text)
		fmt.Fprintf(out, "Furniture: %d\nWalls: %d\n", summary.Furniture, summary.Walls)
		fmt.Fprintln(out, link)

		if summaryOpen {
			return share.Open(link)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryOpen, "open", false, "Open the share link")
}
