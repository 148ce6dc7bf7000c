package cmd

import (
	"github.com/bloodmagesoftware/floorplan/formatter"
	"github.com/bloodmagesoftware/floorplan/project"
	"github.com/spf13/cobra"
)

var (
	fmtCheck bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Format plan files",
	Long:  `Rewrites every plan file in the plans directory in canonical form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := project.Load()
		if err != nil {
			return err
		}

		plansDir := config.Path(config.PlansDir)

		if fmtCheck {
			return formatter.Check(cmd.OutOrStdout(), plansDir)
		}

		return formatter.Format(cmd.OutOrStdout(), plansDir)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Check formatting without modifying files")
}
