package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/bloodmagesoftware/floorplan/linter"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/project"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate plan files",
	Long:  `Checks every plan file for undersized elements, bad rotations and duplicate ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := project.Load()
		if err != nil {
			return err
		}

		return linter.Lint(cmd.OutOrStdout(), config.Path(config.PlansDir))
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

// loadPlan reads the named plan of the project around the working directory.
// A name ending in .yaml or .yml is taken as a file path instead.
func loadPlan(name string) (*project.Config, *plan.Plan, string, error) {
	config, err := project.Load()
	if err != nil {
		return nil, nil, "", err
	}

	path := planPath(config, name)
	p := plan.New()
	if err := p.Load(path); err != nil {
		return nil, nil, "", fmt.Errorf("loading plan %s: %w", path, err)
	}
	return config, p, path, nil
}

func planPath(config *project.Config, name string) string {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return name
	}
	return config.PlanPath(name)
}
