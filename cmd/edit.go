package cmd

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/widget/material"
	"github.com/bloodmagesoftware/floorplan/editor"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/project"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit {plan-name}",
	Short: "Edit the specified floor plan",
	Long:  `Creates a new plan file if it doesn't exist, then opens the visual editor for that plan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return cmd.Help()
		}

		config, err := project.Load()
		if err != nil {
			return err
		}

		planFilePath := planPath(config, args[0])
		p := plan.New()
		if _, err := os.Stat(planFilePath); err == nil {
			log.Printf("loading plan %s", planFilePath)
			if err := p.Load(planFilePath); err != nil {
				return err
			}
			log.Printf("loaded plan %s", planFilePath)
		} else {
			p.Name = config.Name
			p.GridSize = config.Grid().CellSize
		}

		go func() {
			window := new(app.Window)
			window.Option(app.Title("Floor Plan Editor"))
			window.Perform(system.ActionMaximize)
			err := run(window, planFilePath, config, p)
			if err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()

		return nil
	},
}

func run(window *app.Window, planFilePath string, config *project.Config, p *plan.Plan) error {
	theme := material.NewTheme()
	ed := editor.NewEditor(theme, planFilePath, config, p)

	var ops op.Ops
	for {
		switch e := window.Event().(type) {
		case app.DestroyEvent:
			if ed.HasUnsavedChanges() && !ed.ShouldClose() {
				log.Printf("warning: closing %s with unsaved changes", planFilePath)
			}
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ed.Layout(gtx)
			e.Frame(gtx.Ops)

			if ed.ShouldClose() {
				window.Perform(system.ActionClose)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
}
