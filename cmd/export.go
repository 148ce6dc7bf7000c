package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bloodmagesoftware/floorplan/bundle"
	"github.com/bloodmagesoftware/floorplan/render"
	"github.com/bloodmagesoftware/floorplan/share"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	exportOpen   bool
)

var exportCmd = &cobra.Command{
	Use:   "export {plan-name}",
	Short: "Export a floor plan as an image or bundle",
	Long: `Draws the plan without selection and writes it to the export directory.
Formats: png, qoi, svg, or zip (plan file, PNG, SVG and share summary).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, p, _, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		settings := config.Grid()
		if p.GridSize != 0 {
			settings = settings.WithCellSize(p.GridSize)
		}
		outDir := config.Path(config.ExportDir)
		if exportOut != "" {
			outDir = exportOut
		}

		var path string
		switch exportFormat {
		case "svg":
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("creating export directory: %w", err)
			}
			path = filepath.Join(outDir, share.FileName(p.Name, "svg"))
			data := share.SVG(p, settings, config.Canvas.Width, config.Canvas.Height)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		case "zip":
			path, err = bundle.Package(bundle.Config{
				Plan:      p,
				Grid:      settings,
				Width:     config.Canvas.Width,
				Height:    config.Canvas.Height,
				OutputDir: outDir,
				ShareBase: config.ShareBase,
			})
			if err != nil {
				return err
			}
		default:
			format, err := share.ParseFormat(exportFormat)
			if err != nil {
				return err
			}
			width, height := render.FitSize(p, config.Canvas.Width, config.Canvas.Height, 2*settings.Cell())
			img := render.Render(render.Frame{Plan: p, Grid: settings, Width: width, Height: height})
			path, err = share.ExportImage(img, p.Name, outDir, format)
			if err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Exported %s\n", path)
		if exportOpen {
			return share.Open(path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "png", "Output format (png, qoi, svg, zip)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory (defaults to the project's export directory)")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "Open the exported file")
}
