package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/render"
	"github.com/bloodmagesoftware/floorplan/share"
)

// Config holds what goes into a bundle.
type Config struct {
	Plan      *plan.Plan    // Plan to bundle
	Grid      grid.Settings // Grid used for the drawings and the area
	Width     int           // Minimum canvas width of the drawings
	Height    int           // Minimum canvas height of the drawings
	OutputDir string        // Directory to write the zip file to
	ShareBase string        // Message link base for summary.txt
}

// Package writes a zip with the plan file, a PNG and an SVG drawing and the share summary.
// Returns the path to the created zip file.
func Package(config Config) (string, error) {
	fmt.Println("Bundling floor plan...")

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	zipPath := filepath.Join(config.OutputDir, share.FileName(config.Plan.Name, "zip"))
	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("creating zip file: %w", err)
	}
	defer zipFile.Close()

	if err := Write(zipFile, config); err != nil {
		return "", err
	}

	fmt.Printf("✅ Bundle created: %s\n", zipPath)
	return zipPath, nil
}

// Write streams the bundle to w.
func Write(w io.Writer, config Config) error {
	p := config.Plan
	if p == nil {
		return fmt.Errorf("no plan to bundle")
	}

	var planFile bytes.Buffer
	if err := p.Encode(&planFile); err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	width, height := render.FitSize(p, config.Width, config.Height, config.Grid.Cell())
	img := render.Render(render.Frame{Plan: p, Grid: config.Grid, Width: width, Height: height})
	pngData, err := share.EncodePNG(img)
	if err != nil {
		return err
	}
	svgData := share.SVG(p, config.Grid, config.Width, config.Height)

	summary := share.Summarize(p, config.Grid.Cell())
	text := summary.Text() + "\n\n" + share.Link(config.ShareBase, summary.Text()) + "\n"

	zipWriter := zip.NewWriter(w)
	entries := []struct {
		name string
		data []byte
	}{
		{"plan.yaml", planFile.Bytes()},
		{share.FileName(p.Name, "png"), pngData},
		{share.FileName(p.Name, "svg"), svgData},
		{"summary.txt", []byte(text)},
	}
	for _, e := range entries {
		if err := addBytesToZip(zipWriter, e.name, e.data); err != nil {
			return fmt.Errorf("adding %s to zip: %w", e.name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("finishing zip: %w", err)
	}
	return nil
}

// addBytesToZip adds one in-memory file to the zip archive.
func addBytesToZip(zipWriter *zip.Writer, nameInZip string, data []byte) error {
	header := &zip.FileHeader{
		Name:   nameInZip,
		Method: zip.Deflate,
		// Fixed timestamp so equal plans give equal archives.
		Modified: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	header.SetMode(0644)

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("creating zip entry: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("writing file to zip: %w", err)
	}

	fmt.Printf("  Added: %s\n", nameInZip)
	return nil
}
