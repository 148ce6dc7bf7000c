package share

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/floorplan/platform"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/xfmoulet/qoi"
)

// DefaultShareBase opens a message composer without a fixed recipient.
const DefaultShareBase = "https://wa.me/?text="

// Format is a raster export format.
type Format string

const (
	PNG Format = "png"
	QOI Format = "qoi"
)

// ParseFormat accepts "png" or "qoi".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, QOI:
		return f, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// Encode writes img to w in format f.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case QOI:
		return qoi.Encode(w, img)
	}
	return fmt.Errorf("unknown image format %q", string(f))
}

// Slug turns a project name into a file name fragment. Empty names become "design".
func Slug(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "design"
	}
	name = strings.Join(strings.Fields(name), "-")
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

// FileName is the export file name for a project, e.g. "floor-plan-my-house.png".
func FileName(projectName, ext string) string {
	return "floor-plan-" + Slug(projectName) + "." + strings.TrimPrefix(ext, ".")
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeQOI returns img as QOI bytes.
func EncodeQOI(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := qoi.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding qoi: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL embeds PNG bytes in a data URL.
func DataURL(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

// ExportImage writes img into dir under the project's export file name and returns the path.
// A nil image means there is nothing to export and is skipped without error.
func ExportImage(img image.Image, projectName, dir string, format Format) (string, error) {
	if img == nil {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(projectName, string(format)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := format.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return path, nil
}

// Summary is the read-only projection used for share messages.
type Summary struct {
	Name      string  `json:"name"`
	Rooms     int     `json:"rooms"`
	Furniture int     `json:"furniture"`
	Walls     int     `json:"walls"`
	Area      float64 `json:"area"`
}

// Summarize measures the plan's area in cells of gridSize.
func Summarize(p *plan.Plan, gridSize float64) Summary {
	c := p.Counts()
	return Summary{
		Name:      p.Name,
		Rooms:     c.Rooms,
		Furniture: c.Furniture,
		Walls:     c.Walls,
		Area:      p.TotalArea(gridSize),
	}
}

// Text is the pre-filled share message.
func (s Summary) Text() string {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = "Untitled Design"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Floor Plan: %s\n", name)
	fmt.Fprintf(&b, "Rooms: %d\n", s.Rooms)
	fmt.Fprintf(&b, "Total Area: %g sq ft\n", s.Area)
	b.WriteString("I'd like to discuss this design.")
	return b.String()
}

// Link appends the url-encoded text to base.
func Link(base, text string) string {
	if base == "" {
		base = DefaultShareBase
	}
	return base + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Open hands a share link or exported file to the desktop.
func Open(target string) error {
	return platform.Open(target)
}
