package share

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/render"
)

// SVG draws the plan as a vector image of at least width×height, grown to fit every element.
// It follows the raster drawing order without selection or preview.
func SVG(p *plan.Plan, settings grid.Settings, width, height int) []byte {
	if width <= 0 {
		width = render.DefaultWidth
	}
	if height <= 0 {
		height = render.DefaultHeight
	}
	width, height = render.FitSize(p, width, height, settings.Cell())
	cell := settings.Cell()

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Title(Slug(p.Name))
	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	if settings.Visible {
		step := int(cell)
		canvas.Gstyle("stroke:#e0e0e0;stroke-width:1")
		for x := 0; x <= width; x += step {
			canvas.Line(x, 0, x, height)
		}
		for y := 0; y <= height; y += step {
			canvas.Line(0, y, width, y)
		}
		canvas.Gend()
	}

	for _, r := range p.Rooms {
		x, y, w, h := ints(r.Position, r.Size)
		canvas.Rect(x, y, w, h, fmt.Sprintf("fill:%s;stroke:#333333;stroke-width:2", hex(r.Type.Color())))
		canvas.Text(x+w/2, y+h/2-4, r.Label, "text-anchor:middle;font-size:14px;fill:#1f2937")
		canvas.Text(x+w/2, y+h/2+14, render.Dimensions(r.Size, cell), "text-anchor:middle;font-size:11px;fill:#4b5563")
	}

	for _, w := range p.Walls {
		canvas.Line(round(w.A.X), round(w.A.Y), round(w.B.X), round(w.B.Y),
			"stroke:#374151;stroke-width:6;stroke-linecap:round")
	}

	for _, f := range p.Furniture {
		x, y, w, h := ints(f.Position, f.Size)
		cx, cy := x+w/2, y+h/2
		// Draw unrotated around the centre so the turned shape lands on the stored box.
		nw, nh := w, h
		if f.Rotation%180 != 0 {
			nw, nh = h, w
		}
		canvas.Gtransform(fmt.Sprintf("rotate(%d %d %d)", f.Rotation, cx, cy))
		canvas.Rect(cx-nw/2, cy-nh/2, nw, nh, fmt.Sprintf("fill:%s;stroke:#333333;stroke-width:2", hex(f.Type.Color())))
		canvas.Gend()
		canvas.Text(cx, y+h+14, f.Type.DisplayName(), "text-anchor:middle;font-size:11px;fill:#1f2937")
	}

	canvas.End()
	return buf.Bytes()
}

func round(v float64) int {
	return int(math.Round(v))
}

func ints(pos plan.Vec2, size plan.Size) (int, int, int, int) {
	return round(pos.X), round(pos.Y), round(size.W), round(size.H)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
