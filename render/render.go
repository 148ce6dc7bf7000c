package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

var (
	backgroundColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	gridColor       = color.NRGBA{R: 224, G: 224, B: 224, A: 255}
	outlineColor    = color.NRGBA{R: 51, G: 51, B: 51, A: 255}
	selectedColor   = color.NRGBA{R: 37, G: 99, B: 235, A: 255}
	textColor       = color.NRGBA{R: 31, G: 41, B: 55, A: 255}
	dimensionColor  = color.NRGBA{R: 75, G: 85, B: 99, A: 255}
	wallColor       = color.NRGBA{R: 55, G: 65, B: 81, A: 255}
	previewColor    = color.NRGBA{R: 107, G: 114, B: 128, A: 255}
	handleFill      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	outlineWidth  = 2
	selectedWidth = 3
	wallWidth     = 6
	previewWidth  = 4
)

// Frame is everything a single draw depends on.
type Frame struct {
	Plan      *plan.Plan
	Selection *plan.Ref
	// Preview is the wall being drawn, if any.
	Preview *plan.Wall
	Grid    grid.Settings
	Width   int
	Height  int
}

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
)

func labelFont() *truetype.Font {
	fontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("parsing embedded font: %v", err))
		}
		fontTTF = f
	})
	return fontTTF
}

type faces struct {
	label     font.Face
	dimension font.Face
}

// Faces keep glyph caches and are not safe for concurrent use, so every call gets its own.
func newFaces() faces {
	f := labelFont()
	return faces{
		label:     truetype.NewFace(f, &truetype.Options{Size: 14}),
		dimension: truetype.NewFace(f, &truetype.Options{Size: 11}),
	}
}

// Render draws the frame. The result only depends on the frame, so equal frames give equal pixels.
func Render(f Frame) *image.RGBA {
	width, height := f.Width, f.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	p := f.Plan
	if p == nil {
		p = plan.New()
	}

	dc := gg.NewContext(width, height)
	r := renderer{dc: dc, frame: f, plan: p, cell: f.Grid.Cell(), faces: newFaces()}

	dc.SetColor(backgroundColor)
	dc.Clear()

	if f.Grid.Visible {
		r.drawGrid(width, height)
	}
	for i := range p.Rooms {
		r.drawRoom(&p.Rooms[i])
	}
	for i := range p.Walls {
		r.drawWall(&p.Walls[i])
	}
	if f.Preview != nil {
		r.drawPreview(f.Preview)
	}
	for i := range p.Furniture {
		r.drawFurniture(&p.Furniture[i])
	}

	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return img
}

type renderer struct {
	dc    *gg.Context
	frame Frame
	plan  *plan.Plan
	cell  float64
	faces faces
}

func (r *renderer) selected(kind plan.Kind, id string) bool {
	sel := r.frame.Selection
	return sel != nil && sel.Kind == kind && sel.ID == id
}

func (r *renderer) drawGrid(width, height int) {
	dc := r.dc
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	for x := 0.0; x <= float64(width); x += r.cell {
		dc.DrawLine(x+0.5, 0, x+0.5, float64(height))
	}
	for y := 0.0; y <= float64(height); y += r.cell {
		dc.DrawLine(0, y+0.5, float64(width), y+0.5)
	}
	dc.Stroke()
}

func (r *renderer) setOutline(selected bool) {
	if selected {
		r.dc.SetColor(selectedColor)
		r.dc.SetLineWidth(selectedWidth)
		return
	}
	r.dc.SetColor(outlineColor)
	r.dc.SetLineWidth(outlineWidth)
}

func (r *renderer) drawRoom(room *plan.Room) {
	dc := r.dc
	box := plan.RectOf(room.Position, room.Size)
	selected := r.selected(plan.KindRoom, room.ID)

	dc.DrawRectangle(box.X, box.Y, box.W, box.H)
	dc.SetColor(room.Type.Color())
	dc.FillPreserve()
	r.setOutline(selected)
	dc.Stroke()

	cx, cy := box.X+box.W/2, box.Y+box.H/2
	dc.SetFontFace(r.faces.label)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(room.Label, cx, cy-8, 0.5, 0.5)

	dc.SetFontFace(r.faces.dimension)
	dc.SetColor(dimensionColor)
	dc.DrawStringAnchored(Dimensions(room.Size, r.cell), cx, cy+10, 0.5, 0.5)

	if selected {
		r.drawHandles(box)
	}
}

// Dimensions formats a size in grid cells, e.g. "20 × 20".
func Dimensions(size plan.Size, cell float64) string {
	if cell <= 0 {
		cell = grid.DefaultCellSize
	}
	return fmt.Sprintf("%g × %g", size.W/cell, size.H/cell)
}

func (r *renderer) drawWall(w *plan.Wall) {
	dc := r.dc
	if r.selected(plan.KindWall, w.ID) {
		dc.SetColor(selectedColor)
	} else {
		dc.SetColor(wallColor)
	}
	dc.SetLineWidth(wallWidth)
	dc.SetLineCapRound()
	dc.DrawLine(w.A.X, w.A.Y, w.B.X, w.B.Y)
	dc.Stroke()
}

func (r *renderer) drawPreview(w *plan.Wall) {
	dc := r.dc
	dc.SetColor(previewColor)
	dc.SetLineWidth(previewWidth)
	dc.SetLineCapRound()
	dc.SetDash(8, 6)
	dc.DrawLine(w.A.X, w.A.Y, w.B.X, w.B.Y)
	dc.Stroke()
	dc.SetDash()
}

func (r *renderer) drawFurniture(item *plan.FurnitureItem) {
	dc := r.dc
	box := plan.RectOf(item.Position, item.Size)
	selected := r.selected(plan.KindFurniture, item.ID)
	cx, cy := box.X+box.W/2, box.Y+box.H/2

	// Stored sizes are already swapped for quarter turns; draw in the unrotated
	// orientation so the rotated shape covers exactly the stored box.
	w, h := item.Size.W, item.Size.H
	if item.Rotation%180 != 0 {
		w, h = h, w
	}

	dc.Push()
	dc.Translate(cx, cy)
	dc.Rotate(gg.Radians(float64(item.Rotation)))
	drawShape(dc, item.Type, w, h)
	dc.DrawRectangle(-w/2, -h/2, w, h)
	r.setOutline(selected)
	dc.Stroke()
	dc.Pop()

	dc.SetFontFace(r.faces.dimension)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(item.Type.DisplayName(), cx, box.Bottom()+10, 0.5, 0.5)

	if selected {
		r.drawHandles(box)
	}
}

// drawShape fills the per-type figure of a w×h item centred on the origin.
func drawShape(dc *gg.Context, t plan.FurnitureType, w, h float64) {
	base := t.Color()
	detail := shade(base, 0.75)
	left, top := -w/2, -h/2

	dc.SetColor(base)
	switch t {
	case plan.FurnitureSofa:
		dc.DrawRectangle(left, top, w, h)
		dc.Fill()
		dc.SetColor(detail)
		back := h * 0.25
		arm := w * 0.1
		dc.DrawRectangle(left, top, w, back)
		dc.DrawRectangle(left, top, arm, h)
		dc.DrawRectangle(left+w-arm, top, arm, h)
		dc.Fill()
	case plan.FurnitureBed:
		dc.DrawRectangle(left, top, w, h)
		dc.Fill()
		dc.SetColor(color.NRGBA{R: 245, G: 245, B: 245, A: 255})
		pad := w * 0.08
		pw := (w - 3*pad) / 2
		ph := h * 0.15
		dc.DrawRoundedRectangle(left+pad, top+pad, pw, ph, 4)
		dc.DrawRoundedRectangle(left+2*pad+pw, top+pad, pw, ph, 4)
		dc.Fill()
		dc.SetColor(detail)
		dc.SetLineWidth(1)
		dc.DrawLine(left, top+h*0.35, left+w, top+h*0.35)
		dc.Stroke()
	case plan.FurnitureTable:
		dc.DrawRoundedRectangle(left, top, w, h, 6)
		dc.Fill()
		dc.SetColor(detail)
		dc.DrawEllipse(0, 0, w*0.3, h*0.3)
		dc.Fill()
	case plan.FurnitureChair:
		dc.DrawRectangle(left, top, w, h)
		dc.Fill()
		dc.SetColor(detail)
		dc.DrawRectangle(left, top, w, h*0.25)
		dc.Fill()
	case plan.FurnitureDoor:
		dc.DrawRectangle(left, top, w, h)
		dc.Fill()
		dc.SetColor(detail)
		dc.SetLineWidth(1)
		dc.DrawArc(left, top+h, w, -gg.Radians(90), 0)
		dc.Stroke()
	case plan.FurnitureWindow:
		dc.DrawRectangle(left, top, w, h)
		dc.Fill()
		dc.SetColor(detail)
		dc.SetLineWidth(1)
		dc.DrawLine(left, 0, left+w, 0)
		dc.DrawLine(0, top, 0, top+h)
		dc.Stroke()
	default:
		dc.DrawRectangle(left, top, w, h)
		dc.Fill()
	}
}

func shade(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

func (r *renderer) drawHandles(box plan.Rect) {
	dc := r.dc
	dc.SetLineWidth(1)
	for _, h := range box.Handles() {
		dc.DrawRectangle(h.X, h.Y, h.W, h.H)
		dc.SetColor(handleFill)
		dc.FillPreserve()
		dc.SetColor(selectedColor)
		dc.Stroke()
	}
}

// FitSize returns a canvas size of at least minW×minH that also covers every element of p plus margin.
// Sides saturate at math.MaxInt32; callers bound the result before allocating.
func FitSize(p *plan.Plan, minW, minH int, margin float64) (int, int) {
	maxX, maxY := float64(minW), float64(minH)
	grow := func(x, y float64) {
		maxX = math.Max(maxX, x+margin)
		maxY = math.Max(maxY, y+margin)
	}
	if p != nil {
		for _, r := range p.Rooms {
			grow(r.Position.X+r.Size.W, r.Position.Y+r.Size.H)
		}
		for _, f := range p.Furniture {
			grow(f.Position.X+f.Size.W, f.Position.Y+f.Size.H)
		}
		for _, w := range p.Walls {
			grow(math.Max(w.A.X, w.B.X), math.Max(w.A.Y, w.B.Y))
		}
	}
	return int(math.Ceil(min(maxX, math.MaxInt32))), int(math.Ceil(min(maxY, math.MaxInt32)))
}
