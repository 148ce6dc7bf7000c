package editor

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/render"
)

// canvasFrame is the last rendered scene image and what it was rendered from.
type canvasFrame struct {
	key   frameKey
	image paint.ImageOp
	valid bool
}

type frameKey struct {
	revision      int
	selection     plan.Ref
	selected      bool
	preview       plan.Wall
	drawing       bool
	width, height int
}

// layoutCanvas renders the scene and feeds pointer input into the session
func (e *Editor) layoutCanvas(gtx layout.Context) layout.Dimensions {
	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
			paint.ColorOp{Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}}.Add(gtx.Ops)
			paint.PaintOp{}.Add(gtx.Ops)
			return layout.Dimensions{Size: gtx.Constraints.Max}
		},
		func(gtx layout.Context) layout.Dimensions {
			e.handleCanvasInput(gtx)
			e.drawScene(gtx)
			return layout.Dimensions{Size: gtx.Constraints.Max}
		},
	)
}

// sceneAt converts a canvas position to scene coordinates.
func (e *Editor) sceneAt(x, y float32) plan.Vec2 {
	return plan.Vec2{X: float64(x) - float64(e.viewOffset.X), Y: float64(y) - float64(e.viewOffset.Y)}
}

// handleCanvasInput processes pointer events for editing and panning
func (e *Editor) handleCanvasInput(gtx layout.Context) {
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, &e.frame)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &e.frame,
			Kinds:  pointer.Press | pointer.Release | pointer.Drag | pointer.Move | pointer.Leave | pointer.Cancel,
		})
		if !ok {
			break
		}

		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonSecondary {
				e.isPanning = true
				e.lastMouse = pe.Position.Round()
				continue
			}
			if pe.Buttons == pointer.ButtonPrimary {
				e.pressed = true
				e.session.PointerDown(e.sceneAt(pe.Position.X, pe.Position.Y))
			}

		case pointer.Release:
			if pe.Buttons&pointer.ButtonSecondary == 0 {
				e.isPanning = false
			}
			if e.pressed && pe.Buttons&pointer.ButtonPrimary == 0 {
				e.pressed = false
				e.session.PointerUp()
			}

		case pointer.Drag:
			if e.isPanning {
				pos := pe.Position.Round()
				e.pan(pos.Sub(e.lastMouse))
				e.lastMouse = pos
				continue
			}
			e.session.PointerMove(e.sceneAt(pe.Position.X, pe.Position.Y))

		case pointer.Move:
			e.session.PointerMove(e.sceneAt(pe.Position.X, pe.Position.Y))

		case pointer.Leave, pointer.Cancel:
			e.pressed = false
			e.isPanning = false
			e.session.PointerLeave()
		}
	}
}

// pan moves the view by d, keeping the scene origin at or left of and above the canvas origin.
func (e *Editor) pan(d image.Point) {
	e.viewOffset = e.viewOffset.Add(d)
	e.viewOffset.X = min(e.viewOffset.X, 0)
	e.viewOffset.Y = min(e.viewOffset.Y, 0)
}

func (e *Editor) currentFrameKey(width, height int) frameKey {
	key := frameKey{revision: e.revision, width: width, height: height}
	key.selection, key.selected = e.session.Selection()
	key.preview, key.drawing = e.session.PreviewWall()
	return key
}

// drawScene paints the rendered plan. The image is only rendered again when something it shows changed.
func (e *Editor) drawScene(gtx layout.Context) {
	s := e.session
	viewW := gtx.Constraints.Max.X - e.viewOffset.X
	viewH := gtx.Constraints.Max.Y - e.viewOffset.Y
	width, height := render.FitSize(s.Plan, viewW, viewH, 2*s.Grid.Cell())

	key := e.currentFrameKey(width, height)
	if !e.frame.valid || e.frame.key != key {
		f := render.Frame{Plan: s.Plan, Grid: s.Grid, Width: width, Height: height}
		if key.selected {
			f.Selection = &key.selection
		}
		if key.drawing {
			f.Preview = &key.preview
		}
		e.frame = canvasFrame{key: key, image: paint.NewImageOp(render.Render(f)), valid: true}
	}

	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	defer op.Offset(e.viewOffset).Push(gtx.Ops).Pop()
	e.frame.image.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}
