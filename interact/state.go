package interact

import "github.com/bloodmagesoftware/floorplan/plan"

// State is the pointer interaction state. Exactly one of Idle, Dragging, Resizing or DrawingWall.
type State interface {
	isState()
}

type (
	Idle struct{}

	// Dragging moves the selected element. Offset is the press point relative to the element's position.
	Dragging struct {
		Offset plan.Vec2
	}

	// Resizing drags one corner of the selected element. The opposite corner stays put.
	// Each move recomputes the box from Origin and the total pointer movement since Start.
	Resizing struct {
		Handle plan.Handle
		// Start is the snapped press point.
		Start plan.Vec2
		// Origin is the element's box when the press happened.
		Origin plan.Rect
	}

	// DrawingWall holds a wall between its first and second click.
	DrawingWall struct {
		Start   plan.Vec2
		Current plan.Vec2
	}
)

func (Idle) isState()        {}
func (Dragging) isState()    {}
func (Resizing) isState()    {}
func (DrawingWall) isState() {}

// resizeRect applies the corner rules for handle h to r using the total pointer delta d.
// When a side would fall below floor it is held at floor against the anchor corner.
func resizeRect(r plan.Rect, h plan.Handle, d plan.Vec2, floor float64) plan.Rect {
	out := r
	switch h {
	case plan.HandleNW:
		out.X += d.X
		out.Y += d.Y
		out.W -= d.X
		out.H -= d.Y
	case plan.HandleNE:
		out.Y += d.Y
		out.W += d.X
		out.H -= d.Y
	case plan.HandleSW:
		out.X += d.X
		out.W -= d.X
		out.H += d.Y
	case plan.HandleSE:
		out.W += d.X
		out.H += d.Y
	}

	if out.W < floor {
		if h == plan.HandleNW || h == plan.HandleSW {
			out.X = r.Right() - floor
		}
		out.W = floor
	}
	if out.H < floor {
		if h == plan.HandleNW || h == plan.HandleNE {
			out.Y = r.Bottom() - floor
		}
		out.H = floor
	}
	return out
}
