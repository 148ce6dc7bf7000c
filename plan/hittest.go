package plan

// HandleSize is the edge length of the square resize handles centred on each corner.
const HandleSize = 8

// Rect is an axis-aligned box in scene space.
type Rect struct {
	X, Y, W, H float64
}

// RectOf builds a rect from a position and a size.
func RectOf(pos Vec2, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: size.W, H: size.H}
}

// Contains reports whether p lies inside r. All four edges are inclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Right and Bottom are the far edges.
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Handle names one of the four corner resize handles.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

var handleOrder = []Handle{HandleNW, HandleNE, HandleSW, HandleSE}

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	default:
		return "none"
	}
}

// Corner returns the corner of r the handle sits on.
func (r Rect) Corner(h Handle) Vec2 {
	switch h {
	case HandleNE:
		return Vec2{X: r.Right(), Y: r.Y}
	case HandleSW:
		return Vec2{X: r.X, Y: r.Bottom()}
	case HandleSE:
		return Vec2{X: r.Right(), Y: r.Bottom()}
	default:
		return Vec2{X: r.X, Y: r.Y}
	}
}

// HandleRect is the hit region of a handle.
func (r Rect) HandleRect(h Handle) Rect {
	c := r.Corner(h)
	return Rect{X: c.X - HandleSize/2, Y: c.Y - HandleSize/2, W: HandleSize, H: HandleSize}
}

// Handles returns the handle hit regions in test order (nw, ne, sw, se).
func (r Rect) Handles() []Rect {
	out := make([]Rect, len(handleOrder))
	for i, h := range handleOrder {
		out[i] = r.HandleRect(h)
	}
	return out
}

// HandleAt returns the first corner handle of r that contains p.
func HandleAt(p Vec2, r Rect) Handle {
	for _, h := range handleOrder {
		if r.HandleRect(h).Contains(p) {
			return h
		}
	}
	return HandleNone
}

// ElementAt finds the topmost room or furniture item under p.
// Furniture wins over rooms, and within a collection later placements win.
// Walls are not hit-tested on the canvas; they are selected from the wall list.
func (p *Plan) ElementAt(pt Vec2) (Ref, bool) {
	for i := len(p.Furniture) - 1; i >= 0; i-- {
		f := p.Furniture[i]
		if RectOf(f.Position, f.Size).Contains(pt) {
			return Ref{Kind: KindFurniture, ID: f.ID}, true
		}
	}
	for i := len(p.Rooms) - 1; i >= 0; i-- {
		r := p.Rooms[i]
		if RectOf(r.Position, r.Size).Contains(pt) {
			return Ref{Kind: KindRoom, ID: r.ID}, true
		}
	}
	return Ref{}, false
}
