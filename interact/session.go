package interact

import (
	"strings"

	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/plan"
)

// Session is the editing state for one plan: active tool, grid settings, selection and the
// pointer interaction in progress. All methods run on the UI goroutine.
type Session struct {
	Plan *plan.Plan
	Grid grid.Settings

	// RoomType and RoomName configure the room placement tool.
	RoomType plan.RoomType
	RoomName string

	// OnChange is called after every mutation of the plan.
	OnChange func()

	tool      Tool
	selection *plan.Ref
	state     State
}

// NewSession starts an idle session with the select tool active.
func NewSession(p *plan.Plan, settings grid.Settings) *Session {
	if p == nil {
		p = plan.New()
	}
	return &Session{
		Plan:     p,
		Grid:     settings,
		RoomType: plan.RoomLiving,
		tool:     Select,
		state:    Idle{},
	}
}

func (s *Session) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

func (s *Session) snap(raw plan.Vec2) plan.Vec2 {
	x, y := grid.SnapXY(raw.X, raw.Y, s.Grid.Cell())
	return plan.Vec2{X: x, Y: y}
}

func (s *Session) Tool() Tool {
	return s.tool
}

// SetTool switches tools. A wall that has only its first endpoint is dropped.
func (s *Session) SetTool(t Tool) {
	if _, ok := s.state.(DrawingWall); ok {
		s.state = Idle{}
	}
	s.tool = t
}

func (s *Session) State() State {
	return s.state
}

// Selection returns the selected element, if any.
func (s *Session) Selection() (plan.Ref, bool) {
	if s.selection == nil {
		return plan.Ref{}, false
	}
	return *s.selection, true
}

// Select selects an existing element. This is how walls get selected, from the wall list.
func (s *Session) Select(ref plan.Ref) bool {
	if !s.Plan.Exists(ref) {
		return false
	}
	switch s.state.(type) {
	case Dragging, Resizing:
		s.state = Idle{}
	}
	s.selection = &ref
	return true
}

func (s *Session) ClearSelection() {
	s.selection = nil
}

// PreviewWall returns the wall being drawn, if the first click already happened.
func (s *Session) PreviewWall() (plan.Wall, bool) {
	dw, ok := s.state.(DrawingWall)
	if !ok {
		return plan.Wall{}, false
	}
	return plan.Wall{A: dw.Start, B: dw.Current}, true
}

// CancelWall abandons a wall that has only its first endpoint.
func (s *Session) CancelWall() {
	if _, ok := s.state.(DrawingWall); ok {
		s.state = Idle{}
	}
}

// PointerDown handles a press at raw scene coordinates.
func (s *Session) PointerDown(raw plan.Vec2) {
	p := s.snap(raw)

	if s.tool == Wall {
		if dw, ok := s.state.(DrawingWall); ok {
			s.Plan.AddWall(dw.Start, p)
			s.state = Idle{}
			s.changed()
			return
		}
		s.state = DrawingWall{Start: p, Current: p}
		return
	}

	if sel, ok := s.Selection(); ok {
		if rect, ok := s.Plan.Bounds(sel); ok {
			h := plan.HandleAt(p, rect)
			if h == plan.HandleNone {
				// Corners of elements placed on a coarser grid may not be reachable by snapped points.
				h = plan.HandleAt(raw, rect)
			}
			if h != plan.HandleNone {
				s.state = Resizing{Handle: h, Start: p, Origin: rect}
				return
			}
		}
	}

	if ref, ok := s.Plan.ElementAt(p); ok {
		rect, _ := s.Plan.Bounds(ref)
		s.selection = &ref
		s.state = Dragging{Offset: p.Sub(plan.Vec2{X: rect.X, Y: rect.Y})}
		return
	}

	s.selection = nil
	switch {
	case s.tool == PlaceRoom:
		s.Plan.AddRoom(p, s.RoomType, strings.TrimSpace(s.RoomName))
		s.changed()
	default:
		if ft, ok := s.tool.Furniture(); ok {
			s.Plan.AddFurniture(p, ft)
			s.changed()
		}
	}
}

// PointerMove handles pointer motion, with or without a button held.
func (s *Session) PointerMove(raw plan.Vec2) {
	p := s.snap(raw)

	switch st := s.state.(type) {
	case Dragging:
		sel, ok := s.Selection()
		if !ok {
			s.state = Idle{}
			return
		}
		if s.Plan.Move(sel, p.Sub(st.Offset)) {
			s.changed()
		}
	case Resizing:
		sel, ok := s.Selection()
		if !ok {
			s.state = Idle{}
			return
		}
		rect := resizeRect(st.Origin, st.Handle, p.Sub(st.Start), sel.Kind.MinSize())
		if s.Plan.SetRect(sel, rect) {
			s.changed()
		}
	case DrawingWall:
		st.Current = p
		s.state = st
	}
}

// PointerUp ends a drag or resize. Wall drawing continues until the second click.
func (s *Session) PointerUp() {
	switch s.state.(type) {
	case Dragging, Resizing:
		s.state = Idle{}
	}
}

// PointerLeave is treated like a release.
func (s *Session) PointerLeave() {
	s.PointerUp()
}

// Rotate turns the selected furniture item a quarter turn.
func (s *Session) Rotate() bool {
	sel, ok := s.Selection()
	if !ok || sel.Kind != plan.KindFurniture {
		return false
	}
	if !s.Plan.Rotate(sel.ID) {
		return false
	}
	s.changed()
	return true
}

// Enlarge grows the selected room or furniture item by one step on both axes.
func (s *Session) Enlarge() bool {
	return s.grow(plan.ResizeStep)
}

// Shrink reduces the selected room or furniture item by one step, down to its minimum size.
func (s *Session) Shrink() bool {
	return s.grow(-plan.ResizeStep)
}

func (s *Session) grow(delta float64) bool {
	sel, ok := s.Selection()
	if !ok {
		return false
	}
	if !s.Plan.Grow(sel, delta) {
		return false
	}
	s.changed()
	return true
}

// Delete removes the selected element and clears the selection.
func (s *Session) Delete() bool {
	sel, ok := s.Selection()
	if !ok {
		return false
	}
	s.selection = nil
	switch s.state.(type) {
	case Dragging, Resizing:
		s.state = Idle{}
	}
	if !s.Plan.Remove(sel) {
		return false
	}
	s.changed()
	return true
}

// Reset clears every collection, the project name, the selection and any interaction in progress.
func (s *Session) Reset() {
	s.Plan.Reset()
	s.selection = nil
	s.state = Idle{}
	s.changed()
}
