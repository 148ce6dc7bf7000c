package plan

import (
	"fmt"

	"github.com/bloodmagesoftware/floorplan/grid"
)

// Issue is a single problem found by Validate.
type Issue struct {
	Ref     Ref
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Ref.Kind, i.Ref.ID, i.Message)
}

// Validate checks the invariants the editor maintains: unique ids per collection, minimum sizes,
// grid aligned positions, quarter-turn rotations and known element types.
// Plans written by hand or by older tools are the usual source of issues.
func (p *Plan) Validate() []Issue {
	var issues []Issue
	cell := float64(p.GridSize)
	if cell <= 0 {
		cell = 20
	}

	add := func(kind Kind, id, format string, args ...any) {
		issues = append(issues, Issue{Ref: Ref{Kind: kind, ID: id}, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool)
	for _, r := range p.Rooms {
		if r.ID == "" {
			add(KindRoom, r.ID, "missing id")
		} else if seen[r.ID] {
			add(KindRoom, r.ID, "duplicate id")
		}
		seen[r.ID] = true

		if !r.Type.Valid() {
			add(KindRoom, r.ID, "unknown room type %q", r.Type)
		}
		if r.Size.W < MinRoomSize || r.Size.H < MinRoomSize {
			add(KindRoom, r.ID, "size %vx%v below minimum %d", r.Size.W, r.Size.H, MinRoomSize)
		}
		if !onGrid(r.Position, cell) {
			add(KindRoom, r.ID, "position (%v, %v) is off the %v grid", r.Position.X, r.Position.Y, cell)
		}
	}

	seen = make(map[string]bool)
	for _, f := range p.Furniture {
		if f.ID == "" {
			add(KindFurniture, f.ID, "missing id")
		} else if seen[f.ID] {
			add(KindFurniture, f.ID, "duplicate id")
		}
		seen[f.ID] = true

		if !f.Type.Valid() {
			add(KindFurniture, f.ID, "unknown furniture type %q", f.Type)
		}
		if f.Size.W < MinFurnitureSize || f.Size.H < MinFurnitureSize {
			add(KindFurniture, f.ID, "size %vx%v below minimum %d", f.Size.W, f.Size.H, MinFurnitureSize)
		}
		if f.Rotation%90 != 0 || f.Rotation < 0 || f.Rotation >= 360 {
			add(KindFurniture, f.ID, "rotation %d is not a quarter turn", f.Rotation)
		}
		if !onGrid(f.Position, cell) {
			add(KindFurniture, f.ID, "position (%v, %v) is off the %v grid", f.Position.X, f.Position.Y, cell)
		}
	}

	seen = make(map[string]bool)
	for _, w := range p.Walls {
		if w.ID == "" {
			add(KindWall, w.ID, "missing id")
		} else if seen[w.ID] {
			add(KindWall, w.ID, "duplicate id")
		}
		seen[w.ID] = true

		if !onGrid(w.A, cell) || !onGrid(w.B, cell) {
			add(KindWall, w.ID, "endpoints are off the %v grid", cell)
		}
	}

	return issues
}

func onGrid(v Vec2, cell float64) bool {
	return grid.Aligned(v.X, cell) && grid.Aligned(v.Y, cell)
}
