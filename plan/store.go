package plan

import (
	"math"

	"github.com/google/uuid"
)

// New creates an empty plan drawn on the default grid.
func New() *Plan {
	return &Plan{
		GridSize:  20,
		Rooms:     make([]Room, 0),
		Furniture: make([]FurnitureItem, 0),
		Walls:     make([]Wall, 0),
	}
}

func (p *Plan) nextID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return uuid.NewString()
}

// AddRoom places a default sized room with its top-left corner at pos.
// An empty label falls back to the room type's display name.
func (p *Plan) AddRoom(pos Vec2, t RoomType, label string) Room {
	if label == "" {
		label = t.DisplayName()
	}
	room := Room{
		ID:       p.nextID(),
		Position: pos,
		Size:     Size{W: DefaultRoomSize, H: DefaultRoomSize},
		Type:     t,
		Label:    label,
	}
	p.Rooms = append(p.Rooms, room)
	return room
}

// AddFurniture places an item of the given type at pos with its default size and no rotation.
func (p *Plan) AddFurniture(pos Vec2, t FurnitureType) FurnitureItem {
	item := FurnitureItem{
		ID:       p.nextID(),
		Position: pos,
		Size:     t.DefaultSize(),
		Type:     t,
	}
	p.Furniture = append(p.Furniture, item)
	return item
}

// AddWall commits a wall between a and b.
func (p *Plan) AddWall(a, b Vec2) Wall {
	wall := Wall{ID: p.nextID(), A: a, B: b}
	p.Walls = append(p.Walls, wall)
	return wall
}

func (p *Plan) roomIndex(id string) int {
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Plan) furnitureIndex(id string) int {
	for i := range p.Furniture {
		if p.Furniture[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Plan) wallIndex(id string) int {
	for i := range p.Walls {
		if p.Walls[i].ID == id {
			return i
		}
	}
	return -1
}

// Room returns the room with the given id.
func (p *Plan) Room(id string) (*Room, bool) {
	if i := p.roomIndex(id); i >= 0 {
		return &p.Rooms[i], true
	}
	return nil, false
}

// FurnitureItem returns the furniture item with the given id.
func (p *Plan) FurnitureItem(id string) (*FurnitureItem, bool) {
	if i := p.furnitureIndex(id); i >= 0 {
		return &p.Furniture[i], true
	}
	return nil, false
}

// Wall returns the wall with the given id.
func (p *Plan) Wall(id string) (*Wall, bool) {
	if i := p.wallIndex(id); i >= 0 {
		return &p.Walls[i], true
	}
	return nil, false
}

// Exists reports whether ref still points at an element.
func (p *Plan) Exists(ref Ref) bool {
	switch ref.Kind {
	case KindRoom:
		return p.roomIndex(ref.ID) >= 0
	case KindFurniture:
		return p.furnitureIndex(ref.ID) >= 0
	case KindWall:
		return p.wallIndex(ref.ID) >= 0
	}
	return false
}

// Bounds returns the bounding box of a room or furniture item. Walls have no box.
func (p *Plan) Bounds(ref Ref) (Rect, bool) {
	switch ref.Kind {
	case KindRoom:
		if r, ok := p.Room(ref.ID); ok {
			return RectOf(r.Position, r.Size), true
		}
	case KindFurniture:
		if f, ok := p.FurnitureItem(ref.ID); ok {
			return RectOf(f.Position, f.Size), true
		}
	}
	return Rect{}, false
}

// Move sets the top-left corner of a room or furniture item.
func (p *Plan) Move(ref Ref, pos Vec2) bool {
	switch ref.Kind {
	case KindRoom:
		if r, ok := p.Room(ref.ID); ok {
			r.Position = pos
			return true
		}
	case KindFurniture:
		if f, ok := p.FurnitureItem(ref.ID); ok {
			f.Position = pos
			return true
		}
	}
	return false
}

// SetRect replaces position and size of a room or furniture item.
// Width and height are raised to the kind's minimum before they are stored.
func (p *Plan) SetRect(ref Ref, r Rect) bool {
	floor := ref.Kind.MinSize()
	size := Size{W: math.Max(r.W, floor), H: math.Max(r.H, floor)}
	pos := Vec2{X: r.X, Y: r.Y}

	switch ref.Kind {
	case KindRoom:
		if room, ok := p.Room(ref.ID); ok {
			room.Position, room.Size = pos, size
			return true
		}
	case KindFurniture:
		if item, ok := p.FurnitureItem(ref.ID); ok {
			item.Position, item.Size = pos, size
			return true
		}
	}
	return false
}

// Grow changes width and height of a room or furniture item by delta, respecting the minimum size.
func (p *Plan) Grow(ref Ref, delta float64) bool {
	r, ok := p.Bounds(ref)
	if !ok {
		return false
	}
	r.W += delta
	r.H += delta
	return p.SetRect(ref, r)
}

// Rotate turns a furniture item a quarter turn clockwise and swaps its width and height.
func (p *Plan) Rotate(id string) bool {
	item, ok := p.FurnitureItem(id)
	if !ok {
		return false
	}
	item.Rotation = ((item.Rotation+90)%360 + 360) % 360
	item.Size.W, item.Size.H = item.Size.H, item.Size.W
	return true
}

// Remove deletes the referenced element from its collection.
func (p *Plan) Remove(ref Ref) bool {
	switch ref.Kind {
	case KindRoom:
		if i := p.roomIndex(ref.ID); i >= 0 {
			p.Rooms = append(p.Rooms[:i], p.Rooms[i+1:]...)
			return true
		}
	case KindFurniture:
		if i := p.furnitureIndex(ref.ID); i >= 0 {
			p.Furniture = append(p.Furniture[:i], p.Furniture[i+1:]...)
			return true
		}
	case KindWall:
		if i := p.wallIndex(ref.ID); i >= 0 {
			p.Walls = append(p.Walls[:i], p.Walls[i+1:]...)
			return true
		}
	}
	return false
}

// Reset empties all collections and clears the project name.
func (p *Plan) Reset() {
	p.Name = ""
	p.Rooms = make([]Room, 0)
	p.Furniture = make([]FurnitureItem, 0)
	p.Walls = make([]Wall, 0)
}

// Counts is the number of elements per collection.
type Counts struct {
	Rooms     int `json:"rooms"`
	Furniture int `json:"furniture"`
	Walls     int `json:"walls"`
}

func (p *Plan) Counts() Counts {
	return Counts{Rooms: len(p.Rooms), Furniture: len(p.Furniture), Walls: len(p.Walls)}
}

// TotalArea sums room areas measured in grid cells of gridSize.
func (p *Plan) TotalArea(gridSize float64) float64 {
	if gridSize <= 0 {
		return 0
	}
	var area float64
	for _, r := range p.Rooms {
		area += (r.Size.W / gridSize) * (r.Size.H / gridSize)
	}
	return area
}
