package plan

import (
	"fmt"
	"image/color"
)

const (
	// MinRoomSize is the smallest width or height a room can be resized to.
	MinRoomSize = 100
	// MinFurnitureSize is the smallest width or height a furniture item can be resized to.
	MinFurnitureSize = 20
	// DefaultRoomSize is the width and height of a freshly placed room (20x20 cells at the default grid).
	DefaultRoomSize = 400
	// ResizeStep is the increment used by the enlarge and shrink actions.
	ResizeStep = 20
)

type (
	// Plan is the scene store. Rooms, furniture and walls are kept in placement order;
	// later entries are drawn on top of earlier ones.
	Plan struct {
		// Name is the project name used for exports and share messages.
		Name string `yaml:"name" json:"name"`
		// GridSize is the cell size the plan was drawn with. Areas are reported in cells of this size.
		GridSize int `yaml:"grid_size" json:"grid_size"`

		Rooms     []Room          `yaml:"rooms" json:"rooms"`
		Furniture []FurnitureItem `yaml:"furniture" json:"furniture"`
		Walls     []Wall          `yaml:"walls" json:"walls"`

		// NewID generates element ids. Defaults to random UUIDs.
		NewID func() string `yaml:"-" json:"-"`
	}

	Room struct {
		ID string `yaml:"id" json:"id"`
		// Position is the top-left corner.
		Position Vec2     `yaml:"position" json:"position"`
		Size     Size     `yaml:"size" json:"size"`
		Type     RoomType `yaml:"type" json:"type"`
		Label    string   `yaml:"label" json:"label"`
	}

	FurnitureItem struct {
		ID       string        `yaml:"id" json:"id"`
		Position Vec2          `yaml:"position" json:"position"`
		Size     Size          `yaml:"size" json:"size"`
		Type     FurnitureType `yaml:"type" json:"type"`
		// Rotation is in degrees and always a multiple of 90 in [0, 360).
		Rotation int `yaml:"rotation" json:"rotation"`
	}

	Wall struct {
		ID string `yaml:"id" json:"id"`
		A  Vec2   `yaml:"a" json:"a"`
		B  Vec2   `yaml:"b" json:"b"`
	}

	Vec2 struct {
		X float64 `yaml:"x" json:"x"`
		Y float64 `yaml:"y" json:"y"`
	}

	Size struct {
		W float64 `yaml:"w" json:"w"`
		H float64 `yaml:"h" json:"h"`
	}
)

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Kind identifies which collection an element lives in.
type Kind int

const (
	KindRoom Kind = iota
	KindFurniture
	KindWall
)

func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindFurniture:
		return "furniture"
	case KindWall:
		return "wall"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MinSize returns the resize floor for elements of this kind.
func (k Kind) MinSize() float64 {
	if k == KindFurniture {
		return MinFurnitureSize
	}
	return MinRoomSize
}

// Ref points at one element. Ids are only unique within a collection, so the kind is part of the key.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

// RoomType determines a room's colour and default label.
type RoomType string

const (
	RoomLiving   RoomType = "living"
	RoomBedroom  RoomType = "bedroom"
	RoomKitchen  RoomType = "kitchen"
	RoomBathroom RoomType = "bathroom"
	RoomDining   RoomType = "dining"
	RoomStudy    RoomType = "study"
	RoomBalcony  RoomType = "balcony"
)

var roomTypes = []RoomType{RoomLiving, RoomBedroom, RoomKitchen, RoomBathroom, RoomDining, RoomStudy, RoomBalcony}

var roomStyles = map[RoomType]struct {
	name  string
	color color.NRGBA
}{
	RoomLiving:   {"Living Room", color.NRGBA{R: 255, G: 228, B: 181, A: 255}},
	RoomBedroom:  {"Bedroom", color.NRGBA{R: 173, G: 216, B: 230, A: 255}},
	RoomKitchen:  {"Kitchen", color.NRGBA{R: 255, G: 182, B: 193, A: 255}},
	RoomBathroom: {"Bathroom", color.NRGBA{R: 176, G: 224, B: 230, A: 255}},
	RoomDining:   {"Dining Room", color.NRGBA{R: 221, G: 160, B: 221, A: 255}},
	RoomStudy:    {"Study", color.NRGBA{R: 240, G: 230, B: 140, A: 255}},
	RoomBalcony:  {"Balcony", color.NRGBA{R: 152, G: 251, B: 152, A: 255}},
}

// RoomTypes lists every room type in display order.
func RoomTypes() []RoomType {
	return append([]RoomType(nil), roomTypes...)
}

// ParseRoomType validates a room type name.
func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if _, ok := roomStyles[t]; !ok {
		return "", fmt.Errorf("unknown room type %q", s)
	}
	return t, nil
}

// Valid reports whether t is a known room type.
func (t RoomType) Valid() bool {
	_, ok := roomStyles[t]
	return ok
}

// DisplayName is the default label for rooms of this type.
func (t RoomType) DisplayName() string {
	if s, ok := roomStyles[t]; ok {
		return s.name
	}
	return string(t)
}

// Color is the fill colour for rooms of this type.
func (t RoomType) Color() color.NRGBA {
	if s, ok := roomStyles[t]; ok {
		return s.color
	}
	return color.NRGBA{R: 220, G: 220, B: 220, A: 255}
}

// FurnitureType determines default size, colour and draw routine of an item.
type FurnitureType string

const (
	FurnitureSofa   FurnitureType = "sofa"
	FurnitureBed    FurnitureType = "bed"
	FurnitureTable  FurnitureType = "table"
	FurnitureChair  FurnitureType = "chair"
	FurnitureDoor   FurnitureType = "door"
	FurnitureWindow FurnitureType = "window"
)

var furnitureTypes = []FurnitureType{FurnitureSofa, FurnitureBed, FurnitureTable, FurnitureChair, FurnitureDoor, FurnitureWindow}

var furnitureStyles = map[FurnitureType]struct {
	name  string
	size  Size
	color color.NRGBA
}{
	FurnitureSofa:   {"Sofa", Size{W: 120, H: 60}, color.NRGBA{R: 139, G: 69, B: 19, A: 255}},
	FurnitureBed:    {"Bed", Size{W: 120, H: 160}, color.NRGBA{R: 65, G: 105, B: 225, A: 255}},
	FurnitureTable:  {"Table", Size{W: 80, H: 80}, color.NRGBA{R: 160, G: 82, B: 45, A: 255}},
	FurnitureChair:  {"Chair", Size{W: 40, H: 40}, color.NRGBA{R: 205, G: 133, B: 63, A: 255}},
	FurnitureDoor:   {"Door", Size{W: 60, H: 20}, color.NRGBA{R: 101, G: 67, B: 33, A: 255}},
	FurnitureWindow: {"Window", Size{W: 80, H: 20}, color.NRGBA{R: 135, G: 206, B: 235, A: 255}},
}

// FurnitureTypes lists every furniture type in display order.
func FurnitureTypes() []FurnitureType {
	return append([]FurnitureType(nil), furnitureTypes...)
}

// ParseFurnitureType validates a furniture type name.
func ParseFurnitureType(s string) (FurnitureType, error) {
	t := FurnitureType(s)
	if _, ok := furnitureStyles[t]; !ok {
		return "", fmt.Errorf("unknown furniture type %q", s)
	}
	return t, nil
}

func (t FurnitureType) Valid() bool {
	_, ok := furnitureStyles[t]
	return ok
}

func (t FurnitureType) DisplayName() string {
	if s, ok := furnitureStyles[t]; ok {
		return s.name
	}
	return string(t)
}

// DefaultSize is the size of a newly placed item of this type.
func (t FurnitureType) DefaultSize() Size {
	if s, ok := furnitureStyles[t]; ok {
		return s.size
	}
	return Size{W: 40, H: 40}
}

func (t FurnitureType) Color() color.NRGBA {
	if s, ok := furnitureStyles[t]; ok {
		return s.color
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}
