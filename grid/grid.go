package grid

import "math"

const (
	// DefaultCellSize is the grid spacing in scene units.
	DefaultCellSize = 20
	MinCellSize     = 10
	MaxCellSize     = 50
)

// Settings holds the canvas grid configuration.
type Settings struct {
	CellSize int  `yaml:"cell_size" json:"cell_size"`
	Visible  bool `yaml:"visible" json:"visible"`
}

// DefaultSettings returns a visible grid with the default cell size.
func DefaultSettings() Settings {
	return Settings{CellSize: DefaultCellSize, Visible: true}
}

// WithCellSize returns a copy of s with the cell size clamped to [MinCellSize, MaxCellSize].
func (s Settings) WithCellSize(size int) Settings {
	s.CellSize = ClampCellSize(size)
	return s
}

// Cell returns the cell size as a float, falling back to the default for unset settings.
func (s Settings) Cell() float64 {
	if s.CellSize <= 0 {
		return DefaultCellSize
	}
	return float64(s.CellSize)
}

// ClampCellSize keeps a cell size inside the supported range.
func ClampCellSize(size int) int {
	if size < MinCellSize {
		return MinCellSize
	}
	if size > MaxCellSize {
		return MaxCellSize
	}
	return size
}

// Snap rounds raw to the nearest multiple of cellSize.
func Snap(raw, cellSize float64) float64 {
	return math.Round(raw/cellSize) * cellSize
}

// SnapXY snaps both axes of a point.
func SnapXY(x, y, cellSize float64) (float64, float64) {
	return Snap(x, cellSize), Snap(y, cellSize)
}

// Aligned reports whether v lies on the grid.
func Aligned(v, cellSize float64) bool {
	return Snap(v, cellSize) == v
}
