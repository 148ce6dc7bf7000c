package grid

import (
	"math"
	"testing"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		cell float64
		want float64
	}{
		{"already on grid", 40, 20, 40},
		{"rounds down", 49, 20, 40},
		{"rounds half up", 50, 20, 60},
		{"rounds up", 51, 20, 60},
		{"zero", 0, 20, 0},
		{"negative", -29, 20, -20},
		{"small cell", 14, 10, 10},
		{"large cell", 76, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Snap(tt.raw, tt.cell); got != tt.want {
				t.Errorf("Snap(%v, %v) = %v, want %v", tt.raw, tt.cell, got, tt.want)
			}
		})
	}
}

func TestSnapIdempotent(t *testing.T) {
	for _, cell := range []float64{10, 20, 25, 50} {
		for raw := -137.0; raw < 260; raw += 3.7 {
			once := Snap(raw, cell)
			twice := Snap(once, cell)
			if once != twice {
				t.Fatalf("Snap not idempotent for raw=%v cell=%v: %v then %v", raw, cell, once, twice)
			}
			if q := once / cell; q != math.Trunc(q) {
				t.Fatalf("Snap(%v, %v) = %v is not a multiple of the cell size", raw, cell, once)
			}
		}
	}
}

func TestSnapXY(t *testing.T) {
	x, y := SnapXY(43, 208, 20)
	if x != 40 || y != 200 {
		t.Errorf("SnapXY = (%v, %v), want (40, 200)", x, y)
	}
}

func TestClampCellSize(t *testing.T) {
	if got := ClampCellSize(5); got != MinCellSize {
		t.Errorf("ClampCellSize(5) = %d, want %d", got, MinCellSize)
	}
	if got := ClampCellSize(80); got != MaxCellSize {
		t.Errorf("ClampCellSize(80) = %d, want %d", got, MaxCellSize)
	}
	if got := ClampCellSize(30); got != 30 {
		t.Errorf("ClampCellSize(30) = %d, want 30", got)
	}

	s := DefaultSettings().WithCellSize(100)
	if s.CellSize != MaxCellSize || !s.Visible {
		t.Errorf("WithCellSize(100) = %+v", s)
	}
}

func TestCellFallback(t *testing.T) {
	if got := (Settings{}).Cell(); got != DefaultCellSize {
		t.Errorf("zero settings Cell() = %v, want %v", got, DefaultCellSize)
	}
}
