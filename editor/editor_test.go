package editor

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloodmagesoftware/floorplan/interact"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/project"
	"github.com/bloodmagesoftware/floorplan/share"
)

func newTestEditor(t *testing.T, p *plan.Plan) (*Editor, string) {
	t.Helper()
	dir := t.TempDir()
	config := project.Default()
	config.Root = dir
	return NewEditor(nil, config.PlanPath("house"), config, p), dir
}

func TestNewEditorUsesPlanGrid(t *testing.T) {
	p := plan.New()
	p.GridSize = 25
	e, _ := newTestEditor(t, p)

	if got := e.Session().Grid.CellSize; got != 25 {
		t.Errorf("expected grid 25 from the plan file, got %d", got)
	}
	if e.HasUnsavedChanges() {
		t.Error("a freshly opened plan should be clean")
	}
}

func TestSliderMapping(t *testing.T) {
	tests := []struct {
		value float32
		size  int
	}{
		{0, 10},
		{0.25, 20},
		{0.5, 30},
		{0.51, 30},
		{1, 50},
	}
	for _, tt := range tests {
		if got := sliderSize(tt.value); got != tt.size {
			t.Errorf("sliderSize(%v) = %d, want %d", tt.value, got, tt.size)
		}
	}
	if got := sliderValue(20); got != 0.25 {
		t.Errorf("sliderValue(20) = %v, want 0.25", got)
	}
}

func TestSaveClearsDirty(t *testing.T) {
	e, dir := newTestEditor(t, nil)
	e.Session().SetTool(interact.PlaceRoom)
	e.Session().PointerDown(plan.Vec2{X: 40, Y: 40})
	if !e.HasUnsavedChanges() {
		t.Fatal("placing a room should mark the editor dirty")
	}

	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if e.HasUnsavedChanges() {
		t.Error("Save should clear the dirty flag")
	}

	loaded := plan.New()
	if err := loaded.Load(filepath.Join(dir, "plans", "house.yaml")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Rooms) != 1 || loaded.GridSize != 20 {
		t.Errorf("unexpected saved plan: %d rooms, grid %d", len(loaded.Rooms), loaded.GridSize)
	}
}

func TestSetGridSize(t *testing.T) {
	e, _ := newTestEditor(t, nil)

	e.SetGridSize(20)
	if e.HasUnsavedChanges() {
		t.Error("setting the current size should not mark dirty")
	}
	e.SetGridSize(500)
	if got := e.Session().Grid.CellSize; got != 50 {
		t.Errorf("expected clamp to 50, got %d", got)
	}
	if !e.HasUnsavedChanges() {
		t.Error("changing the grid size should mark dirty")
	}

	e.SetGridVisible(false)
	if e.Session().Grid.Visible {
		t.Error("grid should be hidden")
	}
}

func TestRequestClose(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	if !e.RequestClose() {
		t.Fatal("a clean editor should close immediately")
	}

	e, _ = newTestEditor(t, nil)
	e.Session().SetTool(interact.PlaceRoom)
	e.Session().PointerDown(plan.Vec2{X: 40, Y: 40})
	if e.RequestClose() {
		t.Fatal("a dirty editor should ask first")
	}
	if !e.showCloseDialog {
		t.Error("the close dialog should be shown")
	}
	if e.RequestClose() || e.ShouldClose() {
		t.Error("the editor should wait for a dialog choice")
	}
}

func TestApplyKey(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	s := e.Session()
	item := s.Plan.AddFurniture(plan.Vec2{X: 40, Y: 40}, plan.FurnitureBed)
	ref := plan.Ref{Kind: plan.KindFurniture, ID: item.ID}
	s.Select(ref)

	if !e.applyKey(keyRotate) {
		t.Fatal("R should be bound")
	}
	if got, _ := s.Plan.FurnitureItem(item.ID); got.Rotation != 90 {
		t.Errorf("expected rotation 90, got %d", got.Rotation)
	}

	e.applyKey(keyEscape)
	if _, ok := s.Selection(); ok {
		t.Error("Escape should clear the selection")
	}

	s.Select(ref)
	e.applyKey(keyDelete)
	if len(s.Plan.Furniture) != 0 {
		t.Error("Delete should remove the selected item")
	}

	if e.applyKey("Q") {
		t.Error("Q has no binding")
	}
}

func TestExport(t *testing.T) {
	p := plan.New()
	p.Name = "Loft"
	p.AddRoom(plan.Vec2{X: 20, Y: 20}, plan.RoomStudy, "")
	e, dir := newTestEditor(t, p)

	path, err := e.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if want := filepath.Join(dir, "export", "floor-plan-Loft.png"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestShareLink(t *testing.T) {
	p := plan.New()
	p.AddRoom(plan.Vec2{}, plan.RoomKitchen, "")
	e, _ := newTestEditor(t, p)

	link := e.ShareLink()
	if !strings.HasPrefix(link, share.DefaultShareBase) {
		t.Errorf("unexpected link base %q", link)
	}
	if !strings.Contains(link, "Rooms%3A%201") {
		t.Errorf("link should carry the room count: %q", link)
	}
}

func TestElementEntries(t *testing.T) {
	p := plan.New()
	p.AddFurniture(plan.Vec2{}, plan.FurnitureChair)
	p.AddWall(plan.Vec2{}, plan.Vec2{X: 100})
	p.AddRoom(plan.Vec2{}, plan.RoomBedroom, "Guest")
	e, _ := newTestEditor(t, p)

	entries := e.elementEntries()
	kinds := []plan.Kind{plan.KindRoom, plan.KindWall, plan.KindFurniture}
	if len(entries) != len(kinds) {
		t.Fatalf("expected %d entries, got %d", len(kinds), len(entries))
	}
	for i, k := range kinds {
		if entries[i].ref.Kind != k {
			t.Errorf("entry %d: expected %v, got %v", i, k, entries[i].ref.Kind)
		}
	}
	if entries[0].label != "Guest" || entries[1].label != "Wall 1" {
		t.Errorf("unexpected labels %q %q", entries[0].label, entries[1].label)
	}
}

func TestPanStaysInScene(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	e.pan(image.Pt(30, -40))
	if e.viewOffset != image.Pt(0, -40) {
		t.Errorf("unexpected offset %v", e.viewOffset)
	}
	if got := e.sceneAt(10, 10); got != (plan.Vec2{X: 10, Y: 50}) {
		t.Errorf("unexpected scene point %v", got)
	}
}
