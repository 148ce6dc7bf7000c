package plan

import "testing"

func TestElementAtPrefersFurniture(t *testing.T) {
	p := New()
	room := p.AddRoom(Vec2{X: 0, Y: 0}, RoomLiving, "")
	sofa := p.AddFurniture(Vec2{X: 100, Y: 100}, FurnitureSofa)

	ref, ok := p.ElementAt(Vec2{X: 120, Y: 120})
	if !ok {
		t.Fatal("expected a hit")
	}
	if ref.Kind != KindFurniture || ref.ID != sofa.ID {
		t.Errorf("expected sofa to win over room, got %+v", ref)
	}

	ref, ok = p.ElementAt(Vec2{X: 10, Y: 10})
	if !ok || ref.Kind != KindRoom || ref.ID != room.ID {
		t.Errorf("expected room hit, got %+v %v", ref, ok)
	}
}

func TestElementAtLaterPlacementWins(t *testing.T) {
	p := New()
	p.AddRoom(Vec2{X: 0, Y: 0}, RoomLiving, "")
	top := p.AddRoom(Vec2{X: 200, Y: 200}, RoomKitchen, "")

	ref, ok := p.ElementAt(Vec2{X: 300, Y: 300})
	if !ok || ref.ID != top.ID {
		t.Errorf("expected later room to win overlap, got %+v", ref)
	}
}

func TestElementAtEdgesInclusive(t *testing.T) {
	p := New()
	p.AddRoom(Vec2{X: 100, Y: 100}, RoomStudy, "")

	tests := []struct {
		name string
		pt   Vec2
		hit  bool
	}{
		{"top-left corner", Vec2{X: 100, Y: 100}, true},
		{"bottom-right corner", Vec2{X: 500, Y: 500}, true},
		{"right edge", Vec2{X: 500, Y: 300}, true},
		{"just outside", Vec2{X: 501, Y: 300}, false},
		{"above", Vec2{X: 300, Y: 99}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := p.ElementAt(tt.pt)
			if ok != tt.hit {
				t.Errorf("ElementAt(%+v) hit=%v, want %v", tt.pt, ok, tt.hit)
			}
		})
	}
}

func TestElementAtIgnoresWalls(t *testing.T) {
	p := New()
	p.AddWall(Vec2{X: 0, Y: 0}, Vec2{X: 200, Y: 0})

	if ref, ok := p.ElementAt(Vec2{X: 100, Y: 0}); ok {
		t.Errorf("walls should not be hit-tested, got %+v", ref)
	}
}

func TestHandleAt(t *testing.T) {
	r := Rect{X: 100, Y: 100, W: 200, H: 200}

	tests := []struct {
		name string
		pt   Vec2
		want Handle
	}{
		{"nw centre", Vec2{X: 100, Y: 100}, HandleNW},
		{"nw edge of square", Vec2{X: 96, Y: 104}, HandleNW},
		{"ne", Vec2{X: 300, Y: 100}, HandleNE},
		{"sw", Vec2{X: 102, Y: 298}, HandleSW},
		{"se", Vec2{X: 303, Y: 303}, HandleSE},
		{"outside square", Vec2{X: 95, Y: 100}, HandleNone},
		{"middle", Vec2{X: 200, Y: 200}, HandleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandleAt(tt.pt, r); got != tt.want {
				t.Errorf("HandleAt(%+v) = %s, want %s", tt.pt, got, tt.want)
			}
		})
	}
}

func TestHandleAtTinyRectPrefersNW(t *testing.T) {
	// All four handles overlap on a tiny rect; the first in nw, ne, sw, se order wins.
	r := Rect{X: 0, Y: 0, W: 4, H: 4}
	if got := HandleAt(Vec2{X: 2, Y: 2}, r); got != HandleNW {
		t.Errorf("expected nw, got %s", got)
	}
}
