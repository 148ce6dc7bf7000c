package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bloodmagesoftware/floorplan/plan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "plans.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	p := plan.New()
	p.Name = "Cabin"
	room := p.AddRoom(plan.Vec2{X: 20, Y: 20}, plan.RoomBedroom, "Guest")
	p.AddWall(plan.Vec2{}, plan.Vec2{X: 100})

	id, err := s.Save(ctx, "", p)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Cabin" || len(got.Rooms) != 1 || len(got.Walls) != 1 {
		t.Fatalf("unexpected plan %+v", got)
	}
	if got.Rooms[0] != room {
		t.Errorf("room changed: %+v vs %+v", got.Rooms[0], room)
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	p := plan.New()
	p.Name = "Draft"
	id, err := s.Save(ctx, "fixed-id", p)
	if err != nil || id != "fixed-id" {
		t.Fatalf("Save: %q, %v", id, err)
	}

	clock = clock.Add(time.Hour)
	p.Name = "Final"
	if _, err := s.Save(ctx, id, p); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Name != "Final" {
		t.Errorf("name not updated: %q", r.Name)
	}
	if !r.CreatedAt.Equal(clock.Add(-time.Hour)) || !r.UpdatedAt.Equal(clock) {
		t.Errorf("unexpected timestamps %v / %v", r.CreatedAt, r.UpdatedAt)
	}
}

func TestListOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	for _, name := range []string{"first", "second", "third"} {
		p := plan.New()
		p.Name = name
		if _, err := s.Save(ctx, name, p); err != nil {
			t.Fatal(err)
		}
		clock = clock.Add(time.Minute)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"third", "second", "first"}
	for i, r := range records {
		if r.ID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, r.ID, want[i])
		}
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.Save(ctx, "", plan.New())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestPing(t *testing.T) {
	s := openTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
