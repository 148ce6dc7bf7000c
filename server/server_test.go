package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/share"
	"github.com/bloodmagesoftware/floorplan/store"
)

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	var st *store.Store
	if withStore {
		var err error
		st, err = store.Open(context.Background(), filepath.Join(t.TempDir(), "plans.db"))
		if err != nil {
			t.Fatalf("opening store: %v", err)
		}
		t.Cleanup(func() { st.Close() })
	}

	s, err := New(Config{Grid: grid.DefaultSettings(), Width: 400, Height: 300, ShareBase: share.DefaultShareBase, Quiet: true}, st)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func planJSON(t *testing.T) []byte {
	t.Helper()
	p := plan.New()
	p.Name = "Townhouse"
	room := p.AddRoom(plan.Vec2{X: 0, Y: 0}, plan.RoomLiving, "")
	p.AddRoom(plan.Vec2{X: 400, Y: 0}, plan.RoomKitchen, "")
	p.SetRect(plan.Ref{Kind: plan.KindRoom, ID: room.ID}, plan.Rect{W: 200, H: 600})
	p.AddWall(plan.Vec2{}, plan.Vec2{X: 200})
	body, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func do(t *testing.T, s *Server, method, target string, body []byte) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func readJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, true)
	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := do(t, s, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status %d", path, resp.StatusCode)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	s := newTestServer(t, false)
	body := planJSON(t)

	resp := do(t, s, http.MethodPost, "/render?width=500&height=700", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type %q", ct)
	}
	first, _ := io.ReadAll(resp.Body)
	img, err := png.Decode(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 820 || b.Dy() != 700 {
		t.Errorf("expected canvas grown to 820x700, got %dx%d", b.Dx(), b.Dy())
	}

	resp = do(t, s, http.MethodPost, "/render?width=500&height=700", body)
	second, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(first, second) {
		t.Error("equal requests should give equal images")
	}
}

func TestRenderRejectsBadBodies(t *testing.T) {
	s := newTestServer(t, false)
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"not json", "rooms: []"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/render", "/svg", "/summary"} {
				resp := do(t, s, http.MethodPost, path, []byte(tt.body))
				if resp.StatusCode != http.StatusBadRequest {
					t.Errorf("%s: expected 400, got %d", path, resp.StatusCode)
				}
			}
		})
	}
}

func TestRenderRejectsOversizedPlan(t *testing.T) {
	s := newTestServer(t, true)
	tests := []struct {
		name string
		body string
	}{
		{"room past the edge", `{"rooms":[{"id":"r","type":"living","position":{"x":12000,"y":100},"size":{"w":400,"h":400}}]}`},
		{"far furniture", `{"furniture":[{"id":"f","type":"bed","position":{"x":0,"y":1e9},"size":{"w":40,"h":80}}]}`},
		{"far wall", `{"walls":[{"id":"w","a":{"x":0,"y":0},"b":{"x":1e300,"y":0}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/render?width=100&height=100", "/svg?width=100&height=100"} {
				resp := do(t, s, http.MethodPost, path, []byte(tt.body))
				if resp.StatusCode != http.StatusBadRequest {
					t.Errorf("%s: expected 400, got %d", path, resp.StatusCode)
				}
			}

			resp := do(t, s, http.MethodPost, "/plans", []byte(tt.body))
			var created struct {
				ID string `json:"id"`
			}
			readJSON(t, resp, &created)
			for _, ext := range []string{"png", "svg"} {
				resp := do(t, s, http.MethodGet, "/plans/"+created.ID+"/"+ext, nil)
				if resp.StatusCode != http.StatusUnprocessableEntity {
					t.Errorf("stored %s: expected 422, got %d", ext, resp.StatusCode)
				}
			}
		})
	}

	// the largest plan that still fits is drawn
	edge := `{"rooms":[{"id":"r","type":"living","position":{"x":7000,"y":0},"size":{"w":400,"h":400}}]}`
	resp := do(t, s, http.MethodPost, "/svg", []byte(edge))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("plan within the canvas limit: status %d", resp.StatusCode)
	}
}

func TestSVG(t *testing.T) {
	s := newTestServer(t, false)
	resp := do(t, s, http.MethodPost, "/svg?show_grid=false", planJSON(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Living Room") {
		t.Error("svg should contain the room label")
	}
	if strings.Contains(string(body), "stroke:#e0e0e0") {
		t.Error("grid should be hidden")
	}
}

func TestSummary(t *testing.T) {
	s := newTestServer(t, false)
	resp := do(t, s, http.MethodPost, "/summary", planJSON(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var out struct {
		Summary share.Summary `json:"summary"`
		Text    string        `json:"text"`
		Link    string        `json:"link"`
	}
	readJSON(t, resp, &out)

	// 10x30 + 20x20 cells
	if out.Summary.Rooms != 2 || out.Summary.Area != 700 {
		t.Errorf("unexpected summary %+v", out.Summary)
	}
	if !strings.HasPrefix(out.Link, share.DefaultShareBase) || !strings.Contains(out.Text, "Townhouse") {
		t.Errorf("unexpected text/link %q %q", out.Text, out.Link)
	}
}

func TestValidate(t *testing.T) {
	s := newTestServer(t, false)
	resp := do(t, s, http.MethodPost, "/validate", []byte(`{"rooms":[{"id":"r","type":"garage","size":{"w":400,"h":400}}]}`))
	var out struct {
		Valid  bool     `json:"valid"`
		Issues []string `json:"issues"`
	}
	readJSON(t, resp, &out)
	if out.Valid || len(out.Issues) == 0 {
		t.Errorf("expected issues, got %+v", out)
	}
}

func TestPlanLifecycle(t *testing.T) {
	s := newTestServer(t, true)

	resp := do(t, s, http.MethodPost, "/plans", planJSON(t))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	readJSON(t, resp, &created)
	if created.ID == "" {
		t.Fatal("missing id")
	}

	resp = do(t, s, http.MethodGet, "/plans/"+created.ID, nil)
	var got plan.Plan
	readJSON(t, resp, &got)
	if got.Name != "Townhouse" || len(got.Rooms) != 2 || len(got.Walls) != 1 {
		t.Errorf("unexpected plan %+v", got)
	}

	got.Name = "Townhouse v2"
	updated, _ := json.Marshal(&got)
	if resp := do(t, s, http.MethodPut, "/plans/"+created.ID, updated); resp.StatusCode != http.StatusOK {
		t.Errorf("update: status %d", resp.StatusCode)
	}

	resp = do(t, s, http.MethodGet, "/plans", nil)
	var records []store.Record
	readJSON(t, resp, &records)
	if len(records) != 1 || records[0].Name != "Townhouse v2" {
		t.Errorf("unexpected list %+v", records)
	}

	resp = do(t, s, http.MethodGet, "/plans/"+created.ID+"/png", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(resp.Header.Get("Content-Disposition"), "floor-plan-Townhouse-v2.png") {
		t.Errorf("png: status %d, disposition %q", resp.StatusCode, resp.Header.Get("Content-Disposition"))
	}

	if resp := do(t, s, http.MethodDelete, "/plans/"+created.ID, nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete: status %d", resp.StatusCode)
	}
	if resp := do(t, s, http.MethodGet, "/plans/"+created.ID, nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: status %d", resp.StatusCode)
	}
	if resp := do(t, s, http.MethodPut, "/plans/"+created.ID, updated); resp.StatusCode != http.StatusNotFound {
		t.Errorf("update after delete: status %d", resp.StatusCode)
	}
}

func TestPlansWithoutStore(t *testing.T) {
	s := newTestServer(t, false)
	resp := do(t, s, http.MethodGet, "/plans", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}

func TestRenderCache(t *testing.T) {
	c, err := newRenderCache(1)
	if err != nil {
		t.Fatal(err)
	}
	defer c.close()

	key := cacheKey("png", []byte("body"), 20, true)
	if _, ok := c.get(key); ok {
		t.Fatal("empty cache should miss")
	}
	c.set(key, []byte("data"))
	if got, ok := c.get(key); !ok || string(got) != "data" {
		t.Errorf("expected hit, got %q %v", got, ok)
	}

	if cacheKey("png", []byte("body"), 20) == cacheKey("png", []byte("body"), 25) {
		t.Error("different options must give different keys")
	}
	if cacheKey("png", []byte("a")) == cacheKey("svg", []byte("a")) {
		t.Error("different kinds must give different keys")
	}
}
