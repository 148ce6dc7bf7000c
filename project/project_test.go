package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.PlansDir != "plans" || c.ExportDir != "export" {
		t.Errorf("unexpected dirs %q %q", c.PlansDir, c.ExportDir)
	}
	g := c.Grid()
	if g.CellSize != 20 || !g.Visible {
		t.Errorf("unexpected grid %+v", g)
	}
	if c.Canvas.Width != 1200 || c.Canvas.Height != 800 {
		t.Errorf("unexpected canvas %+v", c.Canvas)
	}
	if c.ShareBase != "https://wa.me/?text=" {
		t.Errorf("unexpected share base %q", c.ShareBase)
	}
	if c.Server.Port != "3000" || c.Server.CacheMB != 64 {
		t.Errorf("unexpected server config %+v", c.Server)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
name: Villa
plans_dir: designs
grid_size: 25
show_grid: false
canvas:
    width: 1600
server:
    port: "8080"
`)

	c, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Name != "Villa" || c.Root != dir {
		t.Errorf("unexpected config %+v", c)
	}
	if got := c.PlanPath("ground"); got != filepath.Join(dir, "designs", "ground.yaml") {
		t.Errorf("PlanPath = %s", got)
	}
	g := c.Grid()
	if g.CellSize != 25 || g.Visible {
		t.Errorf("unexpected grid %+v", g)
	}
	if c.Canvas.Width != 1600 || c.Canvas.Height != 800 {
		t.Errorf("canvas defaults not applied: %+v", c.Canvas)
	}
	if c.Server.Port != "8080" || c.Server.ReadTimeout != 10 {
		t.Errorf("unexpected server config %+v", c.Server)
	}
}

func TestLoadConfigRejectsGridSize(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "grid_size: 5\n")
	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for grid_size below minimum")
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "name: Test\n")
	nested := filepath.Join(root, "plans", "archive")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := findRoot(nested)
	if err != nil {
		t.Fatalf("findRoot: %v", err)
	}
	if got != root {
		t.Errorf("got %s, want %s", got, root)
	}

	if _, err := findRoot(t.TempDir()); !errors.Is(err, ErrNoProject) {
		t.Errorf("expected ErrNoProject, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_MB", "not-a-number")
	t.Setenv("READ_TIMEOUT", "30")

	c := Default()
	c.ApplyEnv()
	if c.Server.Port != "9090" || c.Server.ReadTimeout != 30 {
		t.Errorf("env not applied: %+v", c.Server)
	}
	if c.Server.CacheMB != 64 {
		t.Errorf("invalid number should keep the default, got %d", c.Server.CacheMB)
	}
}
