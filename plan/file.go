package plan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Save writes the plan as YAML, creating parent directories as needed.
func (p *Plan) Save(path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return p.Encode(f)
}

// Load replaces the plan's contents with the YAML file at path.
func (p *Plan) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return p.Decode(f)
}

// Encode writes the plan as YAML with a four space indent.
func (p *Plan) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(4)

	return encoder.Encode(p)
}

// Decode reads a YAML plan. Missing collections decode as empty slices.
func (p *Plan) Decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(p); err != nil {
		return err
	}
	p.normalize()
	return nil
}

func (p *Plan) normalize() {
	if p.Rooms == nil {
		p.Rooms = make([]Room, 0)
	}
	if p.Furniture == nil {
		p.Furniture = make([]FurnitureItem, 0)
	}
	if p.Walls == nil {
		p.Walls = make([]Wall, 0)
	}
	if p.GridSize <= 0 {
		p.GridSize = 20
	}
}

// Normalize fills defaults on a plan decoded by other means (JSON bodies).
func (p *Plan) Normalize() {
	p.normalize()
}

// Files lists the plan files (.yaml or .yml) below dir in walk order.
func Files(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}
	return files, nil
}
