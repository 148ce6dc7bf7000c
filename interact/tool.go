package interact

import (
	"fmt"
	"strings"

	"github.com/bloodmagesoftware/floorplan/plan"
)

type toolKind int

const (
	toolSelect toolKind = iota
	toolRoom
	toolWall
	toolFurniture
)

// Tool is the active canvas tool. The zero value is the select tool.
type Tool struct {
	kind      toolKind
	furniture plan.FurnitureType
}

var (
	Select    = Tool{kind: toolSelect}
	PlaceRoom = Tool{kind: toolRoom}
	Wall      = Tool{kind: toolWall}
)

// PlaceFurniture returns the tool that places items of type t.
func PlaceFurniture(t plan.FurnitureType) Tool {
	return Tool{kind: toolFurniture, furniture: t}
}

// Furniture returns the furniture type placed by t, if t is a furniture tool.
func (t Tool) Furniture() (plan.FurnitureType, bool) {
	return t.furniture, t.kind == toolFurniture
}

func (t Tool) String() string {
	switch t.kind {
	case toolRoom:
		return "room"
	case toolWall:
		return "wall"
	case toolFurniture:
		return "furniture:" + string(t.furniture)
	default:
		return "select"
	}
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	tools := []Tool{Select, PlaceRoom, Wall}
	for _, ft := range plan.FurnitureTypes() {
		tools = append(tools, PlaceFurniture(ft))
	}
	return tools
}

// ParseTool accepts the names produced by Tool.String.
func ParseTool(s string) (Tool, error) {
	switch s {
	case "select":
		return Select, nil
	case "room":
		return PlaceRoom, nil
	case "wall":
		return Wall, nil
	}
	if name, ok := strings.CutPrefix(s, "furniture:"); ok {
		ft, err := plan.ParseFurnitureType(name)
		if err != nil {
			return Tool{}, err
		}
		return PlaceFurniture(ft), nil
	}
	return Tool{}, fmt.Errorf("unknown tool %q", s)
}
