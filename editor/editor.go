package editor

import (
	"fmt"
	"image"
	"log"
	"math"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/interact"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/project"
	"github.com/bloodmagesoftware/floorplan/render"
	"github.com/bloodmagesoftware/floorplan/share"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// Editor is the floor plan editor window content. It owns the interaction session
// and all widget state; the plan itself lives in the session.
type Editor struct {
	theme    *material.Theme
	planPath string
	config   *project.Config
	session  *interact.Session

	// UI state
	toolList       widget.List
	sideList       widget.List
	toolButtons    []widget.Clickable
	roomButtons    []widget.Clickable
	elementButtons []widget.Clickable
	nameEditor     widget.Editor // project name
	roomNameEditor widget.Editor // custom label for the next room
	gridSlider     widget.Float
	gridCheckbox   widget.Bool

	saveButton     widget.Clickable
	exportButton   widget.Clickable
	shareButton    widget.Clickable
	resetButton    widget.Clickable
	closeButton    widget.Clickable
	rotateButton   widget.Clickable
	enlargeButton  widget.Clickable
	shrinkButton   widget.Clickable
	deleteButton   widget.Clickable
	icons          editorIcons
	dirty          bool   // true when there are unsaved changes
	status         string // result of the last top bar action

	// Close confirmation dialog
	showCloseDialog    bool
	closeSaveButton    widget.Clickable
	closeDiscardButton widget.Clickable
	closeCancelButton  widget.Clickable
	shouldClose        bool

	// Canvas state
	revision   int         // bumped on every plan change
	viewOffset image.Point // pan offset, never positive
	isPanning  bool
	lastMouse  image.Point
	pressed    bool // primary button is down on the canvas
	frame      canvasFrame
}

type editorIcons struct {
	save, export, share, reset, close *widget.Icon
	rotate, enlarge, shrink, delete   *widget.Icon
}

func loadIcon(name string, data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Printf("failed to load %s icon: %v", name, err)
		return nil
	}
	return icon
}

// NewEditor creates an editor for p, which is saved to planPath.
func NewEditor(theme *material.Theme, planPath string, config *project.Config, p *plan.Plan) *Editor {
	if config == nil {
		config = project.Default()
	}
	settings := config.Grid()
	if p != nil && p.GridSize != 0 {
		settings = settings.WithCellSize(p.GridSize)
	}

	e := &Editor{
		theme:    theme,
		planPath: planPath,
		config:   config,
		session:  interact.NewSession(p, settings),
		toolList: widget.List{
			List: layout.List{
				Axis: layout.Vertical,
			},
		},
		sideList: widget.List{
			List: layout.List{
				Axis: layout.Vertical,
			},
		},
		nameEditor:     widget.Editor{SingleLine: true, Submit: true},
		roomNameEditor: widget.Editor{SingleLine: true, Submit: true},
		icons: editorIcons{
			save:    loadIcon("save", icons.ContentSave),
			export:  loadIcon("export", icons.FileFileDownload),
			share:   loadIcon("share", icons.SocialShare),
			reset:   loadIcon("reset", icons.NavigationRefresh),
			close:   loadIcon("close", icons.NavigationClose),
			rotate:  loadIcon("rotate", icons.ImageRotateRight),
			enlarge: loadIcon("enlarge", icons.ContentAdd),
			shrink:  loadIcon("shrink", icons.ContentRemove),
			delete:  loadIcon("delete", icons.ActionDelete),
		},
	}
	e.session.OnChange = e.markDirty
	e.nameEditor.SetText(e.session.Plan.Name)
	e.gridCheckbox.Value = settings.Visible
	e.gridSlider.Value = sliderValue(settings.CellSize)
	return e
}

func (e *Editor) markDirty() {
	e.dirty = true
	e.revision++
}

// Session exposes the interaction session driving the canvas.
func (e *Editor) Session() *interact.Session {
	return e.session
}

// HasUnsavedChanges returns true if there are unsaved changes to the plan
func (e *Editor) HasUnsavedChanges() bool {
	return e.dirty
}

// Save writes the plan to disk and clears the dirty flag
func (e *Editor) Save() error {
	p := e.session.Plan
	p.GridSize = e.session.Grid.CellSize
	if err := p.Save(e.planPath); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// SetGridSize changes the snapping and drawing grid. Existing elements keep their positions.
func (e *Editor) SetGridSize(size int) {
	size = grid.ClampCellSize(size)
	if size == e.session.Grid.CellSize {
		return
	}
	e.session.Grid = e.session.Grid.WithCellSize(size)
	e.gridSlider.Value = sliderValue(size)
	e.markDirty()
}

// SetGridVisible toggles the drawn grid. Snapping is unaffected.
func (e *Editor) SetGridVisible(visible bool) {
	e.session.Grid.Visible = visible
	e.gridCheckbox.Value = visible
	e.revision++
}

// sliderValue maps a cell size to the [0, 1] range of the grid slider.
func sliderValue(size int) float32 {
	return float32(grid.ClampCellSize(size)-grid.MinCellSize) / float32(grid.MaxCellSize-grid.MinCellSize)
}

// sliderSize maps a slider position to a cell size in steps of 5.
func sliderSize(v float32) int {
	raw := float64(grid.MinCellSize) + float64(v)*float64(grid.MaxCellSize-grid.MinCellSize)
	return grid.ClampCellSize(int(math.Round(raw/5) * 5))
}

// Export renders the plan without selection into the project's export directory.
func (e *Editor) Export() (string, error) {
	p := e.session.Plan
	width, height := render.FitSize(p, e.config.Canvas.Width, e.config.Canvas.Height, 2*e.session.Grid.Cell())
	img := render.Render(render.Frame{Plan: p, Grid: e.session.Grid, Width: width, Height: height})
	return share.ExportImage(img, p.Name, e.config.Path(e.config.ExportDir), share.PNG)
}

// ShareLink is the message link carrying the plan summary.
func (e *Editor) ShareLink() string {
	summary := share.Summarize(e.session.Plan, e.session.Grid.Cell())
	return share.Link(e.config.ShareBase, summary.Text())
}

// Reset clears the whole plan.
func (e *Editor) Reset() {
	e.session.Reset()
	e.nameEditor.SetText("")
}

// RequestClose is called when the window close is requested
// Returns true if the window should close, false otherwise
func (e *Editor) RequestClose() bool {
	if !e.dirty {
		e.shouldClose = true
		return true
	}
	if !e.showCloseDialog {
		e.showCloseDialog = true
		return false
	}
	return e.shouldClose
}

// ShouldClose returns true if the window should close
func (e *Editor) ShouldClose() bool {
	return e.shouldClose
}

func (e *Editor) save() {
	if err := e.Save(); err != nil {
		log.Printf("failed to save plan: %v", err)
		e.status = "Save failed"
		return
	}
	log.Printf("plan saved to %s", e.planPath)
	e.status = "Saved"
}

func (e *Editor) export() {
	path, err := e.Export()
	if err != nil {
		log.Printf("failed to export plan: %v", err)
		e.status = "Export failed"
		return
	}
	log.Printf("plan exported to %s", path)
	e.status = "Exported " + path
}

func (e *Editor) share() {
	link := e.ShareLink()
	if err := share.Open(link); err != nil {
		log.Printf("failed to open share link: %v", err)
		e.status = "Share failed"
		return
	}
	e.status = "Share link opened"
}

// applyKey runs the keyboard shortcut name. Returns false for keys without a binding.
func (e *Editor) applyKey(name key.Name) bool {
	switch name {
	case keyDelete, keyBackspace:
		e.session.Delete()
	case keyEscape:
		e.session.CancelWall()
		e.session.ClearSelection()
	case keyRotate:
		e.session.Rotate()
	default:
		return false
	}
	e.revision++
	return true
}

// selectionLabel names the selected element for the action bar.
func (e *Editor) selectionLabel() string {
	ref, ok := e.session.Selection()
	if !ok {
		return ""
	}
	p := e.session.Plan
	switch ref.Kind {
	case plan.KindRoom:
		if r, ok := p.Room(ref.ID); ok {
			return fmt.Sprintf("%s (%s)", r.Label, render.Dimensions(r.Size, e.session.Grid.Cell()))
		}
	case plan.KindFurniture:
		if f, ok := p.FurnitureItem(ref.ID); ok {
			return fmt.Sprintf("%s (%d°)", f.Type.DisplayName(), f.Rotation)
		}
	case plan.KindWall:
		return "Wall"
	}
	return ""
}
