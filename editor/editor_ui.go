package editor

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/bloodmagesoftware/floorplan/interact"
	"github.com/bloodmagesoftware/floorplan/plan"
)

const (
	keyDelete    key.Name = key.NameDeleteForward
	keyBackspace key.Name = key.NameDeleteBackward
	keyEscape    key.Name = key.NameEscape
	keyRotate    key.Name = "R"
)

var (
	textColor     = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	activeColor   = color.NRGBA{R: 80, G: 140, B: 200, A: 255}
	inactiveColor = color.NRGBA{R: 70, G: 70, B: 70, A: 255}
	primaryColor  = color.NRGBA{R: 60, G: 120, B: 200, A: 255}
	dirtyColor    = color.NRGBA{R: 200, G: 120, B: 60, A: 255}
	dangerColor   = color.NRGBA{R: 200, G: 80, B: 60, A: 255}
	white         = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func fill(gtx layout.Context, size image.Point, col color.NRGBA) layout.Dimensions {
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return layout.Dimensions{Size: size}
}

// Layout renders the entire editor UI
func (e *Editor) Layout(gtx layout.Context) layout.Dimensions {
	// Register for global keyboard events
	event.Op(gtx.Ops, e)
	e.handleKeys(gtx)
	e.handleFields(gtx)

	// Handle close dialog buttons
	if e.closeSaveButton.Clicked(gtx) {
		e.save()
		e.showCloseDialog = false
		e.shouldClose = !e.dirty
	}
	if e.closeDiscardButton.Clicked(gtx) {
		e.showCloseDialog = false
		e.shouldClose = true
	}
	if e.closeCancelButton.Clicked(gtx) {
		e.showCloseDialog = false
	}

	dims := layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(e.layoutTopBar),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Horizontal,
			}.Layout(gtx,
				layout.Rigid(e.layoutLeftBar),
				layout.Flexed(1, e.layoutCanvas),
				layout.Rigid(e.layoutRightBar),
			)
		}),
		layout.Rigid(e.layoutActionBar),
	)

	// Draw close confirmation dialog on top if needed
	if e.showCloseDialog {
		e.layoutCloseDialog(gtx)
	}

	return dims
}

func (e *Editor) handleKeys(gtx layout.Context) {
	typing := gtx.Focused(&e.nameEditor) || gtx.Focused(&e.roomNameEditor)
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: keyDelete},
			key.Filter{Name: keyBackspace},
			key.Filter{Name: keyEscape},
			key.Filter{Name: keyRotate},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		if typing && ke.Name != keyEscape {
			continue
		}
		e.applyKey(ke.Name)
	}
}

func (e *Editor) handleFields(gtx layout.Context) {
	for {
		ev, ok := e.nameEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.ChangeEvent); ok && e.nameEditor.Text() != e.session.Plan.Name {
			e.session.Plan.Name = e.nameEditor.Text()
			e.markDirty()
		}
	}
	for {
		ev, ok := e.roomNameEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.ChangeEvent); ok {
			e.session.RoomName = e.roomNameEditor.Text()
		}
	}
	if e.gridSlider.Update(gtx) {
		e.SetGridSize(sliderSize(e.gridSlider.Value))
	}
	if e.gridCheckbox.Update(gtx) {
		e.SetGridVisible(e.gridCheckbox.Value)
	}
}

func (e *Editor) iconButton(gtx layout.Context, btn *widget.Clickable, icon *widget.Icon, label string, bg color.NRGBA) layout.Dimensions {
	if icon == nil {
		b := material.Button(e.theme, btn, label)
		b.Background = bg
		b.Color = white
		return b.Layout(gtx)
	}
	b := material.IconButton(e.theme, btn, icon, label)
	b.Background = bg
	b.Color = white
	b.Size = unit.Dp(20)
	return b.Layout(gtx)
}

func (e *Editor) label(gtx layout.Context, text string) layout.Dimensions {
	l := material.Body1(e.theme, text)
	l.Color = textColor
	return l.Layout(gtx)
}

func (e *Editor) heading(gtx layout.Context, text string) layout.Dimensions {
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		l := material.H6(e.theme, text)
		l.Color = textColor
		return l.Layout(gtx)
	})
}

// layoutTopBar renders the project name field and the save, export, share, reset and close buttons
func (e *Editor) layoutTopBar(gtx layout.Context) layout.Dimensions {
	if e.saveButton.Clicked(gtx) {
		e.save()
	}
	if e.exportButton.Clicked(gtx) {
		e.export()
	}
	if e.shareButton.Clicked(gtx) {
		e.share()
	}
	if e.resetButton.Clicked(gtx) {
		e.Reset()
	}
	if e.closeButton.Clicked(gtx) {
		e.RequestClose()
	}

	gtx.Constraints.Min = gtx.Constraints.Max
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(48))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	button := func(btn *widget.Clickable, icon *widget.Icon, label string, bg color.NRGBA) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return e.iconButton(gtx, btn, icon, label, bg)
			})
		})
	}
	saveColor := primaryColor
	if e.dirty {
		saveColor = dirtyColor
	}

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return fill(gtx, gtx.Constraints.Min, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis:      layout.Horizontal,
				Alignment: layout.Middle,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						title := "Plan: " + filepath.Base(e.planPath)
						if e.dirty {
							title += " *"
						}
						return e.label(gtx, title)
					})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min.X = gtx.Dp(unit.Dp(220))
					gtx.Constraints.Max.X = gtx.Constraints.Min.X
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						ed := material.Editor(e.theme, &e.nameEditor, "Project name")
						ed.Color = white
						ed.HintColor = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
						return ed.Layout(gtx)
					})
				}),
				button(&e.saveButton, e.icons.save, "Save", saveColor),
				button(&e.exportButton, e.icons.export, "Export PNG", primaryColor),
				button(&e.shareButton, e.icons.share, "Share", primaryColor),
				button(&e.resetButton, e.icons.reset, "Reset", dangerColor),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return e.label(gtx, e.status)
					})
				}),
				button(&e.closeButton, e.icons.close, "Close", inactiveColor),
			)
		},
	)
}

func toolLabel(t interact.Tool) string {
	if ft, ok := t.Furniture(); ok {
		return ft.DisplayName()
	}
	switch t {
	case interact.PlaceRoom:
		return "Room"
	case interact.Wall:
		return "Wall"
	default:
		return "Select"
	}
}

// layoutLeftBar renders the tools, room types and grid settings
func (e *Editor) layoutLeftBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(200))
	gtx.Constraints.Max.X = gtx.Constraints.Min.X

	tools := interact.Tools()
	roomTypes := plan.RoomTypes()
	for len(e.toolButtons) < len(tools) {
		e.toolButtons = append(e.toolButtons, widget.Clickable{})
	}
	for len(e.roomButtons) < len(roomTypes) {
		e.roomButtons = append(e.roomButtons, widget.Clickable{})
	}
	for i, t := range tools {
		if e.toolButtons[i].Clicked(gtx) {
			e.session.SetTool(t)
			e.revision++
		}
	}
	for i, rt := range roomTypes {
		if e.roomButtons[i].Clicked(gtx) {
			e.session.RoomType = rt
			e.session.SetTool(interact.PlaceRoom)
			e.revision++
		}
	}

	// tools, room heading, room types, room name, grid heading, grid size, grid checkbox
	rows := []layout.Widget{}
	for i, t := range tools {
		rows = append(rows, e.selectButton(&e.toolButtons[i], toolLabel(t), e.session.Tool() == t))
	}
	rows = append(rows, func(gtx layout.Context) layout.Dimensions { return e.heading(gtx, "Room Type") })
	for i, rt := range roomTypes {
		rows = append(rows, e.selectButton(&e.roomButtons[i], rt.DisplayName(), e.session.RoomType == rt))
	}
	rows = append(rows,
		func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				ed := material.Editor(e.theme, &e.roomNameEditor, "Custom room name")
				ed.Color = white
				ed.HintColor = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
				return ed.Layout(gtx)
			})
		},
		func(gtx layout.Context) layout.Dimensions { return e.heading(gtx, "Grid") },
		func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return e.label(gtx, fmt.Sprintf("Grid size: %dpx", e.session.Grid.CellSize))
			})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, material.Slider(e.theme, &e.gridSlider).Layout)
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				cb := material.CheckBox(e.theme, &e.gridCheckbox, "Show grid")
				cb.Color = textColor
				cb.IconColor = activeColor
				return cb.Layout(gtx)
			})
		},
	)

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return fill(gtx, gtx.Constraints.Min, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Vertical,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions { return e.heading(gtx, "Tools") }),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return material.List(e.theme, &e.toolList).Layout(gtx, len(rows), func(gtx layout.Context, index int) layout.Dimensions {
						return rows[index](gtx)
					})
				}),
			)
		},
	)
}

func (e *Editor) selectButton(btn *widget.Clickable, text string, active bool) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8), Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			b := material.Button(e.theme, btn, text)
			if active {
				b.Background = activeColor
			} else {
				b.Background = inactiveColor
			}
			b.Color = textColor
			return b.Layout(gtx)
		})
	}
}

type elementEntry struct {
	ref   plan.Ref
	label string
}

// elementEntries lists every element in drawing order: rooms, then walls, then furniture.
func (e *Editor) elementEntries() []elementEntry {
	p := e.session.Plan
	entries := make([]elementEntry, 0, len(p.Rooms)+len(p.Walls)+len(p.Furniture))
	for _, r := range p.Rooms {
		entries = append(entries, elementEntry{plan.Ref{Kind: plan.KindRoom, ID: r.ID}, r.Label})
	}
	for i, w := range p.Walls {
		entries = append(entries, elementEntry{plan.Ref{Kind: plan.KindWall, ID: w.ID}, fmt.Sprintf("Wall %d", i+1)})
	}
	for _, f := range p.Furniture {
		entries = append(entries, elementEntry{plan.Ref{Kind: plan.KindFurniture, ID: f.ID}, f.Type.DisplayName()})
	}
	return entries
}

// layoutRightBar renders the element list with counts and the total area
func (e *Editor) layoutRightBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(220))
	gtx.Constraints.Max.X = gtx.Constraints.Min.X

	entries := e.elementEntries()
	for len(e.elementButtons) < len(entries) {
		e.elementButtons = append(e.elementButtons, widget.Clickable{})
	}
	for i, entry := range entries {
		if e.elementButtons[i].Clicked(gtx) {
			e.session.Select(entry.ref)
		}
	}
	selected, hasSelection := e.session.Selection()
	counts := e.session.Plan.Counts()
	area := e.session.Plan.TotalArea(e.session.Grid.Cell())

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return fill(gtx, gtx.Constraints.Min, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Vertical,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions { return e.heading(gtx, "Elements") }),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return material.List(e.theme, &e.sideList).Layout(gtx, len(entries), func(gtx layout.Context, index int) layout.Dimensions {
						entry := entries[index]
						active := hasSelection && selected == entry.ref
						return e.selectButton(&e.elementButtons[index], entry.label, active)(gtx)
					})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return e.label(gtx, fmt.Sprintf("Rooms: %d", counts.Rooms))
							}),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return e.label(gtx, fmt.Sprintf("Furniture: %d", counts.Furniture))
							}),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return e.label(gtx, fmt.Sprintf("Walls: %d", counts.Walls))
							}),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return e.label(gtx, fmt.Sprintf("Total Area: %g sq ft", area))
							}),
						)
					})
				}),
			)
		},
	)
}

// layoutActionBar renders the actions for the selected element. Hidden without a selection.
func (e *Editor) layoutActionBar(gtx layout.Context) layout.Dimensions {
	if e.rotateButton.Clicked(gtx) {
		e.session.Rotate()
	}
	if e.enlargeButton.Clicked(gtx) {
		e.session.Enlarge()
	}
	if e.shrinkButton.Clicked(gtx) {
		e.session.Shrink()
	}
	if e.deleteButton.Clicked(gtx) {
		e.session.Delete()
	}

	ref, ok := e.session.Selection()
	if !ok {
		return layout.Dimensions{}
	}

	gtx.Constraints.Min = gtx.Constraints.Max
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(48))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	button := func(btn *widget.Clickable, icon *widget.Icon, label string, bg color.NRGBA) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return e.iconButton(gtx, btn, icon, label, bg)
			})
		})
	}
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return e.label(gtx, e.selectionLabel())
			})
		}),
	}
	if ref.Kind == plan.KindFurniture {
		children = append(children, button(&e.rotateButton, e.icons.rotate, "Rotate", primaryColor))
	}
	if ref.Kind != plan.KindWall {
		children = append(children,
			button(&e.enlargeButton, e.icons.enlarge, "Enlarge", primaryColor),
			button(&e.shrinkButton, e.icons.shrink, "Shrink", primaryColor),
		)
	}
	children = append(children, button(&e.deleteButton, e.icons.delete, "Delete", dangerColor))

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return fill(gtx, gtx.Constraints.Min, color.NRGBA{R: 45, G: 45, B: 45, A: 255})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis:      layout.Horizontal,
				Alignment: layout.Middle,
			}.Layout(gtx, children...)
		},
	)
}

// layoutCloseDialog renders the close confirmation dialog
func (e *Editor) layoutCloseDialog(gtx layout.Context) layout.Dimensions {
	// Semi-transparent overlay
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: color.NRGBA{R: 0, G: 0, B: 0, A: 200}}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, 8).Push(gtx.Ops).Pop()
				paint.ColorOp{Color: color.NRGBA{R: 45, G: 45, B: 45, A: 255}}.Add(gtx.Ops)
				paint.PaintOp{}.Add(gtx.Ops)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{
						Axis: layout.Vertical,
					}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Bottom: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								label := material.H6(e.theme, "Unsaved Changes")
								label.Color = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
								return label.Layout(gtx)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Bottom: unit.Dp(24)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								gtx.Constraints.Max.X = gtx.Dp(unit.Dp(400))
								label := material.Body1(e.theme, "Do you want to save your floor plan before closing?")
								label.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
								return label.Layout(gtx)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{
								Axis:    layout.Horizontal,
								Spacing: layout.SpaceEnd,
							}.Layout(gtx,
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeSaveButton, "Save")
									btn.Background = primaryColor
									btn.Color = white
									return layout.Inset{Right: unit.Dp(8)}.Layout(gtx, btn.Layout)
								}),
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeDiscardButton, "Discard")
									btn.Background = dangerColor
									btn.Color = white
									return layout.Inset{Right: unit.Dp(8)}.Layout(gtx, btn.Layout)
								}),
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeCancelButton, "Cancel")
									btn.Background = inactiveColor
									btn.Color = white
									return btn.Layout(gtx)
								}),
							)
						}),
					)
				})
			},
		)
	})
}
