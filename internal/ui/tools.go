package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/export"
	"SketchBoard/internal/interact"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

var strokePalette = []string{"#1e1e1e", "#e03131", "#2f9e44", "#1971c2", "#f08c00"}

var fillPalette = []string{state.Transparent, "#ffc9c9", "#b2f2bb", "#a5d8ff", "#ffec99"}

// colorSwatch is a tappable square showing one palette entry.
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	var fill color.Color = render.ParseColor(s.Hex, 1)
	if s.Hex == state.Transparent {
		fill = color.Transparent
	}
	rect := canvas.NewRectangle(fill)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// Toolbar holds the tool buttons and style controls of one board.
type Toolbar struct {
	board   *BoardWidget
	buttons map[interact.Tool]*widget.Button
}

// restyle edits the current style and applies it to the selection.
func (t *Toolbar) restyle(edit func(*state.Style)) {
	ctrl := t.board.ctrl
	style := ctrl.Store().Style()
	edit(&style)
	ctrl.Restyle(style)
	t.board.Redraw()
}

// SyncTool highlights the active tool's button.
func (t *Toolbar) SyncTool() {
	active := t.board.ctrl.Tool()
	for tool, btn := range t.buttons {
		if tool == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func toolLabel(t interact.Tool) string {
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (t *Toolbar) toolButtons() fyne.CanvasObject {
	box := container.NewHBox()
	for _, tool := range interact.Tools {
		btn := widget.NewButton(toolLabel(tool), func() {
			t.board.ctrl.SetTool(tool)
			t.SyncTool()
		})
		t.buttons[tool] = btn
		box.Add(btn)
	}
	return box
}

func choice[T ~string](values []T, current T, set func(T)) *widget.Select {
	opts := make([]string, len(values))
	for i, v := range values {
		opts[i] = string(v)
	}
	sel := widget.NewSelect(opts, nil)
	sel.SetSelected(string(current))
	sel.OnChanged = func(s string) { set(T(s)) }
	return sel
}

func (t *Toolbar) styleControls() fyne.CanvasObject {
	style := t.board.ctrl.Store().Style()

	strokeBox := container.NewHBox()
	for _, hex := range strokePalette {
		strokeBox.Add(newColorSwatch(hex, func(c string) {
			t.restyle(func(s *state.Style) { s.StrokeColor = c })
		}))
	}
	fillBox := container.NewHBox()
	for _, hex := range fillPalette {
		fillBox.Add(newColorSwatch(hex, func(c string) {
			t.restyle(func(s *state.Style) { s.FillColor = c })
		}))
	}

	strokeSlider := widget.NewSlider(1, 20)
	strokeSlider.SetValue(style.StrokeWidth)
	strokeSlider.OnChanged = func(v float64) {
		t.restyle(func(s *state.Style) { s.StrokeWidth = v })
	}
	opacitySlider := widget.NewSlider(0.1, 1)
	opacitySlider.Step = 0.1
	opacitySlider.SetValue(style.Opacity)
	opacitySlider.OnChanged = func(v float64) {
		t.restyle(func(s *state.Style) { s.Opacity = v })
	}
	sized := func(o fyne.CanvasObject) fyne.CanvasObject {
		return container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), o)
	}

	strokeStyle := choice([]state.StrokeStyle{state.StrokeSolid, state.StrokeDashed, state.StrokeDotted},
		style.StrokeStyle, func(v state.StrokeStyle) { t.restyle(func(s *state.Style) { s.StrokeStyle = v }) })
	pattern := choice([]state.FillPattern{state.FillSolid, state.FillCrossHatch, state.FillGrid, state.FillDotted},
		style.FillPattern, func(v state.FillPattern) { t.restyle(func(s *state.Style) { s.FillPattern = v }) })
	sloppiness := choice([]state.Sloppiness{state.SloppinessSubtle, state.SloppinessModerate, state.SloppinessHigh},
		style.Sloppiness, func(v state.Sloppiness) { t.restyle(func(s *state.Style) { s.Sloppiness = v }) })
	edges := choice([]state.EdgeRounding{state.EdgeSharp, state.EdgeRounded},
		style.EdgeRounding, func(v state.EdgeRounding) { t.restyle(func(s *state.Style) { s.EdgeRounding = v }) })

	return container.NewHBox(
		widget.NewLabel("Stroke:"), strokeBox,
		widget.NewLabel("Fill:"), fillBox,
		widget.NewSeparator(),
		widget.NewLabel("Width:"), sized(strokeSlider),
		widget.NewLabel("Opacity:"), sized(opacitySlider),
		widget.NewSeparator(),
		strokeStyle, pattern, sloppiness, edges,
		layout.NewSpacer(),
	)
}

// actions is the icon bar for history, deletion and files.
func (t *Toolbar) actions(save, open func(), exportAs func(export.Format)) fyne.CanvasObject {
	ctrl := t.board.ctrl
	run := func(cmd interact.Command) func() {
		return func() {
			ctrl.Command(cmd)
			t.board.Redraw()
		}
	}
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), run(interact.CmdUndo)),
		widget.NewToolbarAction(theme.ContentRedoIcon(), run(interact.CmdRedo)),
		widget.NewToolbarAction(theme.DeleteIcon(), run(interact.CmdDelete)),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), save),
		widget.NewToolbarAction(theme.FolderOpenIcon(), open),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { exportAs(export.FormatPDF) }),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { exportAs(export.FormatPNG) }),
		widget.NewToolbarAction(theme.MediaPhotoIcon(), func() { exportAs(export.FormatSVG) }),
	)
}

// NewToolbar builds the editing toolbar. A viewer gets none.
func NewToolbar(board *BoardWidget, save, open func(), exportAs func(export.Format)) (*Toolbar, fyne.CanvasObject) {
	t := &Toolbar{board: board, buttons: map[interact.Tool]*widget.Button{}}
	row := container.NewHBox(
		widget.NewLabel("Tool:"),
		t.toolButtons(),
		widget.NewSeparator(),
		t.actions(save, open, exportAs),
	)
	t.SyncTool()
	return t, container.NewVBox(row, t.styleControls())
}
