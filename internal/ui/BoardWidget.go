package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/board"
	"SketchBoard/internal/geom"
	"SketchBoard/internal/interact"
)

// BoardWidget shows the controller's frames in a raster and feeds it pointer
// input. All drawing happens in the controller; the widget only converts
// fyne events.
type BoardWidget struct {
	widget.BaseWidget
	ctrl      *board.Controller
	raster    *canvas.Raster
	statusBar *widget.Label

	mu      sync.Mutex
	pressed bool
	last    fyne.Position

	onSaved func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ fyne.DoubleTappable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(ctrl *board.Controller) *BoardWidget {
	b := &BoardWidget{
		ctrl:      ctrl,
		statusBar: widget.NewLabel("Ready"),
	}
	b.raster = canvas.NewRaster(b.draw)
	b.raster.SetMinSize(fyne.NewSize(300, 300))
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Controller() *board.Controller { return b.ctrl }

// StatusBar is the label SetStatus writes to.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetStatus may be called from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// Redraw asks fyne for a new frame.
func (b *BoardWidget) Redraw() {
	b.raster.Refresh()
}

// draw is the raster generator. w and h are in device pixels, so their ratio
// to the widget size is the pixel ratio of the window.
func (b *BoardWidget) draw(w, h int) image.Image {
	size := b.Size()
	width, height := float64(size.Width), float64(size.Height)
	dpr := 1.0
	if width > 0 {
		dpr = float64(w) / width
	} else {
		width, height = float64(w), float64(h)
	}
	b.ctrl.Resize(width, height, dpr)
	return b.ctrl.Render()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.raster)
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func pointerEvent(e *desktop.MouseEvent) interact.PointerEvent {
	ev := interact.PointerEvent{
		Screen: toPoint(e.Position),
		Shift:  e.Modifier&fyne.KeyModifierShift != 0,
	}
	switch e.Button {
	case desktop.MouseButtonSecondary:
		ev.Button = interact.ButtonSecondary
	case desktop.MouseButtonTertiary:
		ev.Button = interact.ButtonMiddle
	default:
		ev.Button = interact.ButtonPrimary
	}
	return ev
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	b.mu.Lock()
	b.pressed = true
	b.last = e.Position
	b.mu.Unlock()
	b.ctrl.PointerDown(pointerEvent(e))
	b.Redraw()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if !b.release() {
		return
	}
	b.ctrl.PointerUp(pointerEvent(e))
	b.Redraw()
}

// release clears the pressed flag and reports whether it was set.
func (b *BoardWidget) release() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	was := b.pressed
	b.pressed = false
	return was
}

func (b *BoardWidget) move(pos fyne.Position, shift bool) {
	b.mu.Lock()
	if !b.pressed {
		b.mu.Unlock()
		return
	}
	b.last = pos
	b.mu.Unlock()
	b.ctrl.PointerMove(interact.PointerEvent{Screen: toPoint(pos), Shift: shift})
}

// MouseMoved carries drags of the middle and secondary buttons, which fyne
// does not report through Dragged.
func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.move(e.Position, e.Modifier&fyne.KeyModifierShift != 0)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

// MouseOut ends a gesture the same way releasing the button does.
func (b *BoardWidget) MouseOut() {
	if b.release() {
		b.ctrl.PointerLeave()
		b.Redraw()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.move(e.Position, false)
}

func (b *BoardWidget) DragEnd() {
	b.mu.Lock()
	last := b.last
	b.mu.Unlock()
	if b.release() {
		b.ctrl.PointerUp(interact.PointerEvent{Screen: toPoint(last)})
		b.Redraw()
	}
}

// Scrolled zooms one step per event around the pointer.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	steps := 0.0
	switch {
	case e.Scrolled.DY > 0:
		steps = 1
	case e.Scrolled.DY < 0:
		steps = -1
	}
	b.ctrl.Wheel(toPoint(e.Position), steps)
	b.Redraw()
}

func (b *BoardWidget) DoubleTapped(e *fyne.PointEvent) {
	b.ctrl.DoubleClick(interact.PointerEvent{Screen: toPoint(e.Position)})
	b.Redraw()
}
