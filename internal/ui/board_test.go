package ui

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/interact"
	"SketchBoard/internal/state"
)

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	e := &desktop.MouseEvent{Button: button}
	e.Position = fyne.NewPos(x, y)
	return e
}

func dragTo(x, y float32) *fyne.DragEvent {
	e := &fyne.DragEvent{}
	e.Position = fyne.NewPos(x, y)
	return e
}

func TestWidgetDrawsRectangle(t *testing.T) {
	test.NewTempApp(t)
	b := NewBoardWidget(newCtrl())
	b.ctrl.SetTool(interact.ToolRectangle)

	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.Dragged(dragTo(70, 50))
	b.DragEnd()
	b.MouseUp(mouse(70, 50, desktop.MouseButtonPrimary))

	els := b.ctrl.Store().Elements()
	require.Len(t, els, 1)
	r := els[0].(*state.Rectangle)
	assert.Equal(t, 60.0, r.Width)
	assert.Equal(t, 40.0, r.Height)
}

func TestWidgetMiddleButtonPans(t *testing.T) {
	test.NewTempApp(t)
	b := NewBoardWidget(newCtrl())
	b.MouseDown(mouse(100, 100, desktop.MouseButtonTertiary))
	b.MouseMoved(mouse(130, 90, desktop.MouseButtonTertiary))
	b.MouseUp(mouse(130, 90, desktop.MouseButtonTertiary))

	vp := b.ctrl.Store().Viewport()
	assert.Equal(t, -30.0, vp.OffsetX)
	assert.Equal(t, 10.0, vp.OffsetY)

	// moves without a pressed button do nothing
	b.MouseMoved(mouse(0, 0, 0))
	assert.Equal(t, vp, b.ctrl.Store().Viewport())
}

func TestWidgetMouseOutCommits(t *testing.T) {
	test.NewTempApp(t)
	b := NewBoardWidget(newCtrl())
	b.ctrl.SetTool(interact.ToolLine)
	b.MouseDown(mouse(0, 0, desktop.MouseButtonPrimary))
	b.Dragged(dragTo(50, 0))
	b.MouseOut()
	assert.Len(t, b.ctrl.Store().Elements(), 1)
	assert.Nil(t, b.ctrl.Frame().Preview)
}

func TestWidgetScrollZooms(t *testing.T) {
	test.NewTempApp(t)
	b := NewBoardWidget(newCtrl())
	e := &fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 3}}
	b.Scrolled(e)
	assert.InDelta(t, 1.1, b.ctrl.Store().Viewport().Zoom, 1e-9)
	e.Scrolled.DY = -1
	b.Scrolled(e)
	assert.InDelta(t, 1.0, b.ctrl.Store().Viewport().Zoom, 1e-9)
}

func TestSaveAndLoadFile(t *testing.T) {
	test.NewTempApp(t)
	uri := storage.NewFileURI(filepath.Join(t.TempDir(), "board.json"))

	src := NewBoardWidget(newCtrl())
	saved := false
	src.onSaved = func() { saved = true }
	src.ctrl.SetTool(interact.ToolCircle)
	src.MouseDown(mouse(0, 0, desktop.MouseButtonPrimary))
	src.Dragged(dragTo(40, 40))
	src.DragEnd()

	w, err := storage.Writer(uri)
	require.NoError(t, err)
	src.SaveToFile(w)
	assert.True(t, saved)
	assert.Equal(t, "Saved 1 elements", src.StatusBar().Text)

	dst := NewBoardWidget(newCtrl())
	r, err := storage.Reader(uri)
	require.NoError(t, err)
	dst.LoadFromFile(r)

	els := dst.ctrl.Store().Elements()
	require.Len(t, els, 1)
	assert.Equal(t, state.KindCircle, els[0].Kind())
	assert.Equal(t, "Loaded 1 elements", dst.StatusBar().Text)
}

func TestOnlyElementEditsMakeBoardDirty(t *testing.T) {
	store := state.NewStore()
	store.AddElement(&state.Rectangle{Base: state.Base{ID: "a"}, Width: 10, Height: 10})
	c := newChangeTracker(store)

	store.PanBy(40, 40)
	store.SetZoom(2)
	store.SetSelection([]string{"a"})
	store.ClearSelection()
	assert.False(t, c.observe())

	store.AddElement(&state.Rectangle{Base: state.Base{ID: "b"}, Width: 10, Height: 10})
	assert.True(t, c.observe())
	assert.False(t, c.observe(), "reported once")

	c.markSaved()
	store.PanBy(1, 1)
	assert.False(t, c.observe())
	store.UpdateElement("a", func(e state.Element) { e.Common().X = 5 })
	assert.True(t, c.observe())
}
