package board

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/interact"
	"SketchBoard/internal/persist"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

func newController() *Controller {
	return New(state.NewStore(), render.NewRenderer(render.Light, true))
}

func press(c *Controller, from, to geom.Point) {
	c.PointerDown(interact.PointerEvent{Screen: from})
	c.PointerMove(interact.PointerEvent{Screen: to})
	c.PointerUp(interact.PointerEvent{Screen: to})
}

func TestDrawThroughController(t *testing.T) {
	c := newController()
	c.SetTool(interact.ToolRectangle)
	press(c, geom.Pt(10, 10), geom.Pt(60, 40))

	require.Len(t, c.Store().Elements(), 1)
	f := c.Frame()
	assert.Len(t, f.Selected, 1)
	assert.Nil(t, f.Preview)
	assert.Nil(t, f.Box)
}

func TestFrameCarriesPreviewAndBox(t *testing.T) {
	c := newController()
	c.SetTool(interact.ToolLine)
	c.PointerDown(interact.PointerEvent{Screen: geom.Pt(0, 0)})
	c.PointerMove(interact.PointerEvent{Screen: geom.Pt(80, 0)})
	assert.NotNil(t, c.Frame().Preview)
	c.PointerLeave()
	assert.Nil(t, c.Frame().Preview)
	assert.Len(t, c.Store().Elements(), 1)

	c.SetTool(interact.ToolSelection)
	c.PointerDown(interact.PointerEvent{Screen: geom.Pt(200, 200)})
	c.PointerMove(interact.PointerEvent{Screen: geom.Pt(250, 260)})
	f := c.Frame()
	require.NotNil(t, f.Box)
	assert.Equal(t, geom.Bounds{MinX: 200, MinY: 200, MaxX: 250, MaxY: 260}, *f.Box)
}

func TestRenderSizesBuffer(t *testing.T) {
	c := newController()
	resized := 0
	c.OnResize = func() { resized++ }

	c.Resize(120, 80, 2)
	c.Resize(120, 80, 2)
	assert.Equal(t, 1, resized)

	img := c.Render()
	assert.Equal(t, 240, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
	assert.Equal(t, uint64(1), c.Frames())

	c.Resize(50, 40, 1)
	assert.Equal(t, 50, c.Render().Bounds().Dx())
	assert.Equal(t, uint64(2), c.Frames())
}

func TestCommandsAndText(t *testing.T) {
	c := newController()
	c.SetTool(interact.ToolText)
	c.PointerDown(interact.PointerEvent{Screen: geom.Pt(5, 5)})
	c.PointerUp(interact.PointerEvent{Screen: geom.Pt(5, 5)})
	require.True(t, c.Editing())

	c.TypeRune('h')
	c.TypeRune('i')
	c.Backspace()
	c.CommitText()
	assert.False(t, c.Editing())

	els := c.Store().Elements()
	require.Len(t, els, 1)
	assert.Equal(t, "h", els[0].(*state.Text).Text)

	c.Command(interact.CmdSelectAll)
	c.Command(interact.CmdDelete)
	assert.Empty(t, c.Store().Elements())
	c.Command(interact.CmdUndo)
	assert.Len(t, c.Store().Elements(), 1)
}

func TestViewerIsReadOnly(t *testing.T) {
	store := state.NewStore()
	v := NewViewer(store, render.NewRenderer(render.Dark, false))
	assert.True(t, v.ReadOnly())

	v.Present([]state.Element{
		&state.Rectangle{Base: state.Base{ID: "r", X: 0, Y: 0}, Width: 40, Height: 40},
	})
	assert.False(t, store.CanUndo())

	v.SetTool(interact.ToolRectangle)
	assert.Equal(t, interact.ToolHand, v.Tool())

	press(v, geom.Pt(10, 10), geom.Pt(30, 10))
	assert.Len(t, store.Elements(), 1)
	assert.Equal(t, -20.0, store.Viewport().OffsetX)

	v.Command(interact.CmdSelectAll)
	v.Command(interact.CmdDelete)
	assert.Len(t, store.Elements(), 1)
	assert.Empty(t, store.Selection())

	v.Wheel(geom.Pt(0, 0), 1)
	assert.InDelta(t, 1.1, store.Viewport().Zoom, 1e-9)
}

func TestRunTicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32
	done := make(chan struct{})
	go func() {
		Run(ctx, time.Millisecond, func() {
			if ticks.Add(1) == 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.GreaterOrEqual(t, ticks.Load(), int32(3))
}

func TestFrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/30, FrameInterval(30))
	assert.Equal(t, time.Second/60, FrameInterval(0))
}

func TestOpenReplacesBoard(t *testing.T) {
	c := newController()
	c.SetTool(interact.ToolRectangle)
	c.PointerDown(interact.PointerEvent{Screen: geom.Pt(0, 0)})
	c.PointerMove(interact.PointerEvent{Screen: geom.Pt(30, 30)})

	vp := state.DefaultViewport()
	vp.Zoom = 2
	c.Open(persist.Document{
		Version:   persist.Version,
		Elements:  []state.Element{&state.Circle{Base: state.Base{ID: "c"}, Width: 20, Height: 20}},
		Viewport:  vp,
		Selection: []string{"c"},
	})

	f := c.Frame()
	assert.Nil(t, f.Preview)
	require.Len(t, f.Elements, 1)
	assert.Equal(t, "c", f.Elements[0].Common().ID)
	assert.Equal(t, 2.0, f.Viewport.Zoom)
	assert.Len(t, f.Selected, 1)
}
