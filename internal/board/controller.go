// Package board glues the editor state machine to the renderer. Every input
// event and every frame goes through one mutex, so a frame never shows a
// half-applied gesture.
package board

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/interact"
	"SketchBoard/internal/persist"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

type Controller struct {
	mu       sync.Mutex
	store    *state.Store
	machine  *interact.Machine
	renderer *render.Renderer
	surface  *render.GGSurface
	readOnly bool
	frames   uint64

	// OnResize is called after the drawing buffer changed size.
	OnResize func()
}

func New(store *state.Store, renderer *render.Renderer) *Controller {
	return &Controller{
		store:    store,
		machine:  interact.NewMachine(store),
		renderer: renderer,
		surface:  render.NewGGSurface(1, 1, 1),
	}
}

// NewViewer returns a controller that only pans and zooms. Documents are
// pushed into it with Present.
func NewViewer(store *state.Store, renderer *render.Renderer) *Controller {
	c := New(store, renderer)
	c.readOnly = true
	c.machine.SetTool(interact.ToolHand)
	return c
}

func (c *Controller) Store() *state.Store { return c.store }
func (c *Controller) ReadOnly() bool      { return c.readOnly }

func (c *Controller) Tool() interact.Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Tool()
}

func (c *Controller) SetTool(t interact.Tool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readOnly {
		return
	}
	c.machine.SetTool(t)
}

func (c *Controller) PointerDown(ev interact.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.PointerDown(ev)
}

func (c *Controller) PointerMove(ev interact.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.PointerMove(ev)
}

func (c *Controller) PointerUp(ev interact.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.PointerUp(ev)
}

func (c *Controller) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.PointerLeave()
}

func (c *Controller) Wheel(screen geom.Point, steps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.Wheel(screen, steps)
}

func (c *Controller) DoubleClick(ev interact.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readOnly {
		return
	}
	c.machine.DoubleClick(ev)
}

// Command runs a keyboard command. A viewer only honours Escape.
func (c *Controller) Command(cmd interact.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readOnly && cmd != interact.CmdEscape {
		return
	}
	c.machine.Execute(cmd)
}

// Editing reports whether typed keys belong to an open text box.
func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.machine.Editing()
	return ok
}

func (c *Controller) TypeRune(r rune) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.TypeRune(r)
}

func (c *Controller) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.Backspace()
}

// Enter breaks the edited line, or commits on an empty one.
func (c *Controller) Enter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.Enter()
}

// CommitText closes an open text box, keeping what was typed.
func (c *Controller) CommitText() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.CommitText()
}

func (c *Controller) Restyle(style state.Style) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readOnly {
		return
	}
	c.machine.Restyle(style)
}

// Present shows a document received from a host. It replaces the elements
// without keeping history and leaves the local viewport alone.
func (c *Controller) Present(elements []state.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.ReplaceAll(elements)
	c.store.ResetHistory()
}

// Open replaces the board with a loaded document. Whatever was being drawn or
// typed is dropped.
func (c *Controller) Open(doc persist.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.Reset()
	persist.Apply(c.store, doc)
}

// Resize re-derives the drawing buffer from the logical size and device
// pixel ratio.
func (c *Controller) Resize(width, height, dpr float64) {
	c.mu.Lock()
	changed := c.surface.Resize(width, height, dpr)
	c.mu.Unlock()
	if changed {
		log.Printf("[BOARD] surface %gx%g @%gx", width, height, dpr)
		if c.OnResize != nil {
			c.OnResize()
		}
	}
}

// Frame assembles what the next redraw shows.
func (c *Controller) Frame() render.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameLocked()
}

func (c *Controller) frameLocked() render.Frame {
	f := render.Frame{
		Elements: c.store.Elements(),
		Selected: c.store.SelectedElements(),
		Viewport: c.store.Viewport(),
		Preview:  c.machine.Preview(),
	}
	if b, ok := c.machine.Gesture().(*interact.BoxSelecting); ok {
		box := b.Box()
		f.Box = &box
	}
	return f
}

// Render draws a full frame and returns the buffer. The image is reused by
// the next call.
func (c *Controller) Render() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer.Draw(c.surface, c.frameLocked())
	c.frames++
	return c.surface.Image()
}

// Frames counts rendered frames.
func (c *Controller) Frames() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// SetTheme switches colours and grid visibility for later frames.
func (c *Controller) SetTheme(theme render.Theme, grid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer.Theme = theme
	c.renderer.ShowGrid = grid
}

// Run calls tick every interval until ctx is done. Redraws are not gated on
// changes; every tick asks for a full frame.
func Run(ctx context.Context, interval time.Duration, tick func()) {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

// FrameInterval converts a frame rate to a tick interval.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
