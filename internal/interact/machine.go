package interact

import (
	"log"
	"math"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// Machine is the pointer-driven editor. It is not safe for concurrent use;
// the canvas controller serialises every call.
type Machine struct {
	store   *state.Store
	tool    Tool
	gesture Gesture
	edit    *textEdit
	newID   func() string
}

// NewMachine returns an idle machine with the selection tool active.
func NewMachine(store *state.Store) *Machine {
	return &Machine{
		store:   store,
		tool:    ToolSelection,
		gesture: Idle{},
		newID:   state.NewID,
	}
}

func (m *Machine) Store() *state.Store { return m.store }
func (m *Machine) Tool() Tool          { return m.tool }

// Gesture returns the active gesture; Idle{} when nothing is in progress.
func (m *Machine) Gesture() Gesture { return m.gesture }

// SetTool switches tools, committing any open text edit and gesture first.
func (m *Machine) SetTool(t Tool) {
	if m.edit != nil {
		m.CommitText()
	}
	m.finish()
	m.tool = t
}

// PointerDown starts a gesture according to the active tool.
func (m *Machine) PointerDown(ev PointerEvent) {
	if m.edit != nil {
		// the click that leaves a text box only closes the editor
		m.CommitText()
		return
	}
	m.finish()

	vp := m.store.Viewport()
	world := vp.ToWorld(ev.Screen)

	if ev.Button == ButtonMiddle || (ev.Button == ButtonPrimary && m.tool == ToolHand) {
		m.gesture = &Panning{Last: ev.Screen}
		return
	}
	if ev.Button != ButtonPrimary {
		return
	}

	switch m.tool {
	case ToolSelection:
		m.selectDown(ev, world, vp)
	case ToolText:
		if hit, ok := state.TopmostAt(m.store.Elements(), world); ok && hit.Kind() == state.KindText {
			m.store.SetSelection([]string{hit.Common().ID})
			m.BeginTextEdit(hit.Common().ID)
			return
		}
		m.placeText(world)
	default:
		if kind, ok := m.tool.kind(); ok {
			m.gesture = &Drawing{Kind: kind, ID: m.newID(), Start: world}
		}
	}
}

func (m *Machine) selectDown(ev PointerEvent, world geom.Point, vp state.Viewport) {
	if sel := m.store.SelectedElements(); len(sel) == 1 {
		if h, ok := state.HandleAt(sel[0], vp, ev.Screen); ok {
			m.gesture = &Resizing{ID: sel[0].Common().ID, Handle: h, Original: sel[0].Clone()}
			return
		}
	}

	if hit, ok := state.TopmostAt(m.store.Elements(), world); ok {
		id := hit.Common().ID
		switch {
		case ev.Shift:
			m.store.ToggleSelection(id)
		case !m.store.IsSelected(id):
			m.store.SetSelection([]string{id})
		}
		if m.store.IsSelected(id) {
			m.gesture = &Dragging{AnchorID: id, Offset: world.Sub(state.ElementBounds(hit).Min())}
		}
		return
	}

	if !ev.Shift {
		m.store.ClearSelection()
	}
	m.gesture = &BoxSelecting{Start: world, End: world, Additive: ev.Shift}
}

func (m *Machine) placeText(world geom.Point) {
	t := state.NewTextElement(m.newID(), world, m.store.Style())
	m.store.InsertElement(t)
	m.store.SetSelection([]string{t.ID})
	m.edit = &textEdit{id: t.ID, created: true}
}

// PointerMove advances the active gesture.
func (m *Machine) PointerMove(ev PointerEvent) {
	vp := m.store.Viewport()
	world := vp.ToWorld(ev.Screen)

	switch g := m.gesture.(type) {
	case Idle:
	case *Drawing:
		if f, ok := g.Preview.(*state.Freehand); ok {
			f.Points = append(f.Points, world)
			return
		}
		g.Preview = state.NewDrawingElement(g.ID, g.Kind, g.Start, world, m.store.Style(), 0)
	case *Dragging:
		anchor, ok := m.store.Element(g.AnchorID)
		if !ok {
			m.gesture = Idle{}
			return
		}
		origin := state.ElementBounds(anchor).Min()
		target := world.Sub(g.Offset)
		dx, dy := target.X-origin.X, target.Y-origin.Y
		if dx == 0 && dy == 0 {
			return
		}
		m.store.UpdateSelected(func(e state.Element) { state.Translate(e, dx, dy) })
	case *Resizing:
		m.store.UpdateElement(g.ID, func(e state.Element) {
			state.ApplyResize(e, g.Original, g.Handle, world)
		})
	case *Panning:
		delta := ev.Screen.Sub(g.Last)
		m.store.PanBy(-delta.X/vp.Zoom, -delta.Y/vp.Zoom)
		g.Last = ev.Screen
	case *BoxSelecting:
		g.End = world
	}
}

// PointerUp commits the active gesture and returns to Idle.
func (m *Machine) PointerUp(PointerEvent) {
	m.finish()
}

// Reset drops an open text edit and the active gesture without committing
// either.
func (m *Machine) Reset() {
	if m.edit != nil {
		m.CancelText()
	}
	m.gesture = Idle{}
}

// PointerLeave behaves exactly like PointerUp so every gesture terminates.
func (m *Machine) PointerLeave() {
	m.finish()
}

func (m *Machine) finish() {
	g := m.gesture
	m.gesture = Idle{}

	switch g := g.(type) {
	case *Drawing:
		m.commitDrawing(g)
	case *BoxSelecting:
		hits := state.ElementsInBox(m.store.Elements(), g.Start, g.End)
		if g.Additive {
			hits = state.UnionIDs(m.store.Selection(), hits)
		}
		m.store.SetSelection(hits)
	case Idle, *Dragging, *Resizing, *Panning:
	}
}

func (m *Machine) commitDrawing(g *Drawing) {
	e := g.Preview
	if e == nil {
		end := state.ElementEndPoint(nil, g.Start)
		if g.Kind == state.KindFreehand {
			end = g.Start
		}
		e = state.NewDrawingElement(g.ID, g.Kind, g.Start, end, m.store.Style(), state.MinElementSize)
	} else {
		state.EnsureMinimumSize(e, state.MinElementSize)
	}
	if e == nil {
		return
	}
	m.store.AddElement(e)
	m.store.SetSelection([]string{g.ID})
}

// Preview returns the in-progress element of a Drawing gesture, if any.
func (m *Machine) Preview() state.Element {
	if d, ok := m.gesture.(*Drawing); ok {
		return d.Preview
	}
	return nil
}

// Wheel zooms around the pointer. Positive steps zoom in.
func (m *Machine) Wheel(screen geom.Point, steps float64) {
	if steps == 0 {
		return
	}
	m.store.ZoomAt(screen, math.Pow(state.ZoomStep, steps))
}

// DoubleClick opens the text editor on a text element under the pointer.
func (m *Machine) DoubleClick(ev PointerEvent) {
	if m.tool != ToolSelection || m.edit != nil {
		return
	}
	m.finish()
	world := m.store.Viewport().ToWorld(ev.Screen)
	if hit, ok := state.TopmostAt(m.store.Elements(), world); ok && hit.Kind() == state.KindText {
		m.store.SetSelection([]string{hit.Common().ID})
		m.BeginTextEdit(hit.Common().ID)
	}
}

// Restyle makes style the default for new elements and applies it to the
// current selection. Style edits are patches and do not checkpoint.
func (m *Machine) Restyle(style state.Style) {
	m.store.SetStyle(style)
	m.store.UpdateSelected(func(e state.Element) {
		b := e.Common()
		b.StrokeColor = style.StrokeColor
		b.FillColor = style.FillColor
		b.StrokeWidth = style.StrokeWidth
		b.StrokeStyle = style.StrokeStyle
		b.Opacity = style.Opacity
		b.FillPattern = style.FillPattern
		b.Sloppiness = style.Sloppiness
		b.EdgeRounding = style.EdgeRounding
		if t, ok := e.(*state.Text); ok {
			t.FontSize = style.FontSize
			t.FontFamily = style.FontFamily
			fitText(t)
		}
	})
}

// Command is a keyboard action routed in from the shortcut layer.
type Command int

const (
	CmdUndo Command = iota
	CmdRedo
	CmdDelete
	CmdSelectAll
	CmdEscape
)

// Execute runs a keyboard command.
func (m *Machine) Execute(cmd Command) {
	if cmd == CmdEscape {
		m.escape()
		return
	}
	if m.edit != nil {
		m.CommitText()
	}
	m.finish()

	switch cmd {
	case CmdUndo:
		m.store.Undo()
	case CmdRedo:
		m.store.Redo()
	case CmdDelete:
		if sel := m.store.Selection(); len(sel) > 0 {
			m.store.DeleteElements(sel)
		}
	case CmdSelectAll:
		m.store.SelectAll()
	}
}

func (m *Machine) escape() {
	if m.edit != nil {
		m.CancelText()
		return
	}
	if _, idle := m.gesture.(Idle); !idle {
		log.Printf("[INPUT] gesture %T aborted", m.gesture)
		m.gesture = Idle{}
		return
	}
	m.store.ClearSelection()
}
