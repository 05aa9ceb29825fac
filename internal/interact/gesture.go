// Package interact turns pointer and keyboard input into edits of a
// state.Store. At most one gesture is active at a time; the active gesture
// is a single value of the closed Gesture type.
package interact

import (
	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// Tool is the active drawing tool.
type Tool string

const (
	ToolSelection Tool = "selection"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
	ToolFreehand  Tool = "freehand"
	ToolText      Tool = "text"
	ToolHand      Tool = "hand"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelection, ToolHand, ToolRectangle, ToolCircle, ToolLine, ToolArrow, ToolFreehand, ToolText}

// kind maps shape tools to the element they draw.
func (t Tool) kind() (state.Kind, bool) {
	switch t {
	case ToolRectangle:
		return state.KindRectangle, true
	case ToolCircle:
		return state.KindCircle, true
	case ToolLine:
		return state.KindLine, true
	case ToolArrow:
		return state.KindArrow, true
	case ToolFreehand:
		return state.KindFreehand, true
	}
	return "", false
}

// Gesture is one of Idle, Drawing, Dragging, Resizing, Panning or
// BoxSelecting.
type Gesture interface {
	gesture()
}

type Idle struct{}

// Drawing previews a shape between Start and the pointer. Preview is nil
// until the pointer first moves.
type Drawing struct {
	Kind    state.Kind
	ID      string
	Start   geom.Point
	Preview state.Element
}

// Dragging moves the selection so that the anchor element's bounds-min
// stays at pointer - Offset.
type Dragging struct {
	AnchorID string
	Offset   geom.Point
}

// Resizing drags one grip of a single element. Original is the element as
// it was when the gesture began.
type Resizing struct {
	ID       string
	Handle   state.Handle
	Original state.Element
}

// Panning scrolls the viewport. Last is the previous pointer position in
// screen coordinates.
type Panning struct {
	Last geom.Point
}

// BoxSelecting spans a rubber band in world coordinates.
type BoxSelecting struct {
	Start, End geom.Point
	Additive   bool
}

func (Idle) gesture()          {}
func (*Drawing) gesture()      {}
func (*Dragging) gesture()     {}
func (*Resizing) gesture()     {}
func (*Panning) gesture()      {}
func (*BoxSelecting) gesture() {}

// Box returns the rubber band bounds in world coordinates.
func (b *BoxSelecting) Box() geom.Bounds {
	return geom.BoundsFromCorners(b.Start, b.End)
}

// Button identifies the pressed pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is a pointer sample in screen coordinates.
type PointerEvent struct {
	Screen geom.Point
	Button Button
	Shift  bool
}
