package state

import "SketchBoard/internal/geom"

// Handle names one of the eight resize grips around a selected element.
type Handle int

const (
	HandleNW Handle = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

const (
	// HandleSize is the drawn side length of a grip, in screen pixels.
	HandleSize = 8.0
	// HandleHitRadius is how close the pointer must be to grab a grip.
	HandleHitRadius = 10.0
)

var handleNames = [...]string{"nw", "n", "ne", "e", "se", "s", "sw", "w"}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "?"
	}
	return handleNames[h]
}

// MovesStart reports whether the handle drags the start point of a line or
// arrow; every other handle drags the end point.
func (h Handle) MovesStart() bool {
	return h == HandleNW || h == HandleN || h == HandleW
}

// HandlePoint is a grip centre in screen coordinates.
type HandlePoint struct {
	Handle Handle
	At     geom.Point
}

// ResizeHandles projects the element's bounds to the screen and returns the
// eight grips at its corners and edge midpoints. The renderer draws exactly
// these points and HandleAt hit-tests exactly these points.
func ResizeHandles(e Element, vp Viewport) []HandlePoint {
	b := ElementBounds(e)
	lo := vp.ToScreen(b.Min())
	hi := vp.ToScreen(b.Max())
	midX := (lo.X + hi.X) / 2
	midY := (lo.Y + hi.Y) / 2
	return []HandlePoint{
		{HandleNW, geom.Pt(lo.X, lo.Y)},
		{HandleN, geom.Pt(midX, lo.Y)},
		{HandleNE, geom.Pt(hi.X, lo.Y)},
		{HandleE, geom.Pt(hi.X, midY)},
		{HandleSE, geom.Pt(hi.X, hi.Y)},
		{HandleS, geom.Pt(midX, hi.Y)},
		{HandleSW, geom.Pt(lo.X, hi.Y)},
		{HandleW, geom.Pt(lo.X, midY)},
	}
}

// HandleAt returns the grip under a screen point, if any.
func HandleAt(e Element, vp Viewport, screen geom.Point) (Handle, bool) {
	for _, hp := range ResizeHandles(e, vp) {
		if geom.Distance(hp.At, screen) <= HandleHitRadius {
			return hp.Handle, true
		}
	}
	return 0, false
}
