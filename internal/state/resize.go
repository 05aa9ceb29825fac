package state

import (
	"math"

	"SketchBoard/internal/geom"
)

// MinResizeSize is the smallest width or height a resize may produce.
const MinResizeSize = 10.0

// ResizedBounds moves the edges named by h to p, starting from the bounds
// the gesture began with. Corner handles move two edges, edge handles one.
// The moved edges stop MinResizeSize short of the opposite edge.
func ResizedBounds(start geom.Bounds, h Handle, p geom.Point) geom.Bounds {
	b := start
	switch h {
	case HandleNW, HandleW, HandleSW:
		b.MinX = math.Min(p.X, start.MaxX-MinResizeSize)
	case HandleNE, HandleE, HandleSE:
		b.MaxX = math.Max(p.X, start.MinX+MinResizeSize)
	}
	switch h {
	case HandleNW, HandleN, HandleNE:
		b.MinY = math.Min(p.Y, start.MaxY-MinResizeSize)
	case HandleSW, HandleS, HandleSE:
		b.MaxY = math.Max(p.Y, start.MinY+MinResizeSize)
	}
	return b
}

// ApplyResize rewrites target from original as if handle h were dragged to
// the world point p. Box shapes take the new bounds, lines and arrows move
// one endpoint, freehand strokes are scaled into the new bounds.
func ApplyResize(target, original Element, h Handle, p geom.Point) {
	start := ElementBounds(original)
	switch t := target.(type) {
	case *Rectangle:
		b := ResizedBounds(start, h, p)
		t.X, t.Y, t.Width, t.Height = b.MinX, b.MinY, b.Width(), b.Height()
	case *Circle:
		b := ResizedBounds(start, h, p)
		t.X, t.Y, t.Width, t.Height = b.MinX, b.MinY, b.Width(), b.Height()
	case *Text:
		b := ResizedBounds(start, h, p)
		t.X, t.Y, t.Width, t.Height = b.MinX, b.MinY, b.Width(), b.Height()
	case *Line:
		if h.MovesStart() {
			t.X, t.Y = p.X, p.Y
		} else {
			t.X2, t.Y2 = p.X, p.Y
		}
	case *Arrow:
		if h.MovesStart() {
			t.X, t.Y = p.X, p.Y
		} else {
			t.X2, t.Y2 = p.X, p.Y
		}
	case *Freehand:
		orig, ok := original.(*Freehand)
		if !ok || len(orig.Points) != len(t.Points) {
			return
		}
		b := ResizedBounds(start, h, p)
		sx, sy := scale(b.Width(), start.Width()), scale(b.Height(), start.Height())
		for i, q := range orig.Points {
			t.Points[i] = geom.Pt(b.MinX+(q.X-start.MinX)*sx, b.MinY+(q.Y-start.MinY)*sy)
		}
		if len(t.Points) > 0 {
			t.X, t.Y = t.Points[0].X, t.Points[0].Y
		}
	}
}

func scale(to, from float64) float64 {
	if from == 0 {
		return 1
	}
	return to / from
}
