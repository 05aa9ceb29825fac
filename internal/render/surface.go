// Package render draws a document frame onto a Surface. A frame is always
// drawn from scratch; nothing is retained between frames.
package render

// Surface is a 2D drawing target with a current path, a transform stack and
// separate stroke and fill paints. Coordinates and line widths are in the
// current user space. Size reports the logical (pre device-pixel-ratio)
// dimensions.
type Surface interface {
	Size() (width, height float64)
	Clear(color string)

	// Push saves the transform and clip; Pop restores them.
	Push()
	Pop()
	Scale(sx, sy float64)
	Translate(dx, dy float64)

	SetStroke(color string, width, opacity float64, dash []float64)
	SetFill(color string, opacity float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Rect(x, y, w, h float64)
	RoundedRect(x, y, w, h, r float64)
	Circle(cx, cy, r float64)

	// Fill, Stroke and Clip consume the current path.
	Fill()
	Stroke()
	Clip()

	// Text draws one line in the fill paint with its baseline at y. anchor
	// is 0 for left, 0.5 for centre and 1 for right alignment at x.
	Text(s string, x, y, size float64, family string, anchor float64)
}
