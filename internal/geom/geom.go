// Package geom holds the pure geometry used by hit-testing, bounds and the
// world/screen transforms. Nothing here knows about drawing elements.
package geom

import "math"

const (
	// DefaultLineThreshold is the hit distance for line and arrow segments.
	DefaultLineThreshold = 5.0
	// DefaultFreehandThreshold is the hit distance for freehand strokes.
	DefaultFreehandThreshold = 10.0
)

// Point is a plane coordinate, world or screen depending on context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// PointInRectangle is inclusive on all four edges.
func PointInRectangle(p Point, x, y, w, h float64) bool {
	return p.X >= x && p.X <= x+w && p.Y >= y && p.Y <= y+h
}

func PointInCircle(p Point, cx, cy, r float64) bool {
	dx := p.X - cx
	dy := p.Y - cy
	return dx*dx+dy*dy <= r*r
}

// PointOnLine reports whether p lies closer than threshold to the segment
// (x1,y1)-(x2,y2). A zero-length segment is tested against its start point.
func PointOnLine(p Point, x1, y1, x2, y2, threshold float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy

	t := 0.0
	if lenSq != 0 {
		t = ((p.X-x1)*dx + (p.Y-y1)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	proj := Point{X: x1 + t*dx, Y: y1 + t*dy}
	return Distance(p, proj) < threshold
}

// PointInFreehand reports whether p is within threshold of any consecutive
// pair of points. A single point degenerates to a point test.
func PointInFreehand(p Point, points []Point, threshold float64) bool {
	if len(points) == 1 {
		return Distance(p, points[0]) < threshold
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if PointOnLine(p, a.X, a.Y, b.X, b.Y, threshold) {
			return true
		}
	}
	return false
}

func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// RotatePoint rotates p around center by angle radians.
func RotatePoint(p, center Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// ToScreen maps a world point into screen space: (p - offset) * zoom.
func ToScreen(p Point, zoom, offsetX, offsetY float64) Point {
	return Point{X: (p.X - offsetX) * zoom, Y: (p.Y - offsetY) * zoom}
}

// ToWorld is the inverse of ToScreen. zoom is never zero because the
// viewport clamps it.
func ToWorld(p Point, zoom, offsetX, offsetY float64) Point {
	return Point{X: p.X/zoom + offsetX, Y: p.Y/zoom + offsetY}
}
