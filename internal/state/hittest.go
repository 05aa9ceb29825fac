package state

import (
	"math"

	"SketchBoard/internal/geom"
)

// IsPointInElement hit-tests a world point against e. Unknown or nil
// elements never hit.
func IsPointInElement(p geom.Point, e Element) bool {
	switch e := e.(type) {
	case *Rectangle:
		return geom.PointInRectangle(p, e.X, e.Y, e.Width, e.Height)
	case *Text:
		return geom.PointInRectangle(p, e.X, e.Y, e.Width, e.Height)
	case *Circle:
		c := e.Center()
		return geom.PointInCircle(p, c.X, c.Y, e.Radius())
	case *Line:
		return geom.PointOnLine(p, e.X, e.Y, e.X2, e.Y2, geom.DefaultLineThreshold)
	case *Arrow:
		return geom.PointOnLine(p, e.X, e.Y, e.X2, e.Y2, geom.DefaultLineThreshold)
	case *Freehand:
		return geom.PointInFreehand(p, e.Points, geom.DefaultFreehandThreshold)
	}
	return false
}

// ElementBounds returns the axis-aligned box of e in world units.
func ElementBounds(e Element) geom.Bounds {
	switch e := e.(type) {
	case *Rectangle:
		return geom.Bounds{MinX: e.X, MinY: e.Y, MaxX: e.X + e.Width, MaxY: e.Y + e.Height}
	case *Circle:
		return geom.Bounds{MinX: e.X, MinY: e.Y, MaxX: e.X + e.Width, MaxY: e.Y + e.Height}
	case *Text:
		return geom.Bounds{MinX: e.X, MinY: e.Y, MaxX: e.X + e.Width, MaxY: e.Y + e.Height}
	case *Line:
		return geom.BoundsFromCorners(geom.Pt(e.X, e.Y), geom.Pt(e.X2, e.Y2))
	case *Arrow:
		return geom.BoundsFromCorners(geom.Pt(e.X, e.Y), geom.Pt(e.X2, e.Y2))
	case *Freehand:
		return geom.BoundsFromPoints(e.Points)
	}
	return geom.Bounds{}
}

// BoundingBox is the union of every element's bounds, or the zero box.
func BoundingBox(elements []Element) geom.Bounds {
	if len(elements) == 0 {
		return geom.Bounds{}
	}
	b := ElementBounds(elements[0])
	for _, e := range elements[1:] {
		b = b.Union(ElementBounds(e))
	}
	return b
}

// ElementIntersectsBox reports AABB overlap between e and the given box,
// counting edge contact as overlap.
func ElementIntersectsBox(e Element, minX, minY, maxX, maxY float64) bool {
	return ElementBounds(e).Intersects(geom.Bounds{
		MinX: math.Min(minX, maxX),
		MinY: math.Min(minY, maxY),
		MaxX: math.Max(minX, maxX),
		MaxY: math.Max(minY, maxY),
	})
}

// TopmostAt returns the last element in z-order that contains p.
func TopmostAt(elements []Element, p geom.Point) (Element, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		if IsPointInElement(p, elements[i]) {
			return elements[i], true
		}
	}
	return nil, false
}
