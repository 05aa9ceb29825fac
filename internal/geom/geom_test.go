package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointInRectangleInclusive(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Pt(15, 15), true},
		{"top-left corner", Pt(10, 10), true},
		{"bottom-right corner", Pt(60, 40), true},
		{"left edge", Pt(10, 25), true},
		{"just outside right", Pt(60.0001, 20), false},
		{"above", Pt(20, 9.999), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInRectangle(tt.p, 10, 10, 50, 30))
		})
	}
}

func TestPointInRectangleMatchesDefinition(t *testing.T) {
	for x := -5.0; x <= 25; x += 2.5 {
		for y := -5.0; y <= 25; y += 2.5 {
			want := 0 <= x && x <= 20 && 0 <= y && y <= 20
			assert.Equal(t, want, PointInRectangle(Pt(x, y), 0, 0, 20, 20), "(%v,%v)", x, y)
		}
	}
}

func TestPointInCircle(t *testing.T) {
	assert.True(t, PointInCircle(Pt(0, 0), 0, 0, 5))
	assert.True(t, PointInCircle(Pt(3, 4), 0, 0, 5), "boundary is inside")
	assert.False(t, PointInCircle(Pt(4, 4), 0, 0, 5))
}

func TestPointOnLine(t *testing.T) {
	assert.True(t, PointOnLine(Pt(50, 3), 0, 0, 100, 0, DefaultLineThreshold))
	assert.False(t, PointOnLine(Pt(50, 5), 0, 0, 100, 0, DefaultLineThreshold), "threshold is exclusive")
	// projection is clamped to the segment
	assert.False(t, PointOnLine(Pt(110, 0), 0, 0, 100, 0, DefaultLineThreshold))
	assert.True(t, PointOnLine(Pt(103, 0), 0, 0, 100, 0, DefaultLineThreshold))
}

func TestPointOnLineZeroLength(t *testing.T) {
	assert.True(t, PointOnLine(Pt(12, 10), 10, 10, 10, 10, DefaultLineThreshold))
	assert.False(t, PointOnLine(Pt(20, 10), 10, 10, 10, 10, DefaultLineThreshold))
}

func TestPointInFreehand(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(50, 0), Pt(50, 50)}
	assert.True(t, PointInFreehand(Pt(25, 8), pts, DefaultFreehandThreshold))
	assert.True(t, PointInFreehand(Pt(55, 25), pts, DefaultFreehandThreshold))
	assert.False(t, PointInFreehand(Pt(25, 25), pts, DefaultFreehandThreshold))
	assert.False(t, PointInFreehand(Pt(0, 0), nil, DefaultFreehandThreshold))
	assert.True(t, PointInFreehand(Pt(1, 1), []Point{Pt(0, 0)}, DefaultFreehandThreshold))
}

func TestCoordinateRoundTrip(t *testing.T) {
	points := []Point{Pt(0, 0), Pt(123.5, -42.25), Pt(-1000, 999)}
	for _, zoom := range []float64{0.1, 0.5, 1, 2.5, 5} {
		for _, p := range points {
			s := ToScreen(p, zoom, 30, -12)
			w := ToWorld(s, zoom, 30, -12)
			assert.InDelta(t, p.X, w.X, 1e-9)
			assert.InDelta(t, p.Y, w.Y, 1e-9)
		}
	}
}

func TestToScreen(t *testing.T) {
	assert.Equal(t, Pt(20, 40), ToScreen(Pt(20, 30), 2, 10, 10))
	assert.Equal(t, Pt(20, 30), ToWorld(Pt(20, 40), 2, 10, 10))
}

func TestRotatePoint(t *testing.T) {
	r := RotatePoint(Pt(10, 0), Pt(0, 0), math.Pi/2)
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, 10, r.Y, 1e-9)
}

func TestBounds(t *testing.T) {
	assert.Equal(t, Bounds{}, BoundsFromPoints(nil))
	b := BoundsFromPoints([]Point{Pt(5, 9), Pt(-3, 2), Pt(4, 12)})
	assert.Equal(t, Bounds{MinX: -3, MinY: 2, MaxX: 5, MaxY: 12}, b)
	assert.Equal(t, Bounds{MinX: 1, MinY: 2, MaxX: 4, MaxY: 6}, BoundsFromCorners(Pt(4, 2), Pt(1, 6)))

	a := Bounds{0, 0, 10, 10}
	assert.True(t, a.Intersects(Bounds{10, 10, 20, 20}), "touching corners")
	assert.True(t, a.Intersects(Bounds{2, 2, 3, 3}), "contained")
	assert.False(t, a.Intersects(Bounds{10.5, 0, 20, 10}))
	assert.Equal(t, Bounds{-1, -1, 11, 11}, a.Pad(1))
}
