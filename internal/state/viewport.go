package state

import (
	"math"

	"SketchBoard/internal/geom"
)

const (
	MinZoom = 0.1
	MaxZoom = 5.0
	// ZoomStep is the factor applied per wheel notch.
	ZoomStep = 1.1
)

// Viewport is the pan/zoom state of the canvas. Offset is the world point
// shown at the screen origin.
type Viewport struct {
	Zoom    float64 `json:"zoom"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// DefaultViewport shows the world origin at 100%.
func DefaultViewport() Viewport { return Viewport{Zoom: 1} }

// ClampZoom keeps z inside [MinZoom, MaxZoom]. NaN falls back to 1.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

func (v Viewport) ToScreen(p geom.Point) geom.Point {
	return geom.ToScreen(p, v.Zoom, v.OffsetX, v.OffsetY)
}

func (v Viewport) ToWorld(p geom.Point) geom.Point {
	return geom.ToWorld(p, v.Zoom, v.OffsetX, v.OffsetY)
}

// ZoomedAt returns the viewport zoomed to z while keeping the world point
// under screen position anchor fixed.
func (v Viewport) ZoomedAt(anchor geom.Point, z float64) Viewport {
	world := v.ToWorld(anchor)
	v.Zoom = ClampZoom(z)
	v.OffsetX = world.X - anchor.X/v.Zoom
	v.OffsetY = world.Y - anchor.Y/v.Zoom
	return v
}
