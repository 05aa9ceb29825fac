package render

import (
	"math"
	"strings"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

const (
	// GridSpacing is the world distance between grid lines.
	GridSpacing = 20.0
	// PatternSpacing is the distance between hatch lines and dots.
	PatternSpacing = 10.0
)

var (
	dashPattern     = []float64{8, 4}
	dotPattern      = []float64{2, 4}
	selectionDash   = []float64{4, 4}
	boxOverlayDash  = []float64{6, 4}
	boxOverlayAlpha = 0.1
)

// Frame is everything one redraw needs. Elements are in z-order. Box, when
// set, is the box-selection rectangle in world coordinates.
type Frame struct {
	Elements []state.Element
	Selected []state.Element
	Viewport state.Viewport
	Preview  state.Element
	Box      *geom.Bounds
}

type Renderer struct {
	Theme    Theme
	ShowGrid bool
}

func NewRenderer(theme Theme, showGrid bool) *Renderer {
	return &Renderer{Theme: theme, ShowGrid: showGrid}
}

// Draw clears the surface and paints background, grid, elements, the draft
// element, selection chrome and the box-selection overlay, in that order.
func (r *Renderer) Draw(s Surface, f Frame) {
	w, h := s.Size()
	s.Clear(r.Theme.Background)
	if r.ShowGrid {
		r.drawGrid(s, w, h, f.Viewport)
	}

	vp := f.Viewport
	s.Push()
	s.Scale(vp.Zoom, vp.Zoom)
	s.Translate(-vp.OffsetX, -vp.OffsetY)
	for _, e := range f.Elements {
		DrawElement(s, e)
	}
	if f.Preview != nil {
		DrawElement(s, f.Preview)
	}
	s.Pop()

	for _, e := range f.Selected {
		r.drawSelection(s, e, vp)
	}
	if f.Box != nil {
		r.drawBox(s, *f.Box, vp)
	}
}

func (r *Renderer) drawGrid(s Surface, w, h float64, vp state.Viewport) {
	size := GridSpacing * vp.Zoom
	s.SetStroke(r.Theme.Grid, 1, 1, nil)
	for x := -positiveMod(vp.OffsetX*vp.Zoom, size); x <= w; x += size {
		s.MoveTo(x, 0)
		s.LineTo(x, h)
	}
	for y := -positiveMod(vp.OffsetY*vp.Zoom, size); y <= h; y += size {
		s.MoveTo(0, y)
		s.LineTo(w, y)
	}
	s.Stroke()
}

func positiveMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}

func (r *Renderer) drawSelection(s Surface, e state.Element, vp state.Viewport) {
	b := state.ElementBounds(e)
	lo := vp.ToScreen(b.Min())
	hi := vp.ToScreen(b.Max())
	s.SetStroke(r.Theme.Selection, 1, 1, selectionDash)
	s.Rect(lo.X, lo.Y, hi.X-lo.X, hi.Y-lo.Y)
	s.Stroke()

	half := state.HandleSize / 2
	for _, hp := range state.ResizeHandles(e, vp) {
		s.Rect(hp.At.X-half, hp.At.Y-half, state.HandleSize, state.HandleSize)
		s.SetFill(r.Theme.HandleFill, 1)
		s.Fill()
		s.Rect(hp.At.X-half, hp.At.Y-half, state.HandleSize, state.HandleSize)
		s.SetStroke(r.Theme.Selection, 1, 1, nil)
		s.Stroke()
	}
}

func (r *Renderer) drawBox(s Surface, box geom.Bounds, vp state.Viewport) {
	lo := vp.ToScreen(box.Min())
	hi := vp.ToScreen(box.Max())
	x, y := math.Min(lo.X, hi.X), math.Min(lo.Y, hi.Y)
	w, h := math.Abs(hi.X-lo.X), math.Abs(hi.Y-lo.Y)
	s.Rect(x, y, w, h)
	s.SetFill(r.Theme.Selection, boxOverlayAlpha)
	s.Fill()
	s.Rect(x, y, w, h)
	s.SetStroke(r.Theme.Selection, 1, 1, boxOverlayDash)
	s.Stroke()
}

// DashFor maps a stroke style to a dash pattern; solid is nil.
func DashFor(style state.StrokeStyle) []float64 {
	switch style {
	case state.StrokeDashed:
		return dashPattern
	case state.StrokeDotted:
		return dotPattern
	}
	return nil
}

// DrawElement paints one element in world coordinates.
func DrawElement(s Surface, e state.Element) {
	switch e := e.(type) {
	case *state.Rectangle:
		drawShape(s, &e.Base, e.Width, e.Height, false)
	case *state.Circle:
		drawShape(s, &e.Base, e.Width, e.Height, true)
	case *state.Line:
		drawSegment(s, &e.Base, e.X2, e.Y2, false)
	case *state.Arrow:
		drawSegment(s, &e.Base, e.X2, e.Y2, true)
	case *state.Text:
		drawText(s, e)
	case *state.Freehand:
		drawFreehand(s, e)
	}
}

func setStroke(s Surface, b *state.Base) {
	s.SetStroke(b.StrokeColor, b.StrokeWidth, b.Opacity, DashFor(b.StrokeStyle))
}

func drawShape(s Surface, b *state.Base, width, height float64, circle bool) {
	j := jitterFor(b)
	x, y := j.at(b.X, 0), j.at(b.Y, 1)
	w, h := j.at(width, 2), j.at(height, 3)

	path := func() {
		switch {
		case circle:
			s.Circle(x+w/2, y+h/2, math.Max(w, h)/2)
		case b.EdgeRounding == state.EdgeSharp:
			s.Rect(x, y, w, h)
		default:
			s.RoundedRect(x, y, w, h, math.Min(w, h)*0.1)
		}
	}

	if b.FillColor != "" && b.FillColor != state.Transparent {
		if b.FillPattern == "" || b.FillPattern == state.FillSolid {
			path()
			s.SetFill(b.FillColor, b.Opacity)
			s.Fill()
		} else {
			area := geom.BoundsFromCorners(geom.Pt(x, y), geom.Pt(x+w, y+h))
			if circle {
				c := geom.Pt(x+w/2, y+h/2)
				rad := math.Max(w, h) / 2
				area = geom.Bounds{MinX: c.X - rad, MinY: c.Y - rad, MaxX: c.X + rad, MaxY: c.Y + rad}
			}
			s.Push()
			path()
			s.Clip()
			drawPattern(s, b.FillPattern, area, b.FillColor, b.Opacity)
			s.Pop()
		}
	}

	path()
	setStroke(s, b)
	s.Stroke()
}

// drawPattern fills area with hatch lines or dots. The caller clips to the
// shape first.
func drawPattern(s Surface, pattern state.FillPattern, area geom.Bounds, color string, opacity float64) {
	if pattern == state.FillDotted {
		s.SetFill(color, opacity)
		for x := area.MinX + PatternSpacing/2; x < area.MaxX; x += PatternSpacing {
			for y := area.MinY + PatternSpacing/2; y < area.MaxY; y += PatternSpacing {
				s.Circle(x, y, 1)
			}
		}
		s.Fill()
		return
	}

	s.SetStroke(color, 1, opacity, nil)
	switch pattern {
	case state.FillGrid:
		for x := area.MinX; x <= area.MaxX; x += PatternSpacing {
			s.MoveTo(x, area.MinY)
			s.LineTo(x, area.MaxY)
		}
		for y := area.MinY; y <= area.MaxY; y += PatternSpacing {
			s.MoveTo(area.MinX, y)
			s.LineTo(area.MaxX, y)
		}
	case state.FillCrossHatch:
		span := area.Width() + area.Height()
		for d := 0.0; d <= span; d += PatternSpacing {
			s.MoveTo(area.MinX+d, area.MinY)
			s.LineTo(area.MinX+d-area.Height(), area.MaxY)
			s.MoveTo(area.MaxX-d, area.MinY)
			s.LineTo(area.MaxX-d+area.Height(), area.MaxY)
		}
	}
	s.Stroke()
}

func drawSegment(s Surface, b *state.Base, x2, y2 float64, head bool) {
	j := jitterFor(b)
	from := geom.Pt(j.at(b.X, 0), j.at(b.Y, 1))
	to := geom.Pt(j.at(x2, 2), j.at(y2, 3))

	setStroke(s, b)
	s.MoveTo(from.X, from.Y)
	s.LineTo(to.X, to.Y)
	s.Stroke()
	if !head {
		return
	}

	left, right := ArrowHead(from, to, b.StrokeWidth)
	headPath := func() {
		s.MoveTo(to.X, to.Y)
		s.LineTo(left.X, left.Y)
		s.LineTo(right.X, right.Y)
		s.ClosePath()
	}
	headPath()
	s.SetFill(b.StrokeColor, b.Opacity)
	s.Fill()
	headPath()
	s.SetStroke(b.StrokeColor, b.StrokeWidth, b.Opacity, nil)
	s.Stroke()
}

// ArrowHeadLength grows with the stroke so heavy arrows keep visible heads.
func ArrowHeadLength(strokeWidth float64) float64 {
	return math.Max(15, strokeWidth*3)
}

// ArrowHead returns the two back corners of the head triangle whose tip is
// at to, each 30 degrees off the shaft.
func ArrowHead(from, to geom.Point, strokeWidth float64) (left, right geom.Point) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	l := ArrowHeadLength(strokeWidth)
	left = geom.Pt(to.X-l*math.Cos(angle-math.Pi/6), to.Y-l*math.Sin(angle-math.Pi/6))
	right = geom.Pt(to.X-l*math.Cos(angle+math.Pi/6), to.Y-l*math.Sin(angle+math.Pi/6))
	return left, right
}

// TextAnchor returns the x position and anchor for a text element's
// alignment within its box.
func TextAnchor(t *state.Text) (x, anchor float64) {
	switch t.TextAlign {
	case state.AlignCenter:
		return t.X + t.Width/2, 0.5
	case state.AlignRight:
		return t.X + t.Width, 1
	}
	return t.X, 0
}

func drawText(s Surface, t *state.Text) {
	x, anchor := TextAnchor(t)
	s.SetFill(t.StrokeColor, t.Opacity)
	for i, line := range strings.Split(t.Text, "\n") {
		if line == "" {
			continue
		}
		s.Text(line, x, t.Y+t.FontSize*float64(i+1), t.FontSize, t.FontFamily, anchor)
	}
}

func drawFreehand(s Surface, f *state.Freehand) {
	if len(f.Points) < 2 {
		return
	}
	j := jitterFor(&f.Base)
	setStroke(s, &f.Base)
	for i, p := range f.Points {
		x, y := j.at(p.X, 2*i), j.at(p.Y, 2*i+1)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.Stroke()
}
