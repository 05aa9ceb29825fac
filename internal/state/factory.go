package state

import (
	"math"

	"SketchBoard/internal/geom"
)

const (
	// MinElementSize is the smallest box a finished rectangle or circle may have.
	MinElementSize = 20.0
	// minLineLength is the length below which a line snaps to defaultLineLength.
	minLineLength     = 10.0
	defaultLineLength = 50.0
	defaultTextWidth  = 100.0
)

// NewDrawingElement builds an element of kind spanning start to end.
// Rectangles and circles are normalised so X/Y is the top-left corner.
// Text elements are created with NewTextElement instead.
func NewDrawingElement(id string, kind Kind, start, end geom.Point, style Style, minSize float64) Element {
	switch kind {
	case KindRectangle, KindCircle:
		x := math.Min(start.X, end.X)
		y := math.Min(start.Y, end.Y)
		w := math.Max(minSize, math.Abs(end.X-start.X))
		h := math.Max(minSize, math.Abs(end.Y-start.Y))
		if kind == KindCircle {
			return &Circle{Base: style.base(id, geom.Pt(x, y)), Width: w, Height: h}
		}
		return &Rectangle{Base: style.base(id, geom.Pt(x, y)), Width: w, Height: h}
	case KindLine:
		l := &Line{Base: style.base(id, start), X2: end.X, Y2: end.Y}
		snapLine(l)
		return l
	case KindArrow:
		return &Arrow{Base: style.base(id, start), X2: end.X, Y2: end.Y}
	case KindFreehand:
		return &Freehand{Base: style.base(id, start), Points: []geom.Point{start, end}}
	case KindText:
		return NewTextElement(id, start, style)
	}
	return nil
}

// NewTextElement creates an empty, left-aligned text box at pos.
func NewTextElement(id string, pos geom.Point, style Style) *Text {
	return &Text{
		Base:       style.base(id, pos),
		Width:      defaultTextWidth,
		Height:     style.FontSize,
		FontSize:   style.FontSize,
		FontFamily: style.FontFamily,
		TextAlign:  AlignLeft,
	}
}

// EnsureMinimumSize applies the creation-time minimums to an element that
// was grown from an in-progress preview.
func EnsureMinimumSize(e Element, minSize float64) {
	switch e := e.(type) {
	case *Rectangle:
		e.Width = math.Max(e.Width, minSize)
		e.Height = math.Max(e.Height, minSize)
	case *Circle:
		e.Width = math.Max(e.Width, minSize)
		e.Height = math.Max(e.Height, minSize)
	case *Line:
		snapLine(e)
	case *Arrow, *Text, *Freehand:
	}
}

func snapLine(l *Line) {
	if geom.Distance(geom.Pt(l.X, l.Y), geom.Pt(l.X2, l.Y2)) < minLineLength {
		l.X2 = l.X + defaultLineLength
		l.Y2 = l.Y
	}
}

// ElementEndPoint recovers the far corner of an in-progress element when no
// pointer position is available at commit time.
func ElementEndPoint(e Element, start geom.Point) geom.Point {
	switch e := e.(type) {
	case *Line:
		return geom.Pt(e.X2, e.Y2)
	case *Arrow:
		return geom.Pt(e.X2, e.Y2)
	case *Rectangle:
		return geom.Pt(e.X+e.Width, e.Y+e.Height)
	case *Circle:
		return geom.Pt(e.X+e.Width, e.Y+e.Height)
	case *Text:
		return geom.Pt(e.X+e.Width, e.Y+e.Height)
	case *Freehand:
		if len(e.Points) > 0 {
			return e.Points[len(e.Points)-1]
		}
	}
	return start.Add(geom.Pt(50, 50))
}

// Translate moves every coordinate of e by (dx, dy).
func Translate(e Element, dx, dy float64) {
	b := e.Common()
	b.X += dx
	b.Y += dy
	switch e := e.(type) {
	case *Line:
		e.X2 += dx
		e.Y2 += dy
	case *Arrow:
		e.X2 += dx
		e.Y2 += dy
	case *Freehand:
		for i := range e.Points {
			e.Points[i].X += dx
			e.Points[i].Y += dy
		}
	case *Rectangle, *Circle, *Text:
	}
}
