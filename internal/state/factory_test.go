package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/geom"
)

func TestNewDrawingElementNormalisesBoxes(t *testing.T) {
	style := DefaultStyle()
	e := NewDrawingElement("r1", KindRectangle, geom.Pt(100, 80), geom.Pt(40, 20), style, MinElementSize)
	r, ok := e.(*Rectangle)
	require.True(t, ok)
	assert.Equal(t, 40.0, r.X)
	assert.Equal(t, 20.0, r.Y)
	assert.Equal(t, 60.0, r.Width)
	assert.Equal(t, 60.0, r.Height)
	assert.Equal(t, style.StrokeColor, r.StrokeColor)

	e = NewDrawingElement("c1", KindCircle, geom.Pt(0, 0), geom.Pt(5, 30), style, MinElementSize)
	c := e.(*Circle)
	assert.Equal(t, 20.0, c.Width, "width floored at minSize")
	assert.Equal(t, 30.0, c.Height)
}

func TestNewDrawingElementLineSnaps(t *testing.T) {
	l := NewDrawingElement("l1", KindLine, geom.Pt(10, 10), geom.Pt(13, 14), DefaultStyle(), MinElementSize).(*Line)
	assert.Equal(t, 60.0, l.X2)
	assert.Equal(t, 10.0, l.Y2)

	l = NewDrawingElement("l2", KindLine, geom.Pt(10, 10), geom.Pt(40, 50), DefaultStyle(), MinElementSize).(*Line)
	assert.Equal(t, 40.0, l.X2)
	assert.Equal(t, 50.0, l.Y2)
}

func TestNewDrawingElementArrowHasNoMinimum(t *testing.T) {
	a := NewDrawingElement("a1", KindArrow, geom.Pt(10, 10), geom.Pt(11, 11), DefaultStyle(), MinElementSize).(*Arrow)
	assert.Equal(t, 11.0, a.X2)
	assert.Equal(t, 11.0, a.Y2)
}

func TestNewDrawingElementFreehandSeeds(t *testing.T) {
	f := NewDrawingElement("f1", KindFreehand, geom.Pt(1, 2), geom.Pt(3, 4), DefaultStyle(), 0).(*Freehand)
	assert.Equal(t, []geom.Point{geom.Pt(1, 2), geom.Pt(3, 4)}, f.Points)
}

func TestNewTextElement(t *testing.T) {
	style := DefaultStyle()
	style.FontSize = 24
	txt := NewTextElement("t1", geom.Pt(5, 6), style)
	assert.Equal(t, 100.0, txt.Width)
	assert.Equal(t, 24.0, txt.Height)
	assert.Equal(t, "", txt.Text)
	assert.Equal(t, AlignLeft, txt.TextAlign)
}

func TestEnsureMinimumSize(t *testing.T) {
	r := &Rectangle{Width: 4, Height: 50}
	EnsureMinimumSize(r, MinElementSize)
	assert.Equal(t, 20.0, r.Width)
	assert.Equal(t, 50.0, r.Height)

	l := &Line{Base: Base{X: 0, Y: 0}, X2: 2, Y2: 2}
	EnsureMinimumSize(l, MinElementSize)
	assert.Equal(t, 50.0, l.X2)

	a := &Arrow{X2: 1, Y2: 1}
	EnsureMinimumSize(a, MinElementSize)
	assert.Equal(t, 1.0, a.X2, "arrows keep their size")
}

func TestElementEndPoint(t *testing.T) {
	start := geom.Pt(10, 10)
	assert.Equal(t, geom.Pt(30, 40), ElementEndPoint(&Line{X2: 30, Y2: 40}, start))
	assert.Equal(t, geom.Pt(15, 25), ElementEndPoint(&Rectangle{Base: Base{X: 5, Y: 5}, Width: 10, Height: 20}, start))
	assert.Equal(t, geom.Pt(60, 60), ElementEndPoint(nil, start))
}

func TestTranslate(t *testing.T) {
	f := &Freehand{Base: Base{X: 1, Y: 1}, Points: []geom.Point{geom.Pt(1, 1), geom.Pt(2, 3)}}
	Translate(f, 10, -1)
	assert.Equal(t, []geom.Point{geom.Pt(11, 0), geom.Pt(12, 2)}, f.Points)
	assert.Equal(t, 11.0, f.X)

	a := &Arrow{Base: Base{X: 0, Y: 0}, X2: 5, Y2: 5}
	Translate(a, 1, 2)
	assert.Equal(t, 6.0, a.X2)
	assert.Equal(t, 7.0, a.Y2)
}

func TestCloneIsDeep(t *testing.T) {
	f := &Freehand{Points: []geom.Point{geom.Pt(1, 1)}}
	c := f.Clone().(*Freehand)
	c.Points[0].X = 99
	assert.Equal(t, 1.0, f.Points[0].X)
}
