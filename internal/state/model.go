package state

import (
	"github.com/google/uuid"

	"SketchBoard/internal/geom"
)

// Kind discriminates the element variants.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindText      Kind = "text"
	KindFreehand  Kind = "freehand"
)

type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

type FillPattern string

const (
	FillSolid      FillPattern = "solid"
	FillCrossHatch FillPattern = "cross-hatch"
	FillGrid       FillPattern = "grid"
	FillDotted     FillPattern = "dotted"
)

type Sloppiness string

const (
	SloppinessSubtle   Sloppiness = "subtle"
	SloppinessModerate Sloppiness = "moderate"
	SloppinessHigh     Sloppiness = "high"
)

type EdgeRounding string

const (
	EdgeSharp   EdgeRounding = "sharp"
	EdgeRounded EdgeRounding = "rounded"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Transparent is the fill colour meaning "no fill".
const Transparent = "transparent"

// Element is one of *Rectangle, *Circle, *Line, *Arrow, *Text or *Freehand.
// The set is closed: consumers switch over exactly these six types.
type Element interface {
	Kind() Kind
	Common() *Base
	// Clone returns a deep copy.
	Clone() Element
	isElement()
}

// Base carries the fields shared by every variant. Angle is persisted but
// not consulted by hit-testing, bounds, rendering or resizing.
type Base struct {
	ID           string
	X, Y         float64
	StrokeColor  string
	FillColor    string
	StrokeWidth  float64
	StrokeStyle  StrokeStyle
	Opacity      float64
	Angle        float64
	FillPattern  FillPattern
	Sloppiness   Sloppiness
	EdgeRounding EdgeRounding
}

func (b *Base) Common() *Base { return b }
func (b *Base) isElement()    {}

type Rectangle struct {
	Base
	Width, Height float64
}

// Circle is drawn and hit-tested as a true circle of radius
// max(Width, Height)/2 centred in its box.
type Circle struct {
	Base
	Width, Height float64
}

type Line struct {
	Base
	X2, Y2 float64
}

type Arrow struct {
	Base
	X2, Y2 float64
}

type Text struct {
	Base
	Width, Height float64
	Text          string
	FontSize      float64
	FontFamily    string
	TextAlign     TextAlign
}

type Freehand struct {
	Base
	Points []geom.Point
}

func (*Rectangle) Kind() Kind { return KindRectangle }
func (*Circle) Kind() Kind    { return KindCircle }
func (*Line) Kind() Kind      { return KindLine }
func (*Arrow) Kind() Kind     { return KindArrow }
func (*Text) Kind() Kind      { return KindText }
func (*Freehand) Kind() Kind  { return KindFreehand }

func (e *Rectangle) Clone() Element { c := *e; return &c }
func (e *Circle) Clone() Element    { c := *e; return &c }
func (e *Line) Clone() Element      { c := *e; return &c }
func (e *Arrow) Clone() Element     { c := *e; return &c }
func (e *Text) Clone() Element      { c := *e; return &c }

func (e *Freehand) Clone() Element {
	c := *e
	c.Points = append([]geom.Point(nil), e.Points...)
	return &c
}

// Radius is the circle radius used everywhere a circle is measured.
func (e *Circle) Radius() float64 {
	if e.Width > e.Height {
		return e.Width / 2
	}
	return e.Height / 2
}

// Center is the middle of the circle's box.
func (e *Circle) Center() geom.Point {
	return geom.Pt(e.X+e.Width/2, e.Y+e.Height/2)
}

// CloneAll deep-copies an element list.
func CloneAll(elements []Element) []Element {
	out := make([]Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}

// NewID returns a fresh element id.
func NewID() string {
	return uuid.NewString()
}

// Style is the set of defaults new elements are created with.
type Style struct {
	StrokeColor  string       `yaml:"strokeColor"`
	FillColor    string       `yaml:"fillColor"`
	StrokeWidth  float64      `yaml:"strokeWidth"`
	StrokeStyle  StrokeStyle  `yaml:"strokeStyle"`
	Opacity      float64      `yaml:"opacity"`
	FillPattern  FillPattern  `yaml:"fillPattern"`
	Sloppiness   Sloppiness   `yaml:"sloppiness"`
	EdgeRounding EdgeRounding `yaml:"edgeRounding"`
	FontSize     float64      `yaml:"fontSize"`
	FontFamily   string       `yaml:"fontFamily"`
}

// DefaultStyle is used when no configuration overrides it.
func DefaultStyle() Style {
	return Style{
		StrokeColor:  "#1e1e1e",
		FillColor:    Transparent,
		StrokeWidth:  2,
		StrokeStyle:  StrokeSolid,
		Opacity:      1,
		FillPattern:  FillSolid,
		Sloppiness:   SloppinessSubtle,
		EdgeRounding: EdgeRounded,
		FontSize:     20,
		FontFamily:   "sans-serif",
	}
}

func (s Style) base(id string, at geom.Point) Base {
	return Base{
		ID:           id,
		X:            at.X,
		Y:            at.Y,
		StrokeColor:  s.StrokeColor,
		FillColor:    s.FillColor,
		StrokeWidth:  s.StrokeWidth,
		StrokeStyle:  s.StrokeStyle,
		Opacity:      s.Opacity,
		FillPattern:  s.FillPattern,
		Sloppiness:   s.Sloppiness,
		EdgeRounding: s.EdgeRounding,
	}
}
