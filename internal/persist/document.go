// Package persist reads and writes a board as plain JSON: the elements in
// z-order, the viewport and the selection.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// Version is the document format written by this package.
const Version = 1

var ErrUnsupportedVersion = errors.New("unsupported document version")

type Document struct {
	Version   int
	Elements  []state.Element
	Viewport  state.Viewport
	Selection []string
}

// wireDocument and wireElement are the JSON shapes. Every element is one
// flat object tagged by "type"; fields a variant does not use are omitted.
type wireDocument struct {
	Version   int            `json:"version"`
	Elements  []wireElement  `json:"elements"`
	Viewport  state.Viewport `json:"viewport"`
	Selection []string       `json:"selection"`
}

type wireElement struct {
	Type         state.Kind         `json:"type"`
	ID           string             `json:"id"`
	X            float64            `json:"x"`
	Y            float64            `json:"y"`
	StrokeColor  string             `json:"strokeColor"`
	FillColor    string             `json:"fillColor"`
	StrokeWidth  float64            `json:"strokeWidth"`
	StrokeStyle  state.StrokeStyle  `json:"strokeStyle"`
	Opacity      float64            `json:"opacity"`
	Angle        float64            `json:"angle"`
	FillPattern  state.FillPattern  `json:"fillPattern"`
	Sloppiness   state.Sloppiness   `json:"sloppiness"`
	EdgeRounding state.EdgeRounding `json:"edgeRounding"`

	Width      float64         `json:"width,omitempty"`
	Height     float64         `json:"height,omitempty"`
	X2         float64         `json:"x2,omitempty"`
	Y2         float64         `json:"y2,omitempty"`
	Text       string          `json:"text,omitempty"`
	FontSize   float64         `json:"fontSize,omitempty"`
	FontFamily string          `json:"fontFamily,omitempty"`
	TextAlign  state.TextAlign `json:"textAlign,omitempty"`
	Points     []geom.Point    `json:"points,omitempty"`
}

func toWire(e state.Element) wireElement {
	b := e.Common()
	w := wireElement{
		Type:         e.Kind(),
		ID:           b.ID,
		X:            b.X,
		Y:            b.Y,
		StrokeColor:  b.StrokeColor,
		FillColor:    b.FillColor,
		StrokeWidth:  b.StrokeWidth,
		StrokeStyle:  b.StrokeStyle,
		Opacity:      b.Opacity,
		Angle:        b.Angle,
		FillPattern:  b.FillPattern,
		Sloppiness:   b.Sloppiness,
		EdgeRounding: b.EdgeRounding,
	}
	switch e := e.(type) {
	case *state.Rectangle:
		w.Width, w.Height = e.Width, e.Height
	case *state.Circle:
		w.Width, w.Height = e.Width, e.Height
	case *state.Line:
		w.X2, w.Y2 = e.X2, e.Y2
	case *state.Arrow:
		w.X2, w.Y2 = e.X2, e.Y2
	case *state.Text:
		w.Width, w.Height = e.Width, e.Height
		w.Text, w.FontSize, w.FontFamily, w.TextAlign = e.Text, e.FontSize, e.FontFamily, e.TextAlign
	case *state.Freehand:
		w.Points = append([]geom.Point(nil), e.Points...)
	}
	return w
}

// fromWire rebuilds an element; unknown types report false.
func fromWire(w wireElement) (state.Element, bool) {
	b := state.Base{
		ID:           w.ID,
		X:            w.X,
		Y:            w.Y,
		StrokeColor:  w.StrokeColor,
		FillColor:    w.FillColor,
		StrokeWidth:  w.StrokeWidth,
		StrokeStyle:  w.StrokeStyle,
		Opacity:      w.Opacity,
		Angle:        w.Angle,
		FillPattern:  w.FillPattern,
		Sloppiness:   w.Sloppiness,
		EdgeRounding: w.EdgeRounding,
	}
	switch w.Type {
	case state.KindRectangle:
		return &state.Rectangle{Base: b, Width: w.Width, Height: w.Height}, true
	case state.KindCircle:
		return &state.Circle{Base: b, Width: w.Width, Height: w.Height}, true
	case state.KindLine:
		return &state.Line{Base: b, X2: w.X2, Y2: w.Y2}, true
	case state.KindArrow:
		return &state.Arrow{Base: b, X2: w.X2, Y2: w.Y2}, true
	case state.KindText:
		return &state.Text{
			Base: b, Width: w.Width, Height: w.Height,
			Text: w.Text, FontSize: w.FontSize, FontFamily: w.FontFamily, TextAlign: w.TextAlign,
		}, true
	case state.KindFreehand:
		return &state.Freehand{Base: b, Points: w.Points}, true
	}
	return nil, false
}

func (d Document) MarshalJSON() ([]byte, error) {
	w := wireDocument{
		Version:   d.Version,
		Elements:  make([]wireElement, 0, len(d.Elements)),
		Viewport:  d.Viewport,
		Selection: d.Selection,
	}
	if w.Version == 0 {
		w.Version = Version
	}
	if w.Selection == nil {
		w.Selection = []string{}
	}
	for _, e := range d.Elements {
		w.Elements = append(w.Elements, toWire(e))
	}
	return json.Marshal(w)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Version < 1 || w.Version > Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, w.Version)
	}
	d.Version = w.Version
	d.Viewport = w.Viewport
	if d.Viewport.Zoom == 0 {
		d.Viewport.Zoom = 1
	}
	d.Viewport.Zoom = state.ClampZoom(d.Viewport.Zoom)
	d.Selection = w.Selection
	d.Elements = make([]state.Element, 0, len(w.Elements))
	for _, we := range w.Elements {
		e, ok := fromWire(we)
		if !ok {
			log.Printf("[PERSIST] skipping element %q of unknown type %q", we.ID, we.Type)
			continue
		}
		d.Elements = append(d.Elements, e)
	}
	return nil
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// Save writes doc to a temporary file next to path and renames it into
// place.
func Save(path string, doc Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sketchboard-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	log.Printf("[PERSIST] saved %d elements to %s", len(doc.Elements), path)
	return nil
}

func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	log.Printf("[PERSIST] loaded %d elements from %s", len(doc.Elements), path)
	return doc, nil
}

// Capture snapshots the store's document state. Elements are deep copies,
// so the document stays valid while editing continues.
func Capture(s *state.Store) Document {
	return Document{
		Version:   Version,
		Elements:  s.Snapshot(),
		Viewport:  s.Viewport(),
		Selection: s.Selection(),
	}
}

// Apply replaces the store's elements with the document's (one undo step),
// then restores its viewport and selection.
func Apply(s *state.Store, doc Document) {
	s.ReplaceAll(state.CloneAll(doc.Elements))
	s.SetViewport(doc.Viewport)
	s.SetSelection(doc.Selection)
}
