package persist

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

func base(id string) state.Base {
	return state.Base{
		ID: id, X: 1.5, Y: -2,
		StrokeColor: "#1e1e1e", FillColor: "#ffc9c9", StrokeWidth: 4,
		StrokeStyle: state.StrokeDashed, Opacity: 0.8, Angle: 0.25,
		FillPattern: state.FillCrossHatch, Sloppiness: state.SloppinessHigh,
		EdgeRounding: state.EdgeSharp,
	}
}

func allVariants() []state.Element {
	return []state.Element{
		&state.Rectangle{Base: base("r"), Width: 50, Height: 30},
		&state.Circle{Base: base("c"), Width: 40, Height: 20},
		&state.Line{Base: base("l"), X2: 60, Y2: 100},
		&state.Arrow{Base: base("a"), X2: -80, Y2: 150},
		&state.Text{Base: base("t"), Width: 100, Height: 40, Text: "two\nlines", FontSize: 24, FontFamily: "monospace", TextAlign: state.AlignRight},
		&state.Freehand{Base: base("f"), Points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}},
	}
}

func TestRoundTripIsLossless(t *testing.T) {
	doc := Document{
		Version:   Version,
		Elements:  allVariants(),
		Viewport:  state.Viewport{Zoom: 1.5, OffsetX: -20, OffsetY: 35},
		Selection: []string{"c", "t"},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))
	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestWireFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Document{Elements: []state.Element{
		&state.Line{Base: base("l"), X2: 60, Y2: 100},
	}}))
	out := buf.String()

	assert.Contains(t, out, `"version": 1`)
	assert.Contains(t, out, `"type": "line"`)
	assert.Contains(t, out, `"x2": 60`)
	assert.Contains(t, out, `"selection": []`)
	assert.NotContains(t, out, `"points"`)
	assert.NotContains(t, out, `"width"`)
}

func TestUnknownTypeIsSkipped(t *testing.T) {
	in := `{"version":1,"elements":[
		{"type":"hexagon","id":"h"},
		{"type":"rectangle","id":"r","x":1,"y":2,"width":3,"height":4}
	],"viewport":{"zoom":2,"offsetX":0,"offsetY":0},"selection":["r"]}`

	doc, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)
	assert.Equal(t, "r", doc.Elements[0].Common().ID)
}

func TestVersionAndZoomChecks(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version":9,"elements":[]}`))
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))

	_, err = Decode(strings.NewReader(`{"version":0}`))
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))

	doc, err := Decode(strings.NewReader(`{"version":1,"viewport":{"offsetX":3}}`))
	require.NoError(t, err)
	assert.Equal(t, 1.0, doc.Viewport.Zoom)

	doc, err = Decode(strings.NewReader(`{"version":1,"viewport":{"zoom":40}}`))
	require.NoError(t, err)
	assert.Equal(t, state.MaxZoom, doc.Viewport.Zoom)

	_, err = Decode(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	doc := Document{Version: Version, Elements: allVariants(), Viewport: state.DefaultViewport(), Selection: []string{}}

	require.NoError(t, Save(path, doc))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCaptureApply(t *testing.T) {
	src := state.NewStore()
	for _, e := range allVariants() {
		src.AddElement(e)
	}
	src.SetSelection([]string{"r", "f"})
	src.SetViewport(state.Viewport{Zoom: 2, OffsetX: 10})

	doc := Capture(src)
	src.UpdateElement("r", func(e state.Element) { e.Common().X = 999 })
	assert.Equal(t, 1.5, doc.Elements[0].Common().X)

	dst := state.NewStore()
	Apply(dst, doc)
	assert.Len(t, dst.Elements(), 6)
	assert.Equal(t, []string{"r", "f"}, dst.Selection())
	assert.Equal(t, 2.0, dst.Viewport().Zoom)

	assert.True(t, dst.Undo())
	assert.Empty(t, dst.Elements())
}
