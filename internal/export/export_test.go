package export

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

func base(id string, x, y float64) state.Base {
	return state.Base{
		ID: id, X: x, Y: y,
		StrokeColor: "#1e1e1e", FillColor: state.Transparent, StrokeWidth: 2,
		StrokeStyle: state.StrokeSolid, Opacity: 1, FillPattern: state.FillSolid,
		Sloppiness: state.SloppinessHigh, EdgeRounding: state.EdgeSharp,
	}
}

func sample() []state.Element {
	return []state.Element{
		&state.Rectangle{Base: base("r", 10, 10), Width: 50, Height: 30},
		&state.Circle{Base: base("c", 100, 0), Width: 40, Height: 20},
		&state.Line{Base: base("l", 0, 100), X2: 60, Y2: 100},
		&state.Arrow{Base: base("a", 0, 150), X2: 80, Y2: 150},
		&state.Text{Base: base("t", 0, 200), Width: 100, Height: 40, Text: "a < b\n& c", FontSize: 20, FontFamily: "sans-serif", TextAlign: state.AlignLeft},
		&state.Freehand{Base: base("f", 0, 0), Points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}},
	}
}

func TestSingleRectangleSVG(t *testing.T) {
	svg := ElementsToSVG([]state.Element{&state.Rectangle{Base: base("r", 10, 10), Width: 50, Height: 30}})

	assert.Equal(t, 1, strings.Count(svg, "<rect "))
	assert.Contains(t, svg, `<rect x="10" y="10" width="50" height="30"`)
	assert.Contains(t, svg, `viewBox="-10 -10 90 70"`)
	assert.Contains(t, svg, `width="90" height="70"`)
	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
}

func TestSVGTags(t *testing.T) {
	svg := ElementsToSVG(sample())

	assert.Contains(t, svg, `<circle cx="120" cy="10" r="20"`)
	assert.Equal(t, 2, strings.Count(svg, "<line "))
	assert.Equal(t, 1, strings.Count(svg, "<polygon "))
	assert.Contains(t, svg, `<path d="M0 0 L5 5 L10 0" fill="none"`)
	assert.Contains(t, svg, `a &lt; b<tspan x="0" dy="20">&amp; c</tspan></text>`)
	assert.Contains(t, svg, `fill="transparent" stroke="#1e1e1e" stroke-width="2" opacity="1"`)
}

func TestSVGStyleAttributes(t *testing.T) {
	r := &state.Rectangle{Base: base("r", 0, 0), Width: 100, Height: 40}
	r.EdgeRounding = state.EdgeRounded
	r.StrokeStyle = state.StrokeDotted
	r.FillColor = "#ffc9c9"
	r.Opacity = 0.5
	svg := ElementsToSVG([]state.Element{r})

	assert.Contains(t, svg, `rx="4" ry="4"`)
	assert.Contains(t, svg, `fill="#ffc9c9"`)
	assert.Contains(t, svg, `opacity="0.5"`)
	assert.Contains(t, svg, `stroke-dasharray="2,4"`)
}

func TestEmptySVG(t *testing.T) {
	svg := ElementsToSVG(nil)
	assert.Contains(t, svg, `viewBox="-20 -20 40 40"`)
	assert.NotContains(t, svg, "<rect")
}

func TestWritePDF(t *testing.T) {
	elements := sample()
	patterned := &state.Rectangle{Base: base("p", 200, 0), Width: 40, Height: 40}
	patterned.FillColor = "#a5d8ff"
	patterned.FillPattern = state.FillCrossHatch
	elements = append(elements, patterned)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, elements))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	rect := &state.Rectangle{Base: base("r", 10, 10), Width: 50, Height: 30}
	require.NoError(t, WritePNG(&buf, []state.Element{rect}, render.Light, 2))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 180, img.Bounds().Dx())
	assert.Equal(t, 140, img.Bounds().Dy())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.svg")
	err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, ElementsToSVG(sample()))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg ")

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "x.pdf"), func(io.Writer) error { return nil })
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{"a.svg": FormatSVG, "b.PDF": FormatPDF, "dir/c.png": FormatPNG} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got)
	}
	_, err := FormatOf("board.bmp")
	assert.Error(t, err)
}

func TestExporterFormats(t *testing.T) {
	x := Exporter{Theme: render.Light, Scale: 1}
	for _, f := range []Format{FormatSVG, FormatPDF, FormatPNG} {
		var buf bytes.Buffer
		require.NoError(t, x.Write(&buf, f, sample()), f)
		assert.NotZero(t, buf.Len(), f)
	}
	assert.Error(t, x.Write(&bytes.Buffer{}, "bmp", sample()))
}
