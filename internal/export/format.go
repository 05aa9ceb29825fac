package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// Format is one of the file types a board can be exported to.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// FormatOf picks the format from a file name's extension.
func FormatOf(path string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
	switch f {
	case FormatPDF, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("%s: unknown export format", path)
}

// Exporter carries the raster settings; vector formats ignore them.
type Exporter struct {
	Theme render.Theme
	Scale float64
}

// Write encodes elements as format. Selection and grid are never exported.
func (x Exporter) Write(w io.Writer, format Format, elements []state.Element) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, elements)
	case FormatSVG:
		_, err := io.WriteString(w, ElementsToSVG(elements))
		return err
	case FormatPNG:
		return WritePNG(w, elements, x.Theme, x.Scale)
	}
	return fmt.Errorf("unknown export format %q", format)
}
