package export

import (
	"fmt"
	"io"
	"os"

	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// WritePNG rasterises the drawing at scale pixels per world unit on the
// theme background, without grid or selection chrome.
func WritePNG(w io.Writer, elements []state.Element, theme render.Theme, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	f := Frame(elements)
	s := render.NewGGSurface(f.Width(), f.Height(), scale)
	render.NewRenderer(theme, false).Draw(s, render.Frame{
		Elements: elements,
		Viewport: state.Viewport{Zoom: 1, OffsetX: f.MinX, OffsetY: f.MinY},
	})
	if err := s.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteFile creates path and hands it to write, closing it either way.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(file)
}
