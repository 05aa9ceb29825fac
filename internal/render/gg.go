package render

import (
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// GGSurface rasterises onto an RGBA image. Logical coordinates are scaled
// by the device pixel ratio so the backing image is width*dpr by
// height*dpr pixels.
type GGSurface struct {
	dc            *gg.Context
	width, height float64
	dpr           float64

	// gg strokes in device pixels, so the user-space scale is tracked to
	// convert line widths and dash lengths.
	scale  float64
	scales []float64

	stroke color.Color
	fill   color.Color
	fonts  *fontCache
}

func NewGGSurface(width, height, dpr float64) *GGSurface {
	g := &GGSurface{fonts: newFontCache()}
	g.Resize(width, height, dpr)
	return g
}

// Resize reallocates the backing image when the logical size or pixel ratio
// changed. It reports whether a new image was made.
func (g *GGSurface) Resize(width, height, dpr float64) bool {
	if dpr <= 0 {
		dpr = 1
	}
	width, height = math.Max(1, width), math.Max(1, height)
	if g.dc != nil && width == g.width && height == g.height && dpr == g.dpr {
		return false
	}
	g.width, g.height, g.dpr = width, height, dpr
	g.dc = gg.NewContext(int(math.Ceil(width*dpr)), int(math.Ceil(height*dpr)))
	g.dc.Scale(dpr, dpr)
	g.scale = dpr
	g.scales = g.scales[:0]
	g.stroke, g.fill = color.Black, color.Black
	return true
}

func (g *GGSurface) Image() image.Image { return g.dc.Image() }

func (g *GGSurface) EncodePNG(w io.Writer) error { return g.dc.EncodePNG(w) }

func (g *GGSurface) Size() (float64, float64) { return g.width, g.height }

func (g *GGSurface) Clear(c string) {
	g.dc.SetColor(ParseColor(c, 1))
	g.dc.Clear()
}

func (g *GGSurface) Push() {
	g.dc.Push()
	g.scales = append(g.scales, g.scale)
}

func (g *GGSurface) Pop() {
	if len(g.scales) == 0 {
		return
	}
	g.dc.Pop()
	g.scale = g.scales[len(g.scales)-1]
	g.scales = g.scales[:len(g.scales)-1]
}

func (g *GGSurface) Scale(sx, sy float64) {
	g.dc.Scale(sx, sy)
	g.scale *= math.Sqrt(math.Abs(sx * sy))
}

func (g *GGSurface) Translate(dx, dy float64) { g.dc.Translate(dx, dy) }

func (g *GGSurface) SetStroke(c string, width, opacity float64, dash []float64) {
	g.stroke = ParseColor(c, opacity)
	g.dc.SetLineWidth(width * g.scale)
	scaled := make([]float64, len(dash))
	for i, d := range dash {
		scaled[i] = d * g.scale
	}
	g.dc.SetDash(scaled...)
}

func (g *GGSurface) SetFill(c string, opacity float64) {
	g.fill = ParseColor(c, opacity)
}

func (g *GGSurface) MoveTo(x, y float64) { g.dc.MoveTo(x, y) }
func (g *GGSurface) LineTo(x, y float64) { g.dc.LineTo(x, y) }
func (g *GGSurface) ClosePath()          { g.dc.ClosePath() }

func (g *GGSurface) Rect(x, y, w, h float64) { g.dc.DrawRectangle(x, y, w, h) }

func (g *GGSurface) RoundedRect(x, y, w, h, r float64) {
	g.dc.DrawRoundedRectangle(x, y, w, h, r)
}

func (g *GGSurface) Circle(cx, cy, r float64) {
	g.dc.NewSubPath()
	g.dc.DrawCircle(cx, cy, r)
}

func (g *GGSurface) Fill() {
	g.dc.SetColor(g.fill)
	g.dc.Fill()
}

func (g *GGSurface) Stroke() {
	g.dc.SetColor(g.stroke)
	g.dc.Stroke()
}

func (g *GGSurface) Clip() { g.dc.Clip() }

// Text is drawn untransformed at the projected baseline with a face sized
// for the current scale, which keeps glyphs crisp at any zoom.
func (g *GGSurface) Text(s string, x, y, size float64, family string, anchor float64) {
	px := size * g.scale
	if px < 1 {
		return
	}
	face := g.fonts.face(family, px)
	if face == nil {
		return
	}
	tx, ty := g.dc.TransformPoint(x, y)
	g.dc.Push()
	g.dc.Identity()
	g.dc.SetFontFace(face)
	g.dc.SetColor(g.fill)
	g.dc.DrawStringAnchored(s, tx, ty, anchor, 0)
	g.dc.Pop()
}

type faceKey struct {
	mono bool
	size float64
}

var (
	parseOnce     sync.Once
	regular, mono *truetype.Font
)

func parseFonts() {
	var err error
	if regular, err = truetype.Parse(goregular.TTF); err != nil {
		log.Printf("[RENDER] parse regular font: %v", err)
	}
	if mono, err = truetype.Parse(gomono.TTF); err != nil {
		log.Printf("[RENDER] parse mono font: %v", err)
	}
}

// fontCache hands out faces per family and pixel size. Faces keep glyph
// caches of their own, so each surface owns its cache.
type fontCache struct {
	faces map[faceKey]font.Face
}

func newFontCache() *fontCache {
	parseOnce.Do(parseFonts)
	return &fontCache{faces: make(map[faceKey]font.Face)}
}

func (c *fontCache) face(family string, size float64) font.Face {
	key := faceKey{
		mono: strings.Contains(strings.ToLower(family), "mono"),
		size: math.Round(size*2) / 2,
	}
	if f, ok := c.faces[key]; ok {
		return f
	}
	ttf := regular
	if key.mono && mono != nil {
		ttf = mono
	}
	if ttf == nil {
		return nil
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: key.size, DPI: 72, Hinting: font.HintingFull})
	c.faces[key] = f
	return f
}
