package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// WritePDF writes a one-page vector PDF. One world unit is one point and
// the page is exactly the padded drawing bounds.
func WritePDF(w io.Writer, elements []state.Element) error {
	f := Frame(elements)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: f.Width(), Ht: f.Height()},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	pw := &pdfWriter{pdf: pdf, ox: f.MinX, oy: f.MinY, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, e := range elements {
		pw.element(e)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	ox, oy float64
	tr     func(string) string
}

func (p *pdfWriter) pt(x, y float64) (float64, float64) { return x - p.ox, y - p.oy }

func (p *pdfWriter) style(b *state.Base) {
	c := render.ParseColor(b.StrokeColor, 1)
	p.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetLineWidth(b.StrokeWidth)
	p.pdf.SetDashPattern(render.DashFor(b.StrokeStyle), 0)
	p.pdf.SetAlpha(math.Max(0, math.Min(1, b.Opacity)), "Normal")
}

// fill sets the fill colour and reports the draw style for a closed shape.
func (p *pdfWriter) fill(b *state.Base) string {
	if b.FillColor == "" || b.FillColor == state.Transparent {
		return "D"
	}
	c := render.ParseColor(b.FillColor, 1)
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	if b.FillPattern == "" || b.FillPattern == state.FillSolid {
		return "FD"
	}
	return "D"
}

func (p *pdfWriter) element(e state.Element) {
	b := e.Common()
	p.style(b)
	defer p.pdf.SetAlpha(1, "Normal")

	switch e := e.(type) {
	case *state.Rectangle:
		x, y := p.pt(e.X, e.Y)
		if p.patterned(b) {
			p.pdf.ClipRect(x, y, e.Width, e.Height, false)
			p.pattern(b, geom.BoundsFromCorners(geom.Pt(x, y), geom.Pt(x+e.Width, y+e.Height)))
			p.pdf.ClipEnd()
			p.style(b)
		}
		p.pdf.Rect(x, y, e.Width, e.Height, p.fill(b))
	case *state.Circle:
		c := e.Center()
		x, y := p.pt(c.X, c.Y)
		r := e.Radius()
		if p.patterned(b) {
			p.pdf.ClipCircle(x, y, r, false)
			p.pattern(b, geom.Bounds{MinX: x - r, MinY: y - r, MaxX: x + r, MaxY: y + r})
			p.pdf.ClipEnd()
			p.style(b)
		}
		p.pdf.Circle(x, y, r, p.fill(b))
	case *state.Line:
		x1, y1 := p.pt(e.X, e.Y)
		x2, y2 := p.pt(e.X2, e.Y2)
		p.pdf.Line(x1, y1, x2, y2)
	case *state.Arrow:
		x1, y1 := p.pt(e.X, e.Y)
		x2, y2 := p.pt(e.X2, e.Y2)
		p.pdf.Line(x1, y1, x2, y2)
		left, right := render.ArrowHead(geom.Pt(x1, y1), geom.Pt(x2, y2), e.StrokeWidth)
		c := render.ParseColor(e.StrokeColor, 1)
		p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.pdf.SetDashPattern(nil, 0)
		p.pdf.Polygon([]gofpdf.PointType{{X: x2, Y: y2}, {X: left.X, Y: left.Y}, {X: right.X, Y: right.Y}}, "FD")
	case *state.Text:
		p.text(e)
	case *state.Freehand:
		if len(e.Points) < 2 {
			return
		}
		for i, pt := range e.Points {
			x, y := p.pt(pt.X, pt.Y)
			if i == 0 {
				p.pdf.MoveTo(x, y)
			} else {
				p.pdf.LineTo(x, y)
			}
		}
		p.pdf.DrawPath("D")
	}
}

func (p *pdfWriter) patterned(b *state.Base) bool {
	return b.FillColor != "" && b.FillColor != state.Transparent &&
		b.FillPattern != "" && b.FillPattern != state.FillSolid
}

// pattern draws hatch lines or dots over area; the caller has clipped.
func (p *pdfWriter) pattern(b *state.Base, area geom.Bounds) {
	c := render.ParseColor(b.FillColor, 1)
	p.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetLineWidth(1)
	p.pdf.SetDashPattern(nil, 0)
	step := render.PatternSpacing
	switch b.FillPattern {
	case state.FillGrid:
		for x := area.MinX; x <= area.MaxX; x += step {
			p.pdf.Line(x, area.MinY, x, area.MaxY)
		}
		for y := area.MinY; y <= area.MaxY; y += step {
			p.pdf.Line(area.MinX, y, area.MaxX, y)
		}
	case state.FillCrossHatch:
		for d := 0.0; d <= area.Width()+area.Height(); d += step {
			p.pdf.Line(area.MinX+d, area.MinY, area.MinX+d-area.Height(), area.MaxY)
			p.pdf.Line(area.MaxX-d, area.MinY, area.MaxX-d+area.Height(), area.MaxY)
		}
	case state.FillDotted:
		for x := area.MinX + step/2; x < area.MaxX; x += step {
			for y := area.MinY + step/2; y < area.MaxY; y += step {
				p.pdf.Circle(x, y, 1, "F")
			}
		}
	}
}

// pdfFont maps a CSS family onto one of the PDF core fonts.
func pdfFont(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono"), strings.Contains(f, "courier"):
		return "Courier"
	case strings.Contains(f, "serif") && !strings.Contains(f, "sans"):
		return "Times"
	}
	return "Helvetica"
}

func (p *pdfWriter) text(t *state.Text) {
	c := render.ParseColor(t.StrokeColor, 1)
	p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetFont(pdfFont(t.FontFamily), "", t.FontSize)
	ax, anchor := render.TextAnchor(t)
	for i, line := range strings.Split(t.Text, "\n") {
		if line == "" {
			continue
		}
		s := p.tr(line)
		x, y := p.pt(ax, t.Y+t.FontSize*float64(i+1))
		p.pdf.Text(x-anchor*p.pdf.GetStringWidth(s), y, s)
	}
}
