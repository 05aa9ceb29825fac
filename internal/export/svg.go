// Package export turns an element list into standalone SVG, PDF or PNG
// documents. Every exporter frames the union of element bounds padded by
// Padding on each side.
package export

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// Padding is the margin around the drawing in every export, in world units.
const Padding = 20.0

// Frame returns the exported area: the union of element bounds grown by
// Padding. An empty drawing still gets a padded square around the origin.
func Frame(elements []state.Element) geom.Bounds {
	return state.BoundingBox(elements).Pad(Padding)
}

// num prints the shortest exact form, so 10 stays "10" and 2.5 "2.5".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// ElementsToSVG renders the elements in z-order into one <svg> document.
// Colours, widths and opacity are copied from the elements as stored;
// jitter is not applied.
func ElementsToSVG(elements []state.Element) string {
	f := Frame(elements)
	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		num(f.Width()), num(f.Height()), num(f.MinX), num(f.MinY), num(f.Width()), num(f.Height()))
	svg.WriteString("\n")
	for _, e := range elements {
		writeElement(&svg, e)
	}
	svg.WriteString("</svg>\n")
	return svg.String()
}

func paint(b *state.Base, fill string) string {
	s := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%s" opacity="%s"`,
		escapeXML(fill), escapeXML(b.StrokeColor), num(b.StrokeWidth), num(b.Opacity))
	if dash := render.DashFor(b.StrokeStyle); dash != nil {
		parts := make([]string, len(dash))
		for i, d := range dash {
			parts[i] = num(d)
		}
		s += fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	return s
}

func writeElement(svg *strings.Builder, e state.Element) {
	switch e := e.(type) {
	case *state.Rectangle:
		fmt.Fprintf(svg, `  <rect x="%s" y="%s" width="%s" height="%s"`, num(e.X), num(e.Y), num(e.Width), num(e.Height))
		if e.EdgeRounding != state.EdgeSharp {
			r := num(min(e.Width, e.Height) * 0.1)
			fmt.Fprintf(svg, ` rx="%s" ry="%s"`, r, r)
		}
		fmt.Fprintf(svg, " %s/>\n", paint(&e.Base, e.FillColor))
	case *state.Circle:
		c := e.Center()
		fmt.Fprintf(svg, "  <circle cx=\"%s\" cy=\"%s\" r=\"%s\" %s/>\n",
			num(c.X), num(c.Y), num(e.Radius()), paint(&e.Base, e.FillColor))
	case *state.Line:
		fmt.Fprintf(svg, "  <line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" %s/>\n",
			num(e.X), num(e.Y), num(e.X2), num(e.Y2), paint(&e.Base, "none"))
	case *state.Arrow:
		fmt.Fprintf(svg, "  <line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" %s/>\n",
			num(e.X), num(e.Y), num(e.X2), num(e.Y2), paint(&e.Base, "none"))
		tip := geom.Pt(e.X2, e.Y2)
		left, right := render.ArrowHead(geom.Pt(e.X, e.Y), tip, e.StrokeWidth)
		fmt.Fprintf(svg, "  <polygon points=\"%s,%s %s,%s %s,%s\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%s\" opacity=\"%s\"/>\n",
			num(tip.X), num(tip.Y), num(left.X), num(left.Y), num(right.X), num(right.Y),
			escapeXML(e.StrokeColor), escapeXML(e.StrokeColor), num(e.StrokeWidth), num(e.Opacity))
	case *state.Text:
		writeText(svg, e)
	case *state.Freehand:
		if len(e.Points) == 0 {
			return
		}
		var d strings.Builder
		for i, p := range e.Points {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			if i > 0 {
				d.WriteString(" ")
			}
			fmt.Fprintf(&d, "%s%s %s", cmd, num(p.X), num(p.Y))
		}
		fmt.Fprintf(svg, "  <path d=\"%s\" %s stroke-linecap=\"round\" stroke-linejoin=\"round\"/>\n",
			d.String(), paint(&e.Base, "none"))
	}
}

var svgAnchor = map[state.TextAlign]string{
	state.AlignLeft:   "start",
	state.AlignCenter: "middle",
	state.AlignRight:  "end",
}

func writeText(svg *strings.Builder, t *state.Text) {
	x, _ := render.TextAnchor(t)
	anchor, ok := svgAnchor[t.TextAlign]
	if !ok {
		anchor = "start"
	}
	fmt.Fprintf(svg, `  <text x="%s" y="%s" font-size="%s" font-family="%s" text-anchor="%s" fill="%s" opacity="%s">`,
		num(x), num(t.Y+t.FontSize), num(t.FontSize), escapeXML(t.FontFamily), anchor,
		escapeXML(t.StrokeColor), num(t.Opacity))
	for i, line := range strings.Split(t.Text, "\n") {
		if i == 0 {
			svg.WriteString(escapeXML(line))
			continue
		}
		fmt.Fprintf(svg, `<tspan x="%s" dy="%s">%s</tspan>`, num(x), num(t.FontSize), escapeXML(line))
	}
	svg.WriteString("</text>\n")
}
