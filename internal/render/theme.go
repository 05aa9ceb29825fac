package render

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"SketchBoard/internal/state"
)

// Theme holds the chrome colours drawn around the document.
type Theme struct {
	Name       string
	Background string
	Grid       string
	Selection  string
	HandleFill string
}

var (
	Light = Theme{Name: "light", Background: "#ffffff", Grid: "#e9ecef", Selection: "#4a90e2", HandleFill: "#ffffff"}
	Dark  = Theme{Name: "dark", Background: "#121212", Grid: "#262626", Selection: "#6ea8fe", HandleFill: "#121212"}
)

// ThemeNamed returns the dark theme for "dark" and the light one otherwise.
func ThemeNamed(name string) Theme {
	if name == Dark.Name {
		return Dark
	}
	return Light
}

// ParseColor turns a CSS hex colour into an NRGBA with the given opacity.
// The empty string and "transparent" are fully transparent; anything that
// does not parse is drawn black rather than dropped.
func ParseColor(s string, opacity float64) color.NRGBA {
	if s == "" || s == state.Transparent {
		return color.NRGBA{}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		c = colorful.Color{}
	}
	r, g, b := c.RGB255()
	a := math.Round(math.Max(0, math.Min(1, opacity)) * 255)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}
}
