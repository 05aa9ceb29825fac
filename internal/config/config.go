package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"SketchBoard/internal/state"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "sketchboard.yaml"

type Config struct {
	Theme        string      `yaml:"theme"`
	Grid         bool        `yaml:"grid"`
	FPS          int         `yaml:"fps"`
	HistoryLimit int         `yaml:"historyLimit"`
	ExportScale  float64     `yaml:"exportScale"`
	Style        state.Style `yaml:"style"`
	Share        Share       `yaml:"share"`
}

// Share configures the read-only live view served to other machines.
type Share struct {
	Enabled   bool   `yaml:"enabled"`
	Port      int    `yaml:"port"`
	Advertise bool   `yaml:"advertise"`
	Name      string `yaml:"name"`
}

func Default() Config {
	host, _ := os.Hostname()
	if host == "" {
		host = "sketchboard"
	}
	return Config{
		Theme:        "light",
		Grid:         true,
		FPS:          60,
		HistoryLimit: 50,
		ExportScale:  2,
		Style:        state.DefaultStyle(),
		Share: Share{
			Port:      8765,
			Advertise: true,
			Name:      host,
		},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error:
// the defaults are returned as they are.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	switch c.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("theme %q: want light or dark", c.Theme)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps %d out of range [1,240]", c.FPS)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("historyLimit must be positive, got %d", c.HistoryLimit)
	}
	if c.ExportScale <= 0 {
		return fmt.Errorf("exportScale must be positive, got %g", c.ExportScale)
	}
	if err := validateStyle(c.Style); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	if c.Share.Port < 0 || c.Share.Port > 65535 {
		return fmt.Errorf("share port %d out of range", c.Share.Port)
	}
	return nil
}

func validateStyle(s state.Style) error {
	if s.StrokeWidth <= 0 {
		return fmt.Errorf("strokeWidth must be positive, got %g", s.StrokeWidth)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity %g outside [0,1]", s.Opacity)
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("fontSize must be positive, got %g", s.FontSize)
	}
	switch s.StrokeStyle {
	case state.StrokeSolid, state.StrokeDashed, state.StrokeDotted:
	default:
		return fmt.Errorf("unknown strokeStyle %q", s.StrokeStyle)
	}
	switch s.FillPattern {
	case state.FillSolid, state.FillCrossHatch, state.FillGrid, state.FillDotted:
	default:
		return fmt.Errorf("unknown fillPattern %q", s.FillPattern)
	}
	switch s.Sloppiness {
	case state.SloppinessSubtle, state.SloppinessModerate, state.SloppinessHigh:
	default:
		return fmt.Errorf("unknown sloppiness %q", s.Sloppiness)
	}
	switch s.EdgeRounding {
	case state.EdgeSharp, state.EdgeRounded:
	default:
		return fmt.Errorf("unknown edgeRounding %q", s.EdgeRounding)
	}
	return nil
}
