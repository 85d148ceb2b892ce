package sink

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/tagcloud/pkg/render/palette"
)

// Render defaults.
const (
	DefaultMargin = 10
	DefaultScale  = 2.0
)

// Option configures rendering.
type Option func(*config)

type config struct {
	palette    palette.Palette
	background string
	labels     bool
	margin     int
	scale      float64
}

func newConfig(opts []Option) config {
	p, _ := palette.New(palette.Default)
	c := config{palette: p, labels: true, margin: DefaultMargin, scale: DefaultScale}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithPalette sets the tag colors.
func WithPalette(p palette.Palette) Option { return func(c *config) { c.palette = p } }

// WithBackground sets a #rrggbb background. SVG and DOT output is
// transparent without one; raster and PDF output falls back to white.
func WithBackground(hex string) Option { return func(c *config) { c.background = hex } }

// WithLabels toggles tag labels.
func WithLabels(show bool) Option { return func(c *config) { c.labels = show } }

// WithMargin sets the blank border around the cloud in layout units.
func WithMargin(m int) Option {
	return func(c *config) {
		if m >= 0 {
			c.margin = m
		}
	}
}

// WithScale sets the PNG pixels per layout unit (default 2).
func WithScale(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.scale = s
		}
	}
}

// backgroundColor parses the configured background, returning fallback
// when none is set.
func (c config) backgroundColor(fallback colorful.Color) (colorful.Color, error) {
	if c.background == "" {
		return fallback, nil
	}
	return palette.Parse(c.background)
}

var white = colorful.Color{R: 1, G: 1, B: 1}
