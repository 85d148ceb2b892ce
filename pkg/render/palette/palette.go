// Package palette assigns colors to tags.
//
// Palettes are deterministic: the color of tag i depends only on the
// palette and i, so re-rendering a layout always produces the same image.
// Colors are generated in the HCL space, which keeps perceived brightness
// even across hues.
package palette

import (
	"math"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Default is the palette used when none is configured.
const Default = "spectrum"

// goldenAngle spreads consecutive hues as far apart as possible.
const goldenAngle = 137.50776405003785

// Palette maps tag indices to colors.
type Palette struct {
	name  string
	color func(i int) colorful.Color
}

var builtin = map[string]func(i int) colorful.Color{
	"spectrum": func(i int) colorful.Color {
		return colorful.Hcl(math.Mod(float64(i)*goldenAngle, 360), 0.55, 0.72)
	},
	"warm": func(i int) colorful.Color {
		return colorful.Hcl(math.Mod(float64(i)*goldenAngle, 80)+350, 0.6, 0.68)
	},
	"cool": func(i int) colorful.Color {
		return colorful.Hcl(math.Mod(float64(i)*goldenAngle, 120)+170, 0.45, 0.7)
	},
	"mono": func(i int) colorful.Color {
		return colorful.Hcl(0, 0, 0.45+0.4*frac(float64(i)*0.618033988749895))
	},
}

// Names returns the built-in palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New returns the palette with the given name. Besides the built-in names a
// two-color gradient can be given as "#rrggbb-#rrggbb"; tags then take
// colors spread between both ends.
func New(name string) (Palette, error) {
	if name == "" {
		name = Default
	}
	if fn, ok := builtin[name]; ok {
		return Palette{name: name, color: fn}, nil
	}
	if from, to, ok := strings.Cut(name, "-"); ok {
		a, errA := Parse(from)
		b, errB := Parse(to)
		if errA == nil && errB == nil {
			return Palette{name: name, color: func(i int) colorful.Color {
				return a.BlendLab(b, frac(float64(i)*0.618033988749895))
			}}, nil
		}
	}
	return Palette{}, errors.New(errors.ErrCodeInvalidPalette,
		"invalid palette: %q (must be one of: %s, or a #rrggbb-#rrggbb gradient)",
		name, strings.Join(Names(), ", "))
}

// Name returns the palette name.
func (p Palette) Name() string { return p.name }

// Color returns the fill color of tag i.
func (p Palette) Color(i int) colorful.Color {
	if p.color == nil {
		return builtin[Default](i).Clamped()
	}
	return p.color(i).Clamped()
}

// Hex returns the fill color of tag i as #rrggbb.
func (p Palette) Hex(i int) string { return p.Color(i).Hex() }

// Parse parses a #rrggbb or #rgb color.
func Parse(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "invalid color %q", s)
	}
	return c, nil
}

// TextColor returns black or white, whichever reads better on bg.
func TextColor(bg colorful.Color) colorful.Color {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return colorful.Color{R: 0.1, G: 0.1, B: 0.1}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

// Stroke returns a darker shade of fill for outlines.
func Stroke(fill colorful.Color) colorful.Color {
	h, c, l := fill.Hcl()
	return colorful.Hcl(h, c, l*0.7).Clamped()
}

func frac(v float64) float64 { return v - math.Floor(v) }
