// Package fonts provides the label font for raster and vector output.
//
// The Go Regular font ships with golang.org/x/image, so labels render the
// same on every machine without system font lookups.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family used for SVG labels.
const FontFamily = "Go, Helvetica, Arial, sans-serif"

// PDFFamily is the core PDF font used for labels.
const PDFFamily = "Helvetica"

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font. The result is cached after
// first use.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a Go Regular face of the given point size.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}

// LabelSize returns the font size that fits label into a box of w×h units.
// charWidth is the average glyph advance as a fraction of the font size.
func LabelSize(label string, w, h int, charWidth float64) float64 {
	if label == "" || w <= 0 || h <= 0 {
		return 0
	}
	size := float64(h) * 0.7
	if fit := float64(w) / (float64(len([]rune(label))) * charWidth); fit < size {
		size = fit
	}
	return size
}
