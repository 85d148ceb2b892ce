package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/render/palette"
)

// supersample is the oversampling factor used before the final resize.
const supersample = 2

// RenderPNG renders the layout as a PNG image.
func RenderPNG(l cloud.Layout, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	bg, err := c.backgroundColor(white)
	if err != nil {
		return nil, err
	}

	f := l.Frame(c.margin)
	k := c.scale * supersample
	dc := gg.NewContext(pixels(f.Width, k), pixels(f.Height, k))
	dc.SetColor(bg)
	dc.Clear()
	dc.Scale(k, k)
	dc.Translate(float64(-f.X), float64(-f.Y))

	faces := map[float64]font.Face{}
	defer func() {
		for _, face := range faces {
			face.Close()
		}
	}()

	dc.SetLineWidth(0.5 * k)
	for i, t := range l.Tags {
		fill := c.palette.Color(i)
		dc.DrawRectangle(float64(t.X), float64(t.Y), float64(t.Width), float64(t.Height))
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(palette.Stroke(fill))
		dc.Stroke()

		if !c.labels || t.Label == "" {
			continue
		}
		size := math.Round(fonts.LabelSize(t.Label, t.Width, t.Height, svgCharWidth)*k*2) / 2
		if size < 4 {
			continue
		}
		face, ok := faces[size]
		if !ok {
			if face, err = fonts.Face(size); err != nil {
				return nil, fmt.Errorf("load label font: %w", err)
			}
			faces[size] = face
		}
		dc.SetFontFace(face)
		dc.SetColor(palette.TextColor(fill))
		dc.DrawStringAnchored(t.Label, float64(t.X)+float64(t.Width)/2, float64(t.Y)+float64(t.Height)/2, 0.5, 0.35)
	}

	img := imaging.Resize(dc.Image(), pixels(f.Width, c.scale), pixels(f.Height, c.scale), imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func pixels(units int, scale float64) int {
	return max(1, int(math.Ceil(float64(units)*scale)))
}
