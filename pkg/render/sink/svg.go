package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/render/palette"
)

// svgCharWidth is the average glyph advance of the label font relative to
// its size.
const svgCharWidth = 0.6

// RenderSVG renders the layout as an SVG document.
func RenderSVG(l cloud.Layout, opts ...Option) []byte {
	c := newConfig(opts)
	f := l.Frame(c.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	if c.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(c.background))
	}

	for i, t := range l.Tags {
		x, y := t.X-f.X, t.Y-f.Y
		fill := c.palette.Color(i)
		fmt.Fprintf(&buf, `  <rect id="tag-%d" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="0.5"/>`+"\n",
			i, x, y, t.Width, t.Height, fill.Hex(), palette.Stroke(fill).Hex())

		if !c.labels || t.Label == "" {
			continue
		}
		size := fonts.LabelSize(t.Label, t.Width, t.Height, svgCharWidth)
		if size < 1 {
			continue
		}
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			float64(x)+float64(t.Width)/2, float64(y)+float64(t.Height)/2,
			fonts.FontFamily, size, palette.TextColor(fill).Hex(), html.EscapeString(t.Label))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
