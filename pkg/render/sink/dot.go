package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/render/palette"
)

// pointsPerInch converts layout units to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a layout to a Graphviz graph for the neato engine. Every
// tag becomes a fixed-size box pinned at its center, so rendering the graph
// with "neato -n" reproduces the cloud. Graphviz's y axis points up.
func ToDOT(l cloud.Layout, opts ...Option) string {
	c := newConfig(opts)

	var buf bytes.Buffer
	buf.WriteString("graph cloud {\n")
	buf.WriteString("  layout=neato;\n")
	if c.background != "" {
		fmt.Fprintf(&buf, "  bgcolor=%q;\n", c.background)
	} else {
		buf.WriteString("  bgcolor=\"transparent\";\n")
	}
	fmt.Fprintf(&buf, "  node [shape=box, style=filled, fixedsize=true, fontname=%q, penwidth=0.5];\n", fonts.PDFFamily)
	buf.WriteString("\n")

	for i, t := range l.Tags {
		r := t.Rect()
		fill := c.palette.Color(i)
		label := ""
		if c.labels {
			label = t.Label
		}
		cx := float64(r.X) + float64(r.Width)/2
		cy := float64(r.Y) + float64(r.Height)/2
		fmt.Fprintf(&buf, "  t%d [label=%q, pos=\"%.1f,%.1f!\", width=%.4f, height=%.4f, fillcolor=%q, color=%q, fontcolor=%q, fontsize=%.1f];\n",
			i, label, cx, -cy,
			float64(r.Width)/pointsPerInch, float64(r.Height)/pointsPerInch,
			fill.Hex(), palette.Stroke(fill).Hex(), palette.TextColor(fill).Hex(),
			max(1, fonts.LabelSize(label, r.Width, r.Height, pdfCharWidth)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT returns the DOT source of the layout after checking that
// Graphviz accepts it.
func RenderDOT(ctx context.Context, l cloud.Layout, opts ...Option) ([]byte, error) {
	dot := ToDOT(l, opts...)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	return []byte(dot), nil
}
