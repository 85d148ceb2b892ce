// Package render groups the drawing side of tagcloud.
//
// # Overview
//
// Rendering never moves a tag. It takes a finished [cloud.Layout] and
// draws every rectangle where the layouter put it:
//
//   - [palette]: fill colors per tag index, built-in schemes and gradients
//   - [sink]: one renderer per output format (SVG, PNG, PDF, JSON, DOT)
//
// # Usage
//
//	pal, _ := palette.New("warm")
//	svg := sink.RenderSVG(layout, sink.WithPalette(pal), sink.WithMargin(20))
//	png, err := sink.Render(ctx, layout, sink.FormatPNG, sink.WithScale(3))
//
// All renderers share the same frame: the layout bounds plus the margin,
// with the frame origin mapped to (0, 0).
//
// [cloud.Layout]: github.com/matzehuels/tagcloud/pkg/cloud.Layout
// [palette]: github.com/matzehuels/tagcloud/pkg/render/palette
// [sink]: github.com/matzehuels/tagcloud/pkg/render/sink
package render
