// Package sink renders a [cloud.Layout] to output formats.
//
// Supported formats:
//
//   - svg: hand-written SVG, one rect (and optional text) per tag
//   - png: rasterized with gg, downsampled and encoded with imaging
//   - pdf: a single page sized to the cloud, drawn with fpdf
//   - json: the layout document itself
//   - dot: a Graphviz neato graph with every tag pinned at its position
//
// All renderers share one [Option] type. Colors come from a
// [palette.Palette]; tag i always gets the palette's i-th color, so the
// output of a layout is stable across runs.
//
// [Render] dispatches on a format name and is what the pipeline and the
// HTTP API call.
package sink
