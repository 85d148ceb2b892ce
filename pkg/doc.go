// Package pkg provides the libraries behind tagcloud, a layouter that
// packs rectangles into a compact circular cloud.
//
// # Overview
//
// Rectangles (usually the bounding boxes of words) are placed one at a time
// around a fixed center. Each placement walks an Archimedean spiral outward
// from the center until the rectangle fits without overlapping anything
// already placed, then pulls it back toward the center as far as it can go.
//
// # Architecture
//
//	tag list (text, JSON, TOML)
//	         ↓
//	    [tags] package (parse + validate)
//	         ↓
//	    [layouter] package (spiral search + compaction, uses [spiral] and [geom])
//	         ↓
//	    [cloud] package (placed tags + stats, JSON)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON/DOT)
//
// [pipeline] runs these stages with caching ([cache]) and hooks
// ([observability]). [session] keeps layouter state between API calls.
//
// # Quick Start
//
//	l := layouter.New(geom.Pt(400, 300))
//	for _, size := range []geom.Size{geom.Sz(120, 40), geom.Sz(80, 30)} {
//	    r, err := l.PlaceNext(size)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(r)
//	}
//	svg := sink.RenderSVG(cloud.FromLayouter(l, nil))
//
// # Main Packages
//
//   - [geom]: integer points, sizes, rectangles and overlap tests
//   - [spiral]: the candidate point generator
//   - [layouter]: stateful placement with radial or axis compaction
//   - [tags]: tag list formats
//   - [cloud]: the serialized layout
//   - [render/palette], [render/sink]: drawing
//   - [pipeline]: parse → layout → render with caching
//   - [cache]: file, Redis and MongoDB result caches
//   - [session]: interactive layout sessions (memory, file, Redis)
//   - [errors]: coded errors shared by CLI and API
//   - [observability]: pipeline, cache and HTTP hooks
//   - [buildinfo], [fonts]: build metadata and label fonts
//
// [geom]: github.com/matzehuels/tagcloud/pkg/geom
// [spiral]: github.com/matzehuels/tagcloud/pkg/spiral
// [layouter]: github.com/matzehuels/tagcloud/pkg/layouter
// [tags]: github.com/matzehuels/tagcloud/pkg/tags
// [cloud]: github.com/matzehuels/tagcloud/pkg/cloud
// [render/palette]: github.com/matzehuels/tagcloud/pkg/render/palette
// [render/sink]: github.com/matzehuels/tagcloud/pkg/render/sink
// [pipeline]: github.com/matzehuels/tagcloud/pkg/pipeline
// [cache]: github.com/matzehuels/tagcloud/pkg/cache
// [session]: github.com/matzehuels/tagcloud/pkg/session
// [errors]: github.com/matzehuels/tagcloud/pkg/errors
// [observability]: github.com/matzehuels/tagcloud/pkg/observability
// [buildinfo]: github.com/matzehuels/tagcloud/pkg/buildinfo
// [fonts]: github.com/matzehuels/tagcloud/pkg/fonts
package pkg
