// Package layouter places rectangles one at a time into a dense circular
// cloud around a fixed center.
//
// # Overview
//
// A [Layouter] is a layout session. Each call to [Layouter.PlaceNext] takes
// the size of the next tag, finds a position for it, commits it and returns
// the placed rectangle. Placement is online and greedy: earlier rectangles
// never move, and later sizes are unknown when a rectangle is placed.
//
//	l := layouter.New(geom.Pt(720, 720))
//	first, err := l.PlaceNext(geom.Sz(80, 30))  // centered on (720, 720)
//	second, err := l.PlaceNext(geom.Sz(40, 20)) // next to the first
//
// # Algorithm
//
// For every call the layouter roots a fresh [spiral.Spiral] at the cloud
// center and walks it outward. Each spiral point is tried as the center of the
// new rectangle; the first candidate that intersects no placed rectangle is
// the provisional placement. Because the spiral starts at the center itself,
// the first rectangle of a session is always centered exactly on it.
//
// The provisional placement is then compacted toward the center, see
// [Compaction]. Compaction only ever accepts positions that are strictly
// closer to the center and free of overlaps, so it can always fall back to
// the provisional placement.
//
// # Bounded Search
//
// The spiral is infinite. To keep pathological configurations from spinning
// forever, each call examines at most [DefaultMaxCandidates] points (see
// [WithMaxCandidates]) and fails with an INTERNAL error once the budget is
// spent. The session is left unchanged in that case.
//
// # Concurrency
//
// A Layouter is not safe for concurrent use. Callers sharing a session across
// goroutines must serialize calls themselves.
//
// [spiral.Spiral]: github.com/matzehuels/tagcloud/pkg/spiral
package layouter
