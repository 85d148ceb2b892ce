// Package geom provides the integer geometry used by the cloud layouter.
//
// Coordinates follow screen conventions: X grows to the right and Y grows
// downward, so a [Rect] is anchored at its top-left corner.
//
// # Overlap
//
// Two rectangles intersect only when their projections overlap with positive
// length on both axes. Rectangles that merely share an edge or a corner do not
// intersect, which lets the layouter pack tags edge to edge:
//
//	a := geom.NewRect(0, 0, 10, 10)
//	b := geom.NewRect(10, 0, 10, 10)
//	geom.Intersects(a, b) // false, they touch at x=10
//
// All functions in this package are pure and safe for concurrent use.
package geom
