package geom

import (
	"fmt"
	"math"
)

// Point is a location in the plane.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is the extent of a rectangle.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h int) Size { return Size{Width: w, Height: h} }

// Valid reports whether both dimensions are strictly positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Area returns Width*Height.
func (s Size) Area() int { return s.Width * s.Height }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect creates a rectangle from its top-left corner and dimensions.
func NewRect(x, y, w, h int) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// RectAround returns the rectangle of the given size whose Center is c.
func RectAround(c Point, s Size) Rect {
	return Rect{X: c.X - s.Width/2, Y: c.Y - s.Height/2, Width: s.Width, Height: s.Height}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Center returns the center point, rounded toward the top-left for odd sizes.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// MoveCenter returns r moved so that its Center is c.
func (r Rect) MoveCenter(c Point) Rect { return RectAround(c, r.Size()) }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.Width, r.Height)
}

// Intersects reports whether a and b share an overlap of positive area.
// Touching edges do not count.
func Intersects(a, b Rect) bool {
	return a.Left() < b.Right() && b.Left() < a.Right() &&
		a.Top() < b.Bottom() && b.Top() < a.Bottom()
}

// IntersectsAny reports whether r intersects any rectangle in placed.
func IntersectsAny(r Rect, placed []Rect) bool {
	for _, p := range placed {
		if Intersects(r, p) {
			return true
		}
	}
	return false
}

// DistanceFromCenter returns the Euclidean distance from r's center to c.
func DistanceFromCenter(r Rect, c Point) float64 {
	return r.Center().Dist(c)
}

// Bounds returns the smallest rectangle containing every rectangle in rects.
// It returns the zero Rect when rects is empty.
func Bounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	minX, minY := rects[0].Left(), rects[0].Top()
	maxX, maxY := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		minX = min(minX, r.Left())
		minY = min(minY, r.Top())
		maxX = max(maxX, r.Right())
		maxY = max(maxY, r.Bottom())
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// FarthestCorner returns the largest distance from c to any corner of r.
func FarthestCorner(r Rect, c Point) float64 {
	d := 0.0
	for _, p := range [...]Point{
		{r.Left(), r.Top()}, {r.Right(), r.Top()},
		{r.Left(), r.Bottom()}, {r.Right(), r.Bottom()},
	} {
		d = max(d, p.Dist(c))
	}
	return d
}
