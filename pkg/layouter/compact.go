package layouter

import (
	"math"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// compactRadial moves r along the line from its center to the cloud center.
func (l *Layouter) compactRadial(r geom.Rect) (geom.Rect, int) {
	start := r.Center()
	total := start.Dist(l.center)
	if total == 0 {
		return r, 0
	}
	ux := float64(l.center.X-start.X) / total
	uy := float64(l.center.Y-start.Y) / total

	cur, curDist, moves := r, total, 0
	for k := 1.0; ; k++ {
		var p geom.Point
		if k >= total {
			p = l.center
		} else {
			p = geom.Point{
				X: start.X + int(math.Round(ux*k)),
				Y: start.Y + int(math.Round(uy*k)),
			}
		}

		// Rounding can revisit a position or drift sideways; only strictly
		// closer positions count as progress.
		if d := p.Dist(l.center); d < curDist {
			next := cur.MoveCenter(p)
			if geom.IntersectsAny(next, l.placed) {
				break
			}
			cur, curDist = next, d
			moves++
		}
		if p == l.center {
			break
		}
	}
	return cur, moves
}

// compactAxes slides r toward the cloud center one unit at a time, one axis
// after the other.
func (l *Layouter) compactAxes(r geom.Rect) (geom.Rect, int) {
	moves := 0
	for {
		moved := false
		c := r.Center()
		if dx := sign(l.center.X - c.X); dx != 0 {
			if next := r.Translate(geom.Pt(dx, 0)); !geom.IntersectsAny(next, l.placed) {
				r, moved = next, true
				moves++
			}
		}
		c = r.Center()
		if dy := sign(l.center.Y - c.Y); dy != 0 {
			if next := r.Translate(geom.Pt(0, dy)); !geom.IntersectsAny(next, l.placed) {
				r, moved = next, true
				moves++
			}
		}
		if !moved {
			return r, moves
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
