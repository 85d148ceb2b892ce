package layouter

import (
	"math"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Stats summarizes how compact a session is.
type Stats struct {
	Count     int       `json:"count"`
	Bounds    geom.Rect `json:"bounds"`
	Area      int       `json:"area"`       // summed rectangle area
	MaxRadius float64   `json:"max_radius"` // farthest rectangle corner from the center
	Density   float64   `json:"density"`    // Area / (π·MaxRadius²)
}

// Stats computes compactness statistics for the placed rectangles.
func (l *Layouter) Stats() Stats {
	return Compute(l.center, l.placed)
}

// Compute returns Stats for rects laid out around center.
func Compute(center geom.Point, rects []geom.Rect) Stats {
	s := Stats{Count: len(rects), Bounds: geom.Bounds(rects)}
	for _, r := range rects {
		s.Area += r.Size().Area()
		s.MaxRadius = max(s.MaxRadius, geom.FarthestCorner(r, center))
	}
	if s.MaxRadius > 0 {
		s.Density = float64(s.Area) / (math.Pi * s.MaxRadius * s.MaxRadius)
	}
	return s
}
