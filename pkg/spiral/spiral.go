// Package spiral generates candidate positions on an Archimedean spiral.
//
// At step i the spiral sits at angle i*angleStep and radius i*radiusStep
// around its center. Step 0 is the center itself, so the first candidate a
// [Spiral] yields is always the point it was rooted at. Points are rounded to
// the integer grid used by [geom].
//
//	s, err := spiral.New(geom.Pt(0, 0), spiral.DefaultAngleStep, spiral.DefaultRadiusStep)
//	if err != nil {
//	    return err
//	}
//	for {
//	    p := s.Next()
//	    // test p
//	}
//
// A Spiral never terminates and cannot be rewound; construct a new one to
// replay the sequence.
//
// [geom]: github.com/matzehuels/tagcloud/pkg/geom
package spiral

import (
	"math"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
)

const (
	// DefaultAngleStep is the angle advanced per candidate, in radians.
	DefaultAngleStep = 0.1

	// DefaultRadiusStep is the radius advanced per candidate.
	// Successive turns are 2π*DefaultRadiusStep/DefaultAngleStep ≈ 3.1 units apart.
	DefaultRadiusStep = 0.05
)

// Spiral yields points on an outward Archimedean spiral.
// It is not safe for concurrent use.
type Spiral struct {
	center     geom.Point
	angleStep  float64
	radiusStep float64
	step       int
}

// New creates a spiral rooted at center. Both steps must be finite and
// strictly positive, otherwise an INVALID_ARGUMENT error is returned.
func New(center geom.Point, angleStep, radiusStep float64) (*Spiral, error) {
	if err := errors.ValidateStep("angle step", angleStep); err != nil {
		return nil, err
	}
	if err := errors.ValidateStep("radius step", radiusStep); err != nil {
		return nil, err
	}
	return &Spiral{center: center, angleStep: angleStep, radiusStep: radiusStep}, nil
}

// Next returns the current point and advances the spiral by one step.
func (s *Spiral) Next() geom.Point {
	angle, radius := s.Angle(), s.Radius()
	s.step++
	return geom.Point{
		X: s.center.X + int(math.Round(radius*math.Cos(angle))),
		Y: s.center.Y + int(math.Round(radius*math.Sin(angle))),
	}
}

// Step returns the number of points produced so far.
func (s *Spiral) Step() int { return s.step }

// Angle returns the angle of the next point, in radians.
func (s *Spiral) Angle() float64 { return float64(s.step) * s.angleStep }

// Radius returns the radius of the next point.
func (s *Spiral) Radius() float64 { return float64(s.step) * s.radiusStep }

// Center returns the point the spiral is rooted at.
func (s *Spiral) Center() geom.Point { return s.center }
