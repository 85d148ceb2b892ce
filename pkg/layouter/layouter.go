package layouter

import (
	"fmt"
	"slices"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/spiral"
)

// Layouter is a circular cloud layout session.
type Layouter struct {
	center geom.Point
	cfg    config
	placed []geom.Rect
}

// Placement describes one committed PlaceNext call.
type Placement struct {
	Rect        geom.Rect // final position
	Provisional geom.Rect // first overlap-free spiral candidate
	Candidates  int       // spiral points examined
	Moves       int       // compaction steps applied
}

// New creates an empty session around center. It never fails; invalid
// options surface as errors from PlaceNext.
func New(center geom.Point, opts ...Option) *Layouter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Layouter{center: center, cfg: cfg}
}

// Replay builds a session by placing sizes in order. Placement is
// deterministic, so replaying the size history of a session reproduces it.
func Replay(center geom.Point, sizes []geom.Size, opts ...Option) (*Layouter, error) {
	l := New(center, opts...)
	for i, s := range sizes {
		if _, err := l.PlaceNext(s); err != nil {
			return nil, fmt.Errorf("replay size %d: %w", i, err)
		}
	}
	return l, nil
}

// Center returns the fixed cloud center.
func (l *Layouter) Center() geom.Point { return l.center }

// Compaction returns the configured compaction policy.
func (l *Layouter) Compaction() Compaction { return l.cfg.compaction }

// AngleStep returns the configured spiral angle step.
func (l *Layouter) AngleStep() float64 { return l.cfg.angleStep }

// RadiusStep returns the configured spiral radius step.
func (l *Layouter) RadiusStep() float64 { return l.cfg.radiusStep }

// Len returns the number of placed rectangles.
func (l *Layouter) Len() int { return len(l.placed) }

// Rectangles returns a copy of the placed rectangles in placement order.
func (l *Layouter) Rectangles() []geom.Rect { return slices.Clone(l.placed) }

// PlaceNext places a rectangle of the given size and returns it.
//
// The returned rectangle has exactly the requested size and does not
// intersect any earlier rectangle. The first rectangle of a session is
// centered on the cloud center. Invalid sizes or spiral steps fail with
// INVALID_ARGUMENT and an exhausted search fails with INTERNAL; in both
// cases the session is unchanged.
func (l *Layouter) PlaceNext(size geom.Size) (geom.Rect, error) {
	p, err := l.PlaceNextTraced(size)
	if err != nil {
		return geom.Rect{}, err
	}
	return p.Rect, nil
}

// PlaceNextTraced is PlaceNext with search details.
func (l *Layouter) PlaceNextTraced(size geom.Size) (Placement, error) {
	if err := errors.ValidateSize(size.Width, size.Height); err != nil {
		return Placement{}, err
	}
	sp, err := spiral.New(l.center, l.cfg.angleStep, l.cfg.radiusStep)
	if err != nil {
		return Placement{}, err
	}

	provisional, candidates, err := l.search(sp, size)
	if err != nil {
		return Placement{}, err
	}

	final, moves := provisional, 0
	switch l.cfg.compaction {
	case CompactRadial:
		final, moves = l.compactRadial(provisional)
	case CompactAxes:
		final, moves = l.compactAxes(provisional)
	}
	if geom.IntersectsAny(final, l.placed) {
		panic(fmt.Sprintf("layouter: compaction moved %v onto a placed rectangle", final))
	}

	l.placed = append(l.placed, final)
	return Placement{
		Rect:        final,
		Provisional: provisional,
		Candidates:  candidates,
		Moves:       moves,
	}, nil
}

// search walks the spiral until a candidate fits.
func (l *Layouter) search(sp *spiral.Spiral, size geom.Size) (geom.Rect, int, error) {
	for n := 1; n <= l.cfg.maxCandidates; n++ {
		r := geom.RectAround(sp.Next(), size)
		if !geom.IntersectsAny(r, l.placed) {
			return r, n, nil
		}
	}
	return geom.Rect{}, l.cfg.maxCandidates, errors.New(errors.ErrCodeInternal,
		"no free position for %v within %d candidates (radius %.1f)",
		size, l.cfg.maxCandidates, sp.Radius())
}
