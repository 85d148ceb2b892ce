package layouter

import (
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/spiral"
)

// DefaultMaxCandidates is the per-call cap on examined spiral points.
const DefaultMaxCandidates = 2_000_000

// Compaction selects how a provisional placement is pulled toward the center.
type Compaction int

const (
	// CompactRadial walks the straight line from the rectangle's center to the
	// cloud center in unit steps, keeping each rounded position that is
	// strictly closer and overlap-free, and stops at the first blocked step.
	CompactRadial Compaction = iota

	// CompactAxes repeatedly moves the rectangle one unit toward the center
	// along X, then along Y, until neither move is possible. It slides
	// rectangles along the edges of their neighbours.
	CompactAxes

	// CompactNone keeps the provisional spiral placement.
	CompactNone
)

var compactionNames = map[Compaction]string{
	CompactRadial: "radial",
	CompactAxes:   "axes",
	CompactNone:   "none",
}

func (c Compaction) String() string {
	if s, ok := compactionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Compaction(%d)", int(c))
}

// ParseCompaction converts a policy name ("radial", "axes", "none") to a
// Compaction. An empty name selects CompactRadial.
func ParseCompaction(s string) (Compaction, error) {
	if s == "" {
		return CompactRadial, nil
	}
	for c, name := range compactionNames {
		if name == s {
			return c, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidCompaction,
		"invalid compaction: %q (must be one of: radial, axes, none)", s)
}

// Option configures a Layouter.
type Option func(*config)

type config struct {
	angleStep     float64
	radiusStep    float64
	maxCandidates int
	compaction    Compaction
}

func defaultConfig() config {
	return config{
		angleStep:     spiral.DefaultAngleStep,
		radiusStep:    spiral.DefaultRadiusStep,
		maxCandidates: DefaultMaxCandidates,
		compaction:    CompactRadial,
	}
}

// WithAngleStep sets the spiral angle advanced per candidate, in radians.
// Non-positive values make every PlaceNext call fail with INVALID_ARGUMENT.
func WithAngleStep(step float64) Option {
	return func(c *config) { c.angleStep = step }
}

// WithRadiusStep sets the spiral radius advanced per candidate.
// Non-positive values make every PlaceNext call fail with INVALID_ARGUMENT.
func WithRadiusStep(step float64) Option {
	return func(c *config) { c.radiusStep = step }
}

// WithMaxCandidates caps the spiral points examined per call. Values <= 0
// restore DefaultMaxCandidates.
func WithMaxCandidates(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxCandidates
		}
		c.maxCandidates = n
	}
}

// WithCompaction selects the compaction policy (default CompactRadial).
func WithCompaction(p Compaction) Option {
	return func(c *config) { c.compaction = p }
}
