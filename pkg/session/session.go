// Package session stores interactive layout sessions.
//
// A session is a layouter whose state outlives a single request: the API
// creates one, clients add rectangles one call at a time, and every call
// sees the rectangles placed before it. Because placement is deterministic,
// a session only persists its parameters and the placed tags; the layouter
// is rebuilt with [Session.Layouter], which replays the tag sizes.
//
// Backends implement [Store]:
//   - [MemoryStore]: in-process, for tests and single-instance servers
//   - [FileStore]: JSON files, for the CLI and simple deployments
//   - [RedisStore]: shared storage for multi-instance deployments
//
// Get reports a missing session as (nil, nil) and an expired one as a
// SESSION_EXPIRED error. An expired session is removed by the Get that
// reports it where the backend allows.
package session

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/spiral"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Params are the layout parameters fixed at session creation.
type Params struct {
	Center        geom.Point `json:"center"`
	AngleStep     float64    `json:"angle_step"`
	RadiusStep    float64    `json:"radius_step"`
	Compaction    string     `json:"compaction"`
	MaxCandidates int        `json:"max_candidates,omitempty"`
}

// SetDefaults fills zero steps and compaction with the layouter defaults.
func (p *Params) SetDefaults() {
	if p.AngleStep == 0 {
		p.AngleStep = spiral.DefaultAngleStep
	}
	if p.RadiusStep == 0 {
		p.RadiusStep = spiral.DefaultRadiusStep
	}
	if p.Compaction == "" {
		p.Compaction = layouter.CompactRadial.String()
	}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if err := errors.ValidateStep("angle step", p.AngleStep); err != nil {
		return err
	}
	if err := errors.ValidateStep("radius step", p.RadiusStep); err != nil {
		return err
	}
	if p.MaxCandidates < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "max candidates must not be negative, got %d", p.MaxCandidates)
	}
	_, err := layouter.ParseCompaction(p.Compaction)
	return err
}

// Options converts the parameters to layouter options.
func (p Params) Options() ([]layouter.Option, error) {
	c, err := layouter.ParseCompaction(p.Compaction)
	if err != nil {
		return nil, err
	}
	return []layouter.Option{
		layouter.WithAngleStep(p.AngleStep),
		layouter.WithRadiusStep(p.RadiusStep),
		layouter.WithCompaction(c),
		layouter.WithMaxCandidates(p.MaxCandidates),
	}, nil
}

// Session is a stored layout session.
type Session struct {
	ID        string      `json:"id"`
	Params    Params      `json:"params"`
	Tags      []cloud.Tag `json:"tags"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// New creates an empty session with a random UUID.
func New(p Params, ttl time.Duration) (*Session, error) {
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Params:    p,
		Tags:      []cloud.Tag{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func errExpired(id string) error {
	return errors.New(errors.ErrCodeSessionExpired, "session %q expired", id)
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session lifetime by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.UpdatedAt = time.Now()
	s.ExpiresAt = s.UpdatedAt.Add(ttl)
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Tags = slices.Clone(s.Tags)
	return &c
}

// Sizes returns the placed tag sizes in order.
func (s *Session) Sizes() []geom.Size {
	sizes := make([]geom.Size, len(s.Tags))
	for i, t := range s.Tags {
		sizes[i] = geom.Sz(t.Width, t.Height)
	}
	return sizes
}

// Layouter rebuilds the session's layouter by replaying its tags.
func (s *Session) Layouter() (*layouter.Layouter, error) {
	opts, err := s.Params.Options()
	if err != nil {
		return nil, err
	}
	l, err := layouter.Replay(s.Params.Center, s.Sizes(), opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rebuild session %s", s.ID)
	}
	return l, nil
}

// Place places a tag with l, which must be the session's current
// layouter, and records it. On error neither l nor s change.
func (s *Session) Place(l *layouter.Layouter, size geom.Size, label string) (cloud.Tag, error) {
	if err := errors.ValidateLabel(label); err != nil {
		return cloud.Tag{}, err
	}
	r, err := l.PlaceNext(size)
	if err != nil {
		return cloud.Tag{}, err
	}
	t := cloud.Tag{Label: label, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	s.Tags = append(s.Tags, t)
	s.UpdatedAt = time.Now()
	return t, nil
}

// Layout exports the session as a cloud layout.
func (s *Session) Layout() cloud.Layout {
	rects := make([]geom.Rect, len(s.Tags))
	labels := make([]string, len(s.Tags))
	for i, t := range s.Tags {
		rects[i] = t.Rect()
		labels[i] = t.Label
	}
	out := cloud.FromRects(s.Params.Center, rects, labels)
	out.AngleStep = s.Params.AngleStep
	out.RadiusStep = s.Params.RadiusStep
	out.Compaction = s.Params.Compaction
	return out
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist and a
	// SESSION_EXPIRED error if it has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
