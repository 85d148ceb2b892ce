package cloud

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
)

// Layout is a placed tag cloud.
type Layout struct {
	Center     geom.Point     `json:"center" bson:"center"`
	AngleStep  float64        `json:"angle_step" bson:"angle_step"`
	RadiusStep float64        `json:"radius_step" bson:"radius_step"`
	Compaction string         `json:"compaction" bson:"compaction"`
	Bounds     geom.Rect      `json:"bounds" bson:"bounds"`
	Tags       []Tag          `json:"tags" bson:"tags"`
	Stats      layouter.Stats `json:"stats" bson:"stats"`
}

// Tag is a placed rectangle with its label.
type Tag struct {
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	X      int    `json:"x" bson:"x"`
	Y      int    `json:"y" bson:"y"`
	Width  int    `json:"width" bson:"width"`
	Height int    `json:"height" bson:"height"`
}

// Rect returns the tag rectangle.
func (t Tag) Rect() geom.Rect { return geom.NewRect(t.X, t.Y, t.Width, t.Height) }

// FromLayouter exports the session state of l. labels are matched to
// rectangles by index; missing labels are left empty.
func FromLayouter(l *layouter.Layouter, labels []string) Layout {
	out := FromRects(l.Center(), l.Rectangles(), labels)
	out.AngleStep = l.AngleStep()
	out.RadiusStep = l.RadiusStep()
	out.Compaction = l.Compaction().String()
	return out
}

// FromRects builds a Layout from rectangles placed around center.
func FromRects(center geom.Point, rects []geom.Rect, labels []string) Layout {
	tags := make([]Tag, len(rects))
	for i, r := range rects {
		tags[i] = Tag{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		if i < len(labels) {
			tags[i].Label = labels[i]
		}
	}
	return Layout{
		Center: center,
		Bounds: geom.Bounds(rects),
		Tags:   tags,
		Stats:  layouter.Compute(center, rects),
	}
}

// Rects returns the tag rectangles in placement order.
func (l Layout) Rects() []geom.Rect {
	rects := make([]geom.Rect, len(l.Tags))
	for i, t := range l.Tags {
		rects[i] = t.Rect()
	}
	return rects
}

// Sizes returns the tag sizes in placement order.
func (l Layout) Sizes() []geom.Size {
	sizes := make([]geom.Size, len(l.Tags))
	for i, t := range l.Tags {
		sizes[i] = geom.Sz(t.Width, t.Height)
	}
	return sizes
}

// Labels returns the tag labels in placement order.
func (l Layout) Labels() []string {
	labels := make([]string, len(l.Tags))
	for i, t := range l.Tags {
		labels[i] = t.Label
	}
	return labels
}

// Frame returns the bounds grown by margin on every side. The frame of an
// empty layout is a square of side 2*margin around the center.
func (l Layout) Frame(margin int) geom.Rect {
	b := l.Bounds
	if len(l.Tags) == 0 {
		b = geom.NewRect(l.Center.X, l.Center.Y, 0, 0)
	}
	return geom.NewRect(b.X-margin, b.Y-margin, b.Width+2*margin, b.Height+2*margin)
}

// Options returns the layouter options the layout was built with.
func (l Layout) Options() ([]layouter.Option, error) {
	c, err := layouter.ParseCompaction(l.Compaction)
	if err != nil {
		return nil, err
	}
	opts := []layouter.Option{layouter.WithCompaction(c)}
	if l.AngleStep != 0 {
		opts = append(opts, layouter.WithAngleStep(l.AngleStep))
	}
	if l.RadiusStep != 0 {
		opts = append(opts, layouter.WithRadiusStep(l.RadiusStep))
	}
	return opts, nil
}

// Replay rebuilds the session that produced the layout.
func (l Layout) Replay() (*layouter.Layouter, error) {
	opts, err := l.Options()
	if err != nil {
		return nil, err
	}
	return layouter.Replay(l.Center, l.Sizes(), opts...)
}

// Validate checks that every tag has a positive size and that no two tags
// overlap. Layouts read from untrusted sources are validated before
// rendering.
func (l Layout) Validate() error {
	for i, t := range l.Tags {
		if err := errors.ValidateSize(t.Width, t.Height); err != nil {
			return fmt.Errorf("tag %d: %w", i+1, err)
		}
		if err := errors.ValidateLabel(t.Label); err != nil {
			return fmt.Errorf("tag %d: %w", i+1, err)
		}
	}
	rects := l.Rects()
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if geom.Intersects(rects[i], rects[j]) {
				return errors.New(errors.ErrCodeInvalidInput,
					"tags %d %v and %d %v overlap", i+1, rects[i], j+1, rects[j])
			}
		}
	}
	return nil
}

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	if l.Tags == nil {
		l.Tags = []Tag{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes and validates a Layout. Bounds and stats are
// recomputed from the tags.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	if l.Compaction == "" {
		l.Compaction = layouter.CompactRadial.String()
	}
	rects := l.Rects()
	l.Bounds = geom.Bounds(rects)
	l.Stats = layouter.Compute(l.Center, rects)
	return l, nil
}

// Write writes l as JSON to w.
func Write(w io.Writer, l Layout) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file not found: %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
