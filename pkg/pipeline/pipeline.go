// Package pipeline provides the parse → layout → render pipeline of tagcloud.
//
// The CLI and the HTTP API both run clouds through this package so that
// defaults, validation, caching and hooks behave the same everywhere.
//
// # Stages
//
//  1. Parse: read a tag list (JSON, TOML or text) with [tags.Parse]
//  2. Layout: place every tag with a fresh [layouter.Layouter]
//  3. Render: produce artifacts (SVG, PNG, PDF, JSON, DOT) with [sink.Render]
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:       data,
//	    InputFormat: "text",
//	    Formats:     []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/render/palette"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
	"github.com/matzehuels/tagcloud/pkg/spiral"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultAngleStep is the default spiral angle increment in radians.
	DefaultAngleStep = spiral.DefaultAngleStep

	// DefaultRadiusStep is the default spiral radius increment per step.
	DefaultRadiusStep = spiral.DefaultRadiusStep

	// DefaultScale is the default PNG pixels per layout unit.
	DefaultScale = sink.DefaultScale

	// DefaultMargin is the default blank border around rendered clouds.
	DefaultMargin = sink.DefaultMargin
)

// DefaultCompaction is the default compaction policy.
var DefaultCompaction = layouter.CompactRadial.String()

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = sink.FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Either Input (raw bytes in InputFormat) or Tags is set.
	Input       []byte    `json:"-"`
	InputFormat string    `json:"input_format,omitempty"`
	Tags        tags.List `json:"tags,omitempty"`
	Refresh     bool      `json:"refresh,omitempty"` // Bypass cached results

	// Layout options
	Center        geom.Point `json:"center"`
	AngleStep     float64    `json:"angle_step,omitempty"`
	RadiusStep    float64    `json:"radius_step,omitempty"`
	Compaction    string     `json:"compaction,omitempty"`
	MaxCandidates int        `json:"max_candidates,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Palette    string   `json:"palette,omitempty"`
	Background string   `json:"background,omitempty"`
	NoLabels   bool     `json:"no_labels,omitempty"`
	Margin     int      `json:"margin,omitempty"` // 0 selects DefaultMargin, negative means none
	Scale      float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tags is the parsed tag list.
	Tags tags.List

	// TagsHash is the content hash of the tag list.
	TagsHash string

	// Layout is the placed cloud.
	Layout cloud.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TagCount   int
	Density    float64
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the tag list came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !sink.ValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that there is something to parse.
func (o *Options) ValidateForParse() error {
	if len(o.Input) == 0 && len(o.Tags) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input or tags is required")
	}
	if o.InputFormat == "" {
		o.InputFormat = tags.FormatText
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.AngleStep == 0 {
		o.AngleStep = DefaultAngleStep
	}
	if o.RadiusStep == 0 {
		o.RadiusStep = DefaultRadiusStep
	}
	if o.Compaction == "" {
		o.Compaction = DefaultCompaction
	}
	if o.MaxCandidates == 0 {
		o.MaxCandidates = layouter.DefaultMaxCandidates
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateStep("angle step", o.AngleStep); err != nil {
		return err
	}
	if err := errors.ValidateStep("radius step", o.RadiusStep); err != nil {
		return err
	}
	if o.MaxCandidates < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "max candidates must not be negative, got %d", o.MaxCandidates)
	}
	_, err := layouter.ParseCompaction(o.Compaction)
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Palette == "" {
		o.Palette = palette.Default
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := palette.New(o.Palette); err != nil {
		return err
	}
	if o.Background != "" {
		if _, err := palette.Parse(o.Background); err != nil {
			return err
		}
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "scale must be positive, got %v", o.Scale)
	}
	return nil
}

// LayoutOptions returns the layouter options. Call after ValidateForLayout.
func (o *Options) LayoutOptions() []layouter.Option {
	c, _ := layouter.ParseCompaction(o.Compaction)
	return []layouter.Option{
		layouter.WithAngleStep(o.AngleStep),
		layouter.WithRadiusStep(o.RadiusStep),
		layouter.WithCompaction(c),
		layouter.WithMaxCandidates(o.MaxCandidates),
	}
}

// RenderOptions returns the sink options. Call after ValidateForRender.
func (o *Options) RenderOptions() []sink.Option {
	p, _ := palette.New(o.Palette)
	return []sink.Option{
		sink.WithPalette(p),
		sink.WithBackground(o.Background),
		sink.WithLabels(!o.NoLabels),
		sink.WithMargin(max(0, o.Margin)),
		sink.WithScale(o.Scale),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		CenterX:       o.Center.X,
		CenterY:       o.Center.Y,
		AngleStep:     o.AngleStep,
		RadiusStep:    o.RadiusStep,
		Compaction:    o.Compaction,
		MaxCandidates: o.MaxCandidates,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Palette:    o.Palette,
		Background: o.Background,
		Labels:     !o.NoLabels,
		Margin:     o.Margin,
		Scale:      o.Scale,
	}
}
