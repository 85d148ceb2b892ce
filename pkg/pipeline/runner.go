package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// Cache entry kinds reported to cache hooks.
const (
	keyTypeTags     = "tags"
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	list, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Tags = list
	result.TagsHash = TagsHash(list)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.TagCount = len(list)
	result.CacheInfo.ParseHit = parseHit

	opts.Logger.Info("parsed tags",
		"tags", len(list),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, list, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Density = layout.Stats.Density
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"tags", len(layout.Tags),
		"density", fmt.Sprintf("%.3f", layout.Stats.Density),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses the input with caching and returns cache hit info.
// Pre-parsed Tags bypass the cache.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (tags.List, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	if len(opts.Input) == 0 {
		list, err := Parse(ctx, opts)
		return list, false, err
	}

	cacheKey := r.Keyer.TagsKey(opts.InputFormat, opts.Input)
	if !opts.Refresh {
		if data, ok := r.get(ctx, cacheKey, keyTypeTags); ok {
			var list tags.List
			if err := json.Unmarshal(data, &list); err == nil && list.Validate() == nil {
				return list, true, nil
			}
		}
	}

	list, err := Parse(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(list); err == nil {
		r.set(ctx, cacheKey, keyTypeTags, data, cache.TTLTags)
	}
	return list, false, nil
}

// GenerateLayoutWithCacheInfo places tags with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, list tags.List, opts Options) (cloud.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return cloud.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(TagsHash(list), opts.LayoutKeyOpts())
	if !opts.Refresh {
		if data, ok := r.get(ctx, cacheKey, keyTypeLayout); ok {
			if cached, err := cloud.Unmarshal(data); err == nil {
				return cached, true, nil
			}
			// Unreadable entries fall through to recompute.
		}
	}

	layout, err := GenerateLayout(ctx, list, opts)
	if err != nil {
		return cloud.Layout{}, false, err
	}
	if data, err := cloud.Marshal(layout); err == nil {
		r.set(ctx, cacheKey, keyTypeLayout, data, cache.TTLLayout)
	}
	return layout, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout cloud.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := cloud.Marshal(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, ok := r.get(ctx, key, keyTypeArtifact); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, layout, renderOpts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, key, keyTypeArtifact, data, cache.TTLArtifact)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// TagsHash returns the content hash of a tag list.
func TagsHash(list tags.List) string {
	data, _ := json.Marshal(list)
	return cache.Hash(data)
}

// get reads a cache entry and reports the outcome to the cache hooks.
// Backend errors count as misses.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", keyType, "err", err)
	}
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
