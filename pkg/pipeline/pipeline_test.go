package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

const sampleInput = `# width height label
120 40 golang
80 30 rust
60 24 zig
140 44 kubernetes
50 20 nix
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: []byte(sampleInput)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.InputFormat != tags.FormatText {
		t.Errorf("InputFormat = %q, want %q", opts.InputFormat, tags.FormatText)
	}
	if opts.AngleStep != DefaultAngleStep {
		t.Errorf("AngleStep = %v, want %v", opts.AngleStep, DefaultAngleStep)
	}
	if opts.RadiusStep != DefaultRadiusStep {
		t.Errorf("RadiusStep = %v, want %v", opts.RadiusStep, DefaultRadiusStep)
	}
	if opts.Compaction != "radial" {
		t.Errorf("Compaction = %q, want radial", opts.Compaction)
	}
	if opts.MaxCandidates != layouter.DefaultMaxCandidates {
		t.Errorf("MaxCandidates = %d, want %d", opts.MaxCandidates, layouter.DefaultMaxCandidates)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Margin != DefaultMargin {
		t.Errorf("Margin = %d, want %d", opts.Margin, DefaultMargin)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"input", Options{Input: []byte("10 10")}, false},
		{"tags", Options{Tags: tags.List{{Width: 10, Height: 10}}}, false},
		{"neither", Options{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForParse()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForParse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"negative angle", Options{AngleStep: -0.1}, errors.ErrCodeInvalidArgument},
		{"negative radius", Options{RadiusStep: -1}, errors.ErrCodeInvalidArgument},
		{"negative cap", Options{MaxCandidates: -5}, errors.ErrCodeInvalidArgument},
		{"bad compaction", Options{Compaction: "sideways"}, errors.ErrCodeInvalidCompaction},
		{"axes", Options{Compaction: "axes"}, ""},
		{"none", Options{Compaction: "none"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"bad palette", Options{Palette: "neon"}, true},
		{"gradient palette", Options{Palette: "#000000-#ffffff"}, false},
		{"bad background", Options{Background: "blue-ish"}, true},
		{"hex background", Options{Background: "#fafafa"}, false},
		{"negative scale", Options{Scale: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForRender() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: []byte(sampleInput), Formats: []string{"svg", "json"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First call failed: %v", err)
	}
	first := opts

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second call failed: %v", err)
	}

	if opts.AngleStep != first.AngleStep || opts.Compaction != first.Compaction || len(opts.Formats) != len(first.Formats) {
		t.Error("ValidateAndSetDefaults should be idempotent")
	}
}

func TestSetLayoutDefaultsKeepsExplicitValues(t *testing.T) {
	opts := Options{AngleStep: 0.3, RadiusStep: 0.2, Compaction: "axes", MaxCandidates: 10}
	opts.SetLayoutDefaults()

	if opts.AngleStep != 0.3 || opts.RadiusStep != 0.2 || opts.Compaction != "axes" || opts.MaxCandidates != 10 {
		t.Errorf("explicit values overwritten: %+v", opts)
	}
}

func TestSetRenderDefaultsNegativeMargin(t *testing.T) {
	opts := Options{Margin: -1}
	opts.SetRenderDefaults()

	if opts.Margin != -1 {
		t.Errorf("Margin = %d, want -1 kept", opts.Margin)
	}
}

func TestParse(t *testing.T) {
	opts := Options{Input: []byte(sampleInput)}
	if err := opts.ValidateForParse(); err != nil {
		t.Fatal(err)
	}

	list, err := Parse(context.Background(), opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("got %d tags, want 5", len(list))
	}
	if list[3].Label != "kubernetes" || list[3].Width != 140 {
		t.Errorf("tag 4 = %+v", list[3])
	}
}

func TestParseRejectsInvalidTags(t *testing.T) {
	opts := Options{Tags: tags.List{{Width: 0, Height: 10}}}
	if _, err := Parse(context.Background(), opts); !errors.IsInvalid(err) {
		t.Errorf("Parse() error = %v, want invalid", err)
	}
}

func TestGenerateLayout(t *testing.T) {
	opts := Options{Center: geom.Pt(400, 300)}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	list, err := tags.Parse([]byte(sampleInput), tags.FormatText)
	if err != nil {
		t.Fatal(err)
	}

	l, err := GenerateLayout(context.Background(), list, opts)
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	if len(l.Tags) != len(list) {
		t.Fatalf("got %d tags, want %d", len(l.Tags), len(list))
	}
	if l.Tags[0].Rect() != geom.RectAround(geom.Pt(400, 300), geom.Sz(120, 40)) {
		t.Errorf("first tag %+v not centered", l.Tags[0])
	}
	for i, tag := range l.Tags {
		if tag.Label != list[i].Label {
			t.Errorf("tag %d label = %q, want %q", i, tag.Label, list[i].Label)
		}
	}
	if err := l.Validate(); err != nil {
		t.Errorf("layout invalid: %v", err)
	}
}

func TestGenerateLayoutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{}
	_ = opts.ValidateForLayout()
	if _, err := GenerateLayout(ctx, tags.List{{Width: 10, Height: 10}}, opts); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRenderAllFormats(t *testing.T) {
	opts := Options{Formats: []string{"svg", "png", "pdf", "json", "dot"}}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	l, err := GenerateLayout(context.Background(), tags.List{
		{Label: "alpha", Width: 60, Height: 20},
		{Label: "beta", Width: 40, Height: 16},
	}, opts)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := Render(context.Background(), l, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, f := range opts.Formats {
		if len(artifacts[f]) == 0 {
			t.Errorf("%s artifact is empty", f)
		}
	}
	if !bytes.HasPrefix(artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
	if !bytes.HasPrefix(artifacts["pdf"], []byte("%PDF")) {
		t.Error("pdf artifact lacks PDF header")
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Input: []byte(sampleInput), Formats: []string{"svg", "json"}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss everywhere: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ParseHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit everywhere: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}
	if first.TagsHash != second.TagsHash {
		t.Error("tags hash changed between runs")
	}

	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.ParseHit || third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run should bypass the cache: %+v", third.CacheInfo)
	}
}

func TestRunnerLayoutKeyDependsOnOptions(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)

	base := Options{Input: []byte(sampleInput)}
	if _, err := runner.Execute(context.Background(), base); err != nil {
		t.Fatal(err)
	}

	other := Options{Input: []byte(sampleInput), Compaction: "axes"}
	res, err := runner.Execute(context.Background(), other)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.ParseHit {
		t.Error("tags should still come from cache")
	}
	if res.CacheInfo.LayoutHit {
		t.Error("different compaction must not reuse the cached layout")
	}
}

func TestRunnerNullCache(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	opts := Options{Tags: tags.List{{Label: "solo", Width: 30, Height: 12}}}
	for range 2 {
		res, err := runner.Execute(context.Background(), opts)
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
			t.Errorf("null cache produced a hit: %+v", res.CacheInfo)
		}
		if res.Stats.TagCount != 1 {
			t.Errorf("TagCount = %d, want 1", res.Stats.TagCount)
		}
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{Input: []byte("1 1"), Formats: []string{"bmp"}})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}
