package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/palette"
)

// renderCommand creates the render command. It accepts either a tag list,
// which runs the whole pipeline, or a layout written by 'layout'.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr  string
		output      string
		inputFormat string
		noCache     bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [tags|layout.json]",
		Short: "Render a tag cloud to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a tag cloud to SVG, PNG, PDF, JSON or DOT.

Given a tag list, render places the tags and draws them in one go. Given a
*.layout.json file from 'layout', it only draws; placement flags are ignored.

Palettes: ` + fmt.Sprint(palette.Names()) + `, or a "#rrggbb-#rrggbb" gradient.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				opts.Formats = parseFormats(formatsStr)
			}
			c.Config.Apply(&opts, cmd.Flags().Changed)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], inputFormat, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "input format: text, json, toml (default: from extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.Palette, "palette", "p", palette.Default, "fill palette name or #rrggbb-#rrggbb gradient")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color as #rrggbb (default: none for SVG, white otherwise)")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "draw rectangles without their labels")
	cmd.Flags().IntVar(&opts.Margin, "margin", pipeline.DefaultMargin, "blank border around the cloud (negative for none)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG pixels per layout unit")
	layoutFlags(cmd, &opts)

	return cmd
}

// runRender renders input to every requested format and writes the files.
func (c *CLI) runRender(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	var (
		artifacts map[string][]byte
		stats     layouter.Stats
		cacheHit  bool
	)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	if isLayoutFile(input) {
		layout, err := cloud.ReadFile(input)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, layout, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		stats = layout.Stats
	} else {
		data, format, err := readInput(input, inputFormat)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		opts.Input, opts.InputFormat = data, format
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		artifacts = result.Artifacts
		stats = result.Layout.Stats
		cacheHit = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     stats,
		cacheHit:  cacheHit,
	})
}

// artifactWriteParams describes rendered outputs to write to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     layouter.Stats
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to
// output as given; several formats share output as base path.
func writeArtifacts(p artifactWriteParams) error {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := artifactPath(p.output, p.input, format, len(p.formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.stats, p.cacheHit)
	return nil
}

// artifactPath returns where the artifact for format is written.
func artifactPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	base := basePath(output, input)
	if input == "-" && output == "" {
		base = "cloud"
	}
	return base + "." + format
}
