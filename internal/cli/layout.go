package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// layoutFlags registers the placement flags shared by layout, render and preview.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.Center.X, "center-x", 0, "x coordinate of the cloud center")
	cmd.Flags().IntVar(&opts.Center.Y, "center-y", 0, "y coordinate of the cloud center")
	cmd.Flags().Float64Var(&opts.AngleStep, "angle-step", pipeline.DefaultAngleStep, "spiral angle increment in radians")
	cmd.Flags().Float64Var(&opts.RadiusStep, "radius-step", pipeline.DefaultRadiusStep, "spiral radius increment per step")
	cmd.Flags().StringVar(&opts.Compaction, "compaction", pipeline.DefaultCompaction, "compaction policy: radial (default), axes, none")
	cmd.Flags().IntVar(&opts.MaxCandidates, "max-candidates", 0, "spiral candidates tried per tag before giving up (0 = default)")
}

// readInput reads a tag list file, or stdin for "-".
func readInput(path string, format string) ([]byte, string, error) {
	if format == "" {
		format = tags.FormatFor(path)
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, format, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, format, nil
}

// layoutCommand creates the layout command for computing a cloud layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
		noCache     bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [tags]",
		Short: "Place a tag list and write the layout as JSON",
		Long: `Place a tag list and write the layout as JSON.

The input lists one tag per line as "width height [label]" (text), or uses
JSON or TOML when the file extension says so. Tags are placed in file order.
The output is a layout.json file that 'render' turns into SVG, PNG, PDF or DOT.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Config.Apply(&opts, cmd.Flags().Changed)
			return c.runLayout(cmd.Context(), args[0], inputFormat, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "input format: text, json, toml (default: from extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayout parses the input, places every tag, and writes the layout.
func (c *CLI) runLayout(ctx context.Context, input, inputFormat string, opts pipeline.Options, output string, noCache bool) error {
	data, format, err := readInput(input, inputFormat)
	if err != nil {
		return err
	}
	opts.Input, opts.InputFormat = data, format
	opts.Logger = c.Logger
	if err := opts.ValidateForParse(); err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	list, _, err := runner.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d tags...", len(list)))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, list, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Placed %d tags", len(layout.Tags)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if outputPath == "-" {
		return cloud.Write(os.Stdout, layout)
	}
	if err := cloud.WriteFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(layout.Stats, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// layoutPath returns the default layout file for an input file.
func layoutPath(input string) string {
	if input == "-" {
		return "cloud" + layoutSuffix
	}
	return basePath("", input) + layoutSuffix
}
