package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vegaline/pkg/config"
	vio "github.com/matzehuels/vegaline/pkg/io"
	"github.com/matzehuels/vegaline/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// These options control chart construction, output formats, and caching.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "html", "json", "svg", "png"
	xLabel     string   // x-axis title
	yLabel     string   // y-axis title
	xType      string   // x-axis type tag (quantitative, temporal, ...)
	yType      string   // y-axis type tag
	width      int      // chart width in pixels (0 = surface default)
	height     int      // chart height in pixels (0 = surface default)
	title      string   // HTML page title
	actions    bool     // show the vega-embed action menu
	serviceURL string   // render service base URL for svg/png
	refresh    bool     // bypass the cache
	noCache    bool     // disable caching entirely
}

// newRenderCmd creates the render command for generating chart artifacts.
// It reads series data from a JSON or CSV file and writes one file per
// requested format next to the output path.
//
// Default settings:
//   - format: html (self-contained interactive page)
//   - width/height: the default draw surface (800x600)
//   - axis labels: "Index" and "Value"
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [data-file]",
		Short: "Render series data to chart artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), json, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.xLabel, "x-label", "", "x-axis title")
	cmd.Flags().StringVar(&opts.yLabel, "y-label", "", "y-axis title")
	cmd.Flags().StringVar(&opts.xType, "x-type", "", "x-axis type tag (quantitative, temporal, ordinal, nominal)")
	cmd.Flags().StringVar(&opts.yType, "y-type", "", "y-axis type tag")
	cmd.Flags().IntVar(&opts.width, "width", 0, "chart width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "chart height in pixels")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title")
	cmd.Flags().BoolVar(&opts.actions, "actions", false, "show the vega-embed action menu")
	cmd.Flags().StringVar(&opts.serviceURL, "service-url", "", "render service base URL for svg/png")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, the slice is empty and the config or pipeline default applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// Format extensions on the output path are handled by the artifact writer.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return output
}

// pipelineOptions merges flags over config over defaults into the
// pipeline options for a run.
func (o *renderOpts) pipelineOptions(input string, cfg config.Config) pipeline.Options {
	opts := pipeline.Options{
		DataPath:   input,
		XLabel:     firstNonEmpty(o.xLabel, cfg.Chart.XLabel),
		YLabel:     firstNonEmpty(o.yLabel, cfg.Chart.YLabel),
		XType:      firstNonEmpty(o.xType, cfg.Chart.XType),
		YType:      firstNonEmpty(o.yType, cfg.Chart.YType),
		Width:      firstNonZero(o.width, cfg.Chart.Width),
		Height:     firstNonZero(o.height, cfg.Chart.Height),
		Formats:    o.formats,
		Actions:    o.actions,
		Title:      o.title,
		ServiceURL: firstNonEmpty(o.serviceURL, cfg.Render.ServiceURL),
		Refresh:    o.refresh,
	}
	if len(opts.Formats) == 0 {
		opts.Formats = cfg.Render.Formats
	}
	return opts
}

// runRender loads the data, runs the pipeline, and writes one artifact
// file per format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := buildCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	pipeOpts := opts.pipelineOptions(input, cfg)

	spinner := newSpinnerWithContext(ctx, "Building chart")
	spinner.Start()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	paths, err := vio.WriteArtifacts(result.Artifacts, basePath(opts.output, input))
	if err != nil {
		return err
	}

	printSuccess("Chart ready")
	printStats(result.Stats.SeriesCount, result.Stats.PointCount, result.CacheInfo.RenderHit)
	for _, path := range paths {
		printFile(path)
	}
	printNextStep("Preview in the browser", "vegaline serve "+input)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
