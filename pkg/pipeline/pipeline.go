// Package pipeline provides the core chart pipeline for vegaline.
//
// This package implements the complete load → build → render pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read series data from a file or accept it in memory
//  2. Build: Assemble the layered chart specification
//  3. Render: Generate output in various formats (HTML, JSON, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DataPath: "metrics.csv",
//	    Formats:  []string{"html", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	// Load only
//	in, err := runner.Load(ctx, opts)
//
//	// Build with existing data
//	spec, err := runner.Build(ctx, in, opts)
//
//	// Render with an existing spec
//	artifacts, err := runner.Render(ctx, spec, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vegaline/pkg/cache"
	"github.com/matzehuels/vegaline/pkg/chart"
	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/renderer"
	"github.com/matzehuels/vegaline/pkg/series"
	"github.com/matzehuels/vegaline/pkg/surface"
	"github.com/matzehuels/vegaline/pkg/vega"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats. HTML and JSON
// are produced locally; SVG and PNG go through the render service.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// remoteFormats are the formats that need a render service.
var remoteFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. DataPath is read when Input is nil.
	DataPath string `json:"data_path,omitempty"`

	// Build options
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`
	XType  string `json:"x_type,omitempty"`
	YType  string `json:"y_type,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Actions    bool     `json:"actions,omitempty"` // Show the vega-embed action menu
	Title      string   `json:"title,omitempty"`   // HTML page title
	ServiceURL string   `json:"service_url,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Input    *series.Input     `json:"-"`
	Surface  surface.Surface   `json:"-"`
	Renderer renderer.Renderer `json:"-"` // Overrides the service client for remote formats
	Logger   *log.Logger       `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Input is the loaded series data.
	Input series.Input

	// DataHash is the content hash of the normalized input.
	DataHash string

	// Spec is the assembled chart specification.
	Spec vega.Spec

	// SpecHash is the content hash of the serialized spec.
	SpecHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount int
	PointCount  int
	LoadTime    time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SpecHit   bool // Whether the built spec came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, json, svg, png)", format)
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
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for data loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == nil && o.DataPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data path or in-memory input is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
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
	if o.Renderer == nil && o.ServiceURL == "" {
		for _, f := range o.Formats {
			if remoteFormats[f] {
				return errors.New(errors.ErrCodeInvalidConfig, "format %q requires a render service URL", f)
			}
		}
	}
	return nil
}

// NeedsService reports whether any requested format goes through the
// render service.
func (o *Options) NeedsService() bool {
	for _, f := range o.Formats {
		if remoteFormats[f] {
			return true
		}
	}
	return false
}

// ChartOptions returns the chart construction options.
func (o *Options) ChartOptions() chart.Options {
	return chart.Options{
		XLabel: o.XLabel,
		YLabel: o.YLabel,
		XType:  o.XType,
		YType:  o.YType,
		Width:  o.Width,
		Height: o.Height,
		Logger: o.Logger,
	}
}

// EmbedOptions returns the embed options for rendering.
func (o *Options) EmbedOptions() renderer.EmbedOptions {
	opts := renderer.DefaultEmbedOptions()
	opts.Actions = o.Actions
	return opts
}

// SpecKeyOpts returns cache key options for spec construction.
func (o *Options) SpecKeyOpts() cache.SpecKeyOpts {
	return cache.SpecKeyOpts{
		XLabel: o.XLabel,
		YLabel: o.YLabel,
		XType:  o.XType,
		YType:  o.YType,
		Width:  o.Width,
		Height: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	embed := o.EmbedOptions()
	return cache.ArtifactKeyOpts{
		Format:  format,
		Actions: embed.Actions,
		Mode:    embed.Mode,
	}
}
