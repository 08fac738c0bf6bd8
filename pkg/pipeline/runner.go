package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vegaline/pkg/cache"
	"github.com/matzehuels/vegaline/pkg/chart"
	"github.com/matzehuels/vegaline/pkg/errors"
	vio "github.com/matzehuels/vegaline/pkg/io"
	"github.com/matzehuels/vegaline/pkg/observability"
	"github.com/matzehuels/vegaline/pkg/series"
	"github.com/matzehuels/vegaline/pkg/vega"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
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

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	in, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Input = in
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SeriesCount = in.Values.SeriesCount()
	result.Stats.PointCount = in.Values.PointCount()

	// Content hash of the normalized input, used for cache keys and API
	// responses.
	if data, err := json.Marshal(in); err == nil {
		result.DataHash = cache.Hash(data)
	}

	r.Logger.Info("loaded data",
		"series", result.Stats.SeriesCount,
		"points", result.Stats.PointCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	spec, specHit, err := r.BuildWithCacheInfo(ctx, in, result.DataHash, opts)
	if err != nil {
		return nil, err
	}
	result.Spec = spec
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo.SpecHit = specHit

	if specJSON, err := spec.Marshal(); err == nil {
		result.SpecHash = cache.Hash(specJSON)
	}

	r.Logger.Info("built spec",
		"layers", len(spec.Layer),
		"cached", specHit,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, spec, result.SpecHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the series data named by the options. In-memory input
// takes precedence over the data path.
func (r *Runner) Load(ctx context.Context, opts Options) (series.Input, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return series.Input{}, err
	}

	if opts.Input != nil {
		if err := opts.Input.Values.Validate(); err != nil {
			return series.Input{}, err
		}
		return *opts.Input, nil
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.DataPath)
	in, err := vio.ImportFile(opts.DataPath)
	observability.Pipeline().OnLoadComplete(ctx, opts.DataPath, in.Values.PointCount(), time.Since(start), err)
	return in, err
}

// BuildWithCacheInfo assembles the chart spec with caching and returns cache hit info.
// dataHash identifies the input; pass "" to skip caching for this call.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, in series.Input, dataHash string, opts Options) (vega.Spec, bool, error) {
	r.applyLogger(&opts)

	var cacheKey string
	if dataHash != "" {
		cacheKey = r.Keyer.SpecKey(dataHash, opts.SpecKeyOpts())
	}

	// Try cache first (unless refresh requested)
	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached vega.Spec
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "spec")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to rebuild
		}
		observability.Cache().OnCacheMiss(ctx, "spec")
	}

	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, in.Values.SeriesCount(), in.Values.PointCount())
	spec, err := chart.BuildSpec(in.Values, in.Names, opts.Surface, opts.ChartOptions())
	observability.Pipeline().OnBuildComplete(ctx, len(spec.Layer), time.Since(start), err)
	if err != nil {
		return vega.Spec{}, false, err
	}

	// Cache the result
	if cacheKey != "" {
		if data, err := spec.Marshal(); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSpec)
			observability.Cache().OnCacheSet(ctx, "spec", len(data))
		}
	}

	return spec, false, nil // Cache miss
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, in series.Input, opts Options) (vega.Spec, error) {
	spec, _, err := r.BuildWithCacheInfo(ctx, in, "", opts)
	return spec, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// specHash identifies the spec; pass "" to skip caching for this call.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, spec vega.Spec, specHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	if specHash != "" && !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := renderFormats(ctx, spec, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if specHash != "" {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, spec vega.Spec, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, spec, "", opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
