// Package pkg provides the core libraries for vegaline chart construction.
//
// # Overview
//
// vegaline turns tabular series data into declarative layered line chart
// specifications with hover selection and tooltips. The chart itself is
// drawn by an external engine (vega-embed in the browser, or a headless
// render service); the Go side builds the specification. The pkg
// directory is organized into four main areas:
//
//  1. [series], [vega], [chart], [surface] - Domain logic (data model, spec grammar, chart assembly)
//  2. [cache], [store], [config] - Infrastructure (caching, persistence, configuration)
//  3. [renderer] - External engine boundaries (embed pages, render service client)
//  4. [pipeline] - Orchestration (load → build → render)
//
// # Architecture
//
// The typical data flow through vegaline:
//
//	JSON/CSV data file
//	         ↓
//	    [series] package (normalize into flat records)
//	         ↓
//	    [chart] package (assemble the four-layer spec)
//	         ↓
//	    [renderer] package (embed page or render service)
//	         ↓
//	    HTML/JSON/SVG/PNG output
//
// # Quick Start
//
// Build a chart spec and render it as an interactive page:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/vegaline/pkg/chart"
//	    "github.com/matzehuels/vegaline/pkg/renderer/embedhtml"
//	    "github.com/matzehuels/vegaline/pkg/series"
//	)
//
//	in := series.Input{
//	    Values: series.Single([]series.Point{{X: 0, Y: 1}, {X: 1, Y: 2.5}}),
//	}
//	page, err := chart.Line(context.Background(), in, nil, chart.Options{
//	    YLabel: "Requests",
//	}, embedhtml.New())
//
// # Main Packages
//
// [series] - The input data model: points, single- and multi-series
// collections, and normalization into the flat records the chart layers
// share.
//
// [vega] - The spec grammar types: layers, marks, encodings, selections,
// and transforms, serialized to schema-conformant JSON.
//
// [chart] - Chart assembly: the four-layer line chart (line, invisible
// hover points, selection rule, tooltip text) with sizing and axis
// options.
//
// [surface] - The draw surface abstraction supplying default chart
// dimensions when options leave them unset.
//
// [renderer] - External engine boundaries: [renderer/embedhtml] emits
// self-contained interactive pages, [renderer/service] posts specs to a
// headless render service for SVG/PNG.
//
// [pipeline] - The complete load → build → render pipeline used by CLI
// and server, with spec and artifact caching.
//
// [cache] - Pluggable caching (null, file, Redis) keyed by content
// hashes.
//
// [store] - Saved-chart persistence (memory, MongoDB).
//
// [config] - The TOML configuration file.
//
// [io] - Data import (JSON, CSV) and artifact export.
//
// [errors] - Structured error codes shared by CLI and server.
//
// [observability] - Optional instrumentation hooks.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/chart/...    # Specific package
//	go test -run Example       # Examples only
//
// [series]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/series
// [vega]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/vega
// [chart]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/chart
// [surface]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/surface
// [renderer]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/renderer
// [renderer/embedhtml]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/renderer/embedhtml
// [renderer/service]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/renderer/service
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/vegaline/pkg/observability
package pkg
