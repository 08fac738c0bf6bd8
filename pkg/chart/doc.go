// Package chart assembles layered Vega-Lite specifications for
// interactive line charts.
//
// [BuildSpec] is the pure core: series data in, a four-layer spec out
// (line, hover-selectable points, selection rule, value tooltip). [Line]
// composes it with the call into the external renderer.
//
// Construction order is option resolution, data normalization, encoding
// construction, then layer assembly. The builder raises no domain errors
// beyond rejecting empty input; malformed data and invalid type tags are
// forwarded to the renderer, which is the authority on schema validation.
package chart
