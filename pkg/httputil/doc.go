// Package httputil provides HTTP client plumbing shared by the render
// service client and the preview server.
//
// The package is intentionally small: retry with exponential backoff for
// transient transport failures, and nothing else. Retries are opt-in at the
// call site; the chart builder itself never retries a failed render.
package httputil
