// Package renderer defines the boundary to the external chart renderer.
//
// The chart builder constructs a complete layered spec and passes
// ownership to a [Renderer] for interpretation; it retains no reference
// afterwards. The renderer is the authority on schema validation: a spec
// with malformed data fails at render time, not at build time.
//
// Two implementations ship with vegaline:
//   - embedhtml: a self-contained interactive HTML page
//   - service: an HTTP client for a headless render service (SVG/PNG)
//
// Tests substitute a fake that captures the spec instead of painting.
package renderer

import (
	"context"

	"github.com/matzehuels/vegaline/pkg/vega"
)

// Embed mode selecting the renderer's declarative-grammar interpretation.
const ModeVegaLite = "vega-lite"

// EmbedOptions configure how the external renderer interprets a spec.
type EmbedOptions struct {
	// Actions controls the renderer's built-in action menu
	// (export/source/editor links). Disabled by default.
	Actions bool `json:"actions"`

	// Mode selects the grammar dialect of the spec.
	Mode string `json:"mode,omitempty"`
}

// DefaultEmbedOptions returns the embed options handed to the renderer:
// action menu disabled, vega-lite interpretation mode.
func DefaultEmbedOptions() EmbedOptions {
	return EmbedOptions{Actions: false, Mode: ModeVegaLite}
}

// Renderer is the capability interface for the external rendering engine.
type Renderer interface {
	// Render interprets the spec and returns the produced artifact bytes.
	// It completes once initial rendering has finished; interaction (for
	// renderers that support it) remains live afterwards via the
	// renderer's own event handling. Render is not retried on failure.
	Render(ctx context.Context, spec vega.Spec, opts EmbedOptions) ([]byte, error)
}
