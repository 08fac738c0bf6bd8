package chart

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vegaline/pkg/vega"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, server, and library use
// =============================================================================

const (
	// DefaultXLabel is the x-axis title when none is supplied.
	DefaultXLabel = "Index"

	// DefaultYLabel is the y-axis title when none is supplied.
	DefaultYLabel = "Value"

	// DefaultFieldType is the type tag applied to both axes by default.
	DefaultFieldType = vega.TypeQuantitative
)

// Options configure chart construction. The zero value means "use
// defaults": empty labels and type tags take the package defaults, and
// zero Width/Height mean "use the draw surface's measured size".
//
// Type tags and dimensions are passed through without validation; the
// external renderer is the authority on rejecting invalid values.
type Options struct {
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`
	XType  string `json:"x_type,omitempty"`
	YType  string `json:"y_type,omitempty"`

	// Width and Height override the surface measurement when non-zero.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset fields with package defaults. It is idempotent.
// Width and Height stay zero here: their fallback is the surface
// measurement, resolved at spec construction time.
func (o *Options) SetDefaults() {
	if o.XLabel == "" {
		o.XLabel = DefaultXLabel
	}
	if o.YLabel == "" {
		o.YLabel = DefaultYLabel
	}
	if o.XType == "" {
		o.XType = DefaultFieldType
	}
	if o.YType == "" {
		o.YType = DefaultFieldType
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
