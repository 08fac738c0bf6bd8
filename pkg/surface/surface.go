// Package surface abstracts the draw surface a chart is painted into.
//
// The chart builder only reads the surface's measured client size, and
// only when the caller did not fix explicit width/height options. The
// surface itself is borrowed: the builder never owns, resizes, or
// releases it.
package surface

// Default dimensions used when no surface measurement is available.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Surface is a resolved, measurable draw target.
type Surface interface {
	// ClientWidth returns the measured inner width in pixels.
	ClientWidth() int

	// ClientHeight returns the measured inner height in pixels.
	ClientHeight() int
}

// Fixed is a surface with a static measured size. It backs CLI rendering
// (where the viewport comes from flags or config) and server rendering
// (where the browser reports its container measurements).
type Fixed struct {
	Width  int
	Height int
}

// ClientWidth returns the fixed width.
func (f Fixed) ClientWidth() int { return f.Width }

// ClientHeight returns the fixed height.
func (f Fixed) ClientHeight() int { return f.Height }

// Default returns a surface with the package default dimensions.
func Default() Surface {
	return Fixed{Width: DefaultWidth, Height: DefaultHeight}
}

// Ensure Fixed implements Surface.
var _ Surface = Fixed{}
