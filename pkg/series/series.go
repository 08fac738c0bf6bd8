package series

import (
	"fmt"

	"github.com/matzehuels/vegaline/pkg/errors"
)

// Point is a single observation with numeric x and y values.
// Extra holds passthrough fields that the chart builder carries into the
// emitted records without interpreting them.
type Point struct {
	X     float64
	Y     float64
	Extra map[string]any
}

// Collection is a set of ordered point series. It is an explicit tagged
// union: construct it with [Single] for one flat series or [Multi] for an
// ordered list of series. The tag removes the ambiguity of inspecting raw
// input shapes at runtime; shape detection only happens at the JSON
// boundary (see [Collection.UnmarshalJSON]).
type Collection struct {
	multi  bool
	series [][]Point
}

// Single creates a collection containing exactly one series.
func Single(points []Point) Collection {
	return Collection{multi: false, series: [][]Point{points}}
}

// Multi creates a collection of explicitly separated series.
func Multi(seriesList [][]Point) Collection {
	return Collection{multi: true, series: seriesList}
}

// IsMulti reports whether the collection was constructed as multi-series.
func (c Collection) IsMulti() bool { return c.multi }

// SeriesCount returns the number of series in the collection.
func (c Collection) SeriesCount() int { return len(c.series) }

// PointCount returns the total number of points across all series.
func (c Collection) PointCount() int {
	total := 0
	for _, s := range c.series {
		total += len(s)
	}
	return total
}

// Validate checks that the collection holds at least one series.
// A multi-series collection with zero series is rejected: it is the typed
// equivalent of an empty top-level values array, whose shape cannot be
// determined at the wire boundary. A single series with zero points is
// allowed; schema-level complaints about empty data belong to the renderer.
func (c Collection) Validate() error {
	if len(c.series) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "data contains no series")
	}
	return nil
}

// Record is a normalized observation: a point plus its resolved series
// name. Records are constructed explicitly; the series name is a named
// field rather than a dynamically merged key.
type Record struct {
	X      float64
	Y      float64
	Series string
	Extra  map[string]any
}

// SeriesName resolves the display name for series index i (0-based).
// Names are taken positionally from names; any index without a supplied
// non-empty name receives a generated "Series {i+1}" name.
func SeriesName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("Series %d", i+1)
}

// Flatten produces the flat record list consumed by the chart builder.
// Records appear in series order, then intra-series order. The output
// length equals [Collection.PointCount], every record carries a non-empty
// series name, and point fields are preserved unmodified.
func (c Collection) Flatten(names []string) []Record {
	records := make([]Record, 0, c.PointCount())
	for i, s := range c.series {
		name := SeriesName(names, i)
		for _, p := range s {
			records = append(records, Record{
				X:      p.X,
				Y:      p.Y,
				Series: name,
				Extra:  p.Extra,
			})
		}
	}
	return records
}
