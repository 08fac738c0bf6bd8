// Package series defines the tabular data model for line charts.
//
// A [Collection] holds one or more ordered series of (x, y) points. It is
// built either programmatically through the [Single] and [Multi]
// constructors, or decoded from the JSON wire format where the series
// shape (flat array vs array of arrays) is detected from the first
// element.
//
// [Collection.Flatten] normalizes a collection into the flat [Record]
// list the chart builder consumes: every record carries its resolved
// series name, in series order then intra-series order.
package series
