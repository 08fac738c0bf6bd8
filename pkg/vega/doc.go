// Package vega provides typed structures for the subset of the Vega-Lite
// grammar that vegaline emits: a layered single-view spec with inline
// data, field/value encodings, single selections, and selection filter
// transforms.
//
// The types marshal to JSON documents accepted by any Vega-Lite v4+
// interpreter. They deliberately model only what the line chart needs;
// this is not a general Vega-Lite binding.
package vega
