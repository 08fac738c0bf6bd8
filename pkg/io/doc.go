// Package io provides data import and artifact export for vegaline.
//
// # Overview
//
// This package moves chart data and rendered artifacts between the
// filesystem and the in-memory types the rest of the library works
// with. It covers three concerns:
//
//   - Importing series data from JSON or CSV files
//   - Exporting series data back to JSON for round-trip processing
//   - Writing rendered artifact sets (html, json, svg, png) to files
//
// # JSON Format
//
// The JSON format mirrors the [series.Input] type: a "values" array of
// {x, y} points (or an array of such arrays for multiple series) and an
// optional "series" array of display names:
//
//	{
//	  "values": [
//	    [{"x": 0, "y": 1.0}, {"x": 1, "y": 2.5}],
//	    [{"x": 0, "y": 0.5}, {"x": 1, "y": 1.5}]
//	  ],
//	  "series": ["observed", "forecast"]
//	}
//
// Extra point keys beyond x and y are preserved and flow through to the
// rendered dataset unchanged.
//
// # CSV Format
//
// CSV input needs a header row with "x" and "y" columns. An optional
// "series" column groups rows into named series; without it the file is
// read as a single series. Any other columns are ignored.
//
// # Import
//
// Use [ImportFile] to load either format by file extension, or
// [ReadJSON] and [ReadCSV] to read from any io.Reader:
//
//	in, err := io.ImportFile("data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both readers validate the input shape; errors carry structured codes
// from the errors package.
//
// # Artifact Output
//
// [WriteArtifacts] writes a rendered artifact map to files sharing a
// base path, one extension per format. This is what the render command
// calls after a pipeline run.
package io
