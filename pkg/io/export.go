package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/series"
)

// WriteJSON encodes a data input as indented JSON and writes it to w.
// The output round-trips through [ReadJSON]: the single/multi series
// shape and series names are preserved.
func WriteJSON(in series.Input, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(in); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode data")
	}
	return nil
}

// ExportJSON writes a data input to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(in series.Input, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(in, f)
}

// WriteArtifacts writes a rendered artifact set to files next to
// basePath, one file per format: base.html, base.json, base.svg, and so
// on. A basePath that already carries an extension matching one of the
// formats is treated as the stem, so "chart.html" with formats html and
// json produces chart.html and chart.json rather than chart.html.html.
//
// It returns the written paths in format-sorted order.
func WriteArtifacts(artifacts map[string][]byte, basePath string) ([]string, error) {
	if basePath == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "output path is empty")
	}

	stem := basePath
	if ext := strings.TrimPrefix(filepath.Ext(basePath), "."); ext != "" {
		if _, ok := artifacts[strings.ToLower(ext)]; ok {
			stem = strings.TrimSuffix(basePath, filepath.Ext(basePath))
		}
	}

	formats := make([]string, 0, len(artifacts))
	for format := range artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := stem + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
