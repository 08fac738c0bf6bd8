package io

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/series"
)

// ReadJSON decodes a data input from r.
//
// The input must be a JSON object with a "values" array and an optional
// "series" name array:
//
//	{"values": [{"x": 0, "y": 1}, {"x": 1, "y": 3}], "series": ["A"]}
//
// Values may be a flat point array (one series) or an array of point
// arrays (multiple series); the shape is detected from the first
// element. An empty values array is rejected.
func ReadJSON(r io.Reader) (series.Input, error) {
	var in series.Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		if errors.GetCode(err) != "" {
			return series.Input{}, err
		}
		return series.Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode data")
	}
	return in, nil
}

// ReadCSV decodes a data input from CSV.
//
// The first row must be a header containing "x" and "y" columns and an
// optional "series" column. With a series column, consecutive rows are
// grouped into named series in first-appearance order; without one, all
// rows form a single unnamed series. Header matching is case-insensitive;
// other columns are ignored.
func ReadCSV(r io.Reader) (series.Input, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		return series.Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV header")
	}

	xCol, yCol, seriesCol := -1, -1, -1
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x":
			xCol = i
		case "y":
			yCol = i
		case "series":
			seriesCol = i
		}
	}
	if xCol < 0 || yCol < 0 {
		return series.Input{}, errors.New(errors.ErrCodeInvalidInput, "CSV header must contain x and y columns")
	}

	var (
		names   []string
		grouped [][]series.Point
		index   = make(map[string]int)
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return series.Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV row")
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(row[xCol]), 64)
		if err != nil {
			return series.Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse x value %q", row[xCol])
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[yCol]), 64)
		if err != nil {
			return series.Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse y value %q", row[yCol])
		}

		name := ""
		if seriesCol >= 0 && seriesCol < len(row) {
			name = strings.TrimSpace(row[seriesCol])
		}

		i, ok := index[name]
		if !ok {
			i = len(grouped)
			index[name] = i
			grouped = append(grouped, nil)
			names = append(names, name)
		}
		grouped[i] = append(grouped[i], series.Point{X: x, Y: y})
	}

	if len(grouped) == 0 {
		return series.Input{}, errors.New(errors.ErrCodeInvalidInput, "CSV contains no data rows")
	}

	if seriesCol < 0 {
		return series.Input{Values: series.Single(grouped[0])}, nil
	}
	return series.Input{Values: series.Multi(grouped), Names: names}, nil
}

// ImportFile loads a data input from path, dispatching on the file
// extension: .json for JSON input, .csv for CSV.
func ImportFile(path string) (series.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return series.Input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return series.Input{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return series.Input{}, errors.New(errors.ErrCodeUnsupported, "unsupported data format %q (use .json or .csv)", filepath.Ext(path))
	}
}
