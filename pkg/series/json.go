package series

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/vegaline/pkg/errors"
)

// Input is the wire format accepted at the data boundary:
//
//	{"values": [{"x": 0, "y": 1}, ...], "series": ["A", "B"]}
//
// Values may be a flat array of points (one series) or an array of point
// arrays (multiple series); the shape is detected during unmarshaling.
type Input struct {
	Values Collection `json:"values"`
	Names  []string   `json:"series,omitempty"`
}

// UnmarshalJSON detects the input shape by inspecting the first top-level
// element: if it is itself an array, the input is treated as multiple
// explicit series, otherwise as a single flat series. An empty values
// array has no first element to inspect and is rejected with an
// INVALID_INPUT error rather than guessing a shape.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "values must be an array")
	}
	if len(raw) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "values is empty: cannot determine series shape")
	}

	if isArray(raw[0]) {
		seriesList := make([][]Point, len(raw))
		for i, msg := range raw {
			var points []Point
			if err := json.Unmarshal(msg, &points); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "series %d", i)
			}
			seriesList[i] = points
		}
		*c = Multi(seriesList)
		return nil
	}

	points := make([]Point, len(raw))
	for i, msg := range raw {
		if err := json.Unmarshal(msg, &points[i]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "point %d", i)
		}
	}
	*c = Single(points)
	return nil
}

// MarshalJSON writes the collection back in its wire shape: a flat point
// array for single-series collections, nested arrays for multi-series.
func (c Collection) MarshalJSON() ([]byte, error) {
	if c.multi {
		return json.Marshal(c.series)
	}
	if len(c.series) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(c.series[0])
}

// isArray reports whether the raw JSON value starts with '[' after
// leading whitespace.
func isArray(msg json.RawMessage) bool {
	trimmed := bytes.TrimLeft(msg, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// UnmarshalJSON decodes a point object. The x and y fields must be
// numeric; all other fields are preserved in Extra.
func (p *Point) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if err := unmarshalNumber(fields, "x", &p.X); err != nil {
		return err
	}
	if err := unmarshalNumber(fields, "y", &p.Y); err != nil {
		return err
	}

	delete(fields, "x")
	delete(fields, "y")
	if len(fields) > 0 {
		p.Extra = make(map[string]any, len(fields))
		for k, msg := range fields {
			var v any
			if err := json.Unmarshal(msg, &v); err != nil {
				return fmt.Errorf("field %s: %w", k, err)
			}
			p.Extra[k] = v
		}
	}
	return nil
}

// MarshalJSON encodes the point with its passthrough fields. The x and y
// keys win over same-named passthrough fields.
func (p Point) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+2)
	for k, v := range p.Extra {
		out[k] = v
	}
	out["x"] = p.X
	out["y"] = p.Y
	return json.Marshal(out)
}

// MarshalJSON encodes the record with its passthrough fields. The x, y
// and series keys win over same-named passthrough fields, so a stray
// "series" field in the input cannot shadow the resolved name.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+3)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["x"] = r.X
	out["y"] = r.Y
	out["series"] = r.Series
	return json.Marshal(out)
}

func unmarshalNumber(fields map[string]json.RawMessage, key string, dst *float64) error {
	msg, ok := fields[key]
	if !ok {
		return fmt.Errorf("missing %q field", key)
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	return nil
}
