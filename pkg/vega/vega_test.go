package vega

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValueZeroIsEmitted(t *testing.T) {
	v := Value{Value: 0}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"value":0}` {
		t.Errorf("zero value must survive marshaling, got %s", data)
	}
}

func TestEncodingOmitsNilChannels(t *testing.T) {
	enc := Encoding{
		X: &Field{Field: "x", Type: TypeQuantitative},
		Y: &Field{Field: "y", Type: TypeQuantitative},
	}
	data, err := json.Marshal(enc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "color") {
		t.Errorf("nil color channel must not appear in output: %s", data)
	}
}

func TestSpecMarshalShape(t *testing.T) {
	spec := Spec{
		Schema:   SchemaURL,
		Width:    400,
		Height:   300,
		Padding:  5,
		Autosize: &Autosize{Type: "fit", Contains: "padding", Resize: true},
		Data:     &Data{Values: []map[string]any{{"x": 0, "y": 1, "series": "A"}}},
		Layer: []Layer{
			{
				Mark: Mark{Type: MarkLine},
				Encoding: Encoding{
					X: &Field{Field: "x", Type: TypeQuantitative, Title: "Index"},
				},
			},
		},
	}

	data, err := spec.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out["$schema"] != SchemaURL {
		t.Errorf("$schema = %v", out["$schema"])
	}
	if out["width"].(float64) != 400 {
		t.Errorf("width = %v", out["width"])
	}
	autosize := out["autosize"].(map[string]any)
	if autosize["type"] != "fit" || autosize["contains"] != "padding" || autosize["resize"] != true {
		t.Errorf("autosize = %v", autosize)
	}
	layers := out["layer"].([]any)
	if len(layers) != 1 {
		t.Fatalf("layer count = %d", len(layers))
	}
}

func TestSelectionMarshal(t *testing.T) {
	layer := Layer{
		Mark: Mark{Type: MarkPoint},
		Selection: map[string]Selection{
			"hover": {
				Type:      "single",
				On:        "mouseover",
				Nearest:   true,
				Empty:     "none",
				Encodings: []string{"x"},
			},
		},
		Encoding: Encoding{
			Opacity: &Value{
				Value:     0,
				Condition: &Condition{Selection: "hover", Value: 1},
			},
		},
	}

	data, err := json.Marshal(layer)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	sel := out["selection"].(map[string]any)["hover"].(map[string]any)
	if sel["type"] != "single" || sel["on"] != "mouseover" || sel["nearest"] != true || sel["empty"] != "none" {
		t.Errorf("selection = %v", sel)
	}

	opacity := out["encoding"].(map[string]any)["opacity"].(map[string]any)
	if opacity["value"].(float64) != 0 {
		t.Errorf("opacity base value = %v, want 0", opacity["value"])
	}
	cond := opacity["condition"].(map[string]any)
	if cond["selection"] != "hover" || cond["value"].(float64) != 1 {
		t.Errorf("opacity condition = %v", cond)
	}
}

func TestTransformFilterMarshal(t *testing.T) {
	tr := Transform{Filter: &Filter{Selection: "hover"}}
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"filter":{"selection":"hover"}}` {
		t.Errorf("transform = %s", data)
	}
}
