package chart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/renderer"
	"github.com/matzehuels/vegaline/pkg/series"
	"github.com/matzehuels/vegaline/pkg/surface"
	"github.com/matzehuels/vegaline/pkg/vega"
)

func testData() series.Collection {
	return series.Single([]series.Point{{X: 0, Y: 1}, {X: 1, Y: 3}})
}

func TestBuildSpecLayerOrder(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, surface.Fixed{Width: 800, Height: 600}, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	if len(spec.Layer) != 4 {
		t.Fatalf("expected exactly 4 layers, got %d", len(spec.Layer))
	}

	wantMarks := []string{vega.MarkLine, vega.MarkPoint, vega.MarkRule, vega.MarkText}
	for i, want := range wantMarks {
		if spec.Layer[i].Mark.Type != want {
			t.Errorf("layer %d mark = %q, want %q", i, spec.Layer[i].Mark.Type, want)
		}
	}
}

func TestBuildSpecSelectionWiring(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	// Point layer declares the selection
	sel, ok := spec.Layer[1].Selection[SelectionName]
	if !ok {
		t.Fatalf("point layer missing %q selection", SelectionName)
	}
	if sel.Type != "single" || sel.On != "mouseover" || !sel.Nearest || sel.Empty != "none" {
		t.Errorf("selection definition = %+v", sel)
	}
	if len(sel.Encodings) != 1 || sel.Encodings[0] != "x" {
		t.Errorf("selection encodings = %v, want [x]", sel.Encodings)
	}

	// Rule and text layers filter on the same selection name
	for _, i := range []int{2, 3} {
		if len(spec.Layer[i].Transform) != 1 {
			t.Fatalf("layer %d should carry one transform", i)
		}
		filter := spec.Layer[i].Transform[0].Filter
		if filter == nil || filter.Selection != SelectionName {
			t.Errorf("layer %d filter = %+v, want selection %q", i, filter, SelectionName)
		}
	}

	// Line layer carries no transform and no selection
	if len(spec.Layer[0].Transform) != 0 || len(spec.Layer[0].Selection) != 0 {
		t.Error("line layer should have no transform or selection")
	}
}

func TestBuildSpecPointOpacity(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	opacity := spec.Layer[1].Encoding.Opacity
	if opacity == nil {
		t.Fatal("point layer missing opacity channel")
	}
	if opacity.Value != 0 {
		t.Errorf("base opacity = %v, want 0 (invisible)", opacity.Value)
	}
	if opacity.Condition == nil || opacity.Condition.Selection != SelectionName || opacity.Condition.Value != 1 {
		t.Errorf("opacity condition = %+v", opacity.Condition)
	}
}

func TestBuildSpecDefaultOptions(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	x := spec.Layer[0].Encoding.X
	y := spec.Layer[0].Encoding.Y
	if x.Title != "Index" || y.Title != "Value" {
		t.Errorf("titles = %q, %q, want Index, Value", x.Title, y.Title)
	}
	if x.Type != vega.TypeQuantitative || y.Type != vega.TypeQuantitative {
		t.Errorf("types = %q, %q, want quantitative", x.Type, y.Type)
	}

	color := spec.Layer[0].Encoding.Color
	if color == nil || color.Field != "series" || color.Type != vega.TypeNominal {
		t.Errorf("color encoding = %+v", color)
	}
}

func TestBuildSpecPartialOptionOverride(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, nil, Options{XLabel: "Time"})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	x := spec.Layer[0].Encoding.X
	y := spec.Layer[0].Encoding.Y
	if x.Title != "Time" {
		t.Errorf("x title = %q, want Time", x.Title)
	}
	if y.Title != "Value" || x.Type != vega.TypeQuantitative || y.Type != vega.TypeQuantitative {
		t.Error("overriding one option must leave the others at defaults")
	}
}

func TestBuildSpecTypeTagsPassThrough(t *testing.T) {
	// Invalid tags are not validated locally; the renderer rejects them.
	spec, err := BuildSpec(testData(), nil, nil, Options{XType: "bogus"})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}
	if spec.Layer[0].Encoding.X.Type != "bogus" {
		t.Errorf("x type = %q, want verbatim pass-through", spec.Layer[0].Encoding.X.Type)
	}
}

func TestBuildSpecSizing(t *testing.T) {
	surf := surface.Fixed{Width: 1024, Height: 768}

	// Surface fallback when options leave size unset
	spec, err := BuildSpec(testData(), nil, surf, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}
	if spec.Width != 1024 || spec.Height != 768 {
		t.Errorf("size = %dx%d, want surface measure 1024x768", spec.Width, spec.Height)
	}

	// Explicit options win over the surface measure
	spec, err = BuildSpec(testData(), nil, surf, Options{Width: 400, Height: 300})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}
	if spec.Width != 400 || spec.Height != 300 {
		t.Errorf("size = %dx%d, want explicit 400x300", spec.Width, spec.Height)
	}

	// Mixed: width explicit, height from surface
	spec, _ = BuildSpec(testData(), nil, surf, Options{Width: 400})
	if spec.Width != 400 || spec.Height != 768 {
		t.Errorf("size = %dx%d, want 400x768", spec.Width, spec.Height)
	}

	// Nil surface falls back to package defaults
	spec, _ = BuildSpec(testData(), nil, nil, Options{})
	if spec.Width != surface.DefaultWidth || spec.Height != surface.DefaultHeight {
		t.Errorf("size = %dx%d, want defaults", spec.Width, spec.Height)
	}
}

func TestBuildSpecLayout(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	if spec.Padding != specPadding {
		t.Errorf("padding = %d, want %d", spec.Padding, specPadding)
	}
	if spec.Autosize == nil || spec.Autosize.Type != "fit" || spec.Autosize.Contains != "padding" || !spec.Autosize.Resize {
		t.Errorf("autosize = %+v", spec.Autosize)
	}
	if spec.Schema != vega.SchemaURL {
		t.Errorf("schema = %q", spec.Schema)
	}
}

func TestBuildSpecTooltipLayer(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	text := spec.Layer[3]
	if text.Mark.Align != "left" || text.Mark.DX != 5 || text.Mark.DY != -5 || text.Mark.Color != "black" {
		t.Errorf("text mark = %+v", text.Mark)
	}
	if text.Encoding.Text == nil || text.Encoding.Text.Field != "y" || text.Encoding.Text.Format != ".6f" {
		t.Errorf("text channel = %+v", text.Encoding.Text)
	}
	if text.Encoding.Color != nil {
		t.Error("tooltip layer must not carry the categorical color channel")
	}
}

func TestBuildSpecRuleLayer(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, nil, Options{XType: vega.TypeTemporal})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	rule := spec.Layer[2]
	if rule.Mark.Color != "gray" {
		t.Errorf("rule color = %q, want gray", rule.Mark.Color)
	}
	if rule.Encoding.X == nil || rule.Encoding.X.Type != vega.TypeTemporal {
		t.Errorf("rule x encoding = %+v, should use resolved x type", rule.Encoding.X)
	}
	if rule.Encoding.Y != nil || rule.Encoding.Color != nil {
		t.Error("rule layer encodes the x channel only")
	}
}

func TestBuildSpecRecords(t *testing.T) {
	spec, err := BuildSpec(testData(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	records, ok := spec.Data.Values.([]series.Record)
	if !ok {
		t.Fatalf("data values type %T", spec.Data.Values)
	}
	if len(records) != 2 {
		t.Fatalf("record count = %d", len(records))
	}
	for _, r := range records {
		if r.Series != "Series 1" {
			t.Errorf("series = %q, want \"Series 1\"", r.Series)
		}
	}
	if records[0].X != 0 || records[0].Y != 1 || records[1].X != 1 || records[1].Y != 3 {
		t.Errorf("records = %+v", records)
	}
}

func TestBuildSpecEmptyInput(t *testing.T) {
	_, err := BuildSpec(series.Multi(nil), nil, nil, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty input should fail with INVALID_INPUT, got %v", err)
	}
}

func TestBuildSpecMarshalsToValidJSON(t *testing.T) {
	spec, err := BuildSpec(testData(), []string{"A"}, nil, Options{})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}

	data, err := spec.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("spec is not valid JSON: %v", err)
	}

	values := out["data"].(map[string]any)["values"].([]any)
	first := values[0].(map[string]any)
	if first["series"] != "A" {
		t.Errorf("first record series = %v, want A", first["series"])
	}
}

// fakeRenderer captures the spec instead of painting.
type fakeRenderer struct {
	spec  vega.Spec
	embed renderer.EmbedOptions
	out   []byte
	err   error
}

func (f *fakeRenderer) Render(ctx context.Context, spec vega.Spec, opts renderer.EmbedOptions) ([]byte, error) {
	f.spec = spec
	f.embed = opts
	return f.out, f.err
}

func TestLineHandsSpecToRenderer(t *testing.T) {
	fake := &fakeRenderer{out: []byte("artifact")}
	in := series.Input{Values: testData()}

	out, err := Line(context.Background(), in, surface.Fixed{Width: 640, Height: 480}, Options{}, fake)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if string(out) != "artifact" {
		t.Errorf("artifact = %q", out)
	}

	if len(fake.spec.Layer) != 4 {
		t.Errorf("renderer received %d layers", len(fake.spec.Layer))
	}
	if fake.spec.Width != 640 {
		t.Errorf("renderer received width %d", fake.spec.Width)
	}
	if fake.embed.Actions {
		t.Error("embed options must disable the action menu")
	}
	if fake.embed.Mode != renderer.ModeVegaLite {
		t.Errorf("embed mode = %q", fake.embed.Mode)
	}
}

func TestLinePropagatesRendererFailure(t *testing.T) {
	fake := &fakeRenderer{err: errors.New(errors.ErrCodeRenderFailed, "schema rejected")}
	in := series.Input{Values: testData()}

	_, err := Line(context.Background(), in, nil, Options{}, fake)
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("renderer failure should surface unchanged, got %v", err)
	}
}
