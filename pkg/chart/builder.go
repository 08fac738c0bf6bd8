package chart

import (
	"context"

	"github.com/matzehuels/vegaline/pkg/renderer"
	"github.com/matzehuels/vegaline/pkg/series"
	"github.com/matzehuels/vegaline/pkg/surface"
	"github.com/matzehuels/vegaline/pkg/vega"
)

// SelectionName identifies the hover selection shared between the point
// layer (which declares it) and the rule/text layers (which filter on it).
const SelectionName = "hover"

// Fixed layout and tooltip constants.
const (
	specPadding    = 5
	tooltipFormat  = ".6f" // fixed-point, 6 decimal places
	tooltipOffsetX = 5     // px right of the anchor point
	tooltipOffsetY = -5    // px above the anchor point
	ruleColor      = "gray"
	tooltipColor   = "black"
)

// BuildSpec normalizes the collection into a flat record set and
// assembles the four-layer line chart specification: line, invisible
// selectable points, selection-filtered rule, selection-filtered tooltip
// text. The layers share one inline dataset and one coordinate system.
//
// Sizing uses explicit Width/Height options when set, otherwise the
// surface's measured client size at construction time; a nil surface
// falls back to the package defaults. The returned spec is constructed
// fresh per call and never retained by the builder.
func BuildSpec(data series.Collection, names []string, surf surface.Surface, opts Options) (vega.Spec, error) {
	if err := data.Validate(); err != nil {
		return vega.Spec{}, err
	}
	opts.SetDefaults()

	records := data.Flatten(names)
	enc := sharedEncoding(opts)
	width, height := resolveSize(surf, opts)

	opts.Logger.Debug("assembled chart spec",
		"records", len(records),
		"series", data.SeriesCount(),
		"width", width,
		"height", height)

	return vega.Spec{
		Schema:  vega.SchemaURL,
		Width:   width,
		Height:  height,
		Padding: specPadding,
		Autosize: &vega.Autosize{
			Type:     "fit",
			Contains: "padding",
			Resize:   true,
		},
		Data: &vega.Data{Values: records},
		Layer: []vega.Layer{
			lineLayer(enc),
			pointLayer(enc),
			ruleLayer(opts),
			textLayer(enc, opts),
		},
	}, nil
}

// Line builds the spec for the given input and hands it to the external
// renderer with the default embed options (action menu disabled,
// vega-lite mode). It returns the renderer's artifact bytes. Renderer
// failures surface to the caller unretried.
func Line(ctx context.Context, in series.Input, surf surface.Surface, opts Options, r renderer.Renderer) ([]byte, error) {
	spec, err := BuildSpec(in.Values, in.Names, surf, opts)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, spec, renderer.DefaultEmbedOptions())
}

// sharedEncoding builds the field-to-channel mapping reused across the
// line, point, and text layers, guaranteeing consistent axis types and
// labels. Color is nominal: one unordered category per series name.
func sharedEncoding(opts Options) vega.Encoding {
	return vega.Encoding{
		X:     &vega.Field{Field: "x", Type: opts.XType, Title: opts.XLabel},
		Y:     &vega.Field{Field: "y", Type: opts.YType, Title: opts.YLabel},
		Color: &vega.Field{Field: "series", Type: vega.TypeNominal},
	}
}

// lineLayer renders one connected line per distinct series color value.
func lineLayer(enc vega.Encoding) vega.Layer {
	return vega.Layer{
		Mark:     vega.Mark{Type: vega.MarkLine},
		Encoding: enc,
	}
}

// pointLayer declares the hover selection: nearest-x on mouseover,
// selecting nothing while the pointer is outside the data. Points are
// invisible (opacity 0) except the active selection (opacity 1).
func pointLayer(enc vega.Encoding) vega.Layer {
	enc.Opacity = &vega.Value{
		Value:     0,
		Condition: &vega.Condition{Selection: SelectionName, Value: 1},
	}
	return vega.Layer{
		Mark: vega.Mark{Type: vega.MarkPoint},
		Selection: map[string]vega.Selection{
			SelectionName: {
				Type:      "single",
				On:        "mouseover",
				Nearest:   true,
				Empty:     "none",
				Encodings: []string{"x"},
			},
		},
		Encoding: enc,
	}
}

// ruleLayer draws a vertical reference line at the selected record's x
// position. Its data is filtered to the active selection only.
func ruleLayer(opts Options) vega.Layer {
	return vega.Layer{
		Mark:      vega.Mark{Type: vega.MarkRule, Color: ruleColor},
		Transform: []vega.Transform{{Filter: &vega.Filter{Selection: SelectionName}}},
		Encoding: vega.Encoding{
			X: &vega.Field{Field: "x", Type: opts.XType},
		},
	}
}

// textLayer shows the selected value next to the anchor point, formatted
// fixed-point. The color channel is deliberately absent: the categorical
// series color must not override the fixed black tooltip color.
func textLayer(enc vega.Encoding, opts Options) vega.Layer {
	return vega.Layer{
		Mark: vega.Mark{
			Type:  vega.MarkText,
			Align: "left",
			DX:    tooltipOffsetX,
			DY:    tooltipOffsetY,
			Color: tooltipColor,
		},
		Transform: []vega.Transform{{Filter: &vega.Filter{Selection: SelectionName}}},
		Encoding: vega.Encoding{
			X:    enc.X,
			Y:    enc.Y,
			Text: &vega.Field{Field: "y", Type: opts.YType, Format: tooltipFormat},
		},
	}
}

// resolveSize applies the width/height fallback chain: explicit options,
// then the surface measurement, then package defaults.
func resolveSize(surf surface.Surface, opts Options) (int, int) {
	if surf == nil {
		surf = surface.Default()
	}
	width := opts.Width
	if width == 0 {
		width = surf.ClientWidth()
	}
	height := opts.Height
	if height == 0 {
		height = surf.ClientHeight()
	}
	return width, height
}
