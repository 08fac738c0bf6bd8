package vega

import "encoding/json"

// SchemaURL identifies the Vega-Lite dialect emitted by this package.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v4.json"

// Field type tags controlling axis and scale behavior.
const (
	TypeQuantitative = "quantitative"
	TypeNominal      = "nominal"
	TypeOrdinal      = "ordinal"
	TypeTemporal     = "temporal"
)

// Mark types used by the line chart layers.
const (
	MarkLine  = "line"
	MarkPoint = "point"
	MarkRule  = "rule"
	MarkText  = "text"
)

// Spec is a top-level layered Vega-Lite specification. The dataset is
// embedded inline; all layers share it along with one coordinate system.
type Spec struct {
	Schema   string    `json:"$schema,omitempty"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
	Padding  int       `json:"padding,omitempty"`
	Autosize *Autosize `json:"autosize,omitempty"`
	Data     *Data     `json:"data,omitempty"`
	Layer    []Layer   `json:"layer,omitempty"`
}

// Autosize is the sizing policy for the rendered view.
type Autosize struct {
	Type     string `json:"type"`
	Contains string `json:"contains,omitempty"`
	Resize   bool   `json:"resize,omitempty"`
}

// Data holds the inline dataset. Values is marshaled as-is, so any
// JSON-encodable record list works.
type Data struct {
	Values any `json:"values"`
}

// Layer is one mark/encoding definition within the layered spec.
type Layer struct {
	Mark      Mark                 `json:"mark"`
	Selection map[string]Selection `json:"selection,omitempty"`
	Transform []Transform          `json:"transform,omitempty"`
	Encoding  Encoding             `json:"encoding"`
}

// Mark describes how a layer draws its records. Only the fields used by
// the four line-chart layers are modeled; Vega-Lite ignores absent keys.
type Mark struct {
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
	Align string `json:"align,omitempty"`
	DX    int    `json:"dx,omitempty"`
	DY    int    `json:"dy,omitempty"`
}

// Selection declares a renderer-managed interactive selection.
type Selection struct {
	Type      string   `json:"type"`
	On        string   `json:"on,omitempty"`
	Nearest   bool     `json:"nearest,omitempty"`
	Empty     string   `json:"empty,omitempty"`
	Encodings []string `json:"encodings,omitempty"`
}

// Transform is a data transform applied to a layer before encoding.
type Transform struct {
	Filter *Filter `json:"filter,omitempty"`
}

// Filter restricts a layer's data. Only selection filters are modeled.
type Filter struct {
	Selection string `json:"selection,omitempty"`
}

// Encoding maps record fields to visual channels. Nil channels are
// omitted from the output entirely, which is how a layer opts out of an
// inherited channel (e.g. the tooltip layer drops color so its fixed
// black mark color is not overridden by the categorical scale).
type Encoding struct {
	X       *Field `json:"x,omitempty"`
	Y       *Field `json:"y,omitempty"`
	Color   *Field `json:"color,omitempty"`
	Opacity *Value `json:"opacity,omitempty"`
	Text    *Field `json:"text,omitempty"`
}

// Field is a field-to-channel definition.
type Field struct {
	Field  string `json:"field,omitempty"`
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Format string `json:"format,omitempty"`
}

// Value is a literal channel value, optionally switched by a selection
// condition. Value has no omitempty tag: zero is a meaningful literal
// (the invisible default opacity of the hover points).
type Value struct {
	Value     any        `json:"value"`
	Condition *Condition `json:"condition,omitempty"`
}

// Condition sets a channel value while the named selection is active.
type Condition struct {
	Selection string `json:"selection"`
	Value     any    `json:"value"`
}

// Marshal encodes the spec as compact JSON.
func (s Spec) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// MarshalIndent encodes the spec as indented JSON for file output and
// debugging.
func (s Spec) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
