// Package embedhtml renders chart specs as self-contained interactive
// HTML pages.
//
// The page loads the vega, vega-lite, and vega-embed bundles and hands
// them the embedded spec. All interactivity (hover selection, tooltip,
// container resize tracking) lives in the browser; the Go side completes
// once the page bytes are produced.
package embedhtml

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"

	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/renderer"
	"github.com/matzehuels/vegaline/pkg/vega"
)

// page is the embed page skeleton. The chart container fills the
// viewport; combined with the spec's fit/resize autosize policy the
// rendered chart tracks container resizes without a rebuild.
const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-lite@4"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
<style>
  html, body { margin: 0; padding: 0; height: 100%; }
  #chart { width: 100%; height: 100%; }
</style>
</head>
<body>
<div id="chart"></div>
<script>
  vegaEmbed("#chart", {{.Spec}}, {{.Embed}}).catch(console.error);
</script>
</body>
</html>
`

var pageTmpl = template.Must(template.New("embed").Parse(page))

// Renderer produces interactive HTML embed pages.
type Renderer struct {
	// Title is the page title. Empty means "vegaline".
	Title string
}

// New creates an HTML embed renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render produces the embed page bytes for the spec. The spec and embed
// options are serialized into the page as JSON; the browser-side
// vega-embed call interprets them on load.
func (r *Renderer) Render(ctx context.Context, spec vega.Spec, opts renderer.EmbedOptions) ([]byte, error) {
	specJSON, err := spec.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize spec")
	}
	embedJSON, err := marshalEmbed(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize embed options")
	}

	title := r.Title
	if title == "" {
		title = "vegaline"
	}

	var buf bytes.Buffer
	err = pageTmpl.Execute(&buf, struct {
		Title string
		Spec  template.JS
		Embed template.JS
	}{
		Title: title,
		Spec:  template.JS(specJSON),
		Embed: template.JS(embedJSON),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render embed page")
	}
	return buf.Bytes(), nil
}

func marshalEmbed(opts renderer.EmbedOptions) ([]byte, error) {
	return json.Marshal(opts)
}

// Ensure Renderer implements the renderer interface.
var _ renderer.Renderer = (*Renderer)(nil)
