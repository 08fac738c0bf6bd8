package pipeline

import (
	"context"

	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/renderer"
	"github.com/matzehuels/vegaline/pkg/renderer/embedhtml"
	"github.com/matzehuels/vegaline/pkg/renderer/service"
	"github.com/matzehuels/vegaline/pkg/vega"
)

// renderFormats produces one artifact per requested format. JSON and
// HTML are generated locally; SVG and PNG go through the render service.
func renderFormats(ctx context.Context, spec vega.Spec, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	embed := opts.EmbedOptions()

	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, spec, format, embed, opts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeRenderFailed
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, spec vega.Spec, format string, embed renderer.EmbedOptions, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return spec.MarshalIndent()
	case FormatHTML:
		page := &embedhtml.Renderer{Title: opts.Title}
		return page.Render(ctx, spec, embed)
	case FormatSVG, FormatPNG:
		return remoteRenderer(format, opts).Render(ctx, spec, embed)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// remoteRenderer resolves the renderer for service-backed formats. An
// injected renderer (tests, custom transports) wins over the default
// HTTP client.
func remoteRenderer(format string, opts Options) renderer.Renderer {
	if opts.Renderer != nil {
		return opts.Renderer
	}
	return service.New(opts.ServiceURL, service.WithFormat(format))
}
