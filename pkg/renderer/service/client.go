// Package service provides an HTTP client for a headless chart render
// service.
//
// The service is any endpoint that accepts a POST with the layered spec
// and embed options and answers with rendered artifact bytes (SVG or
// PNG). vegaline ships no service of its own; the usual deployment is a
// small vega-based renderer running next to the preview server.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/httputil"
	"github.com/matzehuels/vegaline/pkg/renderer"
	"github.com/matzehuels/vegaline/pkg/vega"
)

// Output formats understood by the render service.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// DefaultTimeout bounds a single render request.
const DefaultTimeout = 30 * time.Second

// Client renders specs through a remote render service.
//
// Attempts controls transport-level retries (connection failures, 5xx
// responses). It defaults to 1: a failed render is not retried unless
// the caller opts in. Renderer-side schema rejections (4xx) are never
// retried.
type Client struct {
	http     *http.Client
	baseURL  string
	format   string
	attempts int
}

// Option configures a Client.
type Option func(*Client)

// WithFormat selects the artifact format (svg or png). Default is svg.
func WithFormat(format string) Option {
	return func(c *Client) { c.format = format }
}

// WithAttempts enables transport-level retries with exponential backoff.
func WithAttempts(attempts int) Option {
	return func(c *Client) { c.attempts = attempts }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a render service client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		baseURL:  baseURL,
		format:   FormatSVG,
		attempts: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// renderRequest is the service wire format.
type renderRequest struct {
	Spec   vega.Spec             `json:"spec"`
	Embed  renderer.EmbedOptions `json:"embed"`
	Format string                `json:"format"`
}

// Render posts the spec to the service and returns the artifact bytes.
func (c *Client) Render(ctx context.Context, spec vega.Spec, opts renderer.EmbedOptions) ([]byte, error) {
	body, err := json.Marshal(renderRequest{Spec: spec, Embed: opts, Format: c.format})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize render request")
	}

	var artifact []byte
	err = httputil.Retry(ctx, c.attempts, time.Second, func() error {
		artifact, err = c.post(ctx, body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build render request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "render service unreachable"))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "render service status %d", resp.StatusCode))
	default:
		// 4xx: the service rejected the spec. Surface its message.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.New(errors.ErrCodeRenderFailed, "render rejected (status %d): %s", resp.StatusCode, firstLine(msg))
	}
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			return string(b[:i])
		}
	}
	return string(b)
}

// Ensure Client implements the renderer interface.
var _ renderer.Renderer = (*Client)(nil)
