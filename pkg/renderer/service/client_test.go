package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/renderer"
	"github.com/matzehuels/vegaline/pkg/vega"
)

func testSpec() vega.Spec {
	return vega.Spec{
		Schema: vega.SchemaURL,
		Width:  400,
		Layer:  []vega.Layer{{Mark: vega.Mark{Type: vega.MarkLine}}},
	}
}

func TestRenderPostsSpec(t *testing.T) {
	var got renderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/render" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	out, err := c.Render(context.Background(), testSpec(), renderer.DefaultEmbedOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if string(out) != "<svg/>" {
		t.Errorf("artifact = %q", out)
	}
	if got.Format != FormatSVG {
		t.Errorf("format = %q, want svg default", got.Format)
	}
	if got.Spec.Width != 400 {
		t.Errorf("spec width = %d", got.Spec.Width)
	}
	if got.Embed.Mode != renderer.ModeVegaLite || got.Embed.Actions {
		t.Errorf("embed = %+v", got.Embed)
	}
}

func TestRenderFormatOption(t *testing.T) {
	var got renderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithFormat(FormatPNG))
	if _, err := c.Render(context.Background(), testSpec(), renderer.DefaultEmbedOptions()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Format != FormatPNG {
		t.Errorf("format = %q, want png", got.Format)
	}
}

func TestRenderSchemaRejectionNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "invalid type tag", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, WithAttempts(3))
	_, err := c.Render(context.Background(), testSpec(), renderer.DefaultEmbedOptions())
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("expected RENDER_FAILED, got %v", err)
	}
	if calls != 1 {
		t.Errorf("4xx must not retry, got %d calls", calls)
	}
}

func TestRenderRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithAttempts(3))
	out, err := c.Render(context.Background(), testSpec(), renderer.DefaultEmbedOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != "<svg/>" || calls != 2 {
		t.Errorf("expected success on second attempt, calls=%d out=%q", calls, out)
	}
}

func TestRenderNoRetryByDefault(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Render(context.Background(), testSpec(), renderer.DefaultEmbedOptions())
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("expected NETWORK_ERROR, got %v", err)
	}
	if calls != 1 {
		t.Errorf("default client must not retry, got %d calls", calls)
	}
}
