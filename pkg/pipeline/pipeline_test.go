package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/vegaline/pkg/cache"
	"github.com/matzehuels/vegaline/pkg/errors"
	"github.com/matzehuels/vegaline/pkg/renderer"
	"github.com/matzehuels/vegaline/pkg/series"
	"github.com/matzehuels/vegaline/pkg/vega"
)

// fakeRenderer records render calls and returns canned bytes.
type fakeRenderer struct {
	calls int
	out   []byte
	err   error
}

func (f *fakeRenderer) Render(ctx context.Context, spec vega.Spec, opts renderer.EmbedOptions) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func testInput() *series.Input {
	return &series.Input{
		Values: series.Multi([][]series.Point{
			{{X: 0, Y: 1}, {X: 1, Y: 2}},
			{{X: 0, Y: 3}, {X: 1, Y: 4}},
		}),
		Names: []string{"A", "B"},
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"html", "json", "svg", "png"}); err != nil {
		t.Errorf("all supported formats should validate: %v", err)
	}
	err := ValidateFormats([]string{"html", "pdf"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Input: testInput()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatHTML {
		t.Errorf("default formats = %v, want [html]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("logger default should be installed")
	}

	// Idempotent: a second call leaves the options unchanged.
	opts.Formats = append(opts.Formats, "bogus")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}
}

func TestValidateRequiresData(t *testing.T) {
	opts := Options{}
	err := opts.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT without data, got %v", err)
	}
}

func TestValidateRemoteFormatNeedsService(t *testing.T) {
	opts := Options{Input: testInput(), Formats: []string{"svg"}}
	err := opts.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("svg without a service URL should fail, got %v", err)
	}

	opts = Options{Input: testInput(), Formats: []string{"svg"}, Renderer: &fakeRenderer{}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("injected renderer should satisfy remote formats: %v", err)
	}
}

func TestExecuteLocalFormats(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Input:   testInput(),
		Formats: []string{FormatHTML, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.SeriesCount != 2 || result.Stats.PointCount != 4 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.DataHash == "" || result.SpecHash == "" {
		t.Error("content hashes should be populated")
	}
	if len(result.Spec.Layer) != 4 {
		t.Errorf("layer count = %d, want 4", len(result.Spec.Layer))
	}
	if !strings.Contains(string(result.Artifacts[FormatHTML]), "vegaEmbed") {
		t.Error("html artifact should be an embed page")
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), vega.SchemaURL) {
		t.Error("json artifact should carry the schema URL")
	}
}

func TestExecuteRemoteFormat(t *testing.T) {
	fake := &fakeRenderer{out: []byte("<svg/>")}
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), Options{
		Input:    testInput(),
		Formats:  []string{FormatSVG},
		Renderer: fake,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if string(result.Artifacts[FormatSVG]) != "<svg/>" {
		t.Errorf("svg artifact = %q", result.Artifacts[FormatSVG])
	}
	if fake.calls != 1 {
		t.Errorf("renderer calls = %d, want 1", fake.calls)
	}
}

func TestExecuteRendererFailure(t *testing.T) {
	fake := &fakeRenderer{err: errors.New(errors.ErrCodeRenderFailed, "bad spec")}
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{
		Input:    testInput(),
		Formats:  []string{FormatPNG},
		Renderer: fake,
	})
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("expected RENDER_FAILED, got %v", err)
	}
}

func TestExecuteLoadsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"values": [{"x": 0, "y": 1}, {"x": 1, "y": 2}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{DataPath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.PointCount != 2 {
		t.Errorf("point count = %d, want 2", result.Stats.PointCount)
	}
}

func TestExecuteMissingDataFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		DataPath: filepath.Join(t.TempDir(), "absent.json"),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestExecuteCachesSpecAndArtifacts(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	fake := &fakeRenderer{out: []byte("<svg/>")}
	opts := Options{Input: testInput(), Formats: []string{FormatSVG}, Renderer: fake}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.SpecHit || first.CacheInfo.RenderHit {
		t.Error("first run must not hit the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.SpecHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if fake.calls != 1 {
		t.Errorf("renderer calls = %d, want 1 (second run cached)", fake.calls)
	}
	if string(second.Artifacts[FormatSVG]) != "<svg/>" {
		t.Errorf("cached artifact = %q", second.Artifacts[FormatSVG])
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	fake := &fakeRenderer{out: []byte("<svg/>")}
	opts := Options{Input: testInput(), Formats: []string{FormatSVG}, Renderer: fake}

	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	opts.Refresh = true
	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if second.CacheInfo.SpecHit || second.CacheInfo.RenderHit {
		t.Error("refresh must bypass the cache")
	}
	if fake.calls != 2 {
		t.Errorf("renderer calls = %d, want 2", fake.calls)
	}
}

func TestBuildWithoutCaching(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	in := testInput()

	spec, err := runner.Build(context.Background(), *in, Options{XLabel: "Time"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := spec.Layer[0].Encoding.X.Title; got != "Time" {
		t.Errorf("x title = %q, want Time", got)
	}
}

func TestExecuteEmptyInput(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{Input: &series.Input{}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty values, got %v", err)
	}
}
