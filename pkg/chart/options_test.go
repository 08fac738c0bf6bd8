package chart

import (
	"testing"

	"github.com/matzehuels/vegaline/pkg/vega"
)

func TestSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.XLabel != "Index" || opts.YLabel != "Value" {
		t.Errorf("labels = %q, %q", opts.XLabel, opts.YLabel)
	}
	if opts.XType != vega.TypeQuantitative || opts.YType != vega.TypeQuantitative {
		t.Errorf("types = %q, %q", opts.XType, opts.YType)
	}
	if opts.Width != 0 || opts.Height != 0 {
		t.Error("SetDefaults must leave dimensions for surface resolution")
	}
	if opts.Logger == nil {
		t.Error("SetDefaults should install a discard logger")
	}
}

func TestSetDefaultsKeepsOverrides(t *testing.T) {
	opts := Options{XLabel: "Time", YType: vega.TypeTemporal, Width: 400}
	opts.SetDefaults()

	if opts.XLabel != "Time" {
		t.Errorf("XLabel = %q, overrides must survive", opts.XLabel)
	}
	if opts.YType != vega.TypeTemporal {
		t.Errorf("YType = %q", opts.YType)
	}
	if opts.YLabel != "Value" || opts.XType != vega.TypeQuantitative {
		t.Error("unset fields must take defaults")
	}
	if opts.Width != 400 {
		t.Errorf("Width = %d", opts.Width)
	}
}

func TestSetDefaultsIdempotent(t *testing.T) {
	opts := Options{XLabel: "Time"}
	opts.SetDefaults()
	first := opts
	opts.SetDefaults()

	if opts.XLabel != first.XLabel || opts.YLabel != first.YLabel || opts.XType != first.XType || opts.YType != first.YType {
		t.Error("SetDefaults must be idempotent")
	}
}
