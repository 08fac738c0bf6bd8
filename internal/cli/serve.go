package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vegaline/pkg/config"
	"github.com/matzehuels/vegaline/pkg/pipeline"
	"github.com/matzehuels/vegaline/pkg/server"
	"github.com/matzehuels/vegaline/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	withStore bool   // enable the saved-chart API (needs mongo config)
	renderOpts
}

// newServeCmd creates the serve command for previewing a chart in the
// browser. The server rebuilds the spec per request, so the width and
// height the page measures flow into the chart as its draw surface.
func newServeCmd() *cobra.Command {
	var formatsStr string
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [data-file]",
		Short: "Preview a chart in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&opts.withStore, "store", false, "enable the saved-chart API (uses the configured MongoDB)")
	cmd.Flags().StringVar(&opts.xLabel, "x-label", "", "x-axis title")
	cmd.Flags().StringVar(&opts.yLabel, "y-label", "", "y-axis title")
	cmd.Flags().StringVar(&opts.xType, "x-type", "", "x-axis type tag")
	cmd.Flags().StringVar(&opts.yType, "y-type", "", "y-axis type tag")
	cmd.Flags().IntVar(&opts.width, "width", 0, "chart width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "chart height in pixels")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title")
	cmd.Flags().StringVar(&opts.serviceURL, "service-url", "", "render service base URL")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := buildCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	st, err := buildStore(ctx, cfg, opts.withStore)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	pipeOpts := opts.pipelineOptions(input, cfg)
	// The server picks the format per route; the base options only name
	// the data source and chart settings.
	pipeOpts.Formats = nil

	srv, err := server.New(runner, pipeOpts, st, logger)
	if err != nil {
		return err
	}

	printInfo("Serving %s", input)
	printNextStep("Open", "http://localhost"+opts.addr)
	return srv.Serve(ctx, opts.addr)
}

// buildStore connects the chart store when requested. Without --store
// the saved-chart API stays disabled and no connection is made.
func buildStore(ctx context.Context, cfg config.Config, enabled bool) (store.Store, error) {
	if !enabled {
		return nil, nil
	}
	if cfg.Store.MongoURI == "" {
		printWarning("No mongo_uri configured; using in-memory chart store")
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:      cfg.Store.MongoURI,
		Database: cfg.Store.Database,
	})
}
