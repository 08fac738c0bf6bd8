package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vegaline/pkg/cache"
	"github.com/matzehuels/vegaline/pkg/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// configPath is the --config flag value, shared by all commands.
var configPath string

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with values
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the vegaline CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (render, serve, cache),
// configures logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. The passed context carries signal cancellation from main,
// so Ctrl-C stops long-running commands like serve.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "vegaline",
		Short:        "vegaline renders series data as interactive line charts",
		Long:         `vegaline is a CLI tool for turning tabular series data into declarative layered line charts with hover selection and tooltips, rendered by an external chart engine.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("vegaline %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/vegaline/config.toml)")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// loadConfig reads the config file named by --config, or the default
// location when the flag is unset.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// cacheDir resolves the file cache directory from the config, falling
// back to the default location.
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.DefaultCacheDir()
}

// buildCache constructs the cache backend named by the config.
// noCache forces the null backend regardless of configuration.
func buildCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
	default: // file backend, also the zero-value default
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	}
}
