// Package config loads the vegaline configuration file.
//
// Configuration lives in a TOML file, by default at
// ~/.config/vegaline/config.toml. Every setting has a flag or option
// equivalent; precedence is flags over file over built-in defaults, so
// the file only needs the settings the user wants to pin.
//
// # File Format
//
//	[chart]
//	x_label = "Time"
//	y_label = "Value"
//	width   = 800
//	height  = 600
//
//	[render]
//	formats     = ["html", "json"]
//	service_url = "http://localhost:8800"
//
//	[cache]
//	backend = "file"        # none, file, or redis
//	dir     = ""            # file backend; empty means the default dir
//	redis_addr = "localhost:6379"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//	database  = "vegaline"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/vegaline/pkg/errors"
)

// Cache backend names.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the full configuration file contents.
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// ChartConfig holds default chart construction options.
type ChartConfig struct {
	XLabel string `toml:"x_label"`
	YLabel string `toml:"y_label"`
	XType  string `toml:"x_type"`
	YType  string `toml:"y_type"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats    []string `toml:"formats"`
	ServiceURL string   `toml:"service_url"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

// StoreConfig configures the chart store.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{Backend: CacheFile},
	}
}

// DefaultPath returns the default config file location,
// ~/.config/vegaline/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
	}
	return filepath.Join(home, ".config", "vegaline", "config.toml"), nil
}

// DefaultCacheDir returns the default file cache location,
// ~/.cache/vegaline.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
	}
	return filepath.Join(home, ".cache", "vegaline"), nil
}

// Load reads the config file at path. A missing file is not an error:
// the built-in defaults are returned. An empty path means the default
// location.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enum-valued settings.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", CacheNone, CacheFile, CacheRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	return nil
}
