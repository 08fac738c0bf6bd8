// Package cache provides pluggable caching for chart specs and rendered
// artifacts.
//
// The [Cache] interface abstracts the storage backend:
//   - NullCache: caching disabled (default for library use)
//   - FileCache: file-based cache for CLI usage
//   - RedisCache: Redis-backed cache for server deployments
//
// Cache keys are produced by a [Keyer] so that CLI and server generate
// identical keys for identical work. Keys embed a SHA-256 hash of the
// inputs, which keeps them filesystem- and Redis-safe regardless of what
// the caller puts in them.
package cache

import (
	"context"
	"time"
)

// TTLs for the different cache entry classes.
const (
	// TTLSpec is the time-to-live for built chart specs.
	TTLSpec = 24 * time.Hour

	// TTLArtifact is the time-to-live for rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLHTTP is the time-to-live for cached HTTP responses.
	TTLHTTP = time.Hour
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The bool result reports whether the key was
	// found and fresh; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SpecKeyOpts are the chart options that affect spec construction.
// Two inputs with equal data hashes and equal SpecKeyOpts produce the
// same spec, so they share a cache entry.
type SpecKeyOpts struct {
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	XType  string `json:"x_type"`
	YType  string `json:"y_type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArtifactKeyOpts are the render options that affect artifact output.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Actions bool   `json:"actions"`
	Mode    string `json:"mode"`
}

// Keyer generates cache keys for the different entry classes.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// SpecKey generates a key for built chart specs.
	SpecKey(dataHash string, opts SpecKeyOpts) string

	// ArtifactKey generates a key for rendered artifacts.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// SpecKey generates a key for built chart specs.
func (k *DefaultKeyer) SpecKey(dataHash string, opts SpecKeyOpts) string {
	return hashKey("spec", dataHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", specHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
