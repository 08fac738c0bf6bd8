package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when a shared Redis serves several preview deployments
// that must not see each other's cached artifacts.
//
// Example usage:
//
//	// Deployment-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Global keys
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// SpecKey generates a prefixed key for built chart specs.
func (k *ScopedKeyer) SpecKey(dataHash string, opts SpecKeyOpts) string {
	return k.prefix + k.inner.SpecKey(dataHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(specHash, opts)
}
