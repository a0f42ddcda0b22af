// Package cache provides the artifact cache used to memoize layout and
// render results.
//
// The layout engine is pure: identical input document, method and
// options always produce the identical layout tree and artifacts. That
// makes results safe to cache by content hash. Backends:
//
//   - FileCache: JSON entries under a directory, for CLI usage
//   - RedisCache: shared cache for the HTTP service
//   - NullCache: disables caching
//
// Keys are built by a Keyer from the SHA-256 of the input plus the
// options that affect the result.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Method string `json:"method"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Method string `json:"method"`
	Format string `json:"format"`
	Theme  string `json:"theme"`
}

// Keyer builds cache keys from content hashes and options.
type Keyer interface {
	// LayoutKey keys a computed layout by document hash and options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by document hash and options.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard SHA-256 based Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard Keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
