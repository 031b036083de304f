// Package cache stores rendered artifacts so unchanged inputs are not drawn
// twice.
//
// Keys come from [ArtifactKey]: a digest of the router and names file
// contents together with everything else that changes the image. The CLI
// uses a [FileCache] under the user cache directory; [NullCache] disables
// caching.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL is how long a rendered artifact stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key; ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactOpts is everything besides the input files that changes a
// rendered artifact.
type ArtifactOpts struct {
	Kind    string `json:"kind"`
	Format  string `json:"format"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

// ArtifactKey returns the cache key of one artifact rendered from inputs
// with the given digest.
func ArtifactKey(digest string, opts ArtifactOpts) string {
	return hashKey("artifact", digest, opts)
}

// Dir returns the cache directory: $XDG_CACHE_HOME/<app>, falling back to
// ~/.cache/<app>.
func Dir(app string) (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, app), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", app), nil
}
