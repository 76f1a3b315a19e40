// Package cache provides content-addressed caching for the layout and
// rendering pipeline.
//
// The pipeline caches at two levels:
//   - Layout documents, keyed by the hash of the tree description plus
//     the grid the layout was computed under
//   - Rendered artifacts (SVG, PNG, PDF, DOT), keyed by the hash of the
//     layout document plus format, style and diagram type
//
// Backends: [FileCache] for the CLI, [RedisCache] for the server, and
// [NullCache] to disable caching. All keys are derived through a [Keyer]
// so multi-tenant deployments can namespace them with [ScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// Get reports a miss with hit=false and a nil error; errors are reserved
// for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per cache level. Layouts are cheap to recompute; artifacts
// can involve external conversion tools and keep longer.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// LayoutKeyOpts captures everything besides the tree itself that changes
// the computed layout document.
type LayoutKeyOpts struct {
	ColumnSpacing float64
	RowSpacing    float64
	NodeWidth     float64
	NodeHeight    float64
}

// ArtifactKeyOpts captures everything besides the layout document that
// changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string
	Style   string
	VizType string
}

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// LayoutKey returns the key for a layout computed from the tree with
	// the given content hash under the given grid options.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the
	// layout document with the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into the key so any change in grid,
// format or style lands on a different entry.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
