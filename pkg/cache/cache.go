package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Scanned albums go stale as photos come and
// go; walls and artifacts are pure functions of their inputs and keep
// longer.
const (
	// TTLAlbum is how long scanned albums stay cached.
	TTLAlbum = 24 * time.Hour

	// TTLWall is how long computed walls stay cached.
	TTLWall = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
// Implementations: FileCache (CLI), RedisCache (server), NullCache (off).
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for each pipeline stage. Keys embed every
// option that changes the cached bytes, so stale variants never collide.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// AlbumKey generates a key for a scanned album.
	AlbumKey(source string, opts AlbumKeyOpts) string

	// WallKey generates a key for a computed wall.
	WallKey(albumHash string, opts WallKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(wallHash string, opts ArtifactKeyOpts) string
}

// AlbumKeyOpts are the scan options that affect the scanned album.
type AlbumKeyOpts struct {
	MaxItems  int
	Category  string
	Recursive bool
}

// WallKeyOpts are the layout options that affect the computed wall.
type WallKeyOpts struct {
	Width          int
	RowHeight      int
	Margin         int
	Precision      int
	JustifyLastRow bool
}

// ArtifactKeyOpts are the render options that affect the artifact bytes.
type ArtifactKeyOpts struct {
	Format      string
	Theme       string
	Title       string
	Background  string
	Captions    bool
	EmbedImages bool
	EagerRows   int
}

// DefaultKeyer generates prefix:hash keys from the stage inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// AlbumKey generates a key for a scanned album.
func (k *DefaultKeyer) AlbumKey(source string, opts AlbumKeyOpts) string {
	return hashKey("album", source, opts)
}

// WallKey generates a key for a computed wall.
func (k *DefaultKeyer) WallKey(albumHash string, opts WallKeyOpts) string {
	return hashKey("wall", albumHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(wallHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", wallHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
