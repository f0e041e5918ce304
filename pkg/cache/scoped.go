package cache

// ScopedKeyer wraps a Keyer with a prefix so several galleries can share
// one cache backend without key collisions. The serve command uses this
// when one Redis instance backs multiple sites.
//
// Example usage:
//
//	// Site-specific keys
//	siteKeyer := NewScopedKeyer(NewDefaultKeyer(), "site:travel:")
//
//	// Unscoped keys for a single-gallery deployment
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

// AlbumKey generates a prefixed key for a scanned album.
func (k *ScopedKeyer) AlbumKey(source string, opts AlbumKeyOpts) string {
	return k.prefix + k.inner.AlbumKey(source, opts)
}

// WallKey generates a prefixed key for a computed wall.
func (k *ScopedKeyer) WallKey(albumHash string, opts WallKeyOpts) string {
	return k.prefix + k.inner.WallKey(albumHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(wallHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(wallHash, opts)
}
