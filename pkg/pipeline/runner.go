package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/cache"
	"github.com/olofgunnarsson/photowall/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete scan → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Scan
	scanStart := time.Now()
	a, scanHit, err := r.ScanWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	result.Album = a
	result.Stats.ScanTime = time.Since(scanStart)
	result.Stats.ItemCount = a.Len()
	result.CacheInfo.ScanHit = scanHit

	// Compute album hash for cache keys and API responses
	if albumData, err := album.MarshalAlbum(a); err == nil {
		result.AlbumHash = cache.Hash(albumData)
	}

	r.Logger.Info("scanned album",
		"photos", a.Len(),
		"duration", result.Stats.ScanTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	w, layoutHit, err := r.BuildWallWithCacheInfo(ctx, a, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Wall = w
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RowCount = w.RowCount
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed wall",
		"rows", w.RowCount,
		"width", w.Width,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, w, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ScanWithCacheInfo scans the source with caching and returns cache hit info.
func (r *Runner) ScanWithCacheInfo(ctx context.Context, opts Options) (album.Album, bool, error) {
	if err := opts.ValidateForScan(); err != nil {
		return album.Album{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.AlbumKey(opts.Source, opts.AlbumKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if a, err := album.UnmarshalAlbum(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "album")
				return a, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "album")
	}

	// Scan
	observability.Pipeline().OnScanStart(ctx, opts.Source)
	start := time.Now()
	a, err := Scan(ctx, opts)
	observability.Pipeline().OnScanComplete(ctx, opts.Source, a.Len(), time.Since(start), err)
	if err != nil {
		return album.Album{}, false, err
	}

	// Cache the result
	if data, err := album.MarshalAlbum(a); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLAlbum) == nil {
			observability.Cache().OnCacheSet(ctx, "album", len(data))
		}
	}

	return a, false, nil // Cache miss
}

// Scan is a convenience wrapper that calls ScanWithCacheInfo and discards the cache hit info.
func (r *Runner) Scan(ctx context.Context, opts Options) (album.Album, error) {
	a, _, err := r.ScanWithCacheInfo(ctx, opts)
	return a, err
}

// BuildWallWithCacheInfo computes a wall with caching and returns cache hit info.
func (r *Runner) BuildWallWithCacheInfo(ctx context.Context, a album.Album, opts Options) (album.Wall, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return album.Wall{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	albumData, _ := album.MarshalAlbum(a)
	albumHash := cache.Hash(albumData)
	cacheKey := r.Keyer.WallKey(albumHash, opts.WallKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := album.UnmarshalWall(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "wall")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "wall")

	// Build the wall
	observability.Pipeline().OnLayoutStart(ctx, opts.Width, a.Len())
	start := time.Now()
	w, err := BuildWall(a, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Width, w.RowCount, time.Since(start), err)
	if err != nil {
		return album.Wall{}, false, err
	}

	// Cache the result
	if data, err := album.MarshalWall(w); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLWall) == nil {
			observability.Cache().OnCacheSet(ctx, "wall", len(data))
		}
	}

	return w, false, nil // Cache miss
}

// BuildWall is a convenience wrapper that calls BuildWallWithCacheInfo and discards the cache hit info.
func (r *Runner) BuildWall(ctx context.Context, a album.Album, opts Options) (album.Wall, error) {
	w, _, err := r.BuildWallWithCacheInfo(ctx, a, opts)
	return w, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, w album.Wall, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from wall data
	wallData, err := album.MarshalWall(w)
	if err != nil {
		return nil, false, fmt.Errorf("serialize wall for cache key: %w", err)
	}
	wallHash := cache.Hash(wallData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(wallHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromWall(w, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(wallHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, w album.Wall, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, w, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
