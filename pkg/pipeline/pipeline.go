// Package pipeline provides the core wall-building pipeline for photowall.
//
// This package implements the complete scan → layout → render pipeline that
// can be used by CLI, server, and embedding components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Scan: Collect photos and their intrinsic dimensions from a directory
//     or manifest into an album
//  2. Layout: Pack the album into justified rows at a container width
//  3. Render: Generate output in various formats (HTML, SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "./photos",
//	    Width:   1200,
//	    Formats: []string{"html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	// Scan only
//	a, err := runner.Scan(ctx, scanOpts)
//
//	// Layout with an existing album
//	wall, err := runner.BuildWall(ctx, a, layoutOpts)
//
//	// Render with an existing wall
//	artifacts, err := runner.Render(ctx, wall, renderOpts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/cache"
	"github.com/olofgunnarsson/photowall/pkg/layout"
	"github.com/olofgunnarsson/photowall/pkg/scan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Server, and Embedders
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 1200

	// DefaultMaxItems caps how many photos a scan collects. This matches
	// scan.DefaultMaxItems to maintain consistency.
	DefaultMaxItems = scan.DefaultMaxItems
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the wall pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scan options
	Source    string `json:"source,omitempty"`     // Directory, album.json, or manifest URL
	Title     string `json:"title,omitempty"`      // Album title override
	Category  string `json:"category,omitempty"`   // Keep only photos in this category
	MaxItems  int    `json:"max_items,omitempty"`  // Cap on collected photos
	Recursive bool   `json:"recursive,omitempty"`  // Descend into subdirectories
	Refresh   bool   `json:"refresh,omitempty"`    // Bypass caches and probe again

	// Layout options
	Width  int            `json:"width,omitempty"` // Container width in pixels
	Layout layout.Options `json:"layout"`          // Row packing configuration

	// Render options
	Formats     []string `json:"formats,omitempty"`
	PageTitle   string   `json:"page_title,omitempty"`   // HTML page title
	Background  string   `json:"background,omitempty"`   // HTML page background
	Captions    bool     `json:"captions,omitempty"`     // SVG tile captions
	EmbedImages bool     `json:"embed_images,omitempty"` // SVG <image> elements
	EagerRows   int      `json:"eager_rows,omitempty"`   // HTML rows loaded eagerly

	// Runtime options (not serialized)
	Logger *log.Logger  `json:"-"`
	Prober *scan.Prober `json:"-"` // Dimension prober for manifest scans

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Album is the scanned photo collection.
	Album album.Album

	// AlbumHash is the content hash of the album.
	AlbumHash string

	// Wall is the computed layout.
	Wall album.Wall

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	RowCount   int
	ScanTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ScanHit   bool // Whether the scanned album came from cache
	LayoutHit bool // Whether the wall came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: html, svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForScan(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForScan checks required fields for scanning.
func (o *Options) ValidateForScan() error {
	if o.Source == "" {
		return fmt.Errorf("source is required")
	}
	if o.MaxItems < 0 {
		return fmt.Errorf("max_items must be non-negative, got %d", o.MaxItems)
	}
	if o.MaxItems == 0 {
		o.MaxItems = DefaultMaxItems
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 {
		return fmt.Errorf("width must be positive, got %d", o.Width)
	}
	return o.Layout.ValidateAndSetDefaults()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.EagerRows < 0 {
		return fmt.Errorf("eager_rows must be non-negative, got %d", o.EagerRows)
	}
	return ValidateFormats(o.Formats)
}

// ScanOptions returns the scan package options for this pipeline run.
func (o *Options) ScanOptions() scan.Options {
	return scan.Options{
		MaxItems:  o.MaxItems,
		Recursive: o.Recursive,
		Category:  o.Category,
		Refresh:   o.Refresh,
		Logger:    o.Logger,
	}
}

// AlbumKeyOpts returns cache key options for the scan stage.
func (o *Options) AlbumKeyOpts() cache.AlbumKeyOpts {
	return cache.AlbumKeyOpts{
		MaxItems:  o.MaxItems,
		Category:  o.Category,
		Recursive: o.Recursive,
	}
}

// WallKeyOpts returns cache key options for the layout stage.
func (o *Options) WallKeyOpts() cache.WallKeyOpts {
	return cache.WallKeyOpts{
		Width:          o.Width,
		RowHeight:      o.Layout.TargetRowHeight,
		Margin:         o.Layout.Margin,
		Precision:      o.Layout.Precision,
		JustifyLastRow: o.Layout.JustifyLastRow,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Title:       o.PageTitle,
		Background:  o.Background,
		Captions:    o.Captions,
		EmbedImages: o.EmbedImages,
		EagerRows:   o.EagerRows,
	}
}
