// Package pkg provides the core libraries for Photowall justified layouts.
//
// # Overview
//
// Photowall packs photo collections into justified rows, where every row is
// scaled to exactly fill the container width at roughly a target height,
// and publishes the result through renderers, an HTTP API, and an
// interactive terminal browser. The pkg directory is organized into four
// main areas:
//
//  1. [layout] and [gallery] - Domain logic (row packing, incremental disclosure)
//  2. [album], [scan], [store] - Data (the album model, collection, persistence)
//  3. [render/wall] - Output formats (HTML, SVG, JSON)
//  4. [pipeline] - Orchestration (scan → layout → render) with stage caching
//
// # Architecture
//
// The typical data flow through Photowall:
//
//	Photo Directory / Manifest
//	         ↓
//	    [scan] package (collect photos + dimensions)
//	         ↓
//	    [album] package (the ordered collection)
//	         ↓
//	    [layout] package (justified row packing)
//	         ↓
//	    [render/wall] package (HTML/SVG/JSON artifacts)
//
// The [gallery] package sits beside this flow: it drives a layout
// incrementally for interactive hosts, revealing the wall row by row and
// paging more photos in from a source.
//
// # Quick Start
//
// Pack an album and render it:
//
//	import (
//	    "github.com/olofgunnarsson/photowall/pkg/album"
//	    "github.com/olofgunnarsson/photowall/pkg/layout"
//	    "github.com/olofgunnarsson/photowall/pkg/render/wall"
//	)
//
//	// 1. Load the album
//	a, _ := album.ReadAlbumFile("album.json")
//
//	// 2. Pack it into justified rows at a container width
//	res, _ := layout.Build(a.Ratios(), 1200, layout.Options{TargetRowHeight: 300})
//
//	// 3. Export the positioned wall
//	w, _ := res.Export(a)
//
//	// 4. Render to HTML
//	html := wall.RenderHTML(w, wall.HTMLOptions{Title: a.Title})
//
// # Main Packages
//
// [layout] - The row packing core. Greedy packing of aspect ratios at a
// target row height, one uniform scale factor per row, rounded cumulative
// edges so the row always lands exactly on the container width.
//
// [gallery] - Incremental disclosure over a layout: materialized prefix,
// row-aligned reveals, scroll-edge trigger, resize handling, selection,
// and pager integration for remote sources.
//
// [album] - The ordered photo collection and the positioned wall, with
// JSON (de)serialization used by files, the cache, and the API.
//
// [scan] - Photo collection from directories (header-only dimension
// decoding for JPEG, PNG, GIF, WebP, BMP, TIFF) and JSON manifests, with
// HTTP probing for entries without dimensions.
//
// [store] - Album persistence behind one interface: memory, SQLite, and
// MongoDB backends for the serve API.
//
// [cache] - Stage result caching keyed by hashed inputs, with file,
// Redis, and null backends.
//
// [pipeline] - The scan → layout → render orchestration shared by the
// CLI and the HTTP server, with per-stage caching and timing.
//
// [render/wall] - Wall artifact renderers: a self-contained HTML page
// with lazy-loading tiles, an SVG contact sheet, and the wall JSON.
//
// [httputil] - Cached HTTP fetching and retry helpers used by probing.
//
// [errors] - Coded errors shared across packages and mapped to HTTP
// statuses by the serve API.
//
// [observability] - Hook points for cache and pipeline events, no-ops by
// default.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [layout]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/layout
// [gallery]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/gallery
// [album]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/album
// [scan]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/scan
// [store]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/store
// [cache]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/pipeline
// [render/wall]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/render/wall
// [httputil]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/errors
// [observability]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/observability
package pkg
