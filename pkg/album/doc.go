// Package album provides serialization types for photo albums and walls.
//
// This package defines the canonical wire format for Photowall's data,
// used for JSON files, API responses, caching, and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Album], [Wall]: Serialization types (this package)
//   - pkg/layout.Result: Internal layout representation (placements, rows)
//   - pkg/gallery.Gallery: Runtime controller holding reveal state
//
// Use [pkg/layout.Result.Export] to convert a computed layout into a [Wall].
//
// # Core Types
//
//   - [Album]: An ordered collection of photo items
//   - [Item]: A single photo with intrinsic dimensions and display metadata
//   - [Wall]: Positioned tiles for an album laid out at a specific width
//   - [Tile]: A positioned photo in a wall
//
// # Album Serialization
//
// Albums use a simple JSON format:
//
//	{
//	  "id": "summer-2025",
//	  "items": [
//	    {"id": "a", "url": "https://example.com/a.jpg", "width": 600, "height": 400}
//	  ]
//	}
//
// Common operations:
//
//	a, _ := album.ReadAlbumFile("album.json")    // File → Album
//	album.WriteAlbumFile(a, "output.json")       // Album → File
//	data, _ := album.MarshalAlbum(a)             // Album → []byte
//	parsed, _ := album.UnmarshalAlbum(data)      // []byte → Album
//
// # Item Dimensions
//
// Items carry their natural pixel dimensions. [Item.Ratio] derives the
// aspect ratio used by layout; items with missing or non-positive
// dimensions fall back to a square ratio of 1 so a single bad record
// never breaks a whole wall.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package album
