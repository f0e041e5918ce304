// Package wall renders computed photo walls to static artifacts.
//
// # Overview
//
// Three sinks, all operating on a serialized [album.Wall] so none of
// them re-runs the packing math:
//
//   - [RenderHTML]: a self-contained HTML page with absolutely
//     positioned, lazily loaded photo tiles
//   - [RenderSVG]: a contact sheet with one rectangle (or embedded
//     image) per tile, suitable for previews and print
//   - [RenderJSON]: the wall file itself, for format parity with the
//     CLI and API
//
// Output is deterministic: tiles render in album order and no sink
// consults the clock or a random source.
//
// # Usage
//
//	page := wall.RenderHTML(w, wall.HTMLOptions{Title: "Holiday"})
//	sheet := wall.RenderSVG(w, wall.SVGOptions{Captions: true})
package wall
