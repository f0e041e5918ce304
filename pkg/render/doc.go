// Package render groups the wall output renderers.
//
// # Overview
//
// Renderers turn a positioned [album.Wall] into publishable artifacts.
// All the packing math happened upstream; renderers only translate tile
// positions into a target format.
//
// The [wall] subpackage provides the three formats:
//
//   - HTML: a self-contained page with absolutely positioned photo tiles,
//     eager loading for the first rows and lazy loading below
//   - SVG: a contact sheet with one element per tile, either colored
//     rectangles or referenced photos
//   - JSON: the wall itself, for API parity with the serve endpoints
//
//	html := wall.RenderHTML(w, wall.HTMLOptions{Title: "Summer"})
//	svg := wall.RenderSVG(w, wall.SVGOptions{Captions: true})
//	data, err := wall.RenderJSON(w)
//
// [wall]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/render/wall
// [album.Wall]: https://pkg.go.dev/github.com/olofgunnarsson/photowall/pkg/album#Wall
package render
