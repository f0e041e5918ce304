// Package gallery drives the progressive disclosure of a photo wall.
//
// # Overview
//
// A [Gallery] owns the album items, the current justified layout, and the
// reveal state: how much of the wall the viewer has seen. It materializes
// tiles onto a [Surface] one page of rows at a time, asks a [PagerFunc] for
// more data before the viewer runs out, and keeps everything consistent
// across container resizes.
//
// The controller is presentation-agnostic. A Surface can be a terminal
// view, an HTML document, or a test fake; the gallery only ever hands it
// positioned tiles plus two indicator toggles: the empty state (nothing
// materialized) and the complete state (every held item materialized, so
// any load-more control can hide).
//
// # Lifecycle
//
//	g, _ := gallery.New(surface, viewer, gallery.Options{
//	    Layout: layout.Options{TargetRowHeight: 300, Margin: 5},
//	})
//	g.OnPage(func(offset, limit int) { /* fetch and g.AddItems(...) */ })
//	g.Init(items)
//
// Init either reveals the first page (items present) or shows the empty
// state and sizes and fires the first pager request. From then on:
//
//   - [Gallery.AddItems] extends the album and re-packs the wall. When the
//     viewer had already seen everything, one page of the new content is
//     revealed immediately.
//   - [Gallery.OnScroll] reveals one more row whenever the viewer scrolls
//     down to the bottom of the revealed wall.
//   - [Gallery.Resize] re-packs at the new width and restores the number
//     of rows that were revealed before, or a fresh page if none were.
//   - [Gallery.Reset] clears the materialized tiles, the viewer index, and
//     the selection but keeps the album; revealing starts over from the
//     first row.
//   - [Gallery.SetEndOfData] marks the album complete: pager requests stop
//     and the completion callback fires.
//
// # Reveal State
//
// The revealed region is always a prefix of the album, tracked by item
// count. Row-oriented operations derive the revealed row count from the
// last revealed placement, so reveals stay correct even after re-layouts
// shuffle row boundaries.
//
// When a [Lightbox] is configured, the gallery mirrors the revealed
// prefix into it: one full-size photo entry per revealed item, appended
// in reveal order and reset together with the wall.
//
// # Pagination Sizing
//
// Pager requests carry the offset (items currently held) and a limit:
//
//   - With a layout in hand, a request for n rows asks for MaxRowLen × n
//     items, enough to fill n rows even if they all pack as tightly as the
//     fullest row seen so far.
//   - An empty gallery estimates capacity from the default aspect ratio and
//     asks for [FirstPageBuffer] pages up front.
//
// # Selection
//
// When [Options.Selectable] is set, [Gallery.ToggleSelect] flips an item in
// and out of the selection and notifies the [SelectionFunc] callback with
// the full selection, in album order.
package gallery
