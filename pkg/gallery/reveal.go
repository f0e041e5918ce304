package gallery

import (
	"fmt"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/layout"
)

// =============================================================================
// Lifecycle
// =============================================================================

// Init loads an album from scratch: any previous tiles, selection, and
// end-of-data mark are dropped, the layout is computed, and the first
// page is revealed. An empty album shows the empty state and asks the
// pager for a first page sized from the default aspect ratio.
func (g *Gallery) Init(items []album.Item) error {
	g.mu.Lock()
	g.items = append([]album.Item(nil), items...)
	g.revealed = 0
	g.lastScroll = 0
	g.endOfData = false
	g.selected = make(map[string]struct{})
	g.surface.Clear()
	g.surface.SetWallHeight(0)
	if g.lightbox != nil {
		g.lightbox.Reset()
	}
	if err := g.relayout(); err != nil {
		g.mu.Unlock()
		return err
	}
	g.logger.Debug("gallery initialized", "items", len(g.items), "width", g.width)

	var notes []func()
	if len(g.items) == 0 {
		g.syncIndicators()
		notes = g.requestPage(g.rowsPerPage())
	} else {
		notes = g.revealRows(g.rowsPerPage())
	}
	g.mu.Unlock()

	run(notes)
	return nil
}

// AddItems appends items to the album and re-packs the layout. Tiles that
// were already revealed keep their materialized state but may move, since
// the formerly last row can pack differently with more items behind it.
// If everything held was already revealed, one fresh page of the new
// items is revealed immediately.
func (g *Gallery) AddItems(items []album.Item) error {
	if len(items) == 0 {
		return nil
	}

	g.mu.Lock()
	wasComplete := g.revealed == len(g.items)
	g.items = append(g.items, items...)
	if err := g.relayout(); err != nil {
		g.mu.Unlock()
		return err
	}
	if g.revealed > 0 {
		g.surface.Update(g.tilesFor(0, g.revealed))
		g.surface.SetWallHeight(g.result.HeightThrough(g.revealedRows()))
	}
	g.logger.Debug("items added", "added", len(items), "total", len(g.items))

	var notes []func()
	if wasComplete {
		notes = g.revealRows(g.rowsPerPage())
	} else {
		g.syncIndicators()
	}
	g.mu.Unlock()

	run(notes)
	return nil
}

// RevealRows materializes n more rows. The current partial row, if any,
// is completed first and counts toward n. Requests past the end of the
// album are clamped. The pager is asked for n more rows' worth of items
// so the next reveal has data waiting.
func (g *Gallery) RevealRows(n int) {
	g.mu.Lock()
	notes := g.revealRows(n)
	g.mu.Unlock()
	run(notes)
}

// OnScroll reports a new scroll position. When the viewport bottom
// reaches the bottom of the revealed wall on a downward scroll, one more
// row is revealed and the pager is asked for one row's worth of items.
func (g *Gallery) OnScroll(scrollTop int) {
	g.mu.Lock()
	down := scrollTop > g.lastScroll
	g.lastScroll = scrollTop
	if !down {
		g.mu.Unlock()
		return
	}

	viewportBottom := scrollTop + g.viewer.ViewportHeight()
	wallBottom := g.viewer.GalleryOffset() + int(g.result.HeightThrough(g.revealedRows()))
	if viewportBottom < wallBottom {
		g.mu.Unlock()
		return
	}

	notes := g.revealRows(1)
	g.mu.Unlock()
	run(notes)
}

// Resize re-packs the layout for the surface's current width and
// re-reveals as many rows as were revealed before, or a fresh page if
// nothing was. Item counts per row change with the width, so the same
// row count can cover a different item prefix. A resize to the same
// width is a no-op.
func (g *Gallery) Resize() error {
	g.mu.Lock()
	if g.surface.Width() == g.width {
		g.mu.Unlock()
		return nil
	}

	rows := g.revealedRows()
	if rows == 0 {
		rows = g.rowsPerPage()
	}
	if err := g.relayout(); err != nil {
		g.mu.Unlock()
		return err
	}
	g.surface.Clear()
	g.surface.SetWallHeight(0)
	if g.lightbox != nil {
		g.lightbox.Reset()
	}
	g.revealed = 0
	g.logger.Debug("gallery resized", "width", g.width, "rows", rows)

	notes := g.revealRows(rows)
	g.mu.Unlock()
	run(notes)
	return nil
}

// Reset clears the materialized tiles, the rendered wall, the viewer
// index, and the selection, restoring the empty-state indicator. The
// album itself is kept; a later [Gallery.RevealRows] starts over from
// the first row.
func (g *Gallery) Reset() {
	g.mu.Lock()
	g.revealed = 0
	g.lastScroll = 0
	g.surface.Clear()
	g.surface.SetWallHeight(0)
	if g.lightbox != nil {
		g.lightbox.Reset()
	}
	var notes []func()
	if len(g.selected) > 0 {
		g.selected = make(map[string]struct{})
		notes = g.selectionNote()
	}
	g.syncIndicators()
	g.logger.Debug("gallery reset", "items", len(g.items))
	g.mu.Unlock()
	run(notes)
}

// SetEndOfData marks the album complete: no further pager calls are
// made. Fires the completion callback once.
func (g *Gallery) SetEndOfData() {
	g.mu.Lock()
	if g.endOfData {
		g.mu.Unlock()
		return
	}
	g.endOfData = true
	note := g.onComplete
	g.mu.Unlock()

	if note != nil {
		note()
	}
}

// RowsPerPage returns the page size in rows currently in effect.
func (g *Gallery) RowsPerPage() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rowsPerPage()
}

// =============================================================================
// Internals
// =============================================================================

// relayout recomputes the layout for the surface's current width.
// Callers must hold g.mu.
func (g *Gallery) relayout() error {
	width := g.surface.Width()
	result, err := layout.Build(g.itemRatios(), width, g.opts.Layout)
	if err != nil {
		return fmt.Errorf("packing %d items into width %d: %w", len(g.items), width, err)
	}
	g.result = result
	g.width = width
	return nil
}

// revealRows materializes rows until revealedRows()+n rows are shown,
// then queues a pager request for n more rows' worth of items. Returns
// callbacks to run after the lock is released. Callers must hold g.mu.
func (g *Gallery) revealRows(n int) []func() {
	if n <= 0 {
		return nil
	}

	// Count row boundaries from the first unmaterialized item: a partially
	// revealed row is completed first and counts toward n.
	target := g.revealedRows() + n
	if g.revealed < g.result.Len() {
		target = g.result.Placements[g.revealed].Row + n
	}
	newCount := g.result.ItemsThrough(target)
	if newCount > g.revealed {
		g.surface.Show(g.tilesFor(g.revealed, newCount))
		if g.lightbox != nil {
			g.lightbox.Append(g.lightboxEntries(g.revealed, newCount))
		}
		g.revealed = newCount
		g.surface.SetWallHeight(g.result.HeightThrough(g.revealedRows()))
		g.logger.Debug("rows revealed", "rows", g.revealedRows(), "items", g.revealed)
	}
	g.syncIndicators()

	return g.requestPage(n)
}

// lightboxEntries builds viewer-index entries for the placement range
// [start, end). Callers must hold g.mu.
func (g *Gallery) lightboxEntries(start, end int) []LightboxEntry {
	entries := make([]LightboxEntry, 0, end-start)
	for _, p := range g.result.Placements[start:end] {
		it := g.items[p.Index]
		url := it.URL
		if url == "" {
			url = it.ThumbURL
		}
		entries = append(entries, LightboxEntry{URL: url, Width: it.Width, Height: it.Height})
	}
	return entries
}

// requestPage queues a pager call for n rows' worth of items, unless the
// album is complete or no pager is registered. Callers must hold g.mu.
func (g *Gallery) requestPage(n int) []func() {
	if g.endOfData || g.pager == nil {
		return nil
	}
	pager := g.pager
	offset := len(g.items)
	limit := g.pageSize(n)
	g.logger.Debug("requesting page", "offset", offset, "limit", limit)
	return []func(){func() { pager(offset, limit) }}
}

// pageSize converts a row count into an item count. With a layout in
// hand the widest packed row is the per-row estimate; an empty gallery
// falls back to the default aspect ratio, with extra lookahead for the
// first page. Callers must hold g.mu.
func (g *Gallery) pageSize(rows int) int {
	if g.result.Len() > 0 {
		return g.result.MaxRowLen() * rows
	}
	return layout.EstimateRowCapacity(g.width, g.opts.Layout) * g.rowsPerPage() * FirstPageBuffer
}

// rowsPerPage returns the configured page size in rows, or derives one
// from the viewport height.
func (g *Gallery) rowsPerPage() int {
	if g.opts.RowsPerPage > 0 {
		return g.opts.RowsPerPage
	}
	visible := g.viewer.ViewportHeight() - g.viewer.GalleryOffset()
	rows := int(float64(visible) / (float64(g.opts.Layout.TargetRowHeight) * rowFillEstimate))
	if rows < g.opts.MinRowsAtStart {
		rows = g.opts.MinRowsAtStart
	}
	return rows
}

// itemRatios collects the aspect ratios of the held items. Callers must
// hold g.mu.
func (g *Gallery) itemRatios() []float64 {
	ratios := make([]float64, len(g.items))
	for i, it := range g.items {
		ratios[i] = it.Ratio()
	}
	return ratios
}

// run invokes queued callbacks outside the gallery lock.
func run(notes []func()) {
	for _, note := range notes {
		note()
	}
}
