package gallery

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/layout"
)

var (
	_ Surface  = (*mockSurface)(nil)
	_ Viewer   = (*mockViewer)(nil)
	_ Lightbox = (*mockLightbox)(nil)
)

type mockSurface struct {
	width       int
	shown       []album.Tile
	showCalls   int
	updated     []album.Tile
	updateCalls int
	clearCalls  int
	wallHeight  float64
	empty       bool
	emptyCalls  int
	complete    bool
}

func (s *mockSurface) Width() int { return s.width }

func (s *mockSurface) Show(tiles []album.Tile) {
	s.showCalls++
	s.shown = append(s.shown, tiles...)
}

func (s *mockSurface) Update(tiles []album.Tile) {
	s.updateCalls++
	s.updated = tiles
}

func (s *mockSurface) Clear() {
	s.clearCalls++
	s.shown = nil
}

func (s *mockSurface) SetWallHeight(h float64) { s.wallHeight = h }

func (s *mockSurface) SetEmpty(empty bool) {
	s.emptyCalls++
	s.empty = empty
}

func (s *mockSurface) SetComplete(complete bool) { s.complete = complete }

type mockViewer struct {
	height int
	offset int
}

func (v *mockViewer) ViewportHeight() int { return v.height }
func (v *mockViewer) GalleryOffset() int  { return v.offset }

type mockLightbox struct {
	entries    []LightboxEntry
	resetCalls int
}

func (l *mockLightbox) Append(entries []LightboxEntry) {
	l.entries = append(l.entries, entries...)
}

func (l *mockLightbox) Reset() {
	l.resetCalls++
	l.entries = nil
}

// landscapes builds n 900x600 photos, which pack two per row in a
// 1000px container at target height 300.
func landscapes(n int) []album.Item {
	items := make([]album.Item, n)
	for i := range items {
		items[i] = album.Item{
			ID:     fmt.Sprintf("p%02d", i),
			URL:    fmt.Sprintf("https://photos.test/p%02d.jpg", i),
			Width:  900,
			Height: 600,
		}
	}
	return items
}

func testOptions() Options {
	return Options{
		Layout:      layout.Options{TargetRowHeight: 300, Margin: 5},
		RowsPerPage: 2,
	}
}

func newTestGallery(t *testing.T, width int, opts Options) (*Gallery, *mockSurface) {
	t.Helper()
	surface := &mockSurface{width: width}
	g, err := New(surface, &mockViewer{height: 800, offset: 100}, opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g, surface
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNew(t *testing.T) {
	surface := &mockSurface{width: 1000}
	viewer := &mockViewer{height: 800}

	if _, err := New(nil, viewer, testOptions()); !errors.Is(err, ErrNoSurface) {
		t.Errorf("New(nil surface) error = %v, want ErrNoSurface", err)
	}
	if _, err := New(surface, nil, testOptions()); !errors.Is(err, ErrNoViewer) {
		t.Errorf("New(nil viewer) error = %v, want ErrNoViewer", err)
	}

	opts := testOptions()
	opts.RowsPerPage = -1
	if _, err := New(surface, viewer, opts); err == nil {
		t.Error("New with negative rows per page should fail")
	}

	g, err := New(surface, viewer, testOptions())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if g == nil {
		t.Fatal("New() returned nil gallery")
	}
}

func TestInitRevealsFirstPage(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())

	var pages [][2]int
	g.OnPage(func(offset, limit int) { pages = append(pages, [2]int{offset, limit}) })

	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	// Two rows of two photos each.
	if g.Revealed() != 4 {
		t.Errorf("Revealed() = %d, want 4", g.Revealed())
	}
	if g.RevealedRows() != 2 {
		t.Errorf("RevealedRows() = %d, want 2", g.RevealedRows())
	}
	if surface.showCalls != 1 {
		t.Errorf("showCalls = %d, want 1", surface.showCalls)
	}
	if len(surface.shown) != 4 {
		t.Fatalf("shown tiles = %d, want 4", len(surface.shown))
	}

	first := surface.shown[0]
	if first.ItemID != "p00" || first.Row != 0 {
		t.Errorf("first tile = %+v, want p00 in row 0", first)
	}
	if !near(first.Width, 497.5) || !near(first.Height, 331.667) {
		t.Errorf("first tile size = %gx%g, want 497.5x331.667", first.Width, first.Height)
	}
	if !near(surface.wallHeight, 668.334) {
		t.Errorf("wallHeight = %g, want 668.334", surface.wallHeight)
	}

	if surface.empty {
		t.Error("empty indicator should be off after reveal")
	}
	if surface.complete {
		t.Error("complete indicator should be off with 6 items unrevealed")
	}

	// One lookahead request: two more rows, two photos each.
	if len(pages) != 1 {
		t.Fatalf("pager calls = %d, want 1", len(pages))
	}
	if pages[0] != [2]int{10, 4} {
		t.Errorf("pager call = %v, want [10 4]", pages[0])
	}
}

func TestInitEmpty(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())

	var pages [][2]int
	g.OnPage(func(offset, limit int) { pages = append(pages, [2]int{offset, limit}) })

	if err := g.Init(nil); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if g.Revealed() != 0 {
		t.Errorf("Revealed() = %d, want 0", g.Revealed())
	}
	if surface.showCalls != 0 {
		t.Errorf("showCalls = %d, want 0", surface.showCalls)
	}
	if !surface.empty {
		t.Error("empty indicator should be on")
	}

	// Estimated two photos per row, two rows per page, doubled for the
	// first load.
	if len(pages) != 1 {
		t.Fatalf("pager calls = %d, want 1", len(pages))
	}
	if pages[0] != [2]int{0, 8} {
		t.Errorf("pager call = %v, want [0 8]", pages[0])
	}
}

func TestRevealRowsEmptyCollection(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())
	if err := g.Init(nil); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	var pages [][2]int
	g.OnPage(func(offset, limit int) { pages = append(pages, [2]int{offset, limit}) })

	g.RevealRows(1)

	if g.Revealed() != 0 {
		t.Errorf("Revealed() = %d, want 0", g.Revealed())
	}
	if surface.showCalls != 0 {
		t.Errorf("showCalls = %d, want 0", surface.showCalls)
	}
	if !surface.empty || surface.emptyCalls == 0 {
		t.Error("empty-state signal should fire on an empty reveal")
	}

	// The pager still gets a request, sized from the default aspect
	// ratio estimate rather than zero.
	if len(pages) != 1 {
		t.Fatalf("pager calls = %d, want 1", len(pages))
	}
	if pages[0] != [2]int{0, 8} {
		t.Errorf("pager call = %v, want [0 8]", pages[0])
	}
}

func TestRowsPerPage(t *testing.T) {
	tests := []struct {
		name      string
		rowsPer   int
		rowHeight int
		height    int
		offset    int
		want      int
	}{
		{"fixed", 7, 300, 800, 100, 7},
		{"derived from viewport", 0, 350, 800, 100, 2},
		{"derived larger viewport", 0, 300, 900, 60, 4},
		{"clamped to minimum", 0, 300, 300, 100, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := &mockSurface{width: 1000}
			viewer := &mockViewer{height: tt.height, offset: tt.offset}
			opts := Options{
				Layout:      layout.Options{TargetRowHeight: tt.rowHeight, Margin: 5},
				RowsPerPage: tt.rowsPer,
			}
			g, err := New(surface, viewer, opts)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if got := g.RowsPerPage(); got != tt.want {
				t.Errorf("RowsPerPage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddItemsRevealsWhenFullyRevealed(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())

	var pages [][2]int
	g.OnPage(func(offset, limit int) { pages = append(pages, [2]int{offset, limit}) })

	// Four photos fill the first page exactly, so everything is revealed.
	if err := g.Init(landscapes(4)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if g.Revealed() != 4 {
		t.Fatalf("Revealed() = %d, want 4", g.Revealed())
	}
	if !surface.complete {
		t.Error("complete indicator should be on with everything revealed")
	}

	more := landscapes(8)[4:]
	if err := g.AddItems(more); err != nil {
		t.Fatalf("AddItems() error: %v", err)
	}

	// One fresh page of the new photos appears without a scroll.
	if g.Revealed() != 8 {
		t.Errorf("Revealed() = %d, want 8", g.Revealed())
	}
	if surface.showCalls != 2 {
		t.Errorf("showCalls = %d, want 2", surface.showCalls)
	}
	if surface.updateCalls != 1 {
		t.Errorf("updateCalls = %d, want 1", surface.updateCalls)
	}
	if !surface.complete {
		t.Error("complete indicator should be on again")
	}
	if len(pages) != 2 {
		t.Fatalf("pager calls = %d, want 2", len(pages))
	}
	if pages[1] != [2]int{8, 4} {
		t.Errorf("second pager call = %v, want [8 4]", pages[1])
	}
}

func TestAddItemsNoRevealWhenBacklogRemains(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())

	var pagerCalls int
	g.OnPage(func(offset, limit int) { pagerCalls++ })

	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := g.AddItems(landscapes(12)[10:]); err != nil {
		t.Fatalf("AddItems() error: %v", err)
	}

	// Unrevealed backlog already existed, so nothing new appears.
	if g.Revealed() != 4 {
		t.Errorf("Revealed() = %d, want 4", g.Revealed())
	}
	if surface.showCalls != 1 {
		t.Errorf("showCalls = %d, want 1", surface.showCalls)
	}
	if pagerCalls != 1 {
		t.Errorf("pager calls = %d, want 1", pagerCalls)
	}
}

func TestAddItemsRepacksPartialLastRow(t *testing.T) {
	opts := testOptions()
	opts.RowsPerPage = 1
	g, surface := newTestGallery(t, 1000, opts)

	// Three photos: a full row of two plus a lone photo in the last row.
	items := landscapes(3)
	if err := g.Init(items); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	g.RevealRows(1)
	if g.Revealed() != 3 {
		t.Fatalf("Revealed() = %d, want 3", g.Revealed())
	}

	// The lone photo kept its natural size in the last row.
	lone := surface.shown[2]
	if !near(lone.Width, 450) || !near(lone.Height, 300) {
		t.Fatalf("lone tile size = %gx%g, want 450x300", lone.Width, lone.Height)
	}

	if err := g.AddItems(landscapes(6)[3:]); err != nil {
		t.Fatalf("AddItems() error: %v", err)
	}

	// The formerly last row gained a partner and justified; the revealed
	// prefix was re-positioned accordingly.
	if surface.updateCalls != 1 {
		t.Fatalf("updateCalls = %d, want 1", surface.updateCalls)
	}
	moved := surface.updated[2]
	if !near(moved.Width, 497.5) || !near(moved.Height, 331.667) {
		t.Errorf("repacked tile size = %gx%g, want 497.5x331.667", moved.Width, moved.Height)
	}

	// Revealing one row completes the partial row, nothing more.
	if g.Revealed() != 4 {
		t.Errorf("Revealed() = %d, want 4", g.Revealed())
	}
	if g.RevealedRows() != 2 {
		t.Errorf("RevealedRows() = %d, want 2", g.RevealedRows())
	}
}

func TestRevealRowsCountsFromMidRowFrontier(t *testing.T) {
	g, _ := newTestGallery(t, 1000, testOptions())

	// Three photos reveal fully: a row of two plus a lone photo.
	if err := g.Init(landscapes(3)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if g.Revealed() != 3 {
		t.Fatalf("Revealed() = %d, want 3", g.Revealed())
	}

	// Ten more photos re-pack the formerly last row, leaving the
	// materialized frontier in the middle of row 1. The automatic page
	// reveal must complete row 1 and add row 2, not walk three rows.
	if err := g.AddItems(landscapes(13)[3:]); err != nil {
		t.Fatalf("AddItems() error: %v", err)
	}
	if g.Revealed() != 6 {
		t.Errorf("Revealed() = %d, want 6", g.Revealed())
	}
	if g.RevealedRows() != 3 {
		t.Errorf("RevealedRows() = %d, want 3", g.RevealedRows())
	}

	// From a row-aligned frontier the walk is unchanged.
	g.RevealRows(1)
	if g.Revealed() != 8 {
		t.Errorf("Revealed() = %d, want 8", g.Revealed())
	}
	if g.RevealedRows() != 4 {
		t.Errorf("RevealedRows() = %d, want 4", g.RevealedRows())
	}
}

func TestOnScroll(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())

	var pages [][2]int
	g.OnPage(func(offset, limit int) { pages = append(pages, [2]int{offset, limit}) })

	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pager calls after init = %d, want 1", len(pages))
	}

	// Wall bottom sits at offset 100 + height 668; the viewport bottom
	// crosses it on the first downward scroll.
	g.OnScroll(50)
	if g.Revealed() != 6 {
		t.Errorf("Revealed() = %d, want 6 after crossing scroll", g.Revealed())
	}
	if surface.showCalls != 2 {
		t.Errorf("showCalls = %d, want 2", surface.showCalls)
	}
	if len(pages) != 2 {
		t.Fatalf("pager calls = %d, want 2", len(pages))
	}
	if pages[1] != [2]int{10, 2} {
		t.Errorf("scroll pager call = %v, want [10 2]", pages[1])
	}

	// Same position again: no net downward movement, nothing happens.
	g.OnScroll(50)
	if g.Revealed() != 6 || len(pages) != 2 {
		t.Error("repeated scroll position should reveal nothing")
	}

	// Upward movement, nothing happens.
	g.OnScroll(20)
	if g.Revealed() != 6 || len(pages) != 2 {
		t.Error("upward scroll should reveal nothing")
	}

	// Downward but short of the taller wall bottom, nothing happens.
	g.OnScroll(60)
	if g.Revealed() != 6 || len(pages) != 2 {
		t.Error("scroll short of the wall bottom should reveal nothing")
	}
}

func TestResizePreservesRowCount(t *testing.T) {
	lightbox := &mockLightbox{}
	opts := testOptions()
	opts.Lightbox = lightbox
	g, surface := newTestGallery(t, 1000, opts)

	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if g.Revealed() != 4 || g.RevealedRows() != 2 {
		t.Fatalf("Revealed() = %d in %d rows, want 4 in 2", g.Revealed(), g.RevealedRows())
	}

	// At 600px the same photos pack one per row, so the preserved two
	// rows now cover two photos.
	surface.width = 600
	if err := g.Resize(); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}

	if g.RevealedRows() != 2 {
		t.Errorf("RevealedRows() = %d, want 2", g.RevealedRows())
	}
	if g.Revealed() != 2 {
		t.Errorf("Revealed() = %d, want 2", g.Revealed())
	}
	if surface.clearCalls != 2 { // once from Init, once from Resize
		t.Errorf("clearCalls = %d, want 2", surface.clearCalls)
	}
	if len(surface.shown) != 2 {
		t.Fatalf("shown tiles = %d, want 2", len(surface.shown))
	}

	// Lone rows justify to the full width.
	first := surface.shown[0]
	if !near(first.Width, 600) || !near(first.Height, 400) {
		t.Errorf("resized tile = %gx%g, want 600x400", first.Width, first.Height)
	}
	if !near(surface.wallHeight, 805) {
		t.Errorf("wallHeight = %g, want 805", surface.wallHeight)
	}

	// The viewer index was rebuilt in lockstep.
	if lightbox.resetCalls != 2 { // once from Init, once from Resize
		t.Errorf("lightbox resets = %d, want 2", lightbox.resetCalls)
	}
	if len(lightbox.entries) != 2 {
		t.Errorf("lightbox entries = %d, want 2", len(lightbox.entries))
	}
}

func TestResizeSameWidthIsNoOp(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())
	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if err := g.Resize(); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	if surface.clearCalls != 1 { // only the one from Init
		t.Errorf("clearCalls = %d, want 1", surface.clearCalls)
	}
	if surface.showCalls != 1 {
		t.Errorf("showCalls = %d, want 1", surface.showCalls)
	}
}

func TestResizeRevealsFreshPageWhenNothingMaterialized(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())
	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	g.Reset()
	surface.width = 600
	if err := g.Resize(); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}

	// Nothing was materialized, so a fresh page of rows appears.
	if g.RevealedRows() != 2 {
		t.Errorf("RevealedRows() = %d, want 2", g.RevealedRows())
	}
	if g.Revealed() != 2 {
		t.Errorf("Revealed() = %d, want 2", g.Revealed())
	}
}

func TestResetKeepsAlbum(t *testing.T) {
	lightbox := &mockLightbox{}
	opts := testOptions()
	opts.Lightbox = lightbox
	g, surface := newTestGallery(t, 1000, opts)

	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	g.Reset()

	if g.Len() != 10 {
		t.Errorf("Len() = %d, want 10; reset must keep the album", g.Len())
	}
	if g.Revealed() != 0 {
		t.Errorf("Revealed() = %d, want 0", g.Revealed())
	}
	if surface.clearCalls != 2 { // once from Init, once from Reset
		t.Errorf("clearCalls = %d, want 2", surface.clearCalls)
	}
	if surface.wallHeight != 0 {
		t.Errorf("wallHeight = %g, want 0", surface.wallHeight)
	}
	if !surface.empty {
		t.Error("empty indicator should be restored")
	}
	if surface.complete {
		t.Error("complete indicator should be off")
	}
	if lightbox.resetCalls != 2 { // once from Init, once from Reset
		t.Errorf("lightbox resets = %d, want 2", lightbox.resetCalls)
	}

	// Revealing starts over from the first row.
	g.RevealRows(1)
	if g.Revealed() != 2 {
		t.Errorf("Revealed() = %d, want 2", g.Revealed())
	}
	if len(surface.shown) != 2 || surface.shown[0].ItemID != "p00" {
		t.Error("reveal after reset should start from the first photo")
	}
}

func TestRevealRowsClampsPastEnd(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())

	var pages [][2]int
	g.OnPage(func(offset, limit int) { pages = append(pages, [2]int{offset, limit}) })

	if err := g.Init(landscapes(3)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if g.Revealed() != 3 {
		t.Fatalf("Revealed() = %d, want 3", g.Revealed())
	}
	if !surface.complete {
		t.Error("complete indicator should be on")
	}

	g.RevealRows(5)

	if g.Revealed() != 3 {
		t.Errorf("Revealed() = %d, want 3; reveals past the end clamp", g.Revealed())
	}
	if surface.showCalls != 1 {
		t.Errorf("showCalls = %d, want 1", surface.showCalls)
	}
	// The pager is still asked for five more rows' worth.
	if len(pages) != 2 {
		t.Fatalf("pager calls = %d, want 2", len(pages))
	}
	if pages[1] != [2]int{3, 10} {
		t.Errorf("pager call = %v, want [3 10]", pages[1])
	}
}

func TestSetEndOfDataStopsPaging(t *testing.T) {
	g, _ := newTestGallery(t, 1000, testOptions())

	var pagerCalls, completions int
	g.OnPage(func(offset, limit int) { pagerCalls++ })
	g.OnComplete(func() { completions++ })

	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if pagerCalls != 1 {
		t.Fatalf("pager calls = %d, want 1", pagerCalls)
	}

	g.SetEndOfData()
	g.SetEndOfData() // idempotent

	if completions != 1 {
		t.Errorf("completion callbacks = %d, want 1", completions)
	}
	if !g.EndOfData() {
		t.Error("EndOfData() = false, want true")
	}

	g.RevealRows(1)
	if g.Revealed() != 6 {
		t.Errorf("Revealed() = %d, want 6; reveals continue after end of data", g.Revealed())
	}
	if pagerCalls != 1 {
		t.Errorf("pager calls = %d, want 1; paging stops after end of data", pagerCalls)
	}
}

func TestLightboxLockstep(t *testing.T) {
	lightbox := &mockLightbox{}
	opts := testOptions()
	opts.Lightbox = lightbox
	g, _ := newTestGallery(t, 1000, opts)

	if err := g.Init(landscapes(10)); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if len(lightbox.entries) != 4 {
		t.Fatalf("lightbox entries = %d, want 4", len(lightbox.entries))
	}

	first := lightbox.entries[0]
	if first.URL != "https://photos.test/p00.jpg" {
		t.Errorf("entry URL = %q, want the full-size URL", first.URL)
	}
	if first.Width != 900 || first.Height != 600 {
		t.Errorf("entry size = %dx%d, want 900x600", first.Width, first.Height)
	}

	g.RevealRows(1)
	if len(lightbox.entries) != 6 {
		t.Errorf("lightbox entries = %d, want 6", len(lightbox.entries))
	}
}

func TestPagerMayAddItemsSynchronously(t *testing.T) {
	g, surface := newTestGallery(t, 1000, testOptions())

	// The pager responds immediately, the way an in-memory source would.
	// This must not deadlock, and the delivered page reveals itself.
	var delivered bool
	g.OnPage(func(offset, limit int) {
		if delivered {
			g.SetEndOfData()
			return
		}
		delivered = true
		if err := g.AddItems(landscapes(6)); err != nil {
			t.Errorf("AddItems() error: %v", err)
		}
	})

	if err := g.Init(nil); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if g.Revealed() != 4 {
		t.Errorf("Revealed() = %d, want 4", g.Revealed())
	}
	if surface.empty {
		t.Error("empty indicator should be off once photos arrive")
	}
	if !g.EndOfData() {
		t.Error("EndOfData() = false, want true")
	}
}
