package gallery

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultMinRowsAtStart is the minimum number of rows the first page
	// reveals, regardless of viewport size.
	DefaultMinRowsAtStart = 2

	// FirstPageBuffer multiplies the first pager request of an empty
	// gallery so the initial reveal has lookahead beyond the first page.
	FirstPageBuffer = 2

	// rowFillEstimate is the fraction of the target row height assumed
	// visible per row when deriving a page size from the viewport.
	// Justified rows usually run taller than the target.
	rowFillEstimate = 0.7
)

// Sentinel errors.
var (
	// ErrNoSurface is returned by [New] when no surface is provided.
	ErrNoSurface = errors.New("surface must not be nil")

	// ErrNoViewer is returned by [New] when no viewer is provided.
	ErrNoViewer = errors.New("viewer must not be nil")

	// ErrUnknownItem is returned by [Gallery.ToggleSelect] for IDs not in
	// the album.
	ErrUnknownItem = errors.New("unknown item")

	// ErrNotSelectable is returned by [Gallery.ToggleSelect] when the
	// gallery was not configured with Options.Selectable.
	ErrNotSelectable = errors.New("gallery is not selectable")
)

// =============================================================================
// Collaborator Interfaces
// =============================================================================

// Surface is the host the gallery materializes tiles onto: a terminal
// view, an HTML document, or a test fake.
type Surface interface {
	// Width returns the current container width in pixels.
	Width() int

	// Show appends newly revealed tiles to the wall. The gallery calls
	// this exactly once per tile per materialization cycle.
	Show(tiles []album.Tile)

	// Update re-positions tiles that are already shown, identified by
	// their ItemID. Called when a re-layout moves revealed tiles.
	Update(tiles []album.Tile)

	// Clear removes every materialized tile.
	Clear()

	// SetWallHeight communicates the height of the revealed wall, so the
	// host can size its scroll area.
	SetWallHeight(h float64)

	// SetEmpty toggles the surface's empty-state indicator. It is on
	// whenever nothing is materialized.
	SetEmpty(empty bool)

	// SetComplete toggles the surface's everything-revealed indicator
	// (typically hiding a load-more control). It is on when every held
	// item is materialized.
	SetComplete(complete bool)
}

// Viewer describes the scroll viewport the wall is seen through.
type Viewer interface {
	// ViewportHeight returns the visible height of the viewport in pixels.
	ViewportHeight() int

	// GalleryOffset returns the distance in pixels from the top of the
	// scrollable content to the wall's first row.
	GalleryOffset() int
}

// Lightbox maintains the external viewer's photo index. The gallery keeps
// it in lockstep with the revealed prefix: one entry per revealed photo,
// in reveal order.
type Lightbox interface {
	// Append adds index entries for newly revealed photos.
	Append(entries []LightboxEntry)

	// Reset empties the index.
	Reset()
}

// LightboxEntry points the external viewer at one full-size photo.
type LightboxEntry struct {
	URL    string
	Width  int
	Height int
}

// PagerFunc requests more album items from the application. Offset is the
// number of items the gallery already holds; limit is how many more it
// wants. The application responds by calling [Gallery.AddItems], and
// [Gallery.SetEndOfData] once the source is exhausted.
type PagerFunc func(offset, limit int)

// SelectionFunc receives the full selection, in album order, after every
// selection change.
type SelectionFunc func(selected []album.Item)

// =============================================================================
// Options
// =============================================================================

// Options configures a gallery.
type Options struct {
	// Layout holds the row packing configuration.
	Layout layout.Options `json:"layout"`

	// RowsPerPage fixes the page size in rows. Zero derives the page size
	// from the viewport instead.
	RowsPerPage int `json:"rows_per_page,omitempty"`

	// MinRowsAtStart floors the derived page size. Zero means
	// DefaultMinRowsAtStart.
	MinRowsAtStart int `json:"min_rows_at_start,omitempty"`

	// Selectable enables ToggleSelect.
	Selectable bool `json:"selectable,omitempty"`

	// Lightbox, when set, receives viewer-index entries for revealed
	// photos.
	Lightbox Lightbox `json:"-"`

	// Logger receives debug output. Defaults to log.Default().
	Logger *log.Logger `json:"-"`
}

// validate checks option sanity and fills unset fields.
func (o *Options) validate() error {
	if err := o.Layout.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if o.RowsPerPage < 0 {
		return fmt.Errorf("rows per page must be non-negative, got %d", o.RowsPerPage)
	}
	if o.MinRowsAtStart < 0 {
		return fmt.Errorf("min rows at start must be non-negative, got %d", o.MinRowsAtStart)
	}
	if o.MinRowsAtStart == 0 {
		o.MinRowsAtStart = DefaultMinRowsAtStart
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}

// =============================================================================
// Gallery - The Disclosure Controller
// =============================================================================

// Gallery coordinates layout, reveal state, selection, and pagination for
// one photo wall. All methods are safe for concurrent use; callbacks are
// invoked without internal locks held, so they may call back into the
// gallery.
type Gallery struct {
	mu sync.Mutex

	opts     Options
	surface  Surface
	viewer   Viewer
	lightbox Lightbox
	logger   *log.Logger

	items    []album.Item
	result   layout.Result
	width    int // container width the current layout was computed for
	revealed int // materialized items; always a prefix of the album

	selected   map[string]struct{}
	endOfData  bool
	lastScroll int

	pager      PagerFunc
	onSelect   SelectionFunc
	onComplete func()
}

// New creates a gallery bound to a surface and a viewer.
func New(surface Surface, viewer Viewer, opts Options) (*Gallery, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if viewer == nil {
		return nil, ErrNoViewer
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Gallery{
		opts:     opts,
		surface:  surface,
		viewer:   viewer,
		lightbox: opts.Lightbox,
		logger:   opts.Logger,
		selected: make(map[string]struct{}),
	}, nil
}

// OnPage registers the pagination callback.
func (g *Gallery) OnPage(fn PagerFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pager = fn
}

// OnSelect registers the selection callback.
func (g *Gallery) OnSelect(fn SelectionFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onSelect = fn
}

// OnComplete registers the callback fired when the album is marked
// complete via [Gallery.SetEndOfData].
func (g *Gallery) OnComplete(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onComplete = fn
}

// =============================================================================
// Accessors
// =============================================================================

// Len returns the number of items the gallery holds.
func (g *Gallery) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

// Revealed returns the number of materialized items.
func (g *Gallery) Revealed() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.revealed
}

// RevealedRows returns the number of rows with at least one materialized
// tile.
func (g *Gallery) RevealedRows() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.revealedRows()
}

// EndOfData reports whether the album was marked complete.
func (g *Gallery) EndOfData() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.endOfData
}

// Result returns the current layout.
func (g *Gallery) Result() layout.Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

// Items returns a copy of the held items in album order.
func (g *Gallery) Items() []album.Item {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]album.Item, len(g.items))
	copy(out, g.items)
	return out
}

// =============================================================================
// Internal Helpers
// =============================================================================

// revealedRows derives the revealed row count from the last materialized
// placement. Callers must hold g.mu.
func (g *Gallery) revealedRows() int {
	if g.revealed == 0 {
		return 0
	}
	return g.result.Placements[g.revealed-1].Row + 1
}

// tilesFor denormalizes the placement range [start, end) into displayable
// tiles. Callers must hold g.mu.
func (g *Gallery) tilesFor(start, end int) []album.Tile {
	tiles := make([]album.Tile, 0, end-start)
	for _, p := range g.result.Placements[start:end] {
		tiles = append(tiles, tileFor(p, g.items[p.Index]))
	}
	return tiles
}

// syncIndicators pushes the empty and everything-revealed indicators to
// the surface. Callers must hold g.mu.
func (g *Gallery) syncIndicators() {
	g.surface.SetEmpty(g.revealed == 0)
	g.surface.SetComplete(g.revealed > 0 && g.revealed == len(g.items))
}

// tileFor denormalizes one placement into a displayable tile.
func tileFor(p layout.Placement, it album.Item) album.Tile {
	return album.Tile{
		ItemID:   it.ID,
		Row:      p.Row,
		X:        p.X,
		Y:        p.Y,
		Width:    p.Width,
		Height:   p.Height,
		URL:      it.URL,
		ThumbURL: it.Thumbnail(),
		Title:    it.Title,
		Link:     it.Link,
		Color:    it.Color,
	}
}
