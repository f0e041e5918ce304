package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/gallery"
)

// Terminal-to-pixel scale. The wall is laid out in pixels and drawn on a
// character grid, so one cell stands in for a block of pixels. Cells are
// roughly twice as tall as they are wide.
const (
	cellWidthPx  = 10
	cellHeightPx = 20

	// Lines occupied by the title, help, and status chrome around the wall.
	chromeLines = 5
)

// Wall styles
var (
	browseDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	browseTileStyle     = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("237"))
	browseSelectedStyle = lipgloss.NewStyle().Foreground(colorGreen).Background(lipgloss.Color("237")).Bold(true)
	browseCursorStyle   = lipgloss.NewStyle().Foreground(colorCyan).Background(lipgloss.Color("239")).Bold(true).Reverse(true)
)

// =============================================================================
// wallState - Surface and Viewer for the Terminal
// =============================================================================

// wallState is the terminal-backed gallery surface and viewport. The
// gallery materializes tiles onto it; the model draws from it.
type wallState struct {
	widthPx    int
	viewportPx int
	tiles      []album.Tile
	wallHeight float64
	empty      bool
	complete   bool
}

func (s *wallState) Width() int { return s.widthPx }

func (s *wallState) Show(tiles []album.Tile) {
	s.tiles = append(s.tiles, tiles...)
}

func (s *wallState) Update(tiles []album.Tile) {
	moved := make(map[string]album.Tile, len(tiles))
	for _, t := range tiles {
		moved[t.ItemID] = t
	}
	for i, t := range s.tiles {
		if nt, ok := moved[t.ItemID]; ok {
			s.tiles[i] = nt
		}
	}
}

func (s *wallState) Clear()                  { s.tiles = nil }
func (s *wallState) SetWallHeight(h float64) { s.wallHeight = h }
func (s *wallState) SetEmpty(empty bool)     { s.empty = empty }
func (s *wallState) SetComplete(c bool)      { s.complete = c }

func (s *wallState) ViewportHeight() int { return s.viewportPx }
func (s *wallState) GalleryOffset() int  { return 0 }

// =============================================================================
// pagedSource - The Album File as a Paged Source
// =============================================================================

// pagedSource serves the loaded album in windows, the way a remote API
// would, so browsing exercises the same incremental path the serve API
// clients use.
type pagedSource struct {
	items  []album.Item
	served int
	g      *gallery.Gallery
}

// page delivers the next window synchronously.
func (p *pagedSource) page(offset, limit int) {
	end := p.served + limit
	if end > len(p.items) {
		end = len(p.items)
	}
	batch := p.items[p.served:end]
	p.served = end

	if len(batch) > 0 {
		_ = p.g.AddItems(batch)
	}
	if p.served == len(p.items) {
		p.g.SetEndOfData()
	}
}

// =============================================================================
// browseModel - The Bubbletea Model
// =============================================================================

// browseModel is the bubbletea model for the interactive wall.
type browseModel struct {
	gallery *gallery.Gallery
	state   *wallState
	source  *pagedSource
	title   string

	scrollPx int
	cursor   int
	ready    bool
	width    int
	height   int
	err      error
}

// newBrowseModel builds the gallery, its surface, and the paged source
// over the album. The first reveal happens on the initial window size
// message, once the terminal dimensions are known.
func newBrowseModel(a album.Album, opts gallery.Options) (browseModel, error) {
	state := &wallState{widthPx: cellWidthPx, viewportPx: cellHeightPx}
	g, err := gallery.New(state, state, opts)
	if err != nil {
		return browseModel{}, err
	}

	source := &pagedSource{items: a.Items, g: g}
	g.OnPage(source.page)

	title := a.Title
	if title == "" {
		title = a.ID
	}

	return browseModel{
		gallery: g,
		state:   state,
		source:  source,
		title:   title,
	}, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.state.widthPx = maxInt(msg.Width-2, 1) * cellWidthPx
		m.state.viewportPx = maxInt(msg.Height-chromeLines, 1) * cellHeightPx

		if !m.ready {
			m.ready = true
			m.err = m.gallery.Init(nil)
		} else {
			m.err = m.gallery.Resize()
			m.scrollPx = clampInt(m.scrollPx, 0, m.maxScroll())
		}
		m.cursor = clampInt(m.cursor, 0, len(m.state.tiles)-1)
		if m.err != nil {
			return m, tea.Quit
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "down", "j":
			next := m.scrollPx + cellHeightPx
			if next >= m.maxScroll() {
				m.scrollPx = m.maxScroll()
				// Bottom hit: pull the next row in.
				m.gallery.RevealRows(1)
			} else {
				m.scrollPx = next
				m.gallery.OnScroll(m.scrollPx)
			}

		case "up", "k":
			m.scrollPx = maxInt(m.scrollPx-cellHeightPx, 0)
			m.gallery.OnScroll(m.scrollPx)

		case "left", "h":
			m.cursor = clampInt(m.cursor-1, 0, len(m.state.tiles)-1)

		case "right", "l":
			m.cursor = clampInt(m.cursor+1, 0, len(m.state.tiles)-1)

		case "enter", " ":
			if m.cursor < len(m.state.tiles) {
				_, _ = m.gallery.ToggleSelect(m.state.tiles[m.cursor].ItemID)
			}

		case "m":
			m.gallery.RevealRows(1)

		case "r":
			m.gallery.Reset()
			m.scrollPx = 0
			m.cursor = 0
		}
	}

	return m, nil
}

func (m browseModel) View() string {
	if !m.ready {
		return browseDimStyle.Render("measuring terminal...")
	}
	if m.err != nil {
		return styleIconError.Render(iconError) + " " + m.err.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("j/k scroll  h/l cursor  ⏎ select  m row  r reset  q quit"))
	b.WriteString("\n\n")

	if m.state.empty {
		b.WriteString(browseDimStyle.Render("  (nothing revealed, press m)"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderWall())
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// renderWall draws the revealed rows that intersect the viewport, one
// terminal line per wall row.
func (m browseModel) renderWall() string {
	rows := make(map[int][]album.Tile)
	for _, t := range m.state.tiles {
		rows[t.Row] = append(rows[t.Row], t)
	}
	indices := make([]int, 0, len(rows))
	for r := range rows {
		indices = append(indices, r)
	}
	sort.Ints(indices)

	var b strings.Builder
	top := float64(m.scrollPx)
	bottom := float64(m.scrollPx + m.state.viewportPx)

	for _, r := range indices {
		tiles := rows[r]
		sort.Slice(tiles, func(i, j int) bool { return tiles[i].X < tiles[j].X })

		// A row is visible if its vertical span intersects the viewport.
		if tiles[0].Y+tiles[0].Height <= top || tiles[0].Y >= bottom {
			continue
		}

		for _, t := range tiles {
			b.WriteString(m.renderTile(t))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderTile draws one tile as a labeled block sized by its share of the
// row width.
func (m browseModel) renderTile(t album.Tile) string {
	cells := int(t.Width/cellWidthPx + 0.5)
	if cells < 4 {
		cells = 4
	}

	label := t.Title
	if label == "" {
		label = t.ItemID
	}
	mark := " "
	if m.gallery.IsSelected(t.ItemID) {
		mark = iconSuccess
	}

	style := browseTileStyle
	if m.gallery.IsSelected(t.ItemID) {
		style = browseSelectedStyle
	}
	if m.cursorID() == t.ItemID {
		style = browseCursorStyle
	}

	return style.Width(cells).MaxWidth(cells).MaxHeight(1).Render(mark + label)
}

// statusLine summarizes reveal progress, selection, and source state.
func (m browseModel) statusLine() string {
	parts := []string{
		fmt.Sprintf("%d/%d revealed", m.gallery.Revealed(), len(m.source.items)),
		fmt.Sprintf("%d rows", m.gallery.RevealedRows()),
	}
	if n := len(m.gallery.Selection()); n > 0 {
		parts = append(parts, StyleSuccess.Render(fmt.Sprintf("%d selected", n)))
	}
	if m.state.complete && m.gallery.EndOfData() {
		parts = append(parts, "all loaded")
	}
	return browseDimStyle.Render("  " + strings.Join(parts, " · "))
}

// cursorID returns the item under the cursor, or empty when nothing is
// revealed.
func (m browseModel) cursorID() string {
	if m.cursor < 0 || m.cursor >= len(m.state.tiles) {
		return ""
	}
	return m.state.tiles[m.cursor].ItemID
}

// maxScroll is the furthest scroll offset that keeps the viewport on the
// wall.
func (m browseModel) maxScroll() int {
	max := int(m.state.wallHeight) - m.state.viewportPx
	if max < 0 {
		return 0
	}
	return max
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
